package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditEntry is an append-only audit row.
type AuditEntry struct {
	EntryID        string          `db:"entry_id"`
	OrganizationID string          `db:"organization_id"`
	Actor          string          `db:"actor"`
	Action         string          `db:"action"`
	Outcome        string          `db:"outcome"`
	Severity       string          `db:"severity"`
	SmartCode      string          `db:"smart_code"`
	Amount         decimal.Decimal `db:"amount"`
	Currency       string          `db:"currency"`
	TargetID       string          `db:"target_id"`
	ErrorCode      string          `db:"error_code"`
	Message        string          `db:"message"`
	Metadata       []byte          `db:"metadata"` // JSONB
	OccurredAt     time.Time       `db:"occurred_at"`
}
