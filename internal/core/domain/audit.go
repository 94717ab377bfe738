package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditSeverity decides whether an entry is batched or flushed immediately.
type AuditSeverity string

const (
	AuditInfo     AuditSeverity = "info"
	AuditWarning  AuditSeverity = "warning"
	AuditCritical AuditSeverity = "critical"
)

// AuditEntry is an immutable record of a posting decision.
type AuditEntry struct {
	EntryID        string            `json:"entryID"`
	OrganizationID string            `json:"organizationID"`
	Actor          string            `json:"actor"`
	Action         string            `json:"action"`
	Outcome        string            `json:"outcome"`
	Severity       AuditSeverity     `json:"severity"`
	SmartCode      SmartCode         `json:"smartCode,omitempty"`
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency,omitempty"`
	TargetID       string            `json:"targetID,omitempty"`
	ErrorCode      string            `json:"errorCode,omitempty"`
	Message        string            `json:"message,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	OccurredAt     time.Time         `json:"occurredAt"`
}
