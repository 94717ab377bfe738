package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// POSSummary is a processed end-of-day summary. (organization_id, business_date) is unique.
type POSSummary struct {
	SummaryID         string          `db:"summary_id"`
	OrganizationID    string          `db:"organization_id"`
	BusinessDate      time.Time       `db:"business_date"`
	Currency          string          `db:"currency"`
	GrossSales        decimal.Decimal `db:"gross_sales"`
	VATCollected      decimal.Decimal `db:"vat_collected"`
	Totals            []byte          `db:"totals"`              // JSONB
	Accruals          []byte          `db:"commission_accruals"` // JSONB
	TransactionIDs    []string        `db:"transaction_ids"`     // journal order
	SourceSystem      string          `db:"source_system"`
	ExternalReference string          `db:"external_reference"`
	AuditFields
}
