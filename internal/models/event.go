package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payload kinds stored alongside the JSONB body so it can be decoded into the right type.
const (
	PayloadNone       = ""
	PayloadSales      = "sales"
	PayloadCommission = "commission"
)

// FinanceEvent is the stored form of an accepted event. Rows are insert-only.
type FinanceEvent struct {
	EventID             string          `db:"event_id"`
	OrganizationID      string          `db:"organization_id"`
	SmartCode           string          `db:"smart_code"`
	TransactionDate     time.Time       `db:"transaction_date"`
	TotalAmount         decimal.Decimal `db:"total_amount"`
	TransactionCurrency string          `db:"transaction_currency"`
	BaseCurrency        string          `db:"base_currency"`
	ExchangeRate        decimal.Decimal `db:"exchange_rate"`
	BusinessContext     []byte          `db:"business_context"` // JSONB
	PayloadKind         string          `db:"payload_kind"`
	Payload             []byte          `db:"payload"` // JSONB, nil when PayloadKind is empty
	SourceSystem        string          `db:"source_system"`
	ExternalReference   string          `db:"external_reference"`
	IdempotencyKey      string          `db:"idempotency_key"`
	ReceivedAt          time.Time       `db:"received_at"`
}
