package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostedTransaction is the header row of a posted journal.
type PostedTransaction struct {
	TransactionID     string          `db:"transaction_id"`
	EventID           string          `db:"event_id"`
	OrganizationID    string          `db:"organization_id"`
	PeriodCode        string          `db:"period_code"`
	SmartCode         string          `db:"smart_code"`
	TransactionDate   time.Time       `db:"transaction_date"`
	Currency          string          `db:"currency"`
	BaseCurrency      string          `db:"base_currency"`
	ExchangeRate      decimal.Decimal `db:"exchange_rate"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	Description       string          `db:"description"`
	Status            string          `db:"status"`
	TotalDebit        decimal.Decimal `db:"total_debit"`
	TotalCredit       decimal.Decimal `db:"total_credit"`
	IdempotencyKey    string          `db:"idempotency_key"`
	Fingerprint       string          `db:"fingerprint"`
	SourceSystem      string          `db:"source_system"`
	ExternalReference string          `db:"external_reference"`
	SummaryID         *string         `db:"summary_id"` // Nullable
	AuditFields
}

// GLLine is one stored debit or credit line; exactly one of Debit/Credit is non-zero.
type GLLine struct {
	LineID        string          `db:"line_id"`
	TransactionID string          `db:"transaction_id"`
	LineNumber    int             `db:"line_number"`
	AccountCode   string          `db:"account_code"`
	AccountName   string          `db:"account_name"`
	Role          string          `db:"role"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	DebitBase     decimal.Decimal `db:"debit_base"`
	CreditBase    decimal.Decimal `db:"credit_base"`
	Description   string          `db:"description"`
	Currency      string          `db:"currency"`
	BaseCurrency  string          `db:"base_currency"`
}
