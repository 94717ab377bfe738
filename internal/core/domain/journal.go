package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the state of a posted transaction.
type TransactionStatus string

const (
	Posted  TransactionStatus = "POSTED"
	Preview TransactionStatus = "PREVIEW"
)

// PostedTransaction is the journal produced for one finance event.
// Once posted it is never mutated; corrections are new offsetting events.
type PostedTransaction struct {
	TransactionID     string            `json:"transactionID"`
	EventID           string            `json:"eventID"`
	OrganizationID    string            `json:"organizationID"`
	PeriodCode        string            `json:"periodCode"`
	SmartCode         SmartCode         `json:"smartCode"`
	TransactionDate   time.Time         `json:"transactionDate"`
	Currency          string            `json:"currency"`
	BaseCurrency      string            `json:"baseCurrency"`
	ExchangeRate      decimal.Decimal   `json:"exchangeRate"`
	TotalAmount       decimal.Decimal   `json:"totalAmount"`
	Description       string            `json:"description"`
	Status            TransactionStatus `json:"status"`
	Lines             []GLLine          `json:"lines"`
	TotalDebit        decimal.Decimal   `json:"totalDebit"`
	TotalCredit       decimal.Decimal   `json:"totalCredit"`
	IdempotencyKey    string            `json:"idempotencyKey,omitempty"`
	Fingerprint       string            `json:"fingerprint,omitempty"`
	SourceSystem      string            `json:"sourceSystem,omitempty"`
	ExternalReference string            `json:"externalReference,omitempty"`
	SummaryID         string            `json:"summaryID,omitempty"`
	AuditFields
}

// Balanced reports whether totals agree within the two-decimal tolerance.
func (t PostedTransaction) Balanced() bool {
	return t.TotalDebit.Sub(t.TotalCredit).Abs().LessThan(BalanceTolerance)
}

// BalanceTolerance is the largest debit/credit gap treated as balanced.
var BalanceTolerance = decimal.New(1, -2)
