package services

import (
	"encoding/hex"
	"encoding/json"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"golang.org/x/crypto/blake2b"
)

type fingerprintBody struct {
	OrganizationID string         `json:"o"`
	SmartCode      string         `json:"s"`
	Date           string         `json:"d"`
	Amount         string         `json:"a"`
	Currency       string         `json:"c"`
	BaseCurrency   string         `json:"b"`
	ExchangeRate   string         `json:"r"`
	TaxInclusive   *bool          `json:"t,omitempty"`
	Payload        domain.Payload `json:"p,omitempty"`
}

// Fingerprint hashes the fields that decide an event's journal. Two submissions under one
// idempotency key must share it, otherwise the second is a conflicting reuse.
func Fingerprint(event domain.FinanceEvent) string {
	body := fingerprintBody{
		OrganizationID: event.OrganizationID,
		SmartCode:      string(event.SmartCode),
		Date:           event.TransactionDate.Format("2006-01-02"),
		Amount:         event.TotalAmount.StringFixed(2),
		Currency:       event.TransactionCurrency,
		BaseCurrency:   event.BaseCurrency,
		ExchangeRate:   event.ExchangeRate.String(),
		TaxInclusive:   event.Context.TaxInclusive,
		Payload:        event.Payload,
	}
	raw, _ := json.Marshal(body)
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// IdempotencyKeyFor returns the caller key, or one derived from the event id.
func IdempotencyKeyFor(event domain.FinanceEvent) string {
	if event.Metadata.IdempotencyKey != "" {
		return event.Metadata.IdempotencyKey
	}
	if event.EventID != "" {
		return "event:" + event.EventID
	}
	return ""
}
