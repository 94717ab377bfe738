package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/SscSPs/mda_posting_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventValidator(t *testing.T) {
	v := services.NewEventValidator(dec("1000000"))

	tests := []struct {
		name      string
		mutate    func(*domain.FinanceEvent)
		wantField string
	}{
		{"valid", func(*domain.FinanceEvent) {}, ""},
		{"organization not a uuid", func(e *domain.FinanceEvent) { e.OrganizationID = "org-1" }, "organization_id"},
		{"lowercase smart code", func(e *domain.FinanceEvent) { e.SmartCode = "fin.rev.service.general.v1" }, "smart_code"},
		{"smart code missing version", func(e *domain.FinanceEvent) { e.SmartCode = "FIN.REV.SERVICE.GENERAL" }, "smart_code"},
		{"unknown currency", func(e *domain.FinanceEvent) { e.TransactionCurrency = "XYZ" }, "transaction_currency"},
		{"zero amount", func(e *domain.FinanceEvent) { e.TotalAmount = decimal.Zero }, "total_amount"},
		{"negative amount", func(e *domain.FinanceEvent) { e.TotalAmount = dec("-5") }, "total_amount"},
		{"three decimals", func(e *domain.FinanceEvent) { e.TotalAmount = dec("10.005") }, "total_amount"},
		{"above ceiling", func(e *domain.FinanceEvent) { e.TotalAmount = dec("1000000.01") }, "total_amount"},
		{"missing date", func(e *domain.FinanceEvent) { e.TransactionDate = time.Time{} }, "transaction_date"},
		{"same currency rate not one", func(e *domain.FinanceEvent) { e.ExchangeRate = dec("1.1") }, "exchange_rate"},
		{"cross currency without rate", func(e *domain.FinanceEvent) {
			e.TransactionCurrency = "USD"
			e.ExchangeRate = decimal.Zero
		}, "exchange_rate"},
		{"lines supplied", func(e *domain.FinanceEvent) { e.Lines = []domain.GLLine{{}} }, "lines"},
		{"payload on plain event", func(e *domain.FinanceEvent) { e.Payload = domain.CommissionPayload{StaffID: "s1"} }, "payload"},
		{"sales without payload", func(e *domain.FinanceEvent) { e.SmartCode = domain.SmartCodePOSSales }, "payload"},
		{"commission without staff", func(e *domain.FinanceEvent) {
			e.SmartCode = domain.SmartCodePOSCommission
			e.Payload = domain.CommissionPayload{}
		}, "payload.staff_id"},
		{"long idempotency key", func(e *domain.FinanceEvent) { e.Metadata.IdempotencyKey = strings.Repeat("k", 201) }, "metadata.idempotency_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := newEvent(domain.SmartCodeServiceRevenue, "525")
			tt.mutate(&event)

			err := v.Validate(event)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var engineErr *apperrors.EngineError
			require.ErrorAs(t, err, &engineErr)
			assert.Equal(t, apperrors.CodeSchemaViolation, engineErr.Code)
			assert.Equal(t, tt.wantField, engineErr.Field)
		})
	}
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Paid rent alert(1) now", services.SanitizeText("Paid <b>rent</b><script>alert(1)</script>\x00 now"))
	assert.Equal(t, "tabs and lines", services.SanitizeText("tabs\tand\r\nlines"))
	assert.Equal(t, "café", services.SanitizeText("café"))
	assert.Len(t, []rune(services.SanitizeText(strings.Repeat("é", 800))), services.MaxFreeTextRunes)
}

func TestSanitizeEvent(t *testing.T) {
	event := newEvent(domain.SmartCodeServiceRevenue, "525")
	event.Context.Note = "  <i>VIP</i> client  "
	event.Context.Channel = " CARD "
	event.TransactionCurrency = "aed"

	clean := services.SanitizeEvent(event)

	assert.Equal(t, "VIP client", clean.Context.Note)
	assert.Equal(t, "card", clean.Context.Channel)
	assert.Equal(t, "AED", clean.TransactionCurrency)
}

func TestFingerprint(t *testing.T) {
	a := newEvent(domain.SmartCodeServiceRevenue, "525")
	b := a
	b.EventID = "another-id"
	b.Context.Note = "different note"
	assert.Equal(t, services.Fingerprint(a), services.Fingerprint(b))

	c := a
	c.TotalAmount = dec("526")
	assert.NotEqual(t, services.Fingerprint(a), services.Fingerprint(c))

	d := a
	d.TotalAmount = dec("525.00")
	assert.Equal(t, services.Fingerprint(a), services.Fingerprint(d))
}

func TestIdempotencyKeyFor(t *testing.T) {
	event := newEvent(domain.SmartCodeServiceRevenue, "525")
	assert.Equal(t, "key-525", services.IdempotencyKeyFor(event))

	event.Metadata.IdempotencyKey = ""
	assert.Equal(t, "event:evt-525", services.IdempotencyKeyFor(event))
}
