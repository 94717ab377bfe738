package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/SscSPs/mda_posting_engine/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelEventPayloadKind(t *testing.T) {
	base := domain.FinanceEvent{
		EventID:         "evt-1",
		OrganizationID:  "org-1",
		SmartCode:       domain.SmartCodePOSCommission,
		TransactionDate: time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
		TotalAmount:     decimal.NewFromInt(30),
	}

	testCases := []struct {
		name     string
		payload  domain.Payload
		wantKind string
	}{
		{"no payload", nil, models.PayloadNone},
		{"sales", domain.SalesPayload{CashCollected: decimal.NewFromInt(1)}, models.PayloadSales},
		{"commission", domain.CommissionPayload{StaffID: "staff-a"}, models.PayloadCommission},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event := base
			event.Payload = tc.payload
			m, err := ToModelEvent(event, time.Now())
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, m.PayloadKind)

			back, err := ToDomainEvent(m)
			require.NoError(t, err)
			if tc.payload == nil {
				assert.Nil(t, back.Payload)
				return
			}
			assert.IsType(t, tc.payload, back.Payload)
		})
	}
}

func TestDecodePayloadUnknownKind(t *testing.T) {
	_, err := DecodePayload("refund", []byte(`{}`))
	assert.ErrorContains(t, err, `unknown payload kind "refund"`)
}
