package dto

import (
	"testing"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostEventRequestToDomain(t *testing.T) {
	inclusive := true
	req := PostEventRequest{
		SmartCode:           "FIN.POS.EOD.SALES.v1",
		TransactionDate:     "2025-10-14",
		TotalAmount:         decimal.NewFromInt(1050),
		TransactionCurrency: "AED",
		BusinessContext:     BusinessContextRequest{Channel: "pos", TaxInclusive: &inclusive},
		Metadata:            MetadataRequest{SourceSystem: "till", IdempotencyKey: "body-key"},
		Sales: &SalesPayloadRequest{
			CashCollected:  decimal.NewFromInt(600),
			CardSettlement: decimal.NewFromInt(400),
			OtherTenders:   []TenderRequest{{Method: "voucher", Amount: decimal.NewFromInt(50)}},
			VATCollected:   decimal.NewFromInt(50),
		},
	}

	t.Run("body key kept without header", func(t *testing.T) {
		event := req.ToDomain("org-1", "")
		assert.Equal(t, "body-key", event.Metadata.IdempotencyKey)
		assert.Equal(t, "org-1", event.OrganizationID)
		assert.True(t, event.TransactionDate.Equal(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)))
		require.NotNil(t, event.Context.TaxInclusive)
		assert.True(t, *event.Context.TaxInclusive)

		sales, ok := event.Payload.(domain.SalesPayload)
		require.True(t, ok)
		other, _ := sales.Component(domain.ComponentOther)
		assert.True(t, other.Equal(decimal.NewFromInt(50)))
		assert.Empty(t, event.Lines)
	})

	t.Run("header key wins", func(t *testing.T) {
		event := req.ToDomain("org-1", "header-key")
		assert.Equal(t, "header-key", event.Metadata.IdempotencyKey)
	})

	t.Run("caller supplied lines are carried for rejection", func(t *testing.T) {
		withLines := req
		withLines.Sales = nil
		withLines.Lines = []GLLineResponse{{AccountCode: "1000", Debit: decimal.NewFromInt(1)}}
		event := withLines.ToDomain("org-1", "")
		assert.Nil(t, event.Payload)
		require.Len(t, event.Lines, 1)
		assert.Equal(t, 1, event.Lines[0].LineNumber)
	})
}

func TestDailySummaryRequestToDomain(t *testing.T) {
	req := DailySummaryRequest{
		BusinessDate:   "2025-10-14",
		Currency:       "AED",
		CashCollected:  decimal.NewFromInt(600),
		CardSettlement: decimal.NewFromInt(450),
		GrossSales:     decimal.NewFromInt(1050),
		VATCollected:   decimal.NewFromInt(50),
		Commissions: []StaffCommissionRequest{
			{StaffID: "staff-a", Amount: decimal.NewFromInt(30)},
			{StaffID: "staff-b", Amount: decimal.Zero},
		},
	}

	summary := req.ToDomain("org-1")

	assert.Equal(t, "org-1", summary.OrganizationID)
	assert.True(t, summary.TenderTotal().Equal(decimal.NewFromInt(1050)))
	assert.True(t, summary.TotalCommission().Equal(decimal.NewFromInt(30)))
	assert.Len(t, summary.Commissions, 2)
}

func TestToPostingResponse(t *testing.T) {
	period := domain.NewFiscalPeriod("p-1", "org-1", time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC), "user-1", time.Now())
	outcome := domain.PostingOutcome{
		Transaction: domain.PostedTransaction{
			TransactionID:   "txn-1",
			TransactionDate: time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
			Status:          domain.Posted,
			Lines: []domain.GLLine{
				{LineNumber: 1, AccountCode: "6100", Role: domain.AccountRole("expense"), Debit: decimal.NewFromInt(10)},
			},
		},
		Period:   &period,
		TaxSplit: domain.TaxSplit{Mode: domain.TaxNone},
	}

	resp := ToPostingResponse(outcome)

	assert.True(t, resp.Success)
	assert.Equal(t, "2025-10-05", resp.Transaction.TransactionDate)
	assert.Equal(t, "expense", resp.Transaction.Lines[0].Role)
	require.NotNil(t, resp.Period)
	assert.Equal(t, "2025-10", resp.Period.PeriodCode)
	assert.Equal(t, "2025-10-31", resp.Period.EndDate)
	assert.Equal(t, "none", resp.TaxSplit.Mode)
}
