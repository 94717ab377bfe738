package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGLLine_HasSingleSide(t *testing.T) {
	tests := []struct {
		name string
		line domain.GLLine
		want bool
	}{
		{
			name: "debit only",
			line: domain.GLLine{Debit: decimal.NewFromInt(525)},
			want: true,
		},
		{
			name: "credit only",
			line: domain.GLLine{Credit: decimal.RequireFromString("25.00")},
			want: true,
		},
		{
			name: "both columns set",
			line: domain.GLLine{Debit: decimal.NewFromInt(1), Credit: decimal.NewFromInt(1)},
			want: false,
		},
		{
			name: "neither column set",
			line: domain.GLLine{},
			want: false,
		},
		{
			name: "negative debit",
			line: domain.GLLine{Debit: decimal.NewFromInt(-5)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.line.HasSingleSide())
		})
	}
}

func TestGLLine_SideAndAmount(t *testing.T) {
	line := domain.GLLine{Credit: decimal.NewFromInt(500), CreditBase: decimal.NewFromInt(136)}
	assert.Equal(t, domain.Credit, line.Side())
	assert.True(t, line.Amount().Equal(decimal.NewFromInt(500)))
	assert.True(t, line.BaseAmount().Equal(decimal.NewFromInt(136)))
}

func TestParseSmartCode(t *testing.T) {
	key, err := domain.ParseSmartCode("FIN.EXP.SALARY.STAFF.v12")
	require.NoError(t, err)
	assert.Equal(t, "FIN", key.Domain)
	assert.Equal(t, "SALARY", key.Category)
	assert.Equal(t, 12, key.Version)
	assert.Equal(t, domain.OperationExpense, key.Operation())
	assert.Equal(t, domain.SmartCode("FIN.EXP.SALARY.STAFF.v12"), key.SmartCode())

	for _, bad := range []domain.SmartCode{"", "FIN.EXP.SALARY.v1", "fin.exp.salary.staff.v1", "FIN.EXP.SALARY.STAFF.V1", "FIN.EXP.SALARY.STAFF.v"} {
		_, err := domain.ParseSmartCode(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestPeriodBounds(t *testing.T) {
	start, end, err := domain.PeriodBounds("2024-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), end)

	_, _, err = domain.PeriodBounds("2024-13")
	assert.Error(t, err)
}

func TestPeriodStatus_Postable(t *testing.T) {
	assert.True(t, domain.PeriodOpen.Postable())
	assert.True(t, domain.PeriodCurrent.Postable())
	assert.False(t, domain.PeriodClosed.Postable())
	assert.False(t, domain.PeriodFutureBlocked.Postable())
}

func TestTaxTable_RateFor(t *testing.T) {
	table := domain.NewTaxTable("GB", []domain.TaxRate{
		{Jurisdiction: "GB", Category: domain.StandardCategory, Rate: decimal.RequireFromString("0.20"), Scheme: domain.SchemeStandard},
		{Jurisdiction: "GB", Category: "UTILITIES", Rate: decimal.RequireFromString("0.05"), Scheme: domain.SchemeReduced},
	})

	assert.True(t, table.RateFor("UTILITIES").Rate.Equal(decimal.RequireFromString("0.05")))
	assert.True(t, table.RateFor("SUPPLIES").Rate.Equal(decimal.RequireFromString("0.20")))
	assert.True(t, domain.TaxTable{}.RateFor("SUPPLIES").Rate.IsZero())
}

func TestPOSDailySummary_Totals(t *testing.T) {
	summary := domain.POSDailySummary{
		CashCollected:  decimal.NewFromInt(300),
		CardSettlement: decimal.NewFromInt(600),
		OtherTenders:   []domain.Tender{{Method: "voucher", Amount: decimal.NewFromInt(150)}},
		Commissions: []domain.StaffCommission{
			{StaffID: "s1", Amount: decimal.NewFromInt(40)},
			{StaffID: "s2", Amount: decimal.RequireFromString("12.50")},
		},
	}
	assert.True(t, summary.TenderTotal().Equal(decimal.NewFromInt(1050)))
	assert.True(t, summary.TotalCommission().Equal(decimal.RequireFromString("52.50")))
}
