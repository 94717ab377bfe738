package domain

import "github.com/shopspring/decimal"

// Side places an amount on the debit or credit column.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// GLLine is one debit or credit entry against a chart-of-accounts code.
// Exactly one of Debit/Credit is non-zero. Base amounts are in the organization's base currency.
type GLLine struct {
	LineID       string          `json:"lineID"`
	LineNumber   int             `json:"lineNumber"`
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	Role         AccountRole     `json:"role"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	DebitBase    decimal.Decimal `json:"debitBase"`
	CreditBase   decimal.Decimal `json:"creditBase"`
	Description  string          `json:"description"`
	Currency     string          `json:"currency"`
	BaseCurrency string          `json:"baseCurrency"`
	EventID      string          `json:"eventID"`
}

// Side returns which column carries the amount.
func (l GLLine) Side() Side {
	if l.Debit.IsPositive() {
		return Debit
	}
	return Credit
}

// Amount returns the non-zero column value.
func (l GLLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// BaseAmount returns the non-zero base column value.
func (l GLLine) BaseAmount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.DebitBase
	}
	return l.CreditBase
}

// HasSingleSide reports whether exactly one column is non-zero and neither is negative.
func (l GLLine) HasSingleSide() bool {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return false
	}
	return l.Debit.IsZero() != l.Credit.IsZero()
}
