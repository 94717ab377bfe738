package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StaffCommission is a commission accrued by one staff member on the business date.
type StaffCommission struct {
	StaffID   string          `json:"staffID"`
	StaffName string          `json:"staffName"`
	Amount    decimal.Decimal `json:"amount"`
}

// POSDailySummary is a point-of-sale end-of-day summary.
type POSDailySummary struct {
	SummaryID         string            `json:"summaryID"`
	OrganizationID    string            `json:"organizationID"`
	BusinessDate      time.Time         `json:"businessDate"`
	Currency          string            `json:"currency"`
	// ExchangeRate converts Currency into the organization base currency; required only when they differ.
	ExchangeRate      decimal.Decimal   `json:"exchangeRate"`
	CashCollected     decimal.Decimal   `json:"cashCollected"`
	CardSettlement    decimal.Decimal   `json:"cardSettlement"`
	OtherTenders      []Tender          `json:"otherTenders"`
	GrossSales        decimal.Decimal   `json:"grossSales"`
	VATCollected      decimal.Decimal   `json:"vatCollected"`
	Commissions       []StaffCommission `json:"commissions"`
	SourceSystem      string            `json:"sourceSystem,omitempty"`
	ExternalReference string            `json:"externalReference,omitempty"`
}

// TenderTotal sums every payment method.
func (s POSDailySummary) TenderTotal() decimal.Decimal {
	total := s.CashCollected.Add(s.CardSettlement)
	for _, t := range s.OtherTenders {
		total = total.Add(t.Amount)
	}
	return total
}

// TotalCommission sums accrued commission across staff.
func (s POSDailySummary) TotalCommission() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Commissions {
		total = total.Add(c.Amount)
	}
	return total
}

// POSTotals are the aggregate figures returned to the caller.
type POSTotals struct {
	GrossSales      decimal.Decimal `json:"grossSales"`
	NetSales        decimal.Decimal `json:"netSales"`
	TotalVAT        decimal.Decimal `json:"totalVAT"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
}

// CommissionAccrual links a staff member to the journal that accrued their commission.
type CommissionAccrual struct {
	StaffID       string          `json:"staffID"`
	StaffName     string          `json:"staffName"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transactionID"`
}

// POSResult is the structured outcome of processing a daily summary.
type POSResult struct {
	Success            bool                `json:"success"`
	SummaryID          string              `json:"summaryID,omitempty"`
	JournalEntries     []PostedTransaction `json:"journalEntries"`
	CommissionAccruals []CommissionAccrual `json:"commissionAccruals"`
	Totals             POSTotals           `json:"totals"`
	ValidationErrors   []string            `json:"validationErrors,omitempty"`
	Replayed           bool                `json:"replayed,omitempty"`
}
