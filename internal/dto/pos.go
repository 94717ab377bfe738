package dto

import (
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StaffCommissionRequest is one staff member's commission for the day.
type StaffCommissionRequest struct {
	StaffID   string          `json:"staff_id" binding:"required,max=100"`
	StaffName string          `json:"staff_name" binding:"omitempty,max=200"`
	Amount    decimal.Decimal `json:"amount"`
}

// DailySummaryRequest is a POS end-of-day summary.
type DailySummaryRequest struct {
	SummaryID         string                   `json:"summary_id" binding:"omitempty,max=100"`
	BusinessDate      string                   `json:"business_date" binding:"required,datetime=2006-01-02"`
	Currency          string                   `json:"currency" binding:"required,len=3"`
	ExchangeRate      decimal.Decimal          `json:"exchange_rate"`
	CashCollected     decimal.Decimal          `json:"cash_collected"`
	CardSettlement    decimal.Decimal          `json:"card_settlement"`
	OtherTenders      []TenderRequest          `json:"other_tenders" binding:"omitempty,dive"`
	GrossSales        decimal.Decimal          `json:"gross_sales"`
	VATCollected      decimal.Decimal          `json:"vat_collected"`
	Commissions       []StaffCommissionRequest `json:"commissions" binding:"omitempty,dive"`
	SourceSystem      string                   `json:"source_system" binding:"omitempty,max=100"`
	ExternalReference string                   `json:"external_reference" binding:"omitempty,max=200"`
}

// ToDomain converts the request to a POSDailySummary.
func (r DailySummaryRequest) ToDomain(organizationID string) domain.POSDailySummary {
	date, _ := time.Parse(DateLayout, r.BusinessDate)
	tenders := make([]domain.Tender, len(r.OtherTenders))
	for i, t := range r.OtherTenders {
		tenders[i] = domain.Tender{Method: t.Method, Amount: t.Amount}
	}
	commissions := make([]domain.StaffCommission, len(r.Commissions))
	for i, c := range r.Commissions {
		commissions[i] = domain.StaffCommission{StaffID: c.StaffID, StaffName: c.StaffName, Amount: c.Amount}
	}
	return domain.POSDailySummary{
		SummaryID:         r.SummaryID,
		OrganizationID:    organizationID,
		BusinessDate:      date,
		Currency:          r.Currency,
		ExchangeRate:      r.ExchangeRate,
		CashCollected:     r.CashCollected,
		CardSettlement:    r.CardSettlement,
		OtherTenders:      tenders,
		GrossSales:        r.GrossSales,
		VATCollected:      r.VATCollected,
		Commissions:       commissions,
		SourceSystem:      r.SourceSystem,
		ExternalReference: r.ExternalReference,
	}
}

// CommissionAccrualResponse links a staff member to their accrual journal.
type CommissionAccrualResponse struct {
	StaffID       string          `json:"staff_id"`
	StaffName     string          `json:"staff_name,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transaction_id"`
}

// POSTotalsResponse are the aggregate figures of a processed summary.
type POSTotalsResponse struct {
	GrossSales      decimal.Decimal `json:"gross_sales"`
	NetSales        decimal.Decimal `json:"net_sales"`
	TotalVAT        decimal.Decimal `json:"total_vat"`
	TotalCommission decimal.Decimal `json:"total_commission"`
}

// POSResultResponse is the outcome of processing a daily summary.
type POSResultResponse struct {
	Success            bool                        `json:"success"`
	SummaryID          string                      `json:"summary_id,omitempty"`
	JournalEntries     []TransactionResponse       `json:"journal_entries"`
	CommissionAccruals []CommissionAccrualResponse `json:"commission_accruals"`
	Totals             POSTotalsResponse           `json:"totals"`
	ValidationErrors   []string                    `json:"validation_errors,omitempty"`
	Replayed           bool                        `json:"replayed,omitempty"`
	Error              *ErrorBody                  `json:"error,omitempty"`
}

// ToPOSResultResponse converts a domain.POSResult to POSResultResponse DTO.
func ToPOSResultResponse(r domain.POSResult) POSResultResponse {
	accruals := make([]CommissionAccrualResponse, len(r.CommissionAccruals))
	for i, a := range r.CommissionAccruals {
		accruals[i] = CommissionAccrualResponse{
			StaffID:       a.StaffID,
			StaffName:     a.StaffName,
			Amount:        a.Amount,
			TransactionID: a.TransactionID,
		}
	}
	return POSResultResponse{
		Success:            r.Success,
		SummaryID:          r.SummaryID,
		JournalEntries:     ToTransactionResponses(r.JournalEntries),
		CommissionAccruals: accruals,
		Totals: POSTotalsResponse{
			GrossSales:      r.Totals.GrossSales,
			NetSales:        r.Totals.NetSales,
			TotalVAT:        r.Totals.TotalVAT,
			TotalCommission: r.Totals.TotalCommission,
		},
		ValidationErrors: r.ValidationErrors,
		Replayed:         r.Replayed,
	}
}
