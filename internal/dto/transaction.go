package dto

import (
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GLLineResponse is one debit or credit line.
type GLLineResponse struct {
	LineNumber  int             `json:"line_number"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name,omitempty"`
	Role        string          `json:"role,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	DebitBase   decimal.Decimal `json:"debit_base"`
	CreditBase  decimal.Decimal `json:"credit_base"`
	Description string          `json:"description,omitempty"`
}

// TransactionResponse defines the data returned for a posted transaction.
type TransactionResponse struct {
	TransactionID   string           `json:"transaction_id"`
	EventID         string           `json:"event_id"`
	PeriodCode      string           `json:"period_code"`
	SmartCode       string           `json:"smart_code"`
	TransactionDate string           `json:"transaction_date"`
	Currency        string           `json:"currency"`
	BaseCurrency    string           `json:"base_currency"`
	ExchangeRate    decimal.Decimal  `json:"exchange_rate"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	Description     string           `json:"description"`
	Status          string           `json:"status"`
	TotalDebit      decimal.Decimal  `json:"total_debit"`
	TotalCredit     decimal.Decimal  `json:"total_credit"`
	IdempotencyKey  string           `json:"idempotency_key,omitempty"`
	SummaryID       string           `json:"summary_id,omitempty"`
	Lines           []GLLineResponse `json:"lines"`
	CreatedAt       time.Time        `json:"created_at"`
	CreatedBy       string           `json:"created_by"`
}

// ToTransactionResponse converts a domain.PostedTransaction to TransactionResponse DTO.
func ToTransactionResponse(t domain.PostedTransaction) TransactionResponse {
	lines := make([]GLLineResponse, len(t.Lines))
	for i, l := range t.Lines {
		lines[i] = GLLineResponse{
			LineNumber:  l.LineNumber,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Role:        string(l.Role),
			Debit:       l.Debit,
			Credit:      l.Credit,
			DebitBase:   l.DebitBase,
			CreditBase:  l.CreditBase,
			Description: l.Description,
		}
	}
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		EventID:         t.EventID,
		PeriodCode:      t.PeriodCode,
		SmartCode:       string(t.SmartCode),
		TransactionDate: t.TransactionDate.Format(DateLayout),
		Currency:        t.Currency,
		BaseCurrency:    t.BaseCurrency,
		ExchangeRate:    t.ExchangeRate,
		TotalAmount:     t.TotalAmount,
		Description:     t.Description,
		Status:          string(t.Status),
		TotalDebit:      t.TotalDebit,
		TotalCredit:     t.TotalCredit,
		IdempotencyKey:  t.IdempotencyKey,
		SummaryID:       t.SummaryID,
		Lines:           lines,
		CreatedAt:       t.CreatedAt,
		CreatedBy:       t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.PostedTransaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.PostedTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = ToTransactionResponse(t)
	}
	return responses
}

// ListTransactionsParams are the query parameters of the transaction listing.
type ListTransactionsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"next_token"`
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"next_token,omitempty"`
}

// TaxSplitResponse is the net/tax decomposition applied to an event.
type TaxSplitResponse struct {
	Gross decimal.Decimal `json:"gross"`
	Net   decimal.Decimal `json:"net"`
	Tax   decimal.Decimal `json:"tax"`
	Rate  decimal.Decimal `json:"rate"`
	Mode  string          `json:"mode"`
}

// PostingResponse is the result of posting or previewing one event.
type PostingResponse struct {
	Success         bool                `json:"success"`
	Transaction     TransactionResponse `json:"transaction"`
	Period          *PeriodResponse     `json:"period,omitempty"`
	TaxSplit        TaxSplitResponse    `json:"tax_split"`
	SnapshotVersion string              `json:"snapshot_version"`
	Replayed        bool                `json:"replayed"`
	DryRun          bool                `json:"dry_run"`
}

// ToPostingResponse converts a domain.PostingOutcome to PostingResponse DTO.
func ToPostingResponse(o domain.PostingOutcome) PostingResponse {
	resp := PostingResponse{
		Success:     true,
		Transaction: ToTransactionResponse(o.Transaction),
		TaxSplit: TaxSplitResponse{
			Gross: o.TaxSplit.Gross,
			Net:   o.TaxSplit.Net,
			Tax:   o.TaxSplit.Tax,
			Rate:  o.TaxSplit.Rate,
			Mode:  string(o.TaxSplit.Mode),
		},
		SnapshotVersion: o.SnapshotVersion,
		Replayed:        o.Replayed,
		DryRun:          o.DryRun,
	}
	if o.Period != nil {
		p := ToPeriodResponse(*o.Period)
		resp.Period = &p
	}
	return resp
}
