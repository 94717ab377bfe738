package dto

import (
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format accepted and returned by the API.
const DateLayout = "2006-01-02"

// TenderRequest is one non-cash, non-card tender total.
type TenderRequest struct {
	Method string          `json:"method" binding:"required,max=50"`
	Amount decimal.Decimal `json:"amount"`
}

// SalesPayloadRequest is the body of a POS sales event.
type SalesPayloadRequest struct {
	SummaryID      string          `json:"summary_id" binding:"omitempty,max=100"`
	CashCollected  decimal.Decimal `json:"cash_collected"`
	CardSettlement decimal.Decimal `json:"card_settlement"`
	OtherTenders   []TenderRequest `json:"other_tenders" binding:"omitempty,dive"`
	VATCollected   decimal.Decimal `json:"vat_collected"`
}

// CommissionPayloadRequest is the body of a staff commission event.
type CommissionPayloadRequest struct {
	SummaryID string `json:"summary_id" binding:"omitempty,max=100"`
	StaffID   string `json:"staff_id" binding:"required,max=100"`
	StaffName string `json:"staff_name" binding:"omitempty,max=200"`
}

// BusinessContextRequest carries the optional business context of an event.
type BusinessContextRequest struct {
	Channel       string `json:"channel" binding:"omitempty,max=50"`
	Note          string `json:"note"`
	CategoryLabel string `json:"category_label" binding:"omitempty,max=100"`
	TaxInclusive  *bool  `json:"tax_inclusive"`
}

// MetadataRequest records where an event came from.
type MetadataRequest struct {
	SourceSystem      string `json:"source_system" binding:"omitempty,max=100"`
	ExternalReference string `json:"external_reference" binding:"omitempty,max=200"`
	IdempotencyKey    string `json:"idempotency_key" binding:"omitempty,max=200"`
}

// PostEventRequest is a structured finance event. Amount rules are enforced by the engine.
type PostEventRequest struct {
	EventID             string                    `json:"event_id" binding:"omitempty,max=100"`
	SmartCode           string                    `json:"smart_code" binding:"required"`
	TransactionDate     string                    `json:"transaction_date" binding:"required,datetime=2006-01-02"`
	TotalAmount         decimal.Decimal           `json:"total_amount"`
	TransactionCurrency string                    `json:"transaction_currency" binding:"required,len=3"`
	BaseCurrency        string                    `json:"base_currency" binding:"omitempty,len=3"`
	ExchangeRate        decimal.Decimal           `json:"exchange_rate"`
	BusinessContext     BusinessContextRequest    `json:"business_context"`
	Metadata            MetadataRequest           `json:"metadata"`
	Sales               *SalesPayloadRequest      `json:"sales,omitempty"`
	Commission          *CommissionPayloadRequest `json:"commission,omitempty"`
	// Lines is accepted only to be rejected: GL lines are always derived by the engine.
	Lines []GLLineResponse `json:"lines,omitempty"`
}

// ToDomain converts the request to a FinanceEvent. The header key, when given, wins over the body.
func (r PostEventRequest) ToDomain(organizationID, idempotencyHeader string) domain.FinanceEvent {
	date, _ := time.Parse(DateLayout, r.TransactionDate)
	event := domain.FinanceEvent{
		EventID:             r.EventID,
		OrganizationID:      organizationID,
		SmartCode:           domain.SmartCode(r.SmartCode),
		TransactionDate:     date,
		TotalAmount:         r.TotalAmount,
		TransactionCurrency: r.TransactionCurrency,
		BaseCurrency:        r.BaseCurrency,
		ExchangeRate:        r.ExchangeRate,
		Context: domain.BusinessContext{
			Channel:       r.BusinessContext.Channel,
			Note:          r.BusinessContext.Note,
			CategoryLabel: r.BusinessContext.CategoryLabel,
			TaxInclusive:  r.BusinessContext.TaxInclusive,
		},
		Metadata: domain.IngestionMetadata{
			SourceSystem:      r.Metadata.SourceSystem,
			ExternalReference: r.Metadata.ExternalReference,
			IdempotencyKey:    r.Metadata.IdempotencyKey,
		},
	}
	if idempotencyHeader != "" {
		event.Metadata.IdempotencyKey = idempotencyHeader
	}
	switch {
	case r.Sales != nil:
		tenders := make([]domain.Tender, len(r.Sales.OtherTenders))
		for i, t := range r.Sales.OtherTenders {
			tenders[i] = domain.Tender{Method: t.Method, Amount: t.Amount}
		}
		event.Payload = domain.SalesPayload{
			SummaryID:      r.Sales.SummaryID,
			CashCollected:  r.Sales.CashCollected,
			CardSettlement: r.Sales.CardSettlement,
			OtherTenders:   tenders,
			VATCollected:   r.Sales.VATCollected,
		}
	case r.Commission != nil:
		event.Payload = domain.CommissionPayload{
			SummaryID: r.Commission.SummaryID,
			StaffID:   r.Commission.StaffID,
			StaffName: r.Commission.StaffName,
		}
	}
	for i, l := range r.Lines {
		event.Lines = append(event.Lines, domain.GLLine{
			LineNumber:  i + 1,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
		})
	}
	return event
}

// EventResponse echoes a draft event built by the engine.
type EventResponse struct {
	EventID             string          `json:"event_id"`
	SmartCode           string          `json:"smart_code"`
	TransactionDate     string          `json:"transaction_date"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	TransactionCurrency string          `json:"transaction_currency"`
	BaseCurrency        string          `json:"base_currency"`
	Channel             string          `json:"channel,omitempty"`
	Note                string          `json:"note,omitempty"`
}

// ToEventResponse converts a domain.FinanceEvent to EventResponse DTO.
func ToEventResponse(e domain.FinanceEvent) EventResponse {
	return EventResponse{
		EventID:             e.EventID,
		SmartCode:           string(e.SmartCode),
		TransactionDate:     e.TransactionDate.Format(DateLayout),
		TotalAmount:         e.TotalAmount,
		TransactionCurrency: e.TransactionCurrency,
		BaseCurrency:        e.BaseCurrency,
		Channel:             e.Context.Channel,
		Note:                e.Context.Note,
	}
}
