package dto

import (
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NLCommandRequest is a free-text bookkeeping instruction.
type NLCommandRequest struct {
	Description string `json:"description" binding:"required,max=2000"`
	DryRun      bool   `json:"dry_run"`
}

// ParseResponse is what the parser understood.
type ParseResponse struct {
	Status      string          `json:"status"`
	Operation   string          `json:"operation"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	SmartCode   string          `json:"smart_code,omitempty"`
	Channel     string          `json:"channel,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
	Missing     []string        `json:"missing,omitempty"`
}

// NLCommandResponse combines the parse, the drafted event and the posting result.
type NLCommandResponse struct {
	Success bool             `json:"success"`
	Parse   ParseResponse    `json:"parse"`
	Draft   *EventResponse   `json:"draft,omitempty"`
	Posting *PostingResponse `json:"posting,omitempty"`
	Error   *ErrorBody       `json:"error,omitempty"`
}

// ToNLCommandResponse converts a domain.NLOutcome to NLCommandResponse DTO.
func ToNLCommandResponse(o domain.NLOutcome) NLCommandResponse {
	resp := NLCommandResponse{
		Success: o.Posting != nil,
		Parse: ParseResponse{
			Status:      string(o.Parse.Status),
			Operation:   string(o.Parse.Operation),
			Amount:      o.Parse.Amount,
			Currency:    o.Parse.Currency,
			Category:    o.Parse.Category,
			SmartCode:   string(o.Parse.SmartCode),
			Channel:     o.Parse.Channel,
			Suggestions: o.Parse.Suggestions,
			Missing:     o.Parse.Missing,
		},
	}
	if !o.Parse.Date.IsZero() {
		resp.Parse.Date = o.Parse.Date.Format(DateLayout)
	}
	if o.Draft != nil {
		d := ToEventResponse(*o.Draft)
		resp.Draft = &d
	}
	if o.Posting != nil {
		p := ToPostingResponse(*o.Posting)
		resp.Posting = &p
	}
	return resp
}
