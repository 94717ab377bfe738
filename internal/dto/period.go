package dto

import (
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
)

// PeriodResponse defines the data returned for a fiscal period.
type PeriodResponse struct {
	PeriodID      string    `json:"period_id"`
	PeriodCode    string    `json:"period_code"`
	FiscalYear    int       `json:"fiscal_year"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
	Version       int       `json:"version"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	LastUpdatedBy string    `json:"last_updated_by"`
}

// ToPeriodResponse converts a domain.FiscalPeriod to PeriodResponse DTO.
func ToPeriodResponse(p domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:      p.PeriodID,
		PeriodCode:    p.PeriodCode,
		FiscalYear:    p.FiscalYear,
		StartDate:     p.StartDate.Format(DateLayout),
		EndDate:       p.EndDate.Format(DateLayout),
		Status:        string(p.Status),
		Version:       p.Version,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ValidatePeriodRequest asks whether a date can be posted to.
type ValidatePeriodRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

// ValidatePeriodResponse reports the gate decision. Error is set when CanPost is false.
type ValidatePeriodResponse struct {
	CanPost bool            `json:"can_post"`
	Period  *PeriodResponse `json:"period,omitempty"`
	Error   *ErrorBody      `json:"error,omitempty"`
}

// ClosePeriodRequest closes a period if its version is still the one the caller saw.
type ClosePeriodRequest struct {
	ExpectedVersion int `json:"expected_version" binding:"required,min=1"`
}
