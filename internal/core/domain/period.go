package domain

import (
	"fmt"
	"time"
)

// PeriodStatus is the posting eligibility of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen          PeriodStatus = "open"
	PeriodCurrent       PeriodStatus = "current"
	PeriodClosed        PeriodStatus = "closed"
	PeriodFutureBlocked PeriodStatus = "future-blocked"
)

// Postable reports whether journals may be posted into a period in this status.
func (s PeriodStatus) Postable() bool {
	return s == PeriodOpen || s == PeriodCurrent
}

// Valid reports whether s is a known status.
func (s PeriodStatus) Valid() bool {
	switch s {
	case PeriodOpen, PeriodCurrent, PeriodClosed, PeriodFutureBlocked:
		return true
	}
	return false
}

// PeriodCodeLayout is the year-month layout used for period codes.
const PeriodCodeLayout = "2006-01"

// FiscalPeriod is one organization's accounting month.
type FiscalPeriod struct {
	PeriodID       string       `json:"periodID"`
	OrganizationID string       `json:"organizationID"`
	PeriodCode     string       `json:"periodCode"`
	FiscalYear     int          `json:"fiscalYear"`
	StartDate      time.Time    `json:"startDate"`
	EndDate        time.Time    `json:"endDate"`
	Status         PeriodStatus `json:"status"`
	Version        int          `json:"version"`
	AuditFields
}

// PeriodCodeFor returns the YYYY-MM code of the month containing t.
func PeriodCodeFor(t time.Time) string {
	return t.Format(PeriodCodeLayout)
}

// PeriodBounds parses a period code and returns its first and last calendar day (UTC).
func PeriodBounds(code string) (time.Time, time.Time, error) {
	start, err := time.Parse(PeriodCodeLayout, code)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period code %q: %w", code, err)
	}
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

// NewFiscalPeriod builds the record created lazily on first touch.
func NewFiscalPeriod(periodID, organizationID string, date time.Time, actor string, now time.Time) FiscalPeriod {
	code := PeriodCodeFor(date)
	start, end, _ := PeriodBounds(code)
	return FiscalPeriod{
		PeriodID:       periodID,
		OrganizationID: organizationID,
		PeriodCode:     code,
		FiscalYear:     date.Year(),
		StartDate:      start,
		EndDate:        end,
		Status:         PeriodCurrent,
		Version:        1,
		AuditFields:    NewAuditFields(actor, now),
	}
}

// PeriodValidation is the outcome of gating a posting date.
type PeriodValidation struct {
	CanPost bool          `json:"canPost"`
	Period  *FiscalPeriod `json:"period,omitempty"`
	// WouldCreate is set by read-only checks when the period does not exist yet.
	WouldCreate bool `json:"wouldCreate,omitempty"`
}
