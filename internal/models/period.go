package models

import "time"

// FiscalPeriod is one organization-month row. (organization_id, period_code) is unique.
type FiscalPeriod struct {
	PeriodID       string    `db:"period_id"`
	OrganizationID string    `db:"organization_id"`
	PeriodCode     string    `db:"period_code"`
	FiscalYear     int       `db:"fiscal_year"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	Status         string    `db:"status"`
	Version        int       `db:"version"`
	AuditFields
}
