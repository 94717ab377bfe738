package mapping

import (
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/SscSPs/mda_posting_engine/internal/models"
)

// ToModelPeriod converts a domain FiscalPeriod to a model FiscalPeriod
func ToModelPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:       d.PeriodID,
		OrganizationID: d.OrganizationID,
		PeriodCode:     d.PeriodCode,
		FiscalYear:     d.FiscalYear,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		Status:         string(d.Status),
		Version:        d.Version,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:       m.PeriodID,
		OrganizationID: m.OrganizationID,
		PeriodCode:     m.PeriodCode,
		FiscalYear:     m.FiscalYear,
		StartDate:      m.StartDate.UTC(),
		EndDate:        m.EndDate.UTC(),
		Status:         domain.PeriodStatus(m.Status),
		Version:        m.Version,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
