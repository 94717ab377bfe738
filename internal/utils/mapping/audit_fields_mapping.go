package mapping

import (
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/SscSPs/mda_posting_engine/internal/models"
)

// ToModelAuditFields prepares stamps for storage in UTC. A missing creator is stored as the
// system actor; an unset update stamp repeats the creation stamp.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	createdBy := d.CreatedBy
	if createdBy == "" {
		createdBy = domain.SystemActor
	}
	updatedAt, updatedBy := d.LastUpdatedAt, d.LastUpdatedBy
	if updatedAt.IsZero() {
		updatedAt = d.CreatedAt
	}
	if updatedBy == "" {
		updatedBy = createdBy
	}
	return models.AuditFields{
		CreatedAt:     utc(d.CreatedAt),
		CreatedBy:     createdBy,
		LastUpdatedAt: utc(updatedAt),
		LastUpdatedBy: updatedBy,
	}
}

// ToDomainAuditFields reads stored stamps back; pgx returns timestamptz in the local zone.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     utc(m.CreatedAt),
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: utc(m.LastUpdatedAt),
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
