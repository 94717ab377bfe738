package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/SscSPs/mda_posting_engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestToModelAuditFields(t *testing.T) {
	dubai := time.FixedZone("GST", 4*60*60)
	created := time.Date(2025, time.October, 3, 13, 0, 0, 0, dubai)

	tests := []struct {
		name string
		in   domain.AuditFields
		want models.AuditFields
	}{
		{
			name: "full stamps converted to UTC",
			in:   domain.AuditFields{CreatedAt: created, CreatedBy: "user-1", LastUpdatedAt: created.Add(time.Hour), LastUpdatedBy: "user-2"},
			want: models.AuditFields{CreatedAt: created.UTC(), CreatedBy: "user-1", LastUpdatedAt: created.Add(time.Hour).UTC(), LastUpdatedBy: "user-2"},
		},
		{
			name: "update stamp defaults to creation",
			in:   domain.AuditFields{CreatedAt: created, CreatedBy: "user-1"},
			want: models.AuditFields{CreatedAt: created.UTC(), CreatedBy: "user-1", LastUpdatedAt: created.UTC(), LastUpdatedBy: "user-1"},
		},
		{
			name: "missing actor is system",
			in:   domain.AuditFields{CreatedAt: created},
			want: models.AuditFields{CreatedAt: created.UTC(), CreatedBy: domain.SystemActor, LastUpdatedAt: created.UTC(), LastUpdatedBy: domain.SystemActor},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToModelAuditFields(tt.in)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.UTC, got.CreatedAt.Location())
		})
	}
}

func TestToDomainAuditFieldsReturnsUTC(t *testing.T) {
	local := time.Date(2025, time.October, 3, 9, 0, 0, 0, time.FixedZone("GST", 4*60*60))

	got := ToDomainAuditFields(models.AuditFields{CreatedAt: local, CreatedBy: "user-1", LastUpdatedAt: local, LastUpdatedBy: "user-1"})

	assert.True(t, got.CreatedAt.Equal(local))
	assert.Equal(t, time.UTC, got.CreatedAt.Location())
	assert.Equal(t, time.UTC, got.LastUpdatedAt.Location())
}

func TestNewAuditFieldsFallsBackToSystemActor(t *testing.T) {
	now := time.Date(2025, time.October, 3, 9, 0, 0, 0, time.UTC)

	got := domain.NewAuditFields("", now)

	assert.Equal(t, domain.SystemActor, got.CreatedBy)
	assert.Equal(t, domain.SystemActor, got.LastUpdatedBy)
	assert.Equal(t, now, got.CreatedAt)
}
