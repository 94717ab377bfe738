package domain

import "time"

// AuditFields holds standard audit information for persisted entities.
// Posted records are immutable, so LastUpdated* only moves for fiscal periods.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // actor (JWT subject or "system")
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// SystemActor is recorded when no authenticated user triggered the change.
const SystemActor = "system"

// NewAuditFields stamps a record created by actor at now; an empty actor becomes SystemActor.
func NewAuditFields(actor string, now time.Time) AuditFields {
	if actor == "" {
		actor = SystemActor
	}
	now = now.UTC()
	return AuditFields{CreatedAt: now, CreatedBy: actor, LastUpdatedAt: now, LastUpdatedBy: actor}
}
