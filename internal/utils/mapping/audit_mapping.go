package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/SscSPs/mda_posting_engine/internal/models"
)

// ToModelAuditEntry converts an audit entry to its row, encoding metadata as JSONB.
func ToModelAuditEntry(d domain.AuditEntry) (models.AuditEntry, error) {
	meta := []byte("{}")
	if len(d.Metadata) > 0 {
		var err error
		if meta, err = json.Marshal(d.Metadata); err != nil {
			return models.AuditEntry{}, fmt.Errorf("encode audit metadata: %w", err)
		}
	}
	return models.AuditEntry{
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		Actor:          d.Actor,
		Action:         d.Action,
		Outcome:        d.Outcome,
		Severity:       string(d.Severity),
		SmartCode:      string(d.SmartCode),
		Amount:         d.Amount,
		Currency:       d.Currency,
		TargetID:       d.TargetID,
		ErrorCode:      d.ErrorCode,
		Message:        d.Message,
		Metadata:       meta,
		OccurredAt:     d.OccurredAt,
	}, nil
}
