package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/SscSPs/mda_posting_engine/internal/models"
)

// ToModelPOSSummary builds the summary row stored next to its journals.
func ToModelPOSSummary(summary domain.POSDailySummary, result domain.POSResult, audit domain.AuditFields) (models.POSSummary, error) {
	totals, err := json.Marshal(result.Totals)
	if err != nil {
		return models.POSSummary{}, fmt.Errorf("encode POS totals: %w", err)
	}
	accruals, err := json.Marshal(result.CommissionAccruals)
	if err != nil {
		return models.POSSummary{}, fmt.Errorf("encode commission accruals: %w", err)
	}
	ids := make([]string, len(result.JournalEntries))
	for i, j := range result.JournalEntries {
		ids[i] = j.TransactionID
	}
	return models.POSSummary{
		SummaryID:         summary.SummaryID,
		OrganizationID:    summary.OrganizationID,
		BusinessDate:      summary.BusinessDate,
		Currency:          summary.Currency,
		GrossSales:        summary.GrossSales,
		VATCollected:      summary.VATCollected,
		Totals:            totals,
		Accruals:          accruals,
		TransactionIDs:    ids,
		SourceSystem:      summary.SourceSystem,
		ExternalReference: summary.ExternalReference,
		AuditFields:       ToModelAuditFields(audit),
	}, nil
}

// ToDomainPOSResult rebuilds a stored result from the summary row and its journals.
func ToDomainPOSResult(m models.POSSummary, journals []domain.PostedTransaction) (domain.POSResult, error) {
	r := domain.POSResult{
		Success:        true,
		SummaryID:      m.SummaryID,
		JournalEntries: journals,
	}
	if err := json.Unmarshal(m.Totals, &r.Totals); err != nil {
		return domain.POSResult{}, fmt.Errorf("decode POS totals: %w", err)
	}
	if err := json.Unmarshal(m.Accruals, &r.CommissionAccruals); err != nil {
		return domain.POSResult{}, fmt.Errorf("decode commission accruals: %w", err)
	}
	return r, nil
}
