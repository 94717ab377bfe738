package mapping

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/SscSPs/mda_posting_engine/internal/models"
)

// ToModelEvent converts an accepted event to its stored row, encoding context and payload as JSONB.
func ToModelEvent(d domain.FinanceEvent, receivedAt time.Time) (models.FinanceEvent, error) {
	ctxJSON, err := json.Marshal(d.Context)
	if err != nil {
		return models.FinanceEvent{}, fmt.Errorf("encode business context: %w", err)
	}
	m := models.FinanceEvent{
		EventID:             d.EventID,
		OrganizationID:      d.OrganizationID,
		SmartCode:           string(d.SmartCode),
		TransactionDate:     d.TransactionDate,
		TotalAmount:         d.TotalAmount,
		TransactionCurrency: d.TransactionCurrency,
		BaseCurrency:        d.BaseCurrency,
		ExchangeRate:        d.ExchangeRate,
		BusinessContext:     ctxJSON,
		SourceSystem:        d.Metadata.SourceSystem,
		ExternalReference:   d.Metadata.ExternalReference,
		IdempotencyKey:      d.Metadata.IdempotencyKey,
		ReceivedAt:          receivedAt,
	}

	switch p := d.Payload.(type) {
	case nil:
		m.PayloadKind = models.PayloadNone
	case domain.SalesPayload:
		m.PayloadKind = models.PayloadSales
		m.Payload, err = json.Marshal(p)
	case domain.CommissionPayload:
		m.PayloadKind = models.PayloadCommission
		m.Payload, err = json.Marshal(p)
	default:
		return models.FinanceEvent{}, fmt.Errorf("unsupported payload type %T", d.Payload)
	}
	if err != nil {
		return models.FinanceEvent{}, fmt.Errorf("encode payload: %w", err)
	}
	return m, nil
}

// ToDomainEvent decodes a stored event row.
func ToDomainEvent(m models.FinanceEvent) (domain.FinanceEvent, error) {
	d := domain.FinanceEvent{
		EventID:             m.EventID,
		OrganizationID:      m.OrganizationID,
		SmartCode:           domain.SmartCode(m.SmartCode),
		TransactionDate:     m.TransactionDate,
		TotalAmount:         m.TotalAmount,
		TransactionCurrency: m.TransactionCurrency,
		BaseCurrency:        m.BaseCurrency,
		ExchangeRate:        m.ExchangeRate,
		Metadata: domain.IngestionMetadata{
			SourceSystem:      m.SourceSystem,
			ExternalReference: m.ExternalReference,
			IdempotencyKey:    m.IdempotencyKey,
		},
	}
	if len(m.BusinessContext) > 0 {
		if err := json.Unmarshal(m.BusinessContext, &d.Context); err != nil {
			return domain.FinanceEvent{}, fmt.Errorf("decode business context: %w", err)
		}
	}
	payload, err := DecodePayload(m.PayloadKind, m.Payload)
	if err != nil {
		return domain.FinanceEvent{}, err
	}
	d.Payload = payload
	return d, nil
}

// DecodePayload turns a stored payload kind and body back into its typed form.
func DecodePayload(kind string, raw []byte) (domain.Payload, error) {
	switch kind {
	case models.PayloadNone:
		return nil, nil
	case models.PayloadSales:
		var p domain.SalesPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode sales payload: %w", err)
		}
		return p, nil
	case models.PayloadCommission:
		var p domain.CommissionPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode commission payload: %w", err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown payload kind %q", kind)
}
