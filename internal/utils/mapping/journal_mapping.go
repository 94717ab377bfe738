package mapping

import (
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/SscSPs/mda_posting_engine/internal/models"
)

// ToModelTransaction converts a domain PostedTransaction to its header row
func ToModelTransaction(d domain.PostedTransaction) models.PostedTransaction {
	m := models.PostedTransaction{
		TransactionID:     d.TransactionID,
		EventID:           d.EventID,
		OrganizationID:    d.OrganizationID,
		PeriodCode:        d.PeriodCode,
		SmartCode:         string(d.SmartCode),
		TransactionDate:   d.TransactionDate,
		Currency:          d.Currency,
		BaseCurrency:      d.BaseCurrency,
		ExchangeRate:      d.ExchangeRate,
		TotalAmount:       d.TotalAmount,
		Description:       d.Description,
		Status:            string(d.Status),
		TotalDebit:        d.TotalDebit,
		TotalCredit:       d.TotalCredit,
		IdempotencyKey:    d.IdempotencyKey,
		Fingerprint:       d.Fingerprint,
		SourceSystem:      d.SourceSystem,
		ExternalReference: d.ExternalReference,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.SummaryID != "" {
		summaryID := d.SummaryID
		m.SummaryID = &summaryID
	}
	return m
}

// ToDomainTransaction converts a header row and its lines to a domain PostedTransaction
func ToDomainTransaction(m models.PostedTransaction, lines []models.GLLine) domain.PostedTransaction {
	d := domain.PostedTransaction{
		TransactionID:     m.TransactionID,
		EventID:           m.EventID,
		OrganizationID:    m.OrganizationID,
		PeriodCode:        m.PeriodCode,
		SmartCode:         domain.SmartCode(m.SmartCode),
		TransactionDate:   m.TransactionDate,
		Currency:          m.Currency,
		BaseCurrency:      m.BaseCurrency,
		ExchangeRate:      m.ExchangeRate,
		TotalAmount:       m.TotalAmount,
		Description:       m.Description,
		Status:            domain.TransactionStatus(m.Status),
		TotalDebit:        m.TotalDebit,
		TotalCredit:       m.TotalCredit,
		IdempotencyKey:    m.IdempotencyKey,
		Fingerprint:       m.Fingerprint,
		SourceSystem:      m.SourceSystem,
		ExternalReference: m.ExternalReference,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
		Lines:             make([]domain.GLLine, 0, len(lines)),
	}
	if m.SummaryID != nil {
		d.SummaryID = *m.SummaryID
	}
	for _, l := range lines {
		d.Lines = append(d.Lines, ToDomainGLLine(l, m.EventID))
	}
	return d
}

// ToModelGLLine converts a domain GLLine to a model GLLine
func ToModelGLLine(d domain.GLLine, transactionID string) models.GLLine {
	return models.GLLine{
		LineID:        d.LineID,
		TransactionID: transactionID,
		LineNumber:    d.LineNumber,
		AccountCode:   d.AccountCode,
		AccountName:   d.AccountName,
		Role:          string(d.Role),
		Debit:         d.Debit,
		Credit:        d.Credit,
		DebitBase:     d.DebitBase,
		CreditBase:    d.CreditBase,
		Description:   d.Description,
		Currency:      d.Currency,
		BaseCurrency:  d.BaseCurrency,
	}
}

// ToDomainGLLine converts a model GLLine to a domain GLLine
func ToDomainGLLine(m models.GLLine, eventID string) domain.GLLine {
	return domain.GLLine{
		LineID:       m.LineID,
		LineNumber:   m.LineNumber,
		AccountCode:  m.AccountCode,
		AccountName:  m.AccountName,
		Role:         domain.AccountRole(m.Role),
		Debit:        m.Debit,
		Credit:       m.Credit,
		DebitBase:    m.DebitBase,
		CreditBase:   m.CreditBase,
		Description:  m.Description,
		Currency:     m.Currency,
		BaseCurrency: m.BaseCurrency,
		EventID:      eventID,
	}
}
