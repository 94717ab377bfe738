package services

import (
	"errors"
	"fmt"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/SscSPs/mda_posting_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMaxRoundingRemainder bounds how far apart the columns may be before absorption gives up.
var DefaultMaxRoundingRemainder = decimal.New(5, -2)

// JournalBuilder turns a resolved rule and tax split into balanced GL lines.
type JournalBuilder struct {
	maxRemainder decimal.Decimal
	newID        func() string
}

// NewJournalBuilder creates a builder; a non-positive limit uses DefaultMaxRoundingRemainder.
func NewJournalBuilder(maxRemainder decimal.Decimal) *JournalBuilder {
	if !maxRemainder.IsPositive() {
		maxRemainder = DefaultMaxRoundingRemainder
	}
	return &JournalBuilder{maxRemainder: maxRemainder, newID: uuid.NewString}
}

// Build derives the journal for event. The returned transaction has no id, status or audit
// fields yet; the caller stamps those.
func (b *JournalBuilder) Build(event domain.FinanceEvent, period *domain.FiscalPeriod, rule domain.PostingRule, accounts map[domain.AccountRole]domain.ChartAccount, split domain.TaxSplit) (*domain.PostedTransaction, error) {
	lines := make([]domain.GLLine, 0, len(rule.Entries))
	for _, entry := range rule.Entries {
		acc, ok := accounts[entry.Role]
		if !ok {
			err := apperrors.NewEngineError(apperrors.CodeMissingAccountMapping,
				fmt.Sprintf("account role %q is not mapped", entry.Role))
			err.Field = string(entry.Role)
			return nil, err
		}

		amount, err := entryAmount(entry, event, split)
		if err != nil {
			return nil, err
		}
		if amount.IsZero() {
			continue
		}
		if amount.IsNegative() {
			return nil, apperrors.NewEngineError(apperrors.CodeUnbalancedJournal,
				fmt.Sprintf("template entry for %q produced a negative amount %s", entry.Role, amount.String()))
		}

		line := domain.GLLine{
			LineID:       b.newID(),
			AccountCode:  acc.AccountCode,
			AccountName:  acc.AccountName,
			Role:         entry.Role,
			Debit:        decimal.Zero,
			Credit:       decimal.Zero,
			DebitBase:    decimal.Zero,
			CreditBase:   decimal.Zero,
			Description:  lineDescription(entry, event),
			Currency:     event.TransactionCurrency,
			BaseCurrency: event.BaseCurrency,
			EventID:      event.EventID,
		}
		if entry.Side == domain.Debit {
			line.Debit = amount
		} else {
			line.Credit = amount
		}
		lines = append(lines, line)
	}

	if _, err := accounting.AbsorbRemainder(lines, b.maxRemainder); err != nil {
		return nil, unbalanced(err)
	}
	for i := range lines {
		lines[i].LineNumber = i + 1
		lines[i].DebitBase = accounting.ToBase(lines[i].Debit, event.ExchangeRate)
		lines[i].CreditBase = accounting.ToBase(lines[i].Credit, event.ExchangeRate)
	}
	if _, err := accounting.AbsorbBaseRemainder(lines, b.maxRemainder); err != nil {
		return nil, unbalanced(err)
	}
	if err := accounting.ValidateJournalBalance(lines); err != nil {
		return nil, unbalanced(err)
	}

	totalDebit, totalCredit := accounting.SumLines(lines)
	periodCode := domain.PeriodCodeFor(event.TransactionDate)
	if period != nil {
		periodCode = period.PeriodCode
	}
	return &domain.PostedTransaction{
		EventID:           event.EventID,
		OrganizationID:    event.OrganizationID,
		PeriodCode:        periodCode,
		SmartCode:         event.SmartCode,
		TransactionDate:   event.TransactionDate,
		Currency:          event.TransactionCurrency,
		BaseCurrency:      event.BaseCurrency,
		ExchangeRate:      event.ExchangeRate,
		TotalAmount:       event.TotalAmount,
		Description:       transactionDescription(event),
		Lines:             lines,
		TotalDebit:        totalDebit,
		TotalCredit:       totalCredit,
		SourceSystem:      event.Metadata.SourceSystem,
		ExternalReference: event.Metadata.ExternalReference,
	}, nil
}

func entryAmount(entry domain.RoleTemplate, event domain.FinanceEvent, split domain.TaxSplit) (decimal.Decimal, error) {
	if entry.Basis == domain.BasisFixed {
		return accounting.RoundMoney(entry.FixedAmount), nil
	}

	var base decimal.Decimal
	switch entry.Basis {
	case domain.BasisGross:
		base = split.Gross
	case domain.BasisNet:
		base = split.Net
	case domain.BasisTax:
		base = split.Tax
	case domain.BasisComponent:
		src, ok := event.Payload.(domain.ComponentSource)
		if !ok {
			return decimal.Zero, apperrors.NewEngineError(apperrors.CodeMissingPostingConfiguration,
				fmt.Sprintf("rule entry for %q reads component %q but the event has no components", entry.Role, entry.Component))
		}
		v, ok := src.Component(entry.Component)
		if !ok {
			return decimal.Zero, apperrors.NewEngineError(apperrors.CodeMissingPostingConfiguration,
				fmt.Sprintf("unknown component %q for role %q", entry.Component, entry.Role))
		}
		base = v
	default:
		return decimal.Zero, apperrors.NewEngineError(apperrors.CodeMissingPostingConfiguration,
			fmt.Sprintf("unknown amount basis %q for role %q", entry.Basis, entry.Role))
	}

	ratio := entry.Ratio
	if ratio.IsZero() {
		ratio = one
	}
	return accounting.RoundMoney(base.Mul(ratio)), nil
}

func lineDescription(entry domain.RoleTemplate, event domain.FinanceEvent) string {
	if entry.Description != "" {
		return entry.Description
	}
	if event.Context.Note != "" {
		return event.Context.Note
	}
	return string(event.SmartCode)
}

func transactionDescription(event domain.FinanceEvent) string {
	if event.Context.Note != "" {
		return event.Context.Note
	}
	label := string(event.SmartCode)
	if event.Context.CategoryLabel != "" {
		label = event.Context.CategoryLabel
	}
	return fmt.Sprintf("%s on %s", label, event.TransactionDate.Format("2006-01-02"))
}

func unbalanced(err error) error {
	var ee *apperrors.EngineError
	if errors.As(err, &ee) {
		return err
	}
	return apperrors.WrapEngineError(apperrors.CodeUnbalancedJournal, "journal does not balance", err)
}
