package accounting

import (
	"errors"
	"fmt"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places every posted amount is rounded to.
const MoneyPlaces = 2

// ErrRemainderTooLarge is returned when a debit/credit gap is too big to be a rounding artifact.
var ErrRemainderTooLarge = errors.New("rounding remainder exceeds absorption limit")

// ErrNoAbsorbingLine is returned when the short side has no line to absorb a remainder.
var ErrNoAbsorbingLine = errors.New("no line on the short side can absorb the remainder")

// RoundMoney rounds to two places, half away from zero (half-up for the positive amounts posted here).
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ToBase converts a transaction-currency amount into the base currency.
func ToBase(amount, exchangeRate decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(exchangeRate))
}

// SumLines returns the debit and credit totals in transaction currency.
func SumLines(lines []domain.GLLine) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// SumBaseLines returns the debit and credit totals in base currency.
func SumBaseLines(lines []domain.GLLine) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.DebitBase)
		credit = credit.Add(l.CreditBase)
	}
	return debit, credit
}

// ValidateJournalBalance checks the line set is well formed and that
// |Σdebit − Σcredit| stays under domain.BalanceTolerance in both currencies.
func ValidateJournalBalance(lines []domain.GLLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal must have at least two lines, got %d", len(lines))
	}
	for _, l := range lines {
		if !l.HasSingleSide() {
			return fmt.Errorf("line %d (%s) must carry exactly one positive debit or credit", l.LineNumber, l.AccountCode)
		}
	}

	debit, credit := SumLines(lines)
	if debit.Sub(credit).Abs().GreaterThanOrEqual(domain.BalanceTolerance) {
		return fmt.Errorf("debits %s do not equal credits %s", debit.StringFixed(MoneyPlaces), credit.StringFixed(MoneyPlaces))
	}
	baseDebit, baseCredit := SumBaseLines(lines)
	if baseDebit.Sub(baseCredit).Abs().GreaterThanOrEqual(domain.BalanceTolerance) {
		return fmt.Errorf("base debits %s do not equal base credits %s", baseDebit.StringFixed(MoneyPlaces), baseCredit.StringFixed(MoneyPlaces))
	}
	return nil
}

// AbsorbRemainder moves a rounding gap between the debit and credit columns onto the largest
// line of the short side (earliest line wins a tie). It returns the adjusted line index, or -1
// when the lines already balance.
func AbsorbRemainder(lines []domain.GLLine, limit decimal.Decimal) (int, error) {
	return absorb(lines, limit,
		func(l *domain.GLLine) *decimal.Decimal { return &l.Debit },
		func(l *domain.GLLine) *decimal.Decimal { return &l.Credit },
	)
}

// AbsorbBaseRemainder is AbsorbRemainder over the base-currency columns.
func AbsorbBaseRemainder(lines []domain.GLLine, limit decimal.Decimal) (int, error) {
	return absorb(lines, limit,
		func(l *domain.GLLine) *decimal.Decimal { return &l.DebitBase },
		func(l *domain.GLLine) *decimal.Decimal { return &l.CreditBase },
	)
}

func absorb(lines []domain.GLLine, limit decimal.Decimal, debitOf, creditOf func(*domain.GLLine) *decimal.Decimal) (int, error) {
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for i := range lines {
		totalDebit = totalDebit.Add(*debitOf(&lines[i]))
		totalCredit = totalCredit.Add(*creditOf(&lines[i]))
	}

	gap := totalDebit.Sub(totalCredit)
	if gap.IsZero() {
		return -1, nil
	}
	if gap.Abs().GreaterThan(limit) {
		return -1, fmt.Errorf("%w: gap %s, limit %s", ErrRemainderTooLarge, gap.String(), limit.String())
	}

	// debits heavier -> credits are short, and vice versa
	column := creditOf
	if gap.IsNegative() {
		column = debitOf
	}

	best := -1
	for i := range lines {
		v := *column(&lines[i])
		if !v.IsPositive() {
			continue
		}
		if best < 0 || v.GreaterThan(*column(&lines[best])) {
			best = i
		}
	}
	if best < 0 {
		return -1, ErrNoAbsorbingLine
	}

	target := column(&lines[best])
	*target = target.Add(gap.Abs())
	return best, nil
}
