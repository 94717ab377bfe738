package services

import (
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/SscSPs/mda_posting_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// SplitTax decomposes amount at rate.
// Inclusive: net = round(G/(1+r)), tax = G − net. Exclusive: net = G, tax = round(G·r).
func SplitTax(amount, rate decimal.Decimal, mode domain.TaxMode) domain.TaxSplit {
	switch mode {
	case domain.TaxInclusive:
		net := accounting.RoundMoney(amount.Div(one.Add(rate)))
		return domain.TaxSplit{Gross: amount, Net: net, Tax: amount.Sub(net), Rate: rate, Mode: mode}
	case domain.TaxExclusive:
		tax := accounting.RoundMoney(amount.Mul(rate))
		return domain.TaxSplit{Gross: amount.Add(tax), Net: amount, Tax: tax, Rate: rate, Mode: mode}
	default:
		return domain.TaxSplit{Gross: amount, Net: amount, Tax: decimal.Zero, Rate: decimal.Zero, Mode: domain.TaxNone}
	}
}

// ComputeTax works out the split for an event under its rule and the jurisdiction table.
// Payloads that carry collected tax (POS sales) are split with that figure verbatim.
func ComputeTax(event domain.FinanceEvent, key domain.CategoryKey, rule domain.PostingRule, table domain.TaxTable) domain.TaxSplit {
	if !rule.TaxApplicable {
		return SplitTax(event.TotalAmount, decimal.Zero, domain.TaxNone)
	}
	rate := table.RateFor(key.Category)

	if src, ok := event.Payload.(domain.TaxSource); ok {
		if tax, ok := src.ExplicitTax(); ok {
			return domain.TaxSplit{
				Gross: event.TotalAmount,
				Net:   event.TotalAmount.Sub(tax),
				Tax:   tax,
				Rate:  rate.Rate,
				Mode:  domain.TaxInclusive,
			}
		}
	}

	if rate.Scheme == domain.SchemeExempt {
		return SplitTax(event.TotalAmount, decimal.Zero, domain.TaxNone)
	}

	mode := domain.TaxExclusive
	inclusive := rule.DefaultTaxInclusive
	if event.Context.TaxInclusive != nil {
		inclusive = *event.Context.TaxInclusive
	}
	if inclusive {
		mode = domain.TaxInclusive
	}
	return SplitTax(event.TotalAmount, rate.Rate, mode)
}
