package domain

import "github.com/shopspring/decimal"

// TaxMode states whether an amount already contains tax.
type TaxMode string

const (
	TaxInclusive TaxMode = "inclusive"
	TaxExclusive TaxMode = "exclusive"
	TaxNone      TaxMode = "none"
)

// TaxScheme labels why a rate applies.
type TaxScheme string

const (
	SchemeStandard TaxScheme = "standard"
	SchemeReduced  TaxScheme = "reduced"
	SchemeZero     TaxScheme = "zero"
	SchemeExempt   TaxScheme = "exempt"
)

// StandardCategory is the tax-table key for a jurisdiction's standard rate.
const StandardCategory = "*"

// TaxRate is one row of a jurisdiction rate table.
type TaxRate struct {
	Jurisdiction string          `json:"jurisdiction"`
	Category     string          `json:"category"`
	Rate         decimal.Decimal `json:"rate"`
	Scheme       TaxScheme       `json:"scheme"`
}

// TaxTable holds the rates of one jurisdiction keyed by smart-code category segment.
type TaxTable struct {
	Jurisdiction string             `json:"jurisdiction"`
	Rates        map[string]TaxRate `json:"rates"`
}

// NewTaxTable indexes rows by category.
func NewTaxTable(jurisdiction string, rows []TaxRate) TaxTable {
	t := TaxTable{Jurisdiction: jurisdiction, Rates: make(map[string]TaxRate, len(rows))}
	for _, r := range rows {
		t.Rates[r.Category] = r
	}
	return t
}

// RateFor returns the category rate, falling back to the standard rate.
// A table without a standard row yields a zero rate.
func (t TaxTable) RateFor(category string) TaxRate {
	if r, ok := t.Rates[category]; ok {
		return r
	}
	if r, ok := t.Rates[StandardCategory]; ok {
		return r
	}
	return TaxRate{Jurisdiction: t.Jurisdiction, Category: category, Rate: decimal.Zero, Scheme: SchemeZero}
}

// TaxSplit is the net/tax decomposition of an event amount. Gross always equals Net + Tax.
type TaxSplit struct {
	Gross decimal.Decimal `json:"gross"`
	Net   decimal.Decimal `json:"net"`
	Tax   decimal.Decimal `json:"tax"`
	Rate  decimal.Decimal `json:"rate"`
	Mode  TaxMode         `json:"mode"`
}
