package models

import "github.com/shopspring/decimal"

// PostingRule is a stored template. OrganizationID is nil for domain defaults.
type PostingRule struct {
	RuleID              string  `db:"rule_id"`
	OrganizationID      *string `db:"organization_id"`
	SmartCode           string  `db:"smart_code"`
	Entries             []byte  `db:"entries"` // JSONB array of role templates
	TaxApplicable       bool    `db:"tax_applicable"`
	DefaultTaxInclusive bool    `db:"default_tax_inclusive"`
	Version             int     `db:"version"`
}

// ChartAccount binds an account role to an organization's account code.
type ChartAccount struct {
	OrganizationID string `db:"organization_id"`
	Role           string `db:"role"`
	AccountCode    string `db:"account_code"`
	AccountName    string `db:"account_name"`
	AccountType    string `db:"account_type"`
}

// TaxRate is one jurisdiction/category rate row.
type TaxRate struct {
	Jurisdiction string          `db:"jurisdiction"`
	Category     string          `db:"category"`
	Rate         decimal.Decimal `db:"rate"`
	Scheme       string          `db:"scheme"`
}

// Organization holds the per-organization settings the engine reads.
type Organization struct {
	OrganizationID string `db:"organization_id"`
	Jurisdiction   string `db:"jurisdiction"`
	BaseCurrency   string `db:"base_currency"`
}
