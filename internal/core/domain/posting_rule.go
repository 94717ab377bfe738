package domain

import "github.com/shopspring/decimal"

// AmountBasis selects which computed figure a template entry is derived from.
type AmountBasis string

const (
	BasisGross     AmountBasis = "gross"
	BasisNet       AmountBasis = "net"
	BasisTax       AmountBasis = "tax"
	BasisFixed     AmountBasis = "fixed"
	BasisComponent AmountBasis = "component"
)

// Valid reports whether b is a known basis.
func (b AmountBasis) Valid() bool {
	switch b {
	case BasisGross, BasisNet, BasisTax, BasisFixed, BasisComponent:
		return true
	}
	return false
}

// RoleTemplate is one ordered entry of a posting rule.
// Proportional entries use Basis × Ratio; fixed entries use FixedAmount.
type RoleTemplate struct {
	Role        AccountRole     `json:"role"`
	Side        Side            `json:"side"`
	Basis       AmountBasis     `json:"basis"`
	Ratio       decimal.Decimal `json:"ratio"`
	FixedAmount decimal.Decimal `json:"fixedAmount"`
	Component   string          `json:"component,omitempty"`
	Description string          `json:"description,omitempty"`
}

// PostingRule maps one category to its ordered GL template for an organization.
// An empty OrganizationID marks a domain default.
type PostingRule struct {
	RuleID              string         `json:"ruleID"`
	OrganizationID      string         `json:"organizationID,omitempty"`
	Key                 CategoryKey    `json:"-"`
	SmartCode           SmartCode      `json:"smartCode"`
	Entries             []RoleTemplate `json:"entries"`
	TaxApplicable       bool           `json:"taxApplicable"`
	DefaultTaxInclusive bool           `json:"defaultTaxInclusive"`
	Version             int            `json:"version"`
}

// IsDefault reports whether the rule is a domain default rather than an override.
func (r PostingRule) IsDefault() bool {
	return r.OrganizationID == ""
}

// Roles returns the distinct account roles referenced by the rule, in template order.
func (r PostingRule) Roles() []AccountRole {
	seen := make(map[AccountRole]struct{}, len(r.Entries))
	roles := make([]AccountRole, 0, len(r.Entries))
	for _, e := range r.Entries {
		if _, ok := seen[e.Role]; ok {
			continue
		}
		seen[e.Role] = struct{}{}
		roles = append(roles, e.Role)
	}
	return roles
}
