package domain

import "time"

// OrgSettings is the per-organization reference data the engine consumes.
type OrgSettings struct {
	OrganizationID string `json:"organizationID"`
	Jurisdiction   string `json:"jurisdiction"`
	BaseCurrency   string `json:"baseCurrency"`
}

// ConfigSnapshot is an immutable view of one organization's posting configuration.
// A pipeline run reads from exactly one snapshot.
type ConfigSnapshot struct {
	Version        string                       `json:"version"`
	OrganizationID string                       `json:"organizationID"`
	Settings       OrgSettings                  `json:"settings"`
	Overrides      map[CategoryKey]PostingRule  `json:"-"`
	Defaults       map[CategoryKey]PostingRule  `json:"-"`
	Tax            TaxTable                     `json:"tax"`
	Accounts       map[AccountRole]ChartAccount `json:"accounts"`
	LoadedAt       time.Time                    `json:"loadedAt"`
}
