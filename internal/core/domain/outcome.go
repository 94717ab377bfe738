package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingOutcome is what the pipeline hands back for one event.
type PostingOutcome struct {
	Transaction     PostedTransaction `json:"transaction"`
	Period          *FiscalPeriod     `json:"period,omitempty"`
	TaxSplit        TaxSplit          `json:"taxSplit"`
	SnapshotVersion string            `json:"snapshotVersion"`
	// Replayed is set when an earlier transaction was returned for a reused idempotency key.
	Replayed bool `json:"replayed"`
	DryRun   bool `json:"dryRun"`
}

// ParseStatus is the outcome class of a natural-language parse.
type ParseStatus string

const (
	ParseClassified       ParseStatus = "classified"
	ParseCouldNotClassify ParseStatus = "could_not_classify"
)

// ParseResult is the structured draft extracted from free text.
type ParseResult struct {
	Status      ParseStatus     `json:"status"`
	Operation   OperationType   `json:"operation"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	SmartCode   SmartCode       `json:"smartCode,omitempty"`
	Channel     string          `json:"channel,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
	// Missing lists fields the text did not supply and no default could fill.
	Missing []string `json:"missing,omitempty"`
}

// NLOutcome combines the parse with the draft event and its pipeline result.
type NLOutcome struct {
	Parse   ParseResult     `json:"parse"`
	Draft   *FinanceEvent   `json:"draft,omitempty"`
	Posting *PostingOutcome `json:"posting,omitempty"`
}
