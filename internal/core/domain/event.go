package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OperationType is the business operation an event represents.
type OperationType string

const (
	OperationExpense OperationType = "expense"
	OperationRevenue OperationType = "revenue"
	OperationBankFee OperationType = "bank-fee"
	OperationPOSEOD  OperationType = "pos-eod"
	OperationUnknown OperationType = "unknown"
)

var smartCodePattern = regexp.MustCompile(`^[A-Z]+\.[A-Z]+\.[A-Z]+\.[A-Z]+\.v\d+$`)

// SmartCode is the dotted category tag DOMAIN.MODULE.CATEGORY.SUBCATEGORY.vN.
type SmartCode string

// Valid reports whether the code matches the fixed dotted-segment pattern.
func (s SmartCode) Valid() bool {
	return smartCodePattern.MatchString(string(s))
}

// CategoryKey is the parsed, comparable form of a SmartCode. Rule tables are keyed by it.
type CategoryKey struct {
	Domain      string
	Module      string
	Category    string
	Subcategory string
	Version     int
}

// ParseSmartCode validates and splits a smart code.
func ParseSmartCode(code SmartCode) (CategoryKey, error) {
	if !code.Valid() {
		return CategoryKey{}, fmt.Errorf("smart code %q does not match DOMAIN.MODULE.CATEGORY.SUBCATEGORY.vN", code)
	}
	parts := strings.Split(string(code), ".")
	version, err := strconv.Atoi(strings.TrimPrefix(parts[4], "v"))
	if err != nil {
		return CategoryKey{}, fmt.Errorf("smart code %q has an invalid version: %w", code, err)
	}
	return CategoryKey{
		Domain:      parts[0],
		Module:      parts[1],
		Category:    parts[2],
		Subcategory: parts[3],
		Version:     version,
	}, nil
}

// MustParseSmartCode is ParseSmartCode for package-level fixtures; it panics on bad input.
func MustParseSmartCode(code SmartCode) CategoryKey {
	key, err := ParseSmartCode(code)
	if err != nil {
		panic(err)
	}
	return key
}

// SmartCode renders the key back to its dotted form.
func (k CategoryKey) SmartCode() SmartCode {
	return SmartCode(fmt.Sprintf("%s.%s.%s.%s.v%d", k.Domain, k.Module, k.Category, k.Subcategory, k.Version))
}

func (k CategoryKey) String() string {
	return string(k.SmartCode())
}

// Operation derives the operation type from the module segment.
func (k CategoryKey) Operation() OperationType {
	switch k.Module {
	case "EXP":
		return OperationExpense
	case "REV":
		return OperationRevenue
	case "BANK":
		return OperationBankFee
	case "POS":
		return OperationPOSEOD
	default:
		return OperationUnknown
	}
}

// Smart codes known to the default rule set.
const (
	SmartCodeSalaryExpense     SmartCode = "FIN.EXP.SALARY.STAFF.v1"
	SmartCodeRentExpense       SmartCode = "FIN.EXP.RENT.PREMISES.v1"
	SmartCodeUtilitiesExpense  SmartCode = "FIN.EXP.UTILITIES.GENERAL.v1"
	SmartCodeSuppliesExpense   SmartCode = "FIN.EXP.SUPPLIES.GENERAL.v1"
	SmartCodeMarketingExpense  SmartCode = "FIN.EXP.MARKETING.GENERAL.v1"
	SmartCodeInventoryPurchase SmartCode = "FIN.EXP.INVENTORY.PURCHASE.v1"
	SmartCodeServiceRevenue    SmartCode = "FIN.REV.SERVICE.GENERAL.v1"
	SmartCodeProductRevenue    SmartCode = "FIN.REV.PRODUCT.GENERAL.v1"
	SmartCodeBankFee           SmartCode = "FIN.BANK.FEE.CHARGE.v1"
	SmartCodePOSSales          SmartCode = "FIN.POS.EOD.SALES.v1"
	SmartCodePOSCommission     SmartCode = "FIN.POS.EOD.COMMISSION.v1"
)

// BusinessContext is the typed replacement for the free-form context bag.
// Note is the only free-text field and is kept for display.
type BusinessContext struct {
	Channel       string `json:"channel,omitempty"`
	Note          string `json:"note,omitempty"`
	CategoryLabel string `json:"categoryLabel,omitempty"`
	TaxInclusive  *bool  `json:"taxInclusive,omitempty"`
}

// IngestionMetadata records where an event came from.
type IngestionMetadata struct {
	SourceSystem      string `json:"sourceSystem,omitempty"`
	ExternalReference string `json:"externalReference,omitempty"`
	IdempotencyKey    string `json:"idempotencyKey,omitempty"`
}

// Payload is a per-category typed event body. Plain expense/revenue/fee events carry none.
type Payload interface {
	payloadOperation() OperationType
}

// ComponentSource exposes named amounts that "component" template entries draw from.
type ComponentSource interface {
	Component(name string) (decimal.Decimal, bool)
}

// TaxSource lets a payload dictate the tax amount instead of computing it from a rate.
type TaxSource interface {
	ExplicitTax() (decimal.Decimal, bool)
}

// Tender is one non-cash, non-card payment method total.
type Tender struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// SalesPayload is the body of a POS sales-recognition event.
type SalesPayload struct {
	SummaryID      string          `json:"summaryID"`
	CashCollected  decimal.Decimal `json:"cashCollected"`
	CardSettlement decimal.Decimal `json:"cardSettlement"`
	OtherTenders   []Tender        `json:"otherTenders"`
	VATCollected   decimal.Decimal `json:"vatCollected"`
}

func (SalesPayload) payloadOperation() OperationType { return OperationPOSEOD }

// Component names usable from a sales template.
const (
	ComponentCash  = "cash"
	ComponentCard  = "card"
	ComponentOther = "other"
)

// Component implements ComponentSource.
func (p SalesPayload) Component(name string) (decimal.Decimal, bool) {
	switch name {
	case ComponentCash:
		return p.CashCollected, true
	case ComponentCard:
		return p.CardSettlement, true
	case ComponentOther:
		total := decimal.Zero
		for _, t := range p.OtherTenders {
			total = total.Add(t.Amount)
		}
		return total, true
	}
	return decimal.Zero, false
}

// ExplicitTax implements TaxSource.
func (p SalesPayload) ExplicitTax() (decimal.Decimal, bool) {
	return p.VATCollected, true
}

// CommissionPayload is the body of a per-staff commission accrual event.
type CommissionPayload struct {
	SummaryID string `json:"summaryID"`
	StaffID   string `json:"staffID"`
	StaffName string `json:"staffName"`
}

func (CommissionPayload) payloadOperation() OperationType { return OperationPOSEOD }

// FinanceEvent is the canonical input describing one business occurrence.
type FinanceEvent struct {
	EventID             string            `json:"eventID"`
	OrganizationID      string            `json:"organizationID"`
	SmartCode           SmartCode         `json:"smartCode"`
	TransactionDate     time.Time         `json:"transactionDate"`
	TotalAmount         decimal.Decimal   `json:"totalAmount"`
	TransactionCurrency string            `json:"transactionCurrency"`
	BaseCurrency        string            `json:"baseCurrency"`
	ExchangeRate        decimal.Decimal   `json:"exchangeRate"`
	Context             BusinessContext   `json:"businessContext"`
	Payload             Payload           `json:"-"`
	Metadata            IngestionMetadata `json:"metadata"`
	// Lines must arrive empty; only the engine derives GL lines.
	Lines []GLLine `json:"lines"`
}

// IsCrossCurrency reports whether lines need base-currency normalization.
func (e FinanceEvent) IsCrossCurrency() bool {
	return e.BaseCurrency != "" && e.BaseCurrency != e.TransactionCurrency
}
