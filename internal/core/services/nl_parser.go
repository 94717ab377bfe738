package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// categoryRule binds keywords to a category. Rules are tried in order; the first match wins.
type categoryRule struct {
	Category  string
	Keywords  []string
	SmartCode domain.SmartCode
}

var categoryRules = []categoryRule{
	{"SALARY", []string{"salary", "salaries", "wage", "wages", "payroll"}, domain.SmartCodeSalaryExpense},
	{"RENT", []string{"rent", "lease"}, domain.SmartCodeRentExpense},
	{"UTILITIES", []string{"utilities", "utility", "electricity", "water", "internet"}, domain.SmartCodeUtilitiesExpense},
	{"SUPPLIES", []string{"supplies", "supply", "consumables", "stationery"}, domain.SmartCodeSuppliesExpense},
	{"MARKETING", []string{"marketing", "advertising", "advert", "ads", "promotion"}, domain.SmartCodeMarketingExpense},
	{"INVENTORY", []string{"inventory", "stock"}, domain.SmartCodeInventoryPurchase},
	{"FEE", []string{"bank fee", "bank charge", "bank charges", "fee", "fees"}, domain.SmartCodeBankFee},
	{"SERVICE", []string{"service", "services", "haircut", "treatment", "consultation"}, domain.SmartCodeServiceRevenue},
	{"PRODUCT", []string{"product", "products", "retail"}, domain.SmartCodeProductRevenue},
	{"EOD", []string{"end of day", "eod", "daily takings", "pos summary"}, domain.SmartCodePOSSales},
}

var operationHints = []struct {
	Operation domain.OperationType
	Keywords  []string
}{
	{domain.OperationExpense, []string{"paid", "pay", "bought", "purchased", "spent"}},
	{domain.OperationRevenue, []string{"received", "earned", "sold", "income", "collected"}},
}

var channelRules = []struct {
	Channel  string
	Keywords []string
}{
	{"cash", []string{"cash"}},
	{"card", []string{"card", "visa", "mastercard", "pos terminal"}},
	{"bank", []string{"bank", "transfer", "wire", "cheque"}},
	{"online", []string{"online", "stripe", "paypal"}},
}

const monthPattern = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var (
	isoDateRe      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashDateRe    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	dayMonthRe     = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?` + monthPattern + `\b\.?(?:,?\s+(\d{4}))?`)
	monthDayRe     = regexp.MustCompile(`\b` + monthPattern + `\b\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s+(\d{4}))?`)
	ordinalDayRe   = regexp.MustCompile(`\bon\s+(?:the\s+)?(\d{1,2})(?:st|nd|rd|th)\b`)
	relativeDayRe  = regexp.MustCompile(`\b(today|yesterday)\b`)
	codeAmountRe   = regexp.MustCompile(`(?i)\b([a-z]{3})\s?(\d[\d,]*(?:\.\d+)?)\b`)
	amountCodeRe   = regexp.MustCompile(`(?i)\b(\d[\d,]*(?:\.\d+)?)\s?([a-z]{3})\b`)
	symbolAmountRe = regexp.MustCompile(`([$€£])\s?(\d[\d,]*(?:\.\d+)?)`)
	bareAmountRe   = regexp.MustCompile(`\b(\d[\d,]*(?:\.\d+)?)\b`)
)

var currencySymbols = map[string]string{"$": "USD", "€": "EUR", "£": "GBP"}

// ParseDescription extracts a draft from free text. It is deterministic for a given now and
// default currency, and never guesses a category.
func ParseDescription(text string, now time.Time, defaultCurrency string) domain.ParseResult {
	lower := strings.ToLower(text)
	words := tokenize(lower)

	date, rest := extractDate(text, now)
	result := domain.ParseResult{
		Status:    domain.ParseClassified,
		Operation: domain.OperationUnknown,
		Date:      date,
		Amount:    decimal.Zero,
	}

	if amount, code, ok := extractAmount(rest, defaultCurrency); ok {
		result.Amount = amount
		result.Currency = code
	} else {
		result.Missing = append(result.Missing, "amount")
		result.Currency = defaultCurrency
	}

	for _, rule := range channelRules {
		if containsAny(words, rule.Keywords) {
			result.Channel = rule.Channel
			break
		}
	}

	hint := operationHint(words)
	result.Operation = hint

	contradicted := false
	for _, rule := range categoryRules {
		if !containsAny(words, rule.Keywords) {
			continue
		}
		op := domain.MustParseSmartCode(rule.SmartCode).Operation()
		if !sameDirection(hint, op) {
			contradicted = true
			continue
		}
		result.Category = rule.Category
		result.SmartCode = rule.SmartCode
		result.Operation = op
		return result
	}

	result.Status = domain.ParseCouldNotClassify
	if contradicted {
		result.Suggestions = categoriesFor(hint)
	} else {
		result.Suggestions = suggestCategories(words)
	}
	return result
}

// operationHint returns the operation named by a verb such as "paid" or "received".
func operationHint(words []string) domain.OperationType {
	for _, hint := range operationHints {
		if containsAny(words, hint.Keywords) {
			return hint.Operation
		}
	}
	return domain.OperationUnknown
}

// sameDirection reports whether op moves money the way hint says. Bank fees are outflows and
// end-of-day takings are inflows.
func sameDirection(hint, op domain.OperationType) bool {
	switch hint {
	case domain.OperationExpense:
		return op == domain.OperationExpense || op == domain.OperationBankFee
	case domain.OperationRevenue:
		return op == domain.OperationRevenue || op == domain.OperationPOSEOD
	default:
		return true
	}
}

// categoriesFor lists, in rule order, the categories whose operation agrees with hint.
func categoriesFor(hint domain.OperationType) []string {
	var out []string
	for _, rule := range categoryRules {
		if sameDirection(hint, domain.MustParseSmartCode(rule.SmartCode).Operation()) {
			out = append(out, rule.Category)
		}
	}
	return out
}

// tokenize splits on anything that is not a letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsAny reports whether any keyword, single or multi-word, appears as whole words.
func containsAny(words []string, keywords []string) bool {
	for _, kw := range keywords {
		parts := strings.Fields(kw)
		for i := 0; i+len(parts) <= len(words); i++ {
			match := true
			for j, p := range parts {
				if words[i+j] != p {
					match = false
					break
				}
			}
			if match {
				return true
			}
		}
	}
	return false
}

// suggestCategories ranks categories by the closest keyword spelling (edit distance ≤ 2).
// With no near miss every category is offered in rule order.
func suggestCategories(words []string) []string {
	type scored struct {
		category string
		distance int
		order    int
	}
	var near []scored
	for i, rule := range categoryRules {
		best := -1
		for _, kw := range rule.Keywords {
			if strings.Contains(kw, " ") {
				continue
			}
			for _, w := range words {
				if len(w) < 3 {
					continue
				}
				d := levenshtein.ComputeDistance(w, kw)
				if best < 0 || d < best {
					best = d
				}
			}
		}
		if best >= 0 && best <= 2 {
			near = append(near, scored{rule.Category, best, i})
		}
	}

	if len(near) == 0 {
		all := make([]string, 0, len(categoryRules))
		for _, rule := range categoryRules {
			all = append(all, rule.Category)
		}
		return all
	}
	sort.SliceStable(near, func(i, j int) bool {
		if near[i].distance != near[j].distance {
			return near[i].distance < near[j].distance
		}
		return near[i].order < near[j].order
	})
	out := make([]string, 0, len(near))
	for _, s := range near {
		out = append(out, s.category)
	}
	return out
}

// extractDate finds the first date phrase, returning the date (UTC midnight) and text with the
// phrase removed. Missing year or month default to now's; no phrase means today.
func extractDate(text string, now time.Time) (time.Time, string) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	lower := strings.ToLower(text)

	src := text
	if len(lower) != len(text) {
		// case folding changed byte offsets
		src = lower
	}
	cut := func(loc []int) string {
		return src[:loc[0]] + " " + src[loc[1]:]
	}

	if m := isoDateRe.FindStringSubmatchIndex(lower); m != nil {
		y, _ := strconv.Atoi(lower[m[2]:m[3]])
		mo, _ := strconv.Atoi(lower[m[4]:m[5]])
		d, _ := strconv.Atoi(lower[m[6]:m[7]])
		if t, ok := makeDate(y, mo, d); ok {
			return t, cut(m)
		}
	}
	if m := slashDateRe.FindStringSubmatchIndex(lower); m != nil {
		d, _ := strconv.Atoi(lower[m[2]:m[3]])
		mo, _ := strconv.Atoi(lower[m[4]:m[5]])
		y, _ := strconv.Atoi(lower[m[6]:m[7]])
		if t, ok := makeDate(y, mo, d); ok {
			return t, cut(m)
		}
	}
	if m := relativeDayRe.FindStringSubmatchIndex(lower); m != nil {
		if lower[m[2]:m[3]] == "yesterday" {
			return today.AddDate(0, 0, -1), cut(m)
		}
		return today, cut(m)
	}
	if m := dayMonthRe.FindStringSubmatchIndex(lower); m != nil {
		d, _ := strconv.Atoi(lower[m[2]:m[3]])
		mo := monthNumber(lower[m[4]:m[5]])
		y := now.Year()
		if m[6] >= 0 {
			y, _ = strconv.Atoi(lower[m[6]:m[7]])
		}
		if t, ok := makeDate(y, mo, d); ok {
			return t, cut(m)
		}
	}
	if m := monthDayRe.FindStringSubmatchIndex(lower); m != nil {
		mo := monthNumber(lower[m[2]:m[3]])
		d, _ := strconv.Atoi(lower[m[4]:m[5]])
		y := now.Year()
		if m[6] >= 0 {
			y, _ = strconv.Atoi(lower[m[6]:m[7]])
		}
		if t, ok := makeDate(y, mo, d); ok {
			return t, cut(m)
		}
	}
	if m := ordinalDayRe.FindStringSubmatchIndex(lower); m != nil {
		d, _ := strconv.Atoi(lower[m[2]:m[3]])
		if t, ok := makeDate(now.Year(), int(now.Month()), d); ok {
			return t, cut(m)
		}
	}
	return today, text
}

func makeDate(y, m, d int) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

func monthNumber(name string) int {
	months := []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
	for i, prefix := range months {
		if strings.HasPrefix(name, prefix) {
			return i + 1
		}
	}
	return 0
}

// extractAmount looks for, in order: ISO code next to a number, a currency symbol, a bare number.
// A lowercase code only counts when it is the default currency, so words like "all" stay words.
func extractAmount(text, defaultCurrency string) (decimal.Decimal, string, bool) {
	isCode := func(raw string) (string, bool) {
		code := strings.ToUpper(raw)
		if raw != code && code != defaultCurrency {
			return "", false
		}
		unit, err := currency.ParseISO(code)
		if err != nil {
			return "", false
		}
		return unit.String(), true
	}

	for _, m := range codeAmountRe.FindAllStringSubmatch(text, -1) {
		if code, ok := isCode(m[1]); ok {
			if amount, ok := parseAmount(m[2]); ok {
				return amount, code, true
			}
		}
	}
	for _, m := range amountCodeRe.FindAllStringSubmatch(text, -1) {
		if code, ok := isCode(m[2]); ok {
			if amount, ok := parseAmount(m[1]); ok {
				return amount, code, true
			}
		}
	}
	if m := symbolAmountRe.FindStringSubmatch(text); m != nil {
		if amount, ok := parseAmount(m[2]); ok {
			return amount, currencySymbols[m[1]], true
		}
	}
	if m := bareAmountRe.FindStringSubmatch(text); m != nil {
		if amount, ok := parseAmount(m[1]); ok {
			return amount, defaultCurrency, true
		}
	}
	return decimal.Zero, "", false
}

func parseAmount(raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}
