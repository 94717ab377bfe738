package services

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"golang.org/x/text/unicode/norm"
)

// MaxFreeTextRunes caps note and label length after cleaning.
const MaxFreeTextRunes = 500

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// SanitizeText strips markup and control characters, NFC-normalizes, collapses whitespace
// and truncates to MaxFreeTextRunes.
func SanitizeText(s string) string {
	s = norm.NFC.String(s)
	s = markupPattern.ReplaceAllString(s, " ")
	s = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		if unicode.IsControl(r) || r == '<' || r == '>' {
			return -1
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > MaxFreeTextRunes {
		s = strings.TrimSpace(string(runes[:MaxFreeTextRunes]))
	}
	return s
}

// SanitizeEvent returns a copy of event with every free-text field cleaned.
func SanitizeEvent(event domain.FinanceEvent) domain.FinanceEvent {
	event.Context.Note = SanitizeText(event.Context.Note)
	event.Context.CategoryLabel = SanitizeText(event.Context.CategoryLabel)
	event.Context.Channel = strings.ToLower(SanitizeText(event.Context.Channel))
	event.Metadata.SourceSystem = SanitizeText(event.Metadata.SourceSystem)
	event.Metadata.ExternalReference = SanitizeText(event.Metadata.ExternalReference)
	event.Metadata.IdempotencyKey = strings.TrimSpace(event.Metadata.IdempotencyKey)
	event.TransactionCurrency = strings.ToUpper(strings.TrimSpace(event.TransactionCurrency))
	event.BaseCurrency = strings.ToUpper(strings.TrimSpace(event.BaseCurrency))
	return event
}
