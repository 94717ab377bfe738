package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DefaultMaxEventAmount is the ceiling applied when no configured limit is given.
var DefaultMaxEventAmount = decimal.New(1, 12)

// eventShape is the flat, tagged view of a FinanceEvent checked by validator/v10.
type eventShape struct {
	OrganizationID      string `json:"organization_id" validate:"required,uuid"`
	SmartCode           string `json:"smart_code" validate:"required,smartcode"`
	TransactionCurrency string `json:"transaction_currency" validate:"required,iso4217"`
	BaseCurrency        string `json:"base_currency" validate:"required,iso4217"`
	Channel             string `json:"business_context.channel" validate:"max=50"`
	SourceSystem        string `json:"metadata.source_system" validate:"max=100"`
	ExternalReference   string `json:"metadata.external_reference" validate:"max=200"`
	IdempotencyKey      string `json:"metadata.idempotency_key" validate:"max=200"`
}

// EventValidator checks the canonical event shape before anything touches storage.
type EventValidator struct {
	validate  *validator.Validate
	maxAmount decimal.Decimal
}

// NewEventValidator creates a validator with the given amount ceiling; a non-positive ceiling uses the default.
func NewEventValidator(maxAmount decimal.Decimal) *EventValidator {
	if !maxAmount.IsPositive() {
		maxAmount = DefaultMaxEventAmount
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("smartcode", func(fl validator.FieldLevel) bool {
		return domain.SmartCode(fl.Field().String()).Valid()
	})
	return &EventValidator{validate: v, maxAmount: maxAmount}
}

// Validate returns a SchemaViolation naming the first offending field, or nil.
func (v *EventValidator) Validate(event domain.FinanceEvent) error {
	shape := eventShape{
		OrganizationID:      event.OrganizationID,
		SmartCode:           string(event.SmartCode),
		TransactionCurrency: event.TransactionCurrency,
		BaseCurrency:        event.BaseCurrency,
		Channel:             event.Context.Channel,
		SourceSystem:        event.Metadata.SourceSystem,
		ExternalReference:   event.Metadata.ExternalReference,
		IdempotencyKey:      event.Metadata.IdempotencyKey,
	}
	if err := v.validate.Struct(shape); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperrors.NewFieldError(fe.Field(), describeTag(fe))
		}
		return apperrors.WrapEngineError(apperrors.CodeSchemaViolation, "event validation failed", err)
	}

	if event.TransactionDate.IsZero() {
		return apperrors.NewFieldError("transaction_date", "is required")
	}

	switch {
	case !event.TotalAmount.IsPositive():
		return apperrors.NewFieldError("total_amount", "must be greater than zero")
	case !event.TotalAmount.Equal(event.TotalAmount.Round(2)):
		return apperrors.NewFieldError("total_amount", "must have at most two decimal places")
	case event.TotalAmount.GreaterThan(v.maxAmount):
		return apperrors.NewFieldError("total_amount", fmt.Sprintf("must not exceed %s", v.maxAmount.String()))
	}

	if !event.ExchangeRate.IsPositive() {
		return apperrors.NewFieldError("exchange_rate", "must be greater than zero")
	}
	if !event.IsCrossCurrency() && !event.ExchangeRate.Equal(decimal.NewFromInt(1)) {
		return apperrors.NewFieldError("exchange_rate", "must be 1 when transaction and base currency match")
	}

	if len(event.Lines) > 0 {
		return apperrors.NewFieldError("lines", "must be empty; lines are derived by the engine")
	}

	return validatePayload(event)
}

func validatePayload(event domain.FinanceEvent) error {
	switch event.SmartCode {
	case domain.SmartCodePOSSales:
		p, ok := event.Payload.(domain.SalesPayload)
		if !ok {
			return apperrors.NewFieldError("payload", "a sales payload is required")
		}
		if p.VATCollected.IsNegative() || p.VATCollected.GreaterThanOrEqual(event.TotalAmount) {
			return apperrors.NewFieldError("payload.vat_collected", "must be non-negative and below the total amount")
		}
	case domain.SmartCodePOSCommission:
		p, ok := event.Payload.(domain.CommissionPayload)
		if !ok || p.StaffID == "" {
			return apperrors.NewFieldError("payload.staff_id", "a commission payload with a staff id is required")
		}
	default:
		if event.Payload != nil {
			return apperrors.NewFieldError("payload", "is not accepted for this smart code")
		}
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a UUID"
	case "smartcode":
		return "must match DOMAIN.MODULE.CATEGORY.SUBCATEGORY.vN"
	case "iso4217":
		return "must be an ISO 4217 currency code"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

// normalizeEvent fills defaults a caller may leave out: the base currency and a unit rate
// for single-currency events, and a UTC calendar date.
func normalizeEvent(event domain.FinanceEvent) domain.FinanceEvent {
	if event.BaseCurrency == "" {
		event.BaseCurrency = event.TransactionCurrency
	}
	if event.ExchangeRate.IsZero() && !event.IsCrossCurrency() {
		event.ExchangeRate = decimal.NewFromInt(1)
	}
	if !event.TransactionDate.IsZero() {
		d := event.TransactionDate.UTC()
		event.TransactionDate = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return event
}
