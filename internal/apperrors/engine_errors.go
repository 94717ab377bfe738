package apperrors

import (
	"errors"
	"fmt"
)

// Code is a stable, caller-visible error identifier.
type Code string

const (
	CodeSchemaViolation             Code = "SchemaViolation"
	CodeFuturePeriodRejected        Code = "FuturePeriodRejected"
	CodePeriodClosed                Code = "PeriodClosed"
	CodeMissingPostingConfiguration Code = "MissingPostingConfiguration"
	CodeMissingAccountMapping       Code = "MissingAccountMapping"
	CodeUnbalancedJournal           Code = "UnbalancedJournal"
	CodeReconciliationMismatch      Code = "ReconciliationMismatch"
	CodeCouldNotClassify            Code = "CouldNotClassify"
	CodeRetryExhausted              Code = "RetryExhausted"
	CodeIdempotencyConflict         Code = "IdempotencyConflict"
	CodeVersionConflict             Code = "VersionConflict"
	CodeNotFound                    Code = "NotFound"
	CodeInternal                    Code = "Internal"
)

// Category groups codes by how callers and the engine should react to them.
type Category string

const (
	CategoryInput         Category = "input"
	CategoryPeriod        Category = "period"
	CategoryConfiguration Category = "configuration"
	CategoryInvariant     Category = "invariant"
	CategoryTransient     Category = "transient"
	CategoryAmbiguity     Category = "ambiguity"
	CategoryConflict      Category = "conflict"
	CategoryInternal      Category = "internal"
)

var categoryByCode = map[Code]Category{
	CodeSchemaViolation:             CategoryInput,
	CodeFuturePeriodRejected:        CategoryPeriod,
	CodePeriodClosed:                CategoryPeriod,
	CodeMissingPostingConfiguration: CategoryConfiguration,
	CodeMissingAccountMapping:       CategoryConfiguration,
	CodeUnbalancedJournal:           CategoryInvariant,
	CodeReconciliationMismatch:      CategoryInvariant,
	CodeCouldNotClassify:            CategoryAmbiguity,
	CodeRetryExhausted:              CategoryTransient,
	CodeIdempotencyConflict:         CategoryConflict,
	CodeVersionConflict:             CategoryConflict,
	CodeNotFound:                    CategoryInput,
	CodeInternal:                    CategoryInternal,
}

// CategoryOf returns the category a code belongs to.
func CategoryOf(code Code) Category {
	if c, ok := categoryByCode[code]; ok {
		return c
	}
	return CategoryInternal
}

// EngineError is the structured failure returned by the posting pipeline.
type EngineError struct {
	Code    Code
	Field   string
	Message string
	Cause   error
}

// NewEngineError creates an EngineError without a cause.
func NewEngineError(code Code, message string) *EngineError {
	return &EngineError{Code: code, Message: message}
}

// NewFieldError creates an input error naming the offending field.
func NewFieldError(field, message string) *EngineError {
	return &EngineError{Code: CodeSchemaViolation, Field: field, Message: message}
}

// WrapEngineError attaches a cause to a new EngineError.
func WrapEngineError(code Code, message string, cause error) *EngineError {
	return &EngineError{Code: code, Message: message, Cause: cause}
}

func (e *EngineError) Error() string {
	msg := string(e.Code)
	if e.Field != "" {
		msg += " [" + e.Field + "]"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Is matches another EngineError by code so errors.Is(err, &EngineError{Code: X}) works.
func (e *EngineError) Is(target error) bool {
	var t *EngineError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Category returns the error's category.
func (e *EngineError) Category() Category {
	return CategoryOf(e.Code)
}

// CodeOf extracts the engine code from err, falling back to sentinel mapping.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrValidation):
		return CodeSchemaViolation
	case errors.Is(err, ErrConflict):
		return CodeVersionConflict
	}
	return CodeInternal
}

// IsCode reports whether err carries the given engine code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Sentinel-style targets for errors.Is.
var (
	ErrSchemaViolation             = &EngineError{Code: CodeSchemaViolation}
	ErrFuturePeriodRejected        = &EngineError{Code: CodeFuturePeriodRejected}
	ErrPeriodClosed                = &EngineError{Code: CodePeriodClosed}
	ErrMissingPostingConfiguration = &EngineError{Code: CodeMissingPostingConfiguration}
	ErrMissingAccountMapping       = &EngineError{Code: CodeMissingAccountMapping}
	ErrUnbalancedJournal           = &EngineError{Code: CodeUnbalancedJournal}
	ErrReconciliationMismatch      = &EngineError{Code: CodeReconciliationMismatch}
	ErrCouldNotClassify            = &EngineError{Code: CodeCouldNotClassify}
	ErrRetryExhausted              = &EngineError{Code: CodeRetryExhausted}
	ErrIdempotencyConflict         = &EngineError{Code: CodeIdempotencyConflict}
)
