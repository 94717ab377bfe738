package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/mda_posting_engine/internal/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/SscSPs/mda_posting_engine/services")

// BaseService provides common functionality for all services
type BaseService struct {
	Auditor portssvc.Auditor
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	if code := apperrors.CodeOf(err); code != "" {
		args = append(args, slog.String("error_code", string(code)))
	}
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Audit forwards an entry to the configured auditor, if any.
func (s *BaseService) Audit(ctx context.Context, entry domain.AuditEntry) {
	if s.Auditor == nil {
		return
	}
	s.Auditor.Record(ctx, entry)
}

// StartSpan opens a pipeline span tagged with the organization.
func (s *BaseService) StartSpan(ctx context.Context, name, organizationID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("mda.organization_id", organizationID))
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on the span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
	}
	span.End()
}

// severityFor marks invariant violations critical so they bypass audit batching.
func severityFor(err error) domain.AuditSeverity {
	if err == nil {
		return domain.AuditInfo
	}
	switch apperrors.CategoryOf(apperrors.CodeOf(err)) {
	case apperrors.CategoryInvariant:
		return domain.AuditCritical
	case apperrors.CategoryTransient, apperrors.CategoryInternal, apperrors.CategoryConfiguration:
		return domain.AuditWarning
	}
	return domain.AuditInfo
}
