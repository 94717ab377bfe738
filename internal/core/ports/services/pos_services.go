package services

import (
	"context"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
)

// POSSvc posts point-of-sale end-of-day summaries.
type POSSvc interface {
	// ProcessDailySummary reconciles the summary and posts all derived journals or none of them.
	ProcessDailySummary(ctx context.Context, summary domain.POSDailySummary, actor string) (*domain.POSResult, error)
}
