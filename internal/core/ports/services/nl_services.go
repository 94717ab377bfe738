package services

import (
	"context"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
)

// NLSvc turns free-text instructions into draft events and runs them through the posting pipeline.
type NLSvc interface {
	HandleCommand(ctx context.Context, organizationID, description string, dryRun bool, actor string) (*domain.NLOutcome, error)
}
