package services

import (
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/mda_posting_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, auditor portssvc.Auditor) *portssvc.ServiceContainer {
	snapshots := NewConfigSnapshotService(repos.ConfigRepo, cfg.ConfigCacheTTL)

	periods := NewPeriodService(repos.PeriodRepo, cfg.Posting.FutureGraceDays, WithPeriodAuditor(auditor))

	posting := NewPostingService(
		repos.JournalRepo,
		periods,
		snapshots,
		NewEventValidator(cfg.Posting.MaxEventAmount),
		NewJournalBuilder(cfg.Posting.MaxRoundingRemainder),
		WithPostingAuditor(auditor),
	)

	return &portssvc.ServiceContainer{
		Posting: posting,
		Period:  periods,
		POS:     NewPOSService(repos.POSRepo, posting, snapshots, cfg.Posting.ReconciliationTolerance, auditor),
		NL:      NewNLService(posting, snapshots, auditor),
	}
}
