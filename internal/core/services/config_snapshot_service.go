package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/mda_posting_engine/internal/platform/cache"
)

// ConfigSnapshotService loads and caches per-organization configuration snapshots.
type ConfigSnapshotService struct {
	BaseService
	repo  portsrepo.ConfigRepositoryFacade
	cache *cache.TTLCache[string, *domain.ConfigSnapshot]
	now   func() time.Time
}

// NewConfigSnapshotService creates a loader whose snapshots live for ttl.
func NewConfigSnapshotService(repo portsrepo.ConfigRepositoryFacade, ttl time.Duration) *ConfigSnapshotService {
	return &ConfigSnapshotService{
		repo:  repo,
		cache: cache.NewTTLCache[string, *domain.ConfigSnapshot](ttl),
		now:   time.Now,
	}
}

// Load returns the organization's current snapshot. Callers must not mutate it.
func (s *ConfigSnapshotService) Load(ctx context.Context, organizationID string) (*domain.ConfigSnapshot, error) {
	if snap, ok := s.cache.Get(organizationID); ok {
		return snap, nil
	}

	settings, err := s.repo.FindOrgSettings(ctx, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err := apperrors.WrapEngineError(apperrors.CodeMissingPostingConfiguration,
				fmt.Sprintf("organization %s has no posting settings", organizationID), err)
			err.Field = "organization_id"
			return nil, err
		}
		s.LogError(ctx, err, "Failed to load organization settings", slog.String("organization_id", organizationID))
		return nil, err
	}
	rules, err := s.repo.ListPostingRules(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load posting rules", slog.String("organization_id", organizationID))
		return nil, err
	}
	accounts, err := s.repo.ListChartAccounts(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts", slog.String("organization_id", organizationID))
		return nil, err
	}
	rates, err := s.repo.ListTaxRates(ctx, settings.Jurisdiction)
	if err != nil {
		s.LogError(ctx, err, "Failed to load tax rates", slog.String("jurisdiction", settings.Jurisdiction))
		return nil, err
	}

	snap, err := NewConfigSnapshot(*settings, rules, accounts, rates, s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.cache.Set(organizationID, snap)
	s.LogDebug(ctx, "Config snapshot loaded",
		slog.String("organization_id", organizationID),
		slog.String("version", snap.Version),
		slog.Int("rules", len(rules)))
	return snap, nil
}

// Invalidate drops a cached snapshot so the next Load reads storage again.
func (s *ConfigSnapshotService) Invalidate(organizationID string) {
	s.cache.Delete(organizationID)
}
