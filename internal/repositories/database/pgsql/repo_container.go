package pgsql

import (
	portsrepo "github.com/SscSPs/mda_posting_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PeriodRepo:  newPgxPeriodRepository(dbPool),
		JournalRepo: newPgxJournalRepository(dbPool),
		ConfigRepo:  newPgxConfigRepository(dbPool),
		POSRepo:     newPgxPOSRepository(dbPool),
		AuditRepo:   newPgxAuditRepository(dbPool),
	}
}
