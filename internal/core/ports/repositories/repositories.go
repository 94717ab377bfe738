package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	PeriodRepo  PeriodRepositoryFacade
	JournalRepo JournalRepositoryFacade
	ConfigRepo  ConfigRepositoryFacade
	POSRepo     POSSummaryRepositoryFacade
	AuditRepo   AuditWriter
}
