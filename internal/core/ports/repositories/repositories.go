package repositories

// LedgerRepository is the Domain Repository: every entity-level operation the
// application state store drives. Implementations may be local (dataset-backed)
// or networked; callers must not depend on which.
type LedgerRepository interface {
	UserRepositoryFacade
	WorkspaceRepositoryFacade
	TransactionRepositoryFacade
}
