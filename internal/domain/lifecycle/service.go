package lifecycle

import "context"

// Service runs the membership lifecycle engine against the store.
// Each call loads the full working set, runs one batch pass, and
// persists the result in a single transaction. Mutations applied by
// successful records survive even when the returned error is non-nil;
// the error then aggregates the per-record failures.
type Service interface {
	// ProcessTransactions applies open payment transactions: new joins
	// and renewals, schedule materialization, notifications, group adds
	ProcessTransactions(ctx context.Context) (TransactionReport, error)

	// ProcessDueActions consumes due schedule entries: stage
	// notifications and, at the terminal stage, expiry
	ProcessDueActions(ctx context.Context) (ExpirationReport, error)

	// MigrateLegacyMembers converts unmigrated legacy rows into
	// canonical members and seeds their forward schedule
	MigrateLegacyMembers(ctx context.Context) (MigrationReport, error)
}
