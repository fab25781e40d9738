package member

import "context"

// Repository handles member data operations. Rows are never deleted;
// "deletion" is always a status transition.
type Repository interface {
	// List retrieves all member rows, oldest first
	List(ctx context.Context) ([]Member, error)

	// GetActiveByEmail retrieves the active member row for an email
	GetActiveByEmail(ctx context.Context, email string) (Member, error)

	// Create inserts a new member row
	Create(ctx context.Context, m Member) (Member, error)

	// Update updates an existing member row by ID
	Update(ctx context.Context, m Member) error

	// SaveAll upserts a full working set back to the store
	SaveAll(ctx context.Context, members []Member) error

	// CountByStatus counts member rows per status
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

// MigratorRepository handles legacy member rows awaiting migration
type MigratorRepository interface {
	// ListUnmigrated retrieves legacy rows that have not been migrated yet
	ListUnmigrated(ctx context.Context) ([]Legacy, error)

	// MarkMigrated stamps the migration date on a legacy row
	MarkMigrated(ctx context.Context, legacy Legacy) error
}
