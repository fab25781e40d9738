package transaction

import (
	"context"
	"time"
)

// Repository handles payment transaction data operations
type Repository interface {
	// ListOpen retrieves transactions that have not been processed yet,
	// oldest first
	ListOpen(ctx context.Context) ([]Transaction, error)

	// MarkProcessed stamps the processed and timestamp dates on a
	// transaction. It fails if the transaction was already processed.
	MarkProcessed(ctx context.Context, id string, processed time.Time) error
}
