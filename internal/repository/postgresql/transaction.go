package postgresql

import (
	"context"
	"time"

	"github.com/clubstack/membership-backend-go/internal/domain/transaction"
	"github.com/clubstack/membership-backend-go/internal/pkg/database"
)

type transactionRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) transaction.Repository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) ListOpen(ctx context.Context) ([]transaction.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, email, first_name, last_name, phone,
		       payable_status, payment, amount, created_at
		FROM transactions
		WHERE processed IS NULL
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []transaction.Transaction
	for rows.Next() {
		var t transaction.Transaction
		err := rows.Scan(
			&t.ID, &t.Email, &t.First, &t.Last, &t.Phone,
			&t.PayableStatus, &t.Payment, &t.Amount, &t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func (r *transactionRepository) MarkProcessed(ctx context.Context, id string, processed time.Time) error {
	q := GetQuerier(ctx, r.db)

	// Guarded by processed IS NULL: a processed transaction is
	// immutable, re-stamping is refused at the store level too.
	tag, err := q.Exec(ctx, `
		UPDATE transactions
		SET processed = $2, stamped_at = $2
		WHERE id = $1 AND processed IS NULL
	`, id, processed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return transaction.ErrAlreadyProcessed
	}
	return nil
}
