package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clubstack/membership-backend-go/internal/domain/schedule"
	"github.com/clubstack/membership-backend-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) List(ctx context.Context) ([]schedule.Entry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, email, action_type, action_date
		FROM action_schedule
		ORDER BY action_date, email, action_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []schedule.Entry
	for rows.Next() {
		var e schedule.Entry
		if err := rows.Scan(&e.ID, &e.Email, &e.Type, &e.Date); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReplaceAll swaps the stored schedule for the given set. The engine
// rewrites the schedule as one working set per run, so persistence is
// delete-and-bulk-insert inside the run transaction.
func (r *scheduleRepository) ReplaceAll(ctx context.Context, entries []schedule.Entry) error {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return fmt.Errorf("schedule ReplaceAll requires a transaction")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM action_schedule`); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(entries))
	for i, e := range entries {
		rows[i] = []interface{}{e.ID, e.Email, string(e.Type), e.Date}
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"action_schedule"},
		[]string{"id", "email", "action_type", "action_date"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}
