package postgresql

import (
	"context"
	"time"

	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/pkg/database"
)

type migratorRepository struct {
	db *database.DB
}

func NewMigratorRepository(db *database.DB) member.MigratorRepository {
	return &migratorRepository{db: db}
}

func (r *migratorRepository) ListUnmigrated(ctx context.Context) ([]member.Legacy, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, email, first_name, last_name, phone, period_years,
		       joined, expires, renewed_on, status,
		       share_name, share_email, share_phone
		FROM legacy_members
		WHERE migrated IS NULL
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var legacies []member.Legacy
	for rows.Next() {
		var l member.Legacy
		var email, first, last, phone, status *string
		var joined, expires, renewedOn *time.Time
		err := rows.Scan(
			&l.ID, &email, &first, &last, &phone, &l.Period,
			&joined, &expires, &renewedOn, &status,
			&l.ShareName, &l.ShareEmail, &l.SharePhone,
		)
		if err != nil {
			return nil, err
		}
		// Imported rows are ragged: almost every column may be null.
		l.Email = deref(email)
		l.First = deref(first)
		l.Last = deref(last)
		l.Phone = deref(phone)
		l.Status = deref(status)
		l.Joined = derefDate(joined)
		l.Expires = derefDate(expires)
		l.RenewedOn = derefDate(renewedOn)
		legacies = append(legacies, l)
	}
	return legacies, rows.Err()
}

func (r *migratorRepository) MarkMigrated(ctx context.Context, legacy member.Legacy) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE legacy_members SET migrated = $2 WHERE id = $1
	`, legacy.ID, legacy.Migrated)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefDate(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
