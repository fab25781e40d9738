package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/pkg/database"
)

type memberRepository struct {
	db *database.DB
}

func NewMemberRepository(db *database.DB) member.Repository {
	return &memberRepository{db: db}
}

const memberColumns = `
	id, email, first_name, last_name, phone, period_years,
	joined, expires, renewed_on, status, migrated,
	share_name, share_email, share_phone, created_at, updated_at
`

func scanMember(row pgx.Row) (member.Member, error) {
	var m member.Member
	var renewedOn, migrated *time.Time
	err := row.Scan(
		&m.ID, &m.Email, &m.First, &m.Last, &m.Phone, &m.Period,
		&m.Joined, &m.Expires, &renewedOn, &m.Status, &migrated,
		&m.ShareName, &m.ShareEmail, &m.SharePhone, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return member.Member{}, err
	}
	if renewedOn != nil {
		m.RenewedOn = *renewedOn
	}
	if migrated != nil {
		m.Migrated = *migrated
	}
	return m, nil
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func (r *memberRepository) List(ctx context.Context) ([]member.Member, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+memberColumns+` FROM members ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []member.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) GetActiveByEmail(ctx context.Context, email string) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	row := q.QueryRow(ctx, `
		SELECT `+memberColumns+`
		FROM members
		WHERE email = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, email, member.StatusActive)

	m, err := scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return member.Member{}, member.ErrMemberNotFound
	}
	return m, err
}

func (r *memberRepository) Create(ctx context.Context, m member.Member) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	_, err := q.Exec(ctx, `
		INSERT INTO members (`+memberColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		m.ID, m.Email, m.First, m.Last, m.Phone, m.Period,
		m.Joined, m.Expires, nullableDate(m.RenewedOn), m.Status, nullableDate(m.Migrated),
		m.ShareName, m.ShareEmail, m.SharePhone, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return member.Member{}, err
	}
	return m, nil
}

func (r *memberRepository) Update(ctx context.Context, m member.Member) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE members SET
			email = $2, first_name = $3, last_name = $4, phone = $5,
			period_years = $6, joined = $7, expires = $8, renewed_on = $9,
			status = $10, migrated = $11, share_name = $12, share_email = $13,
			share_phone = $14, updated_at = NOW()
		WHERE id = $1
	`,
		m.ID, m.Email, m.First, m.Last, m.Phone,
		m.Period, m.Joined, m.Expires, nullableDate(m.RenewedOn),
		m.Status, nullableDate(m.Migrated), m.ShareName, m.ShareEmail,
		m.SharePhone,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}

// SaveAll upserts the full working set. Rows are keyed by ID so an
// expired history row and a fresh active row for the same email both
// survive.
func (r *memberRepository) SaveAll(ctx context.Context, members []member.Member) error {
	q := GetQuerier(ctx, r.db)

	for _, m := range members {
		_, err := q.Exec(ctx, `
			INSERT INTO members (`+memberColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
			ON CONFLICT (id) DO UPDATE SET
				email = EXCLUDED.email,
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name,
				phone = EXCLUDED.phone,
				period_years = EXCLUDED.period_years,
				joined = EXCLUDED.joined,
				expires = EXCLUDED.expires,
				renewed_on = EXCLUDED.renewed_on,
				status = EXCLUDED.status,
				migrated = EXCLUDED.migrated,
				share_name = EXCLUDED.share_name,
				share_email = EXCLUDED.share_email,
				share_phone = EXCLUDED.share_phone,
				updated_at = NOW()
		`,
			m.ID, m.Email, m.First, m.Last, m.Phone, m.Period,
			m.Joined, m.Expires, nullableDate(m.RenewedOn), m.Status, nullableDate(m.Migrated),
			m.ShareName, m.ShareEmail, m.SharePhone,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *memberRepository) CountByStatus(ctx context.Context) (map[member.Status]int, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM members GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[member.Status]int)
	for rows.Next() {
		var status member.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
