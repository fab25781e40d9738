package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/domain/schedule"
	"github.com/clubstack/membership-backend-go/internal/service/dates"
)

// BuildOptions controls schedule materialization.
type BuildOptions struct {
	// Immediate, when set, adds one entry of this transition type
	// (Join, Renew or Migrate) dated today. The zero value emits
	// Expiry* entries only.
	Immediate schedule.ActionType

	// SuppressPast drops entries dated on or before today. Used when
	// migrating members whose legacy expiration offsets already
	// elapsed, so they are not flooded with stale notifications.
	SuppressPast bool
}

// Manager builds and rewrites the pending action schedule. It
// guarantees at most one pending entry per (member, stage).
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Build materializes the forward schedule for a member: one entry per
// Expiry* spec, dated Expires+Offset, plus the optional immediate
// transition entry.
func (m *Manager) Build(mem member.Member, specs schedule.SpecTable, today time.Time, opts BuildOptions) []schedule.Entry {
	today = dates.Normalize(today)

	var entries []schedule.Entry
	if opts.Immediate != "" {
		entries = append(entries, newEntry(mem.Email, opts.Immediate, today))
	}

	for _, spec := range specs.ExpirySpecs() {
		date := dates.AddDays(mem.Expires, spec.OffsetDays)
		if opts.SuppressPast && dates.OnOrBefore(date, today) {
			continue
		}
		entries = append(entries, newEntry(mem.Email, spec.Type, date))
	}
	return entries
}

// ReplaceForMember returns a new schedule with every entry for the
// email removed and the replacements appended. Renewal goes through
// here so pending notifications for the old expiration never fire.
// The input slice is not mutated.
func (m *Manager) ReplaceForMember(entries []schedule.Entry, email string, repl []schedule.Entry) []schedule.Entry {
	out := RemoveForMember(entries, email)
	return append(out, repl...)
}

// RemoveForMember returns a new schedule without any entry for the
// email. The input slice is not mutated.
func RemoveForMember(entries []schedule.Entry, email string) []schedule.Entry {
	out := make([]schedule.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Email != email {
			out = append(out, e)
		}
	}
	return out
}

func newEntry(email string, t schedule.ActionType, date time.Time) schedule.Entry {
	return schedule.Entry{
		ID:    uuid.NewString(),
		Email: email,
		Type:  t,
		Date:  dates.Normalize(date),
	}
}
