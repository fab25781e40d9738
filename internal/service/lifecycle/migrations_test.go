package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/domain/schedule"
	schedulesvc "github.com/clubstack/membership-backend-go/internal/service/schedule"
)

func newMigrationProcessor(mailer *fakeMailer, dir *fakeDirectory) *MigrationProcessor {
	return NewMigrationProcessor(schedulesvc.NewManager(), mailer, dir)
}

func legacyRow(email, status string, expires time.Time) member.Legacy {
	return member.Legacy{
		ID:        "row-" + email,
		Email:     email,
		First:     "Sam",
		Last:      "Reyes",
		Period:    1,
		Joined:    date(2019, time.June, 1),
		Expires:   expires,
		Status:    status,
		ShareName: true,
	}
}

func TestMigrationProcessor_ActiveLegacyMember(t *testing.T) {
	t.Parallel()
	today := date(2025, time.March, 10)
	mailer := newFakeMailer()
	dir := newFakeDirectory()
	proc := newMigrationProcessor(mailer, dir)

	ws := &WorkingSet{}
	legacies := []member.Legacy{legacyRow("sam@x.com", "Active", date(2025, time.September, 1))}

	report, err := proc.Process(context.Background(), ws, legacies, testSpecs(), testGroups, today)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Migrated)
	assert.Zero(t, report.Skipped)
	assert.Equal(t, today, legacies[0].Migrated)

	require.Len(t, ws.Members, 1)
	m := ws.Members[0]
	assert.Equal(t, member.StatusActive, m.Status)
	assert.Equal(t, date(2025, time.September, 1), m.Expires)
	assert.Equal(t, today, m.Migrated)
	assert.True(t, m.ShareName)
	assert.False(t, m.ShareEmail)

	// Join-equivalent side effects: groups, one Migrate notification,
	// forward schedule
	assert.Len(t, dir.added, len(testGroups))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Moved Sam", mailer.sent[0].Subject)
	assert.NotEmpty(t, entriesFor(ws.Schedule, "sam@x.com"))
}

func TestMigrationProcessor_PastOffsetsSuppressed(t *testing.T) {
	t.Parallel()
	today := date(2025, time.March, 10)
	mailer := newFakeMailer()
	proc := newMigrationProcessor(mailer, newFakeDirectory())

	// Expires two days out: the -30 and -7 reminder offsets already
	// elapsed, only the on-date and terminal stages remain
	ws := &WorkingSet{}
	legacies := []member.Legacy{legacyRow("sam@x.com", "Active", date(2025, time.March, 12))}

	_, err := proc.Process(context.Background(), ws, legacies, testSpecs(), testGroups, today)
	require.NoError(t, err)

	entries := entriesFor(ws.Schedule, "sam@x.com")
	require.Len(t, entries, 2)
	types := []schedule.ActionType{entries[0].Type, entries[1].Type}
	assert.Contains(t, types, schedule.ActionExpiry3)
	assert.Contains(t, types, schedule.ActionExpiry4)
}

func TestMigrationProcessor_ExpiredLegacyMemberConvertsOnly(t *testing.T) {
	t.Parallel()
	today := date(2025, time.March, 10)
	mailer := newFakeMailer()
	dir := newFakeDirectory()
	proc := newMigrationProcessor(mailer, dir)

	ws := &WorkingSet{}
	legacies := []member.Legacy{legacyRow("gone@x.com", "Expired", date(2022, time.January, 1))}

	report, err := proc.Process(context.Background(), ws, legacies, testSpecs(), testGroups, today)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Migrated)
	require.Len(t, ws.Members, 1)
	assert.Equal(t, member.StatusExpired, ws.Members[0].Status)

	// Record conversion only: zero groups, zero emails, zero entries
	assert.Empty(t, dir.added)
	assert.Empty(t, mailer.sent)
	assert.Empty(t, ws.Schedule)
}

func TestMigrationProcessor_SkipRules(t *testing.T) {
	t.Parallel()
	today := date(2025, time.March, 10)
	mailer := newFakeMailer()
	proc := newMigrationProcessor(mailer, newFakeDirectory())

	alreadyMigrated := legacyRow("done@x.com", "Active", date(2025, time.September, 1))
	alreadyMigrated.Migrated = date(2025, time.January, 1)

	noEmail := legacyRow("", "Active", date(2025, time.September, 1))

	collision := legacyRow("here@x.com", "Active", date(2025, time.September, 1))

	ws := &WorkingSet{
		Members: []member.Member{activeMember("here@x.com", date(2025, time.December, 1))},
	}
	legacies := []member.Legacy{alreadyMigrated, noEmail, collision}

	report, err := proc.Process(context.Background(), ws, legacies, testSpecs(), testGroups, today)
	require.NoError(t, err)

	assert.Zero(t, report.Migrated)
	assert.Equal(t, 3, report.Skipped)
	assert.Len(t, ws.Members, 1)
	assert.Empty(t, mailer.sent)
	// The previously migrated stamp is untouched
	assert.Equal(t, date(2025, time.January, 1), legacies[0].Migrated)
}

func TestMigrationProcessor_SideEffectFailureIsCollected(t *testing.T) {
	t.Parallel()
	today := date(2025, time.March, 10)
	mailer := newFakeMailer()
	dir := newFakeDirectory()
	dir.failAdd["bad@x.com"] = true
	proc := newMigrationProcessor(mailer, dir)

	ws := &WorkingSet{}
	legacies := []member.Legacy{
		legacyRow("bad@x.com", "Active", date(2025, time.September, 1)),
		legacyRow("ok@x.com", "Active", date(2025, time.September, 1)),
	}

	report, err := proc.Process(context.Background(), ws, legacies, testSpecs(), testGroups, today)
	require.Error(t, err)

	// Both rows converted and stamped; the failure is reported per row
	assert.Equal(t, 2, report.Migrated)
	assert.Equal(t, today, legacies[0].Migrated)
	assert.Equal(t, today, legacies[1].Migrated)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "bad@x.com")
	assert.Len(t, mailer.sentTo("ok@x.com"), 1)
}
