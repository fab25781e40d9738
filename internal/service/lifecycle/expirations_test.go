package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/domain/schedule"
)

func TestExpirationProcessor_NotificationStageKeepsMemberActive(t *testing.T) {
	t.Parallel()
	today := date(2025, time.May, 1)
	mailer := newFakeMailer()
	dir := newFakeDirectory()
	proc := NewExpirationProcessor(mailer, dir)

	ws := &WorkingSet{
		Members: []member.Member{activeMember("pat@x.com", date(2025, time.May, 31))},
		Schedule: []schedule.Entry{
			{ID: "e1", Email: "pat@x.com", Type: schedule.ActionExpiry1, Date: date(2025, time.May, 1)},
			{ID: "e2", Email: "pat@x.com", Type: schedule.ActionExpiry2, Date: date(2025, time.May, 24)},
		},
	}

	report, err := proc.Process(context.Background(), ws, testSpecs(), testGroups, today)
	require.NoError(t, err)

	assert.Equal(t, 1, report.EntriesProcessed)
	assert.Equal(t, 1, report.NotificationsSent)
	assert.Zero(t, report.MembersExpired)
	assert.Equal(t, member.StatusActive, ws.Members[0].Status)
	assert.Empty(t, dir.removed)

	// The due entry is retired, the future one stays
	require.Len(t, ws.Schedule, 1)
	assert.Equal(t, "e2", ws.Schedule[0].ID)
}

func TestExpirationProcessor_TerminalStageWinsWhenSeveralDue(t *testing.T) {
	t.Parallel()
	today := date(2025, time.May, 1)
	mailer := newFakeMailer()
	dir := newFakeDirectory()
	proc := NewExpirationProcessor(mailer, dir)

	ws := &WorkingSet{
		Members: []member.Member{activeMember("test@x.com", date(2025, time.April, 21))},
		Schedule: []schedule.Entry{
			{ID: "e2", Email: "test@x.com", Type: schedule.ActionExpiry2, Date: today},
			{ID: "e4", Email: "test@x.com", Type: schedule.ActionExpiry4, Date: today},
		},
	}

	report, err := proc.Process(context.Background(), ws, testSpecs(), testGroups, today)
	require.NoError(t, err)

	// Both entries retired, exactly one email sent: the terminal one
	assert.Equal(t, 2, report.EntriesProcessed)
	assert.Equal(t, 1, report.NotificationsSent)
	assert.Equal(t, 1, report.MembersExpired)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Lapsed Pat", mailer.sent[0].Subject)

	assert.Equal(t, member.StatusExpired, ws.Members[0].Status)
	assert.Len(t, dir.removed, len(testGroups))
	assert.Empty(t, ws.Schedule)
}

func TestExpirationProcessor_TerminalStagePurgesRemainingEntries(t *testing.T) {
	t.Parallel()
	today := date(2025, time.May, 1)
	mailer := newFakeMailer()
	proc := NewExpirationProcessor(mailer, newFakeDirectory())

	ws := &WorkingSet{
		Members: []member.Member{
			activeMember("gone@x.com", date(2025, time.April, 21)),
			activeMember("stay@x.com", date(2025, time.December, 1)),
		},
		Schedule: []schedule.Entry{
			{ID: "e4", Email: "gone@x.com", Type: schedule.ActionExpiry4, Date: today},
			// Stale future entry for the same member
			{ID: "stale", Email: "gone@x.com", Type: schedule.ActionExpiry3, Date: date(2025, time.June, 1)},
			{ID: "other", Email: "stay@x.com", Type: schedule.ActionExpiry1, Date: date(2025, time.November, 1)},
		},
	}

	_, err := proc.Process(context.Background(), ws, testSpecs(), testGroups, today)
	require.NoError(t, err)

	// The expired member's stale entry is purged; other members keep theirs
	require.Len(t, ws.Schedule, 1)
	assert.Equal(t, "other", ws.Schedule[0].ID)
}

func TestExpirationProcessor_MissingMemberRetiresEntry(t *testing.T) {
	t.Parallel()
	today := date(2025, time.May, 1)
	mailer := newFakeMailer()
	proc := NewExpirationProcessor(mailer, newFakeDirectory())

	ws := &WorkingSet{
		Schedule: []schedule.Entry{
			{ID: "orphan", Email: "ghost@x.com", Type: schedule.ActionExpiry1, Date: today},
		},
	}

	report, err := proc.Process(context.Background(), ws, testSpecs(), testGroups, today)
	require.NoError(t, err)

	// Logged, counted, retired; never retried
	assert.Equal(t, 1, report.EntriesProcessed)
	assert.Zero(t, report.NotificationsSent)
	assert.Empty(t, mailer.sent)
	assert.Empty(t, ws.Schedule)
}

func TestExpirationProcessor_FutureEntriesUntouched(t *testing.T) {
	t.Parallel()
	today := date(2025, time.May, 1)
	mailer := newFakeMailer()
	proc := NewExpirationProcessor(mailer, newFakeDirectory())

	// Expires ten days out, terminal offset +10: nothing fires today,
	// the member lapses exactly at expires+offset
	expires := date(2025, time.May, 11)
	ws := &WorkingSet{
		Members: []member.Member{activeMember("pat@x.com", expires)},
		Schedule: []schedule.Entry{
			{ID: "e4", Email: "pat@x.com", Type: schedule.ActionExpiry4, Date: date(2025, time.May, 21)},
		},
	}

	report, err := proc.Process(context.Background(), ws, testSpecs(), testGroups, today)
	require.NoError(t, err)
	assert.Zero(t, report.EntriesProcessed)
	assert.Equal(t, member.StatusActive, ws.Members[0].Status)

	report, err = proc.Process(context.Background(), ws, testSpecs(), testGroups, date(2025, time.May, 21))
	require.NoError(t, err)
	assert.Equal(t, 1, report.EntriesProcessed)
	assert.Equal(t, 1, report.MembersExpired)
	assert.Equal(t, member.StatusExpired, ws.Members[0].Status)
}

func TestExpirationProcessor_SendFailureDoesNotStopBatch(t *testing.T) {
	t.Parallel()
	today := date(2025, time.May, 1)
	mailer := newFakeMailer()
	mailer.failTo["broken@x.com"] = true
	proc := NewExpirationProcessor(mailer, newFakeDirectory())

	ws := &WorkingSet{
		Members: []member.Member{
			activeMember("broken@x.com", date(2025, time.May, 31)),
			activeMember("fine@x.com", date(2025, time.May, 31)),
		},
		Schedule: []schedule.Entry{
			{ID: "b", Email: "broken@x.com", Type: schedule.ActionExpiry1, Date: today},
			{ID: "f", Email: "fine@x.com", Type: schedule.ActionExpiry1, Date: today},
		},
	}

	report, err := proc.Process(context.Background(), ws, testSpecs(), testGroups, today)
	require.Error(t, err)

	assert.Equal(t, 2, report.EntriesProcessed)
	assert.Equal(t, 1, report.NotificationsSent)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "broken@x.com")
	assert.Len(t, mailer.sentTo("fine@x.com"), 1)
	// Both entries retired regardless
	assert.Empty(t, ws.Schedule)
}
