package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/domain/schedule"
	"github.com/clubstack/membership-backend-go/internal/pkg/email"
)

// date builds a normalized calendar date for tests
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var errTransport = errors.New("transport unavailable")

// fakeMailer records sent messages and can fail for chosen recipients
type fakeMailer struct {
	sent   []email.Message
	failTo map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failTo: make(map[string]bool)}
}

func (m *fakeMailer) Send(msg email.Message) error {
	if m.failTo[msg.To] {
		return errTransport
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) sentTo(addr string) []email.Message {
	var out []email.Message
	for _, msg := range m.sent {
		if msg.To == addr {
			out = append(out, msg)
		}
	}
	return out
}

// fakeDirectory records group membership changes and can fail adds or
// removes for chosen member emails
type fakeDirectory struct {
	added     []string // "member|group"
	removed   []string
	failAdd   map[string]bool
	failWrite map[string]bool
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		failAdd:   make(map[string]bool),
		failWrite: make(map[string]bool),
	}
}

func (d *fakeDirectory) Add(_ context.Context, memberEmail, groupEmail string) error {
	if d.failAdd[memberEmail] || d.failWrite[memberEmail] {
		return errTransport
	}
	d.added = append(d.added, memberEmail+"|"+groupEmail)
	return nil
}

func (d *fakeDirectory) Remove(_ context.Context, memberEmail, groupEmail string) error {
	if d.failWrite[memberEmail] {
		return errTransport
	}
	d.removed = append(d.removed, memberEmail+"|"+groupEmail)
	return nil
}

// testSpecs mirrors the production action table: three reminder stages
// around the expiration date and a terminal stage ten days after it
func testSpecs() schedule.SpecTable {
	return schedule.SpecTable{
		schedule.ActionJoin: {
			Type: schedule.ActionJoin, Subject: "Welcome {First}", Body: "<p>Until {Expires}</p>",
		},
		schedule.ActionRenew: {
			Type: schedule.ActionRenew, Subject: "Renewed {First}", Body: "<p>Until {Expires}</p>",
		},
		schedule.ActionMigrate: {
			Type: schedule.ActionMigrate, Subject: "Moved {First}", Body: "<p>Until {Expires}</p>",
		},
		schedule.ActionExpiry1: {
			Type: schedule.ActionExpiry1, OffsetDays: -30, Subject: "30 days {First}", Body: "x",
		},
		schedule.ActionExpiry2: {
			Type: schedule.ActionExpiry2, OffsetDays: -7, Subject: "7 days {First}", Body: "x",
		},
		schedule.ActionExpiry3: {
			Type: schedule.ActionExpiry3, OffsetDays: 0, Subject: "Today {First}", Body: "x",
		},
		schedule.ActionExpiry4: {
			Type: schedule.ActionExpiry4, OffsetDays: 10, Subject: "Lapsed {First}", Body: "x",
		},
	}
}

var testGroups = []string{"riders@club.example", "announce@club.example"}

func activeMember(email string, expires time.Time) member.Member {
	return member.Member{
		ID:      "id-" + email,
		Email:   email,
		First:   "Pat",
		Last:    "Lee",
		Period:  1,
		Joined:  date(2020, time.January, 1),
		Expires: expires,
		Status:  member.StatusActive,
	}
}

func entriesFor(entries []schedule.Entry, email string) []schedule.Entry {
	var out []schedule.Entry
	for _, e := range entries {
		if e.Email == email {
			out = append(out, e)
		}
	}
	return out
}
