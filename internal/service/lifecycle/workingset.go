// Package lifecycle implements the membership lifecycle engine: the
// batch processors that turn payment transactions into member state
// changes, materialize the forward action schedule, and consume due
// schedule entries.
//
// The engine is single-writer and batch-oriented. Every processor
// takes the full working set plus an explicit "today" and mutates the
// set in memory; persistence happens around the pass, not inside it.
package lifecycle

import (
	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/domain/schedule"
)

// WorkingSet is the in-memory view of the store one run operates on
type WorkingSet struct {
	Members  []member.Member
	Schedule []schedule.Entry
}

// FindActive returns the active member row for an email, or nil.
// Expired history rows for the same email are ignored.
func (ws *WorkingSet) FindActive(email string) *member.Member {
	for i := range ws.Members {
		if ws.Members[i].Email == email && ws.Members[i].IsActive() {
			return &ws.Members[i]
		}
	}
	return nil
}

// HasEmail reports whether any row, active or expired, carries the email
func (ws *WorkingSet) HasEmail(email string) bool {
	for i := range ws.Members {
		if ws.Members[i].Email == email {
			return true
		}
	}
	return false
}

// removeEntryByID returns a new schedule without the given entry
func removeEntryByID(entries []schedule.Entry, id string) []schedule.Entry {
	out := make([]schedule.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
