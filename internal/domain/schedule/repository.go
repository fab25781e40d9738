package schedule

import "context"

// Repository handles action-schedule data operations. The engine
// rewrites the schedule as a whole working set, so persistence is
// list-and-replace rather than row-by-row.
type Repository interface {
	// List retrieves all pending schedule entries
	List(ctx context.Context) ([]Entry, error)

	// ReplaceAll replaces the stored schedule with the given set
	ReplaceAll(ctx context.Context, entries []Entry) error
}
