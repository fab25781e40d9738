package member

import "context"

// Service exposes read operations over the membership roll for the
// admin API
type Service interface {
	// ListMembers retrieves all member rows
	ListMembers(ctx context.Context) ([]Response, error)

	// GetMember retrieves the active member row for an email
	GetMember(ctx context.Context, email string) (Response, error)

	// GetStats summarizes the roll and the pending schedule
	GetStats(ctx context.Context) (StatsResponse, error)
}
