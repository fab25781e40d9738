package members

import (
	"context"
	"fmt"

	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/domain/schedule"
	"github.com/clubstack/membership-backend-go/internal/service/dates"
)

type memberService struct {
	members  member.Repository
	schedule schedule.Repository
}

func NewMemberService(members member.Repository, scheduleRepo schedule.Repository) member.Service {
	return &memberService{
		members:  members,
		schedule: scheduleRepo,
	}
}

func (s *memberService) ListMembers(ctx context.Context) ([]member.Response, error) {
	rows, err := s.members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	responses := make([]member.Response, len(rows))
	for i, m := range rows {
		responses[i] = toResponse(m)
	}
	return responses, nil
}

func (s *memberService) GetMember(ctx context.Context, email string) (member.Response, error) {
	if email == "" {
		return member.Response{}, member.ErrMissingEmail
	}
	m, err := s.members.GetActiveByEmail(ctx, email)
	if err != nil {
		return member.Response{}, err
	}
	return toResponse(m), nil
}

func (s *memberService) GetStats(ctx context.Context) (member.StatsResponse, error) {
	counts, err := s.members.CountByStatus(ctx)
	if err != nil {
		return member.StatsResponse{}, fmt.Errorf("count members: %w", err)
	}
	entries, err := s.schedule.List(ctx)
	if err != nil {
		return member.StatsResponse{}, fmt.Errorf("list schedule: %w", err)
	}

	return member.StatsResponse{
		TotalMembers:   counts[member.StatusActive] + counts[member.StatusExpired],
		ActiveMembers:  counts[member.StatusActive],
		ExpiredMembers: counts[member.StatusExpired],
		PendingActions: len(entries),
	}, nil
}

func toResponse(m member.Member) member.Response {
	resp := member.Response{
		ID:        m.ID,
		Email:     m.Email,
		FirstName: m.First,
		LastName:  m.Last,
		Phone:     m.Phone,
		Period:    m.Period,
		Joined:    dates.Format(m.Joined),
		Expires:   dates.Format(m.Expires),
		Status:    m.Status,
	}
	if !m.RenewedOn.IsZero() {
		resp.RenewedOn = dates.Format(m.RenewedOn)
	}
	if !m.Migrated.IsZero() {
		migrated := m.Migrated
		resp.Migrated = &migrated
	}
	return resp
}
