package template

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clubstack/membership-backend-go/internal/domain/member"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	m := member.Member{
		Email:   "pat@example.com",
		First:   "Pat",
		Last:    "Jones",
		Phone:   "555-0100",
		Period:  2,
		Status:  member.StatusActive,
		Joined:  time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Expires: time.Date(2027, time.March, 10, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"plain text", "no tokens here", "no tokens here"},
		{"name fields", "Hi {First} {Last}", "Hi Pat Jones"},
		{"full name", "Dear {FullName},", "Dear Pat Jones,"},
		{"alias tokens", "{FirstName}/{LastName}/{Name}", "Pat/Jones/Pat Jones"},
		{"contact", "{Email} {Phone}", "pat@example.com 555-0100"},
		{"period and status", "{Period} year(s), {Status}", "2 year(s), active"},
		{"dates in locale form", "joined {Joined}, expires {Expires}", "joined March 10, 2025, expires March 10, 2027"},
		{"unset date", "renewed: {RenewedOn}.", "renewed: ."},
		{"unknown token", "x{Bogus}y", "xy"},
		{"repeated token", "{First} and {First}", "Pat and Pat"},
		{"malformed token left alone", "{First name}", "{First name}"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Expand(tt.tmpl, m))
		})
	}
}
