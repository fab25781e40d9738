package member

import "time"

// Status represents the lifecycle status of a member
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// Member represents a club member. Rows are append-only: a lapsed
// member who rejoins gets a fresh row and the expired row stays as
// history, so Email alone is not a primary key.
type Member struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	First     string    `json:"first_name"`
	Last      string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Period    int       `json:"period_years"`
	Joined    time.Time `json:"joined"`
	Expires   time.Time `json:"expires"`
	RenewedOn time.Time `json:"renewed_on,omitzero"`
	Status    Status    `json:"status"`
	Migrated  time.Time `json:"migrated,omitzero"`

	// Public-directory sharing consents
	ShareName  bool `json:"share_name"`
	ShareEmail bool `json:"share_email"`
	SharePhone bool `json:"share_phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the member's display name
func (m *Member) FullName() string {
	switch {
	case m.First == "":
		return m.Last
	case m.Last == "":
		return m.First
	}
	return m.First + " " + m.Last
}

// IsActive reports whether the member is in the active state
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}
