package member

import "time"

// Response is the API shape of a member row
type Response struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Phone     string     `json:"phone,omitempty"`
	Period    int        `json:"period_years"`
	Joined    string     `json:"joined"`
	Expires   string     `json:"expires"`
	RenewedOn string     `json:"renewed_on,omitempty"`
	Status    Status     `json:"status"`
	Migrated  *time.Time `json:"migrated,omitempty"`
}

// StatsResponse summarizes the membership roll
type StatsResponse struct {
	TotalMembers   int `json:"total_members"`
	ActiveMembers  int `json:"active_members"`
	ExpiredMembers int `json:"expired_members"`
	PendingActions int `json:"pending_actions"`
}
