package member

import (
	"strings"
	"time"
)

// Legacy represents an imported member row from the previous system.
// Field names follow the import sheet; fields not listed here are not
// carried through migration.
type Legacy struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	First     string    `json:"first_name"`
	Last      string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Period    int       `json:"period_years"`
	Joined    time.Time `json:"joined"`
	Expires   time.Time `json:"expires"`
	RenewedOn time.Time `json:"renewed_on,omitzero"`
	Status    string    `json:"status"`
	Migrated  time.Time `json:"migrated,omitzero"`

	// The import sheet records consent as a single "share me" answer
	// plus per-field opt-outs, normalized here to booleans.
	ShareName  bool `json:"share_name"`
	ShareEmail bool `json:"share_email"`
	SharePhone bool `json:"share_phone"`
}

// IsActive reports whether the legacy row claims an active membership.
// Legacy status values are free text, so the test is case-insensitive.
func (l *Legacy) IsActive() bool {
	return strings.EqualFold(strings.TrimSpace(l.Status), string(StatusActive))
}
