package schedule

import (
	"sort"
	"strings"
	"time"
)

// ActionType identifies one kind of scheduled lifecycle action
type ActionType string

const (
	ActionJoin    ActionType = "Join"
	ActionRenew   ActionType = "Renew"
	ActionMigrate ActionType = "Migrate"
	ActionExpiry1 ActionType = "Expiry1"
	ActionExpiry2 ActionType = "Expiry2"
	ActionExpiry3 ActionType = "Expiry3"
	ActionExpiry4 ActionType = "Expiry4"
)

// TerminalAction is the stage that moves a member to expired. Earlier
// Expiry stages are notification-only.
const TerminalAction = ActionExpiry4

// IsExpiry reports whether this action is one of the Expiry stages
func (a ActionType) IsExpiry() bool {
	return strings.HasPrefix(string(a), "Expiry")
}

// IsTerminal reports whether this action expires the member
func (a ActionType) IsTerminal() bool {
	return a == TerminalAction
}

// Entry represents one pending notification/transition for a member
type Entry struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Type  ActionType `json:"type"`
	Date  time.Time  `json:"date"`
}

// ActionSpec describes one action type: the notification templates and
// the day offset relative to the member's expiration date. Immediate
// actions (Join, Renew, Migrate) carry no offset.
type ActionSpec struct {
	Type       ActionType `json:"type" yaml:"type"`
	Subject    string     `json:"subject" yaml:"subject"`
	Body       string     `json:"body" yaml:"body"`
	OffsetDays int        `json:"offset_days" yaml:"offset_days"`
}

// SpecTable is the run-level action configuration, keyed by type
type SpecTable map[ActionType]ActionSpec

// ExpirySpecs returns the Expiry* specs ordered by offset
func (t SpecTable) ExpirySpecs() []ActionSpec {
	specs := make([]ActionSpec, 0, len(t))
	for _, spec := range t {
		if spec.Type.IsExpiry() {
			specs = append(specs, spec)
		}
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].OffsetDays < specs[j].OffsetDays })
	return specs
}
