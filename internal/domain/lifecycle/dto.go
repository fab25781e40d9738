package lifecycle

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionReport summarizes one transaction-processing run
type TransactionReport struct {
	Today           time.Time       `json:"today"`
	RecordsChanged  int             `json:"records_changed"`
	Joins           int             `json:"joins"`
	Renewals        int             `json:"renewals"`
	PendingPayments bool            `json:"pending_payments"`
	AmountCollected decimal.Decimal `json:"amount_collected"`
	Errors          []string        `json:"errors,omitempty"`
}

// ExpirationReport summarizes one due-action run
type ExpirationReport struct {
	Today             time.Time `json:"today"`
	EntriesProcessed  int       `json:"entries_processed"`
	NotificationsSent int       `json:"notifications_sent"`
	MembersExpired    int       `json:"members_expired"`
	Errors            []string  `json:"errors,omitempty"`
}

// MigrationReport summarizes one legacy-migration run
type MigrationReport struct {
	Today    time.Time `json:"today"`
	Migrated int       `json:"migrated"`
	Skipped  int       `json:"skipped"`
	Errors   []string  `json:"errors,omitempty"`
}
