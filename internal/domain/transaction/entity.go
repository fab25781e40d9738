package transaction

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one payment record from the payment sheet.
// Rows are human-entered: PayableStatus and Payment are free text and
// are parsed leniently rather than validated.
type Transaction struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	First         string          `json:"first_name"`
	Last          string          `json:"last_name"`
	Phone         string          `json:"phone"`
	PayableStatus string          `json:"payable_status"`
	Payment       string          `json:"payment"`
	Amount        decimal.Decimal `json:"amount"`
	Processed     time.Time       `json:"processed,omitzero"`
	Timestamp     time.Time       `json:"timestamp,omitzero"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DefaultPeriodYears is used when the Payment text carries no usable
// period term.
const DefaultPeriodYears = 1

var periodRe = regexp.MustCompile(`(?i)(\d+)\s*year`)

// IsPaid reports whether the payable status marks this transaction as
// paid. The sheet holds values like "Paid", "paid on 3/4", "Pending".
func (t *Transaction) IsPaid() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(t.PayableStatus)), "paid")
}

// IsProcessed reports whether this transaction has already been
// applied. Processed transactions are immutable.
func (t *Transaction) IsProcessed() bool {
	return !t.Processed.IsZero()
}

// PeriodYears extracts the membership period from the Payment text:
// the first integer immediately preceding the word "year", e.g.
// "2 years" -> 2. Missing or unparsable text defaults to one year.
func (t *Transaction) PeriodYears() int {
	m := periodRe.FindStringSubmatch(t.Payment)
	if m == nil {
		return DefaultPeriodYears
	}
	years, err := strconv.Atoi(m[1])
	if err != nil || years < 1 {
		return DefaultPeriodYears
	}
	return years
}
