package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/clubstack/membership-backend-go/internal/domain/lifecycle"
	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/domain/schedule"
	"github.com/clubstack/membership-backend-go/internal/domain/transaction"
	"github.com/clubstack/membership-backend-go/internal/pkg/email"
	"github.com/clubstack/membership-backend-go/internal/pkg/groups"
	"github.com/clubstack/membership-backend-go/internal/pkg/template"
	"github.com/clubstack/membership-backend-go/internal/service/dates"
	schedulesvc "github.com/clubstack/membership-backend-go/internal/service/schedule"
)

// TransactionProcessor consumes a batch of payment transactions and
// applies new joins and renewals to the working set.
type TransactionProcessor struct {
	schedules *schedulesvc.Manager
	mailer    email.Mailer
	groups    groups.Directory
}

func NewTransactionProcessor(schedules *schedulesvc.Manager, mailer email.Mailer, dir groups.Directory) *TransactionProcessor {
	return &TransactionProcessor{
		schedules: schedules,
		mailer:    mailer,
		groups:    dir,
	}
}

// Process runs one pass over the transaction batch. Transactions
// already stamped Processed are skipped; unpaid ones stay open for a
// future run. A failing record is tagged with its row number and
// email, collected into the aggregate error, and does not stop the
// batch; changes applied by the records that succeeded stay applied.
func (p *TransactionProcessor) Process(ctx context.Context, ws *WorkingSet, txns []transaction.Transaction, specs schedule.SpecTable, groupEmails []string, today time.Time) (lifecycle.TransactionReport, error) {
	today = dates.Normalize(today)
	report := lifecycle.TransactionReport{Today: today}

	var errs *multierror.Error
	for i := range txns {
		t := &txns[i]
		if t.IsProcessed() {
			continue
		}
		if !t.IsPaid() {
			report.PendingPayments = true
			continue
		}

		renewed, err := p.apply(ctx, ws, t, specs, groupEmails, today)
		if err != nil {
			recErr := lifecycle.NewRecordError(i, t.Email, err)
			slog.Error("Transaction failed", "row", recErr.Row, "email", t.Email, "error", err)
			errs = multierror.Append(errs, recErr)
			report.Errors = append(report.Errors, recErr.Error())
			continue
		}

		// Stamped only after every step succeeded; a processed
		// transaction is never examined again.
		t.Processed = today
		t.Timestamp = today

		report.RecordsChanged++
		report.AmountCollected = report.AmountCollected.Add(t.Amount)
		if renewed {
			report.Renewals++
		} else {
			report.Joins++
		}
	}

	return report, errs.ErrorOrNil()
}

// apply handles one paid transaction and reports whether it was a
// renewal (true) or a new join (false).
func (p *TransactionProcessor) apply(ctx context.Context, ws *WorkingSet, t *transaction.Transaction, specs schedule.SpecTable, groupEmails []string, today time.Time) (bool, error) {
	period := t.PeriodYears()

	if existing := ws.FindActive(t.Email); existing != nil {
		return true, p.renew(existing, ws, period, specs, today)
	}
	return false, p.join(ctx, ws, t, period, specs, groupEmails, today)
}

func (p *TransactionProcessor) renew(mem *member.Member, ws *WorkingSet, period int, specs schedule.SpecTable, today time.Time) error {
	mem.Period = period
	mem.RenewedOn = today
	mem.Expires = dates.CalculateExpiration(today, mem.Expires, period)

	entries := p.schedules.Build(*mem, specs, today, schedulesvc.BuildOptions{})
	ws.Schedule = p.schedules.ReplaceForMember(ws.Schedule, mem.Email, entries)

	if err := p.notify(*mem, specs, schedule.ActionRenew); err != nil {
		return err
	}

	slog.Info("Member renewed", "email", mem.Email, "period_years", period, "expires", dates.Format(mem.Expires))
	return nil
}

func (p *TransactionProcessor) join(ctx context.Context, ws *WorkingSet, t *transaction.Transaction, period int, specs schedule.SpecTable, groupEmails []string, today time.Time) error {
	// An expired row with the same email stays in place as history;
	// members are appended, never overwritten.
	mem := member.Member{
		ID:      uuid.NewString(),
		Email:   t.Email,
		First:   t.First,
		Last:    t.Last,
		Phone:   t.Phone,
		Period:  period,
		Joined:  today,
		Expires: dates.CalculateExpiration(today, today, period),
		Status:  member.StatusActive,
	}
	// Side effects run before the row and its schedule are registered:
	// a record that fails here leaves no trace in the working set, so
	// the unstamped transaction retries as a join again instead of
	// renewing its own half-applied row.
	for _, group := range groupEmails {
		if err := p.groups.Add(ctx, mem.Email, group); err != nil {
			return fmt.Errorf("add to group %s: %w", group, err)
		}
	}
	if err := p.notify(mem, specs, schedule.ActionJoin); err != nil {
		return err
	}

	ws.Members = append(ws.Members, mem)
	entries := p.schedules.Build(mem, specs, today, schedulesvc.BuildOptions{})
	ws.Schedule = p.schedules.ReplaceForMember(ws.Schedule, mem.Email, entries)

	slog.Info("Member joined", "email", mem.Email, "period_years", period, "expires", dates.Format(mem.Expires))
	return nil
}

func (p *TransactionProcessor) notify(mem member.Member, specs schedule.SpecTable, action schedule.ActionType) error {
	spec, ok := specs[action]
	if !ok {
		return fmt.Errorf("%w: %s", schedule.ErrSpecNotFound, action)
	}
	msg := email.Message{
		To:       mem.Email,
		Subject:  template.Expand(spec.Subject, mem),
		HTMLBody: template.Expand(spec.Body, mem),
	}
	if err := p.mailer.Send(msg); err != nil {
		return fmt.Errorf("send %s notification: %w", action, err)
	}
	return nil
}
