package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/clubstack/membership-backend-go/internal/domain/lifecycle"
	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/domain/schedule"
	"github.com/clubstack/membership-backend-go/internal/pkg/email"
	"github.com/clubstack/membership-backend-go/internal/pkg/groups"
	"github.com/clubstack/membership-backend-go/internal/pkg/template"
	"github.com/clubstack/membership-backend-go/internal/service/dates"
	schedulesvc "github.com/clubstack/membership-backend-go/internal/service/schedule"
)

// ExpirationProcessor consumes due schedule entries. Expiry1..3 are
// notification-only; the terminal stage flips the member to expired,
// removes them from every group, and purges their remaining entries.
type ExpirationProcessor struct {
	mailer email.Mailer
	groups groups.Directory
}

func NewExpirationProcessor(mailer email.Mailer, dir groups.Directory) *ExpirationProcessor {
	return &ExpirationProcessor{
		mailer: mailer,
		groups: dir,
	}
}

// Process retires every schedule entry dated on or before today and
// fires at most one stage per member per run. When several stages for
// one member are simultaneously due, the later-dated (terminal-most)
// stage wins and the rest are discarded without sending.
func (p *ExpirationProcessor) Process(ctx context.Context, ws *WorkingSet, specs schedule.SpecTable, groupEmails []string, today time.Time) (lifecycle.ExpirationReport, error) {
	today = dates.Normalize(today)
	report := lifecycle.ExpirationReport{Today: today}

	due := make([]schedule.Entry, 0)
	for _, e := range ws.Schedule {
		if dates.OnOrBefore(e.Date, today) {
			due = append(due, e)
		}
	}
	// Descending date, ties broken by descending type name, so the
	// latest stage for a member is visited first within the run.
	sort.Slice(due, func(i, j int) bool {
		if !due[i].Date.Equal(due[j].Date) {
			return due[i].Date.After(due[j].Date)
		}
		return due[i].Type > due[j].Type
	})

	var errs *multierror.Error
	handled := make(map[string]bool)
	for _, entry := range due {
		// Retire the entry before doing anything with it so it can
		// never re-trigger.
		ws.Schedule = removeEntryByID(ws.Schedule, entry.ID)
		report.EntriesProcessed++

		if handled[entry.Email] {
			slog.Info("Stage already handled for member this run, skipping",
				"email", entry.Email, "type", entry.Type, "date", dates.Format(entry.Date))
			continue
		}
		handled[entry.Email] = true

		mem := ws.FindActive(entry.Email)
		if mem == nil {
			// Data drift: the entry is retired anyway so it cannot
			// re-trigger forever.
			slog.Warn("Schedule entry references unknown member",
				"email", entry.Email, "type", entry.Type)
			continue
		}

		if err := p.fire(ctx, ws, mem, entry, specs, groupEmails, &report); err != nil {
			slog.Error("Due action failed", "email", entry.Email, "type", entry.Type, "error", err)
			errs = multierror.Append(errs, fmt.Errorf("%s %s: %w", entry.Type, entry.Email, err))
			report.Errors = append(report.Errors, fmt.Sprintf("%s %s: %v", entry.Type, entry.Email, err))
		}
	}

	return report, errs.ErrorOrNil()
}

func (p *ExpirationProcessor) fire(ctx context.Context, ws *WorkingSet, mem *member.Member, entry schedule.Entry, specs schedule.SpecTable, groupEmails []string, report *lifecycle.ExpirationReport) error {
	spec, ok := specs[entry.Type]
	if !ok {
		return fmt.Errorf("%w: %s", schedule.ErrSpecNotFound, entry.Type)
	}

	msg := email.Message{
		To:       mem.Email,
		Subject:  template.Expand(spec.Subject, *mem),
		HTMLBody: template.Expand(spec.Body, *mem),
	}
	if err := p.mailer.Send(msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	report.NotificationsSent++

	if !entry.Type.IsTerminal() {
		return nil
	}

	mem.Status = member.StatusExpired
	// A member who just fully expired must not receive further
	// notifications from stale entries.
	ws.Schedule = schedulesvc.RemoveForMember(ws.Schedule, mem.Email)

	var errs *multierror.Error
	for _, group := range groupEmails {
		if err := p.groups.Remove(ctx, mem.Email, group); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("remove from group %s: %w", group, err))
		}
	}

	report.MembersExpired++
	slog.Info("Member expired", "email", mem.Email, "expired_on", dates.Format(entry.Date))
	return errs.ErrorOrNil()
}
