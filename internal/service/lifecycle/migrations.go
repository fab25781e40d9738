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
	"github.com/clubstack/membership-backend-go/internal/pkg/email"
	"github.com/clubstack/membership-backend-go/internal/pkg/groups"
	"github.com/clubstack/membership-backend-go/internal/pkg/template"
	"github.com/clubstack/membership-backend-go/internal/service/dates"
	schedulesvc "github.com/clubstack/membership-backend-go/internal/service/schedule"
)

// MigrationProcessor converts legacy member rows into canonical
// members and seeds their forward schedule. Join-equivalent side
// effects happen only for rows whose legacy status is active.
type MigrationProcessor struct {
	schedules *schedulesvc.Manager
	mailer    email.Mailer
	groups    groups.Directory
}

func NewMigrationProcessor(schedules *schedulesvc.Manager, mailer email.Mailer, dir groups.Directory) *MigrationProcessor {
	return &MigrationProcessor{
		schedules: schedules,
		mailer:    mailer,
		groups:    dir,
	}
}

// Process runs one pass over the legacy rows, mutating them in place
// (Migrated stamp) and appending converted members to the working set.
// Rows already migrated, without an email, or colliding with an active
// member are logged and skipped. Side-effect failures are collected
// per row; the row stays migrated, matching the no-rollback contract
// of the rest of the engine.
func (p *MigrationProcessor) Process(ctx context.Context, ws *WorkingSet, legacies []member.Legacy, specs schedule.SpecTable, groupEmails []string, today time.Time) (lifecycle.MigrationReport, error) {
	today = dates.Normalize(today)
	report := lifecycle.MigrationReport{Today: today}

	var errs *multierror.Error
	for i := range legacies {
		l := &legacies[i]
		switch {
		case !l.Migrated.IsZero():
			report.Skipped++
			continue
		case l.Email == "":
			slog.Warn("Legacy row without email, skipping", "row", i+2)
			report.Skipped++
			continue
		case ws.FindActive(l.Email) != nil:
			slog.Warn("Active member already exists, skipping legacy row", "email", l.Email)
			report.Skipped++
			continue
		}

		l.Migrated = today
		mem := canonicalize(l, today)
		ws.Members = append(ws.Members, mem)
		report.Migrated++

		if !l.IsActive() {
			// Record conversion only: no groups, no notification, no
			// schedule for a lapsed import.
			continue
		}

		if err := p.activate(ctx, ws, mem, specs, groupEmails, today); err != nil {
			recErr := lifecycle.NewRecordError(i, l.Email, err)
			slog.Error("Legacy activation failed", "row", recErr.Row, "email", l.Email, "error", err)
			errs = multierror.Append(errs, recErr)
			report.Errors = append(report.Errors, recErr.Error())
		}
	}

	return report, errs.ErrorOrNil()
}

// canonicalize maps the legacy allow-list onto the canonical member
// shape. Fields outside the allow-list are not carried over.
func canonicalize(l *member.Legacy, today time.Time) member.Member {
	status := member.StatusExpired
	if l.IsActive() {
		status = member.StatusActive
	}
	period := l.Period
	if period < 1 {
		period = 1
	}
	return member.Member{
		ID:         uuid.NewString(),
		Email:      l.Email,
		First:      l.First,
		Last:       l.Last,
		Phone:      l.Phone,
		Period:     period,
		Joined:     l.Joined,
		Expires:    l.Expires,
		RenewedOn:  l.RenewedOn,
		Status:     status,
		Migrated:   today,
		ShareName:  l.ShareName,
		ShareEmail: l.ShareEmail,
		SharePhone: l.SharePhone,
	}
}

func (p *MigrationProcessor) activate(ctx context.Context, ws *WorkingSet, mem member.Member, specs schedule.SpecTable, groupEmails []string, today time.Time) error {
	for _, group := range groupEmails {
		if err := p.groups.Add(ctx, mem.Email, group); err != nil {
			return fmt.Errorf("add to group %s: %w", group, err)
		}
	}

	spec, ok := specs[schedule.ActionMigrate]
	if !ok {
		return fmt.Errorf("%w: %s", schedule.ErrSpecNotFound, schedule.ActionMigrate)
	}
	msg := email.Message{
		To:       mem.Email,
		Subject:  template.Expand(spec.Subject, mem),
		HTMLBody: template.Expand(spec.Body, mem),
	}
	if err := p.mailer.Send(msg); err != nil {
		return fmt.Errorf("send migrate notification: %w", err)
	}

	// Offsets that already elapsed relative to today are suppressed so
	// an imported member is not flooded with stale expiry notices.
	entries := p.schedules.Build(mem, specs, today, schedulesvc.BuildOptions{SuppressPast: true})
	ws.Schedule = p.schedules.ReplaceForMember(ws.Schedule, mem.Email, entries)

	slog.Info("Legacy member migrated", "email", mem.Email, "expires", dates.Format(mem.Expires))
	return nil
}
