package cron

import (
	"context"
	"time"

	"github.com/clubstack/membership-backend-go/internal/domain/lifecycle"
)

// LifecycleJobs contains the membership lifecycle cron jobs
type LifecycleJobs struct {
	lifecycleService lifecycle.Service
}

// NewLifecycleJobs creates lifecycle cron jobs
func NewLifecycleJobs(lifecycleService lifecycle.Service) *LifecycleJobs {
	return &LifecycleJobs{
		lifecycleService: lifecycleService,
	}
}

// RegisterJobs registers all lifecycle cron jobs
func (j *LifecycleJobs) RegisterJobs(scheduler *Scheduler) {
	// Apply newly paid transactions every hour
	scheduler.AddJob(
		"process_transactions",
		1*time.Hour,
		j.ProcessTransactions,
	)

	// Fire due notifications and expirations every 6 hours
	scheduler.AddJob(
		"process_due_actions",
		6*time.Hour,
		j.ProcessDueActions,
	)

	// Sweep the legacy import daily
	scheduler.AddJob(
		"migrate_legacy_members",
		24*time.Hour,
		j.MigrateLegacyMembers,
	)
}

// ProcessTransactions turns paid transactions into joins and renewals
func (j *LifecycleJobs) ProcessTransactions(ctx context.Context) error {
	_, err := j.lifecycleService.ProcessTransactions(ctx)
	return err
}

// ProcessDueActions fires due stage notifications and expirations
func (j *LifecycleJobs) ProcessDueActions(ctx context.Context) error {
	_, err := j.lifecycleService.ProcessDueActions(ctx)
	return err
}

// MigrateLegacyMembers converts unmigrated legacy rows
func (j *LifecycleJobs) MigrateLegacyMembers(ctx context.Context) error {
	_, err := j.lifecycleService.MigrateLegacyMembers(ctx)
	return err
}
