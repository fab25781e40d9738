package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/clubstack/membership-backend-go/internal/domain/lifecycle"
	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/domain/schedule"
	"github.com/clubstack/membership-backend-go/internal/domain/transaction"
	"github.com/clubstack/membership-backend-go/internal/pkg/database"
	"github.com/clubstack/membership-backend-go/internal/pkg/email"
	"github.com/clubstack/membership-backend-go/internal/pkg/groups"
	"github.com/clubstack/membership-backend-go/internal/repository/postgresql"
	"github.com/clubstack/membership-backend-go/internal/service/dates"
	schedulesvc "github.com/clubstack/membership-backend-go/internal/service/schedule"
)

type lifecycleService struct {
	db           *database.DB
	members      member.Repository
	migrators    member.MigratorRepository
	transactions transaction.Repository
	schedule     schedule.Repository

	specs       schedule.SpecTable
	groupEmails []string

	txProc  *TransactionProcessor
	expProc *ExpirationProcessor
	migProc *MigrationProcessor

	// clock supplies "today"; injected so runs are deterministic and
	// replayable in tests
	clock func() time.Time
}

// NewService wires the engine against the store. clock supplies the
// run date; production passes time.Now.
func NewService(
	db *database.DB,
	members member.Repository,
	migrators member.MigratorRepository,
	transactions transaction.Repository,
	scheduleRepo schedule.Repository,
	specs schedule.SpecTable,
	groupEmails []string,
	mailer email.Mailer,
	dir groups.Directory,
	clock func() time.Time,
) lifecycle.Service {
	manager := schedulesvc.NewManager()
	return &lifecycleService{
		db:           db,
		members:      members,
		migrators:    migrators,
		transactions: transactions,
		schedule:     scheduleRepo,
		specs:        specs,
		groupEmails:  groupEmails,
		txProc:       NewTransactionProcessor(manager, mailer, dir),
		expProc:      NewExpirationProcessor(mailer, dir),
		migProc:      NewMigrationProcessor(manager, mailer, dir),
		clock:        clock,
	}
}

func (s *lifecycleService) today() time.Time {
	return dates.Normalize(s.clock())
}

func (s *lifecycleService) loadWorkingSet(ctx context.Context) (*WorkingSet, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	entries, err := s.schedule.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	return &WorkingSet{Members: members, Schedule: entries}, nil
}

// persist writes the mutated working set back in one transaction. It
// runs even when the pass collected record errors: changes applied by
// successful records are kept, there is no batch-wide rollback.
func (s *lifecycleService) persist(ctx context.Context, ws *WorkingSet, fn func(txCtx context.Context) error) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		if err := s.members.SaveAll(txCtx, ws.Members); err != nil {
			return fmt.Errorf("save members: %w", err)
		}
		if err := s.schedule.ReplaceAll(txCtx, ws.Schedule); err != nil {
			return fmt.Errorf("save schedule: %w", err)
		}
		if fn != nil {
			return fn(txCtx)
		}
		return nil
	})
}

func (s *lifecycleService) ProcessTransactions(ctx context.Context) (lifecycle.TransactionReport, error) {
	today := s.today()

	txns, err := s.transactions.ListOpen(ctx)
	if err != nil {
		return lifecycle.TransactionReport{}, fmt.Errorf("load open transactions: %w", err)
	}
	ws, err := s.loadWorkingSet(ctx)
	if err != nil {
		return lifecycle.TransactionReport{}, err
	}

	report, runErr := s.txProc.Process(ctx, ws, txns, s.specs, s.groupEmails, today)

	err = s.persist(ctx, ws, func(txCtx context.Context) error {
		// ListOpen returned only unprocessed rows, so a stamped one
		// was stamped by this pass.
		for _, t := range txns {
			if !t.IsProcessed() {
				continue
			}
			if err := s.transactions.MarkProcessed(txCtx, t.ID, t.Processed); err != nil {
				return fmt.Errorf("mark transaction %s processed: %w", t.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return report, err
	}
	return report, runErr
}

func (s *lifecycleService) ProcessDueActions(ctx context.Context) (lifecycle.ExpirationReport, error) {
	today := s.today()

	ws, err := s.loadWorkingSet(ctx)
	if err != nil {
		return lifecycle.ExpirationReport{}, err
	}

	report, runErr := s.expProc.Process(ctx, ws, s.specs, s.groupEmails, today)

	if err := s.persist(ctx, ws, nil); err != nil {
		return report, err
	}
	return report, runErr
}

func (s *lifecycleService) MigrateLegacyMembers(ctx context.Context) (lifecycle.MigrationReport, error) {
	today := s.today()

	legacies, err := s.migrators.ListUnmigrated(ctx)
	if err != nil {
		return lifecycle.MigrationReport{}, fmt.Errorf("load legacy members: %w", err)
	}
	ws, err := s.loadWorkingSet(ctx)
	if err != nil {
		return lifecycle.MigrationReport{}, err
	}

	report, runErr := s.migProc.Process(ctx, ws, legacies, s.specs, s.groupEmails, today)

	err = s.persist(ctx, ws, func(txCtx context.Context) error {
		for _, l := range legacies {
			if l.Migrated.IsZero() {
				continue
			}
			if err := s.migrators.MarkMigrated(txCtx, l); err != nil {
				return fmt.Errorf("mark legacy row %s migrated: %w", l.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return report, err
	}
	return report, runErr
}
