package http

import (
	"net/http"

	"github.com/clubstack/membership-backend-go/internal/domain/lifecycle"
	"github.com/clubstack/membership-backend-go/internal/domain/schedule"
	"github.com/clubstack/membership-backend-go/internal/handler/http/response"
)

// LifecycleHandler triggers engine runs and exposes the pending
// schedule
type LifecycleHandler interface {
	ProcessTransactions(w http.ResponseWriter, r *http.Request)
	ProcessDueActions(w http.ResponseWriter, r *http.Request)
	MigrateLegacyMembers(w http.ResponseWriter, r *http.Request)
	GetSchedule(w http.ResponseWriter, r *http.Request)
}

type lifecycleHandlerImpl struct {
	lifecycleService lifecycle.Service
	scheduleRepo     schedule.Repository
}

// NewLifecycleHandler creates a new lifecycle handler
func NewLifecycleHandler(lifecycleService lifecycle.Service, scheduleRepo schedule.Repository) LifecycleHandler {
	return &lifecycleHandlerImpl{
		lifecycleService: lifecycleService,
		scheduleRepo:     scheduleRepo,
	}
}

// ProcessTransactions runs one transaction-processing pass
// POST /api/v1/lifecycle/transactions/process
func (h *lifecycleHandlerImpl) ProcessTransactions(w http.ResponseWriter, r *http.Request) {
	report, err := h.lifecycleService.ProcessTransactions(r.Context())
	if err != nil {
		// Record errors leave the run's applied changes persisted, so
		// the report is returned alongside them.
		if len(report.Errors) > 0 {
			response.PartialFailure(w, report, report.Errors)
			return
		}
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}

// ProcessDueActions runs one due-action pass
// POST /api/v1/lifecycle/expirations/process
func (h *lifecycleHandlerImpl) ProcessDueActions(w http.ResponseWriter, r *http.Request) {
	report, err := h.lifecycleService.ProcessDueActions(r.Context())
	if err != nil {
		if len(report.Errors) > 0 {
			response.PartialFailure(w, report, report.Errors)
			return
		}
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}

// MigrateLegacyMembers runs one legacy-migration pass
// POST /api/v1/lifecycle/migrations/process
func (h *lifecycleHandlerImpl) MigrateLegacyMembers(w http.ResponseWriter, r *http.Request) {
	report, err := h.lifecycleService.MigrateLegacyMembers(r.Context())
	if err != nil {
		if len(report.Errors) > 0 {
			response.PartialFailure(w, report, report.Errors)
			return
		}
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}

// GetSchedule lists the pending action schedule
// GET /api/v1/schedule
func (h *lifecycleHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scheduleRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}
