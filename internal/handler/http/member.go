package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/handler/http/response"
)

// MemberHandler exposes read access to the membership roll
type MemberHandler interface {
	ListMembers(w http.ResponseWriter, r *http.Request)
	GetMember(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
}

type memberHandlerImpl struct {
	memberService member.Service
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService member.Service) MemberHandler {
	return &memberHandlerImpl{memberService: memberService}
}

// ListMembers retrieves all member rows, history included
// GET /api/v1/members
func (h *memberHandlerImpl) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberService.ListMembers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, members)
}

// GetMember retrieves the active member row for an email
// GET /api/v1/members/{email}
func (h *memberHandlerImpl) GetMember(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	m, err := h.memberService.GetMember(r.Context(), email)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, m)
}

// GetStats summarizes the roll and the pending schedule
// GET /api/v1/stats
func (h *memberHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.memberService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}
