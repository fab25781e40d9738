package response

import (
	"errors"
	"net/http"

	"github.com/clubstack/membership-backend-go/internal/domain/member"
	"github.com/clubstack/membership-backend-go/internal/domain/transaction"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, member.ErrMemberNotFound):
		NotFound(w, "Member not found")
	case errors.Is(err, member.ErrMissingEmail):
		BadRequest(w, "Member email is required")
	case errors.Is(err, member.ErrAlreadyActive):
		Conflict(w, "An active member with this email already exists")
	case errors.Is(err, transaction.ErrTransactionNotFound):
		NotFound(w, "Transaction not found")
	case errors.Is(err, transaction.ErrAlreadyProcessed):
		Conflict(w, "Transaction has already been processed")
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
