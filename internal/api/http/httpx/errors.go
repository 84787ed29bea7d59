package httpx

import (
	"errors"
	"net/http"

	"github.com/dtroode/authkeeper/internal/model"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
// Store failures and unknown errors are reported without detail.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		Problem(w, http.StatusBadRequest, "Invalid Credentials", err.Error())
	case errors.Is(err, model.ErrDuplicateAccount):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, model.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", "account not found")
	case errors.Is(err, model.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, model.ErrInvalidTransition):
		Problem(w, http.StatusConflict, "Invalid Transition", err.Error())
	case errors.Is(err, model.ErrInvalidToken):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
