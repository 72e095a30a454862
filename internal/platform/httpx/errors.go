package httpx

import (
	"errors"
	"net/http"

	"github.com/ventadesk/ventadesk/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807. The status
// distinguishes "fix your input" (400/422), "not valid right now" (409) and
// "the backend could not complete this" (502).
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrPrecondition):
		Problem(w, http.StatusUnprocessableEntity, "Precondition Not Met", err.Error())
	case errors.Is(err, shared.ErrInvalidState):
		Problem(w, http.StatusConflict, "Invalid State", err.Error())
	case errors.Is(err, shared.ErrRemote):
		Problem(w, http.StatusBadGateway, "Upstream Failure", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
