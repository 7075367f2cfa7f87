package httpx

import (
	"net/http"

	apperrors "github.com/talentflow/ui-api/internal/errors"
)

// statusForCode maps application error codes to HTTP statuses. Injected
// failures are deliberately indistinguishable from real server faults, so
// clients exercise the same retry and rollback paths for both.
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeConflict:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError renders a service-layer error as a JSON response. The body
// carries the application error code, not the HTTP status, so clients can
// tell a validation rejection from a slug conflict even though both are 400s.
func WriteAppError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	WriteError(w, ErrorParams{Code: statusForCode(code), ErrCode: string(code), Err: err})
}
