package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"GymMembershipServer/internal/domain"
)

type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`

	Blocked bool `json:"blocked,omitempty"`
	Pending bool `json:"pending,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, errorBody{Error: message, Code: code})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteDomainError maps domain sentinels to status codes. Anything it does
// not recognize is a 500 with a generic message.
func WriteDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request", Code: "validation_error", Fields: verr.Fields})
	case errors.Is(err, domain.ErrValidation):
		WriteError(w, http.StatusBadRequest, "validation_error", "invalid request")
	case errors.Is(err, domain.ErrEmailTaken):
		WriteError(w, http.StatusConflict, "email_taken", "email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
	case errors.Is(err, domain.ErrAccountBlocked):
		WriteJSON(w, http.StatusForbidden, errorBody{Error: "account blocked", Code: "account_blocked", Blocked: true})
	case errors.Is(err, domain.ErrAccountPending):
		WriteJSON(w, http.StatusForbidden, errorBody{Error: "pending admin approval", Code: "account_pending", Pending: true})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrTokenInvalid):
		WriteError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		WriteError(w, http.StatusForbidden, "forbidden", "forbidden")
	case errors.Is(err, domain.ErrResetTokenInvalid):
		WriteError(w, http.StatusBadRequest, "reset_token_invalid", "invalid or expired reset token")
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "not found")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// writeErr is WriteDomainError plus a log line for unexpected errors.
func (a *api) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	if !isDomainError(err) {
		fields := []any{"method", r.Method, "path", r.URL.Path, "err", err}
		if rid, ok := GetRequestID(r.Context()); ok {
			fields = append(fields, "request_id", rid)
		}
		a.logger.ErrorContext(r.Context(), "request failed", fields...)
	}
	WriteDomainError(w, err)
}

func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrValidation,
		domain.ErrEmailTaken,
		domain.ErrInvalidCredentials,
		domain.ErrAccountBlocked,
		domain.ErrAccountPending,
		domain.ErrUnauthorized,
		domain.ErrTokenInvalid,
		domain.ErrForbidden,
		domain.ErrResetTokenInvalid,
		domain.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeSuccess(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, successResponse{Success: true})
}
