package httpapi

import (
	"net/http"
	"time"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// resetPasswordRequest accepts the new password as either "password" or
// "newPassword"; "password" wins when both are set.
type resetPasswordRequest struct {
	Token       string `json:"token"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

func (req resetPasswordRequest) newPassword() string {
	if req.Password != "" {
		return req.Password
	}
	return req.NewPassword
}

const forgotPasswordMessage = "If that email exists, a reset link has been sent."

// handleAuthForgot answers every well-formed request with the same body, so
// the response never tells whether the email is registered.
func (a *api) handleAuthForgot(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	email := normalizeEmail(req.Email)
	if email == "" {
		WriteError(w, http.StatusBadRequest, "validation_error", "email is required")
		return
	}

	now := time.Now()
	if !a.loginLimiter.Allow("forgot:ip:"+clientIP(r), now) || !a.loginLimiter.Allow("forgot:email:"+email, now) {
		WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many attempts")
		return
	}

	if err := a.resetSvc.Request(r.Context(), email); err != nil {
		a.logger.ErrorContext(r.Context(), "password reset request failed", "err", err)
	}
	WriteJSON(w, http.StatusOK, successResponse{Success: true, Message: forgotPasswordMessage})
}

func (a *api) handleAuthReset(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	if err := a.resetSvc.Reset(r.Context(), req.Token, req.newPassword()); err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, successResponse{Success: true, Message: "Password has been reset."})
}
