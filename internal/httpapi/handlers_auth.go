package httpapi

import (
	"net/http"
	"time"

	"GymMembershipServer/internal/auth"
	"GymMembershipServer/internal/domain"
	"GymMembershipServer/internal/service"
)

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Age         *int   `json:"age"`
	PhoneNumber string `json:"phone_number"`
}

type authResponse struct {
	Success bool        `json:"success"`
	Role    domain.Role `json:"role"`
	Pending bool        `json:"pending,omitempty"`
}

func (a *api) handleAuthSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	_, err := a.authSvc.Signup(r.Context(), service.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Age:         req.Age,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		a.writeErr(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, authResponse{Success: true, Role: domain.RoleMember, Pending: true})
}

type loginRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role,omitempty"`
}

func (a *api) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	email := normalizeEmail(req.Email)
	fields := map[string]string{}
	if email == "" {
		fields["email"] = "required"
	}
	if req.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}
	if req.Role != "" && !req.Role.Valid() {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"role": "must be member or admin"}))
		return
	}

	now := time.Now()
	if !a.loginLimiter.Allow("ip:"+clientIP(r), now) || !a.loginLimiter.Allow("login:"+email, now) {
		WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many attempts")
		return
	}

	sess, err := a.authSvc.Login(r.Context(), email, req.Password, req.Role)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}

	auth.SetSessionCookie(w, sess.Token, a.sessionTTL, a.cookieSecure)
	WriteJSON(w, http.StatusOK, authResponse{Success: true, Role: sess.Account.Role})
}

// handleAuthLogout always clears the cookie, whether or not the request
// carried a valid session.
func (a *api) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.authSvc.Logout(r.Context(), auth.SessionToken(r)); err != nil {
		a.logger.WarnContext(r.Context(), "logout revoke failed", "err", err)
	}
	auth.ClearSessionCookie(w, a.cookieSecure)
	writeSuccess(w)
}

type accountResponse struct {
	ID          int64       `json:"id"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	IsApproved  bool        `json:"is_approved"`
	IsActive    bool        `json:"is_active"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Age         *int        `json:"age"`
	PhoneNumber string      `json:"phone_number,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func toAccountResponse(acc domain.Account) accountResponse {
	return accountResponse{
		ID:          acc.ID,
		Email:       acc.Email,
		Role:        acc.Role,
		IsApproved:  acc.IsApproved,
		IsActive:    acc.IsActive,
		FirstName:   acc.FirstName,
		LastName:    acc.LastName,
		Age:         acc.Age,
		PhoneNumber: acc.PhoneNumber,
		CreatedAt:   acc.CreatedAt,
	}
}

func (a *api) handleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := CurrentPrincipal(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}
	acc, err := a.authSvc.Me(r.Context(), p)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toAccountResponse(acc))
}
