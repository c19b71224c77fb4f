package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"GymMembershipServer/internal/auth"
	"GymMembershipServer/internal/domain"
)

type authCtxKey int

const (
	principalKey authCtxKey = iota
	principalSlotKey
)

// principalSlot lets the request logger see the principal resolved deeper
// in the chain.
type principalSlot struct {
	p   domain.Principal
	set bool
}

// requireRole admits only callers whose session resolves to role. A missing
// or rejected session is 401; a valid session with the other role is 403.
func (a *api) requireRole(role domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return a.gate(func(p domain.Principal) bool { return p.Role == role }, next)
}

// requireAuth admits any resolved principal.
func (a *api) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return a.gate(func(domain.Principal) bool { return true }, next)
}

func (a *api) gate(allow func(domain.Principal) bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := a.authSvc.Resolve(r.Context(), auth.SessionToken(r))
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				WriteDomainError(w, domain.ErrUnauthorized)
				return
			}
			a.writeErr(w, r, err)
			return
		}
		if slot, ok := r.Context().Value(principalSlotKey).(*principalSlot); ok {
			slot.p, slot.set = p, true
		}
		if !allow(p) {
			WriteDomainError(w, domain.ErrForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func CurrentPrincipal(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
