package httpapi

import (
	"net/http"

	"GymMembershipServer/internal/domain"
)

type profileResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Age         *int   `json:"age"`
	PhoneNumber string `json:"phone_number"`
}

func toProfileResponse(acc domain.Account) profileResponse {
	return profileResponse{
		ID:          acc.ID,
		Email:       acc.Email,
		FirstName:   acc.FirstName,
		LastName:    acc.LastName,
		Age:         acc.Age,
		PhoneNumber: acc.PhoneNumber,
	}
}

func (a *api) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	p, _ := CurrentPrincipal(r.Context())
	acc, err := a.profileSvc.Get(r.Context(), p)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toProfileResponse(acc))
}

type profileUpdateRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Age         *int   `json:"age"`
	PhoneNumber string `json:"phone_number"`
}

func (a *api) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	p, _ := CurrentPrincipal(r.Context())
	acc, err := a.profileSvc.Update(r.Context(), p, domain.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Age:         req.Age,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toProfileResponse(acc))
}

type markAttendanceResponse struct {
	Success       bool `json:"success,omitempty"`
	AlreadyMarked bool `json:"alreadyMarked,omitempty"`
}

func (a *api) handleAttendanceMark(w http.ResponseWriter, r *http.Request) {
	p, _ := CurrentPrincipal(r.Context())
	created, err := a.attendanceSvc.Mark(r.Context(), p)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	if !created {
		WriteJSON(w, http.StatusOK, markAttendanceResponse{AlreadyMarked: true})
		return
	}
	WriteJSON(w, http.StatusOK, markAttendanceResponse{Success: true})
}

func (a *api) handleAttendanceToday(w http.ResponseWriter, r *http.Request) {
	p, _ := CurrentPrincipal(r.Context())
	marked, err := a.attendanceSvc.MarkedToday(r.Context(), p)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"marked": marked})
}

func (a *api) handleAttendanceHistory(w http.ResponseWriter, r *http.Request) {
	p, _ := CurrentPrincipal(r.Context())
	records, err := a.attendanceSvc.History(r.Context(), p)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, records)
}

func (a *api) handleMemberAnnouncements(w http.ResponseWriter, r *http.Request) {
	p, _ := CurrentPrincipal(r.Context())
	markRead := r.URL.Query().Get("markRead") == "true"

	list, err := a.announceSvc.ForMember(r.Context(), p, markRead)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (a *api) handleMemberStats(w http.ResponseWriter, r *http.Request) {
	p, _ := CurrentPrincipal(r.Context())
	st, err := a.statsSvc.ForMember(r.Context(), p)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, st)
}
