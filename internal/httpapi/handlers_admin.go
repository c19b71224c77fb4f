package httpapi

import (
	"net/http"

	"GymMembershipServer/internal/domain"
)

func (a *api) handleAdminMembersList(w http.ResponseWriter, r *http.Request) {
	members, err := a.adminSvc.ListMembers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	out := make([]accountResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toAccountResponse(m))
	}
	WriteJSON(w, http.StatusOK, out)
}

type approveRequest struct {
	Approve *bool `json:"approve"`
}

func (a *api) handleAdminMembersApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}
	var req approveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if req.Approve == nil {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"approve": "required (true/false)"}))
		return
	}

	actor, _ := CurrentPrincipal(r.Context())
	if err := a.adminSvc.SetApproval(r.Context(), actor, id, *req.Approve); err != nil {
		a.writeErr(w, r, err)
		return
	}
	msg := "Member rejected successfully"
	if *req.Approve {
		msg = "Member approved successfully"
	}
	WriteJSON(w, http.StatusOK, successResponse{Success: true, Message: msg})
}

type memberStatusResponse struct {
	Success  bool `json:"success"`
	IsActive bool `json:"is_active"`
}

func (a *api) handleAdminMembersToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}

	actor, _ := CurrentPrincipal(r.Context())
	active, err := a.adminSvc.ToggleActive(r.Context(), actor, id)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, memberStatusResponse{Success: true, IsActive: active})
}

type memberStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

func (a *api) handleAdminMembersStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}
	var req memberStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if req.IsActive == nil {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"is_active": "required (true/false)"}))
		return
	}

	actor, _ := CurrentPrincipal(r.Context())
	if err := a.adminSvc.SetActive(r.Context(), actor, id, *req.IsActive); err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, memberStatusResponse{Success: true, IsActive: *req.IsActive})
}

func (a *api) handleAdminMembersDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}

	actor, _ := CurrentPrincipal(r.Context())
	if err := a.adminSvc.DeleteMember(r.Context(), actor, id); err != nil {
		a.writeErr(w, r, err)
		return
	}
	writeSuccess(w)
}

func (a *api) handleAdminAttendance(w http.ResponseWriter, r *http.Request) {
	entries, err := a.attendanceSvc.ListAll(r.Context())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, entries)
}

func (a *api) handleAdminAnnouncementsList(w http.ResponseWriter, r *http.Request) {
	list, err := a.announceSvc.ListAll(r.Context())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

type announcementRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsActive *bool  `json:"is_active"`
}

func (req announcementRequest) input() domain.AnnouncementInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return domain.AnnouncementInput{Title: req.Title, Content: req.Content, IsActive: active}
}

func (a *api) handleAdminAnnouncementsCreate(w http.ResponseWriter, r *http.Request) {
	var req announcementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	actor, _ := CurrentPrincipal(r.Context())
	ann, err := a.announceSvc.Create(r.Context(), actor, req.input())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, ann)
}

func (a *api) handleAdminAnnouncementsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}
	var req announcementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	ann, err := a.announceSvc.Update(r.Context(), id, req.input())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ann)
}

func (a *api) handleAdminAnnouncementsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}
	if err := a.announceSvc.Delete(r.Context(), id); err != nil {
		a.writeErr(w, r, err)
		return
	}
	writeSuccess(w)
}

func (a *api) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	st, err := a.statsSvc.ForAdmin(r.Context())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, st)
}
