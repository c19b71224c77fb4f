package httpapi

import (
	"net/http"

	"GymMembershipServer/internal/domain"
)

type recordRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
	RecordType  string   `json:"record_type"`
}

func (req recordRequest) input() domain.MemberRecordInput {
	return domain.MemberRecordInput{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		RecordType:  req.RecordType,
	}
}

type recordResponse struct {
	Success bool                `json:"success"`
	Record  domain.MemberRecord `json:"record"`
}

func (a *api) handleMemberRecords(w http.ResponseWriter, r *http.Request) {
	p, _ := CurrentPrincipal(r.Context())
	list, err := a.recordSvc.ForMember(r.Context(), p)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (a *api) handleAdminRecordsList(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}
	list, err := a.recordSvc.ListForMember(r.Context(), memberID)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (a *api) handleAdminRecordsCreate(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}
	var req recordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	actor, _ := CurrentPrincipal(r.Context())
	rec, err := a.recordSvc.Create(r.Context(), actor, memberID, req.input())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, recordResponse{Success: true, Record: rec})
}

func (a *api) handleAdminRecordsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}
	var req recordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	rec, err := a.recordSvc.Update(r.Context(), id, req.input())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, recordResponse{Success: true, Record: rec})
}

func (a *api) handleAdminRecordsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}
	if err := a.recordSvc.Delete(r.Context(), id); err != nil {
		a.writeErr(w, r, err)
		return
	}
	writeSuccess(w)
}
