package httpapi

import (
	"net/http"

	"GymMembershipServer/internal/domain"
)

type trainingRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TrainerName   string   `json:"trainer_name"`
	DurationWeeks *int     `json:"duration_weeks"`
	Price         *float64 `json:"price"`
	IsActive      *bool    `json:"is_active"`
}

func (req trainingRequest) input() domain.TrainingProgramInput {
	return domain.TrainingProgramInput{
		Title:         req.Title,
		Description:   req.Description,
		TrainerName:   req.TrainerName,
		DurationWeeks: req.DurationWeeks,
		Price:         req.Price,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
}

func (a *api) handleMemberTraining(w http.ResponseWriter, r *http.Request) {
	list, err := a.trainingSvc.ListActive(r.Context())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (a *api) handleAdminTrainingList(w http.ResponseWriter, r *http.Request) {
	list, err := a.trainingSvc.ListAll(r.Context())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (a *api) handleAdminTrainingCreate(w http.ResponseWriter, r *http.Request) {
	var req trainingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	actor, _ := CurrentPrincipal(r.Context())
	p, err := a.trainingSvc.Create(r.Context(), actor, req.input())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

func (a *api) handleAdminTrainingUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}
	var req trainingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	p, err := a.trainingSvc.Update(r.Context(), id, req.input())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

func (a *api) handleAdminTrainingDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}
	if err := a.trainingSvc.Delete(r.Context(), id); err != nil {
		a.writeErr(w, r, err)
		return
	}
	writeSuccess(w)
}
