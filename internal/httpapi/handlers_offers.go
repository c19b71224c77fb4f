package httpapi

import (
	"net/http"
	"time"

	"GymMembershipServer/internal/domain"
)

type offerRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	DiscountPercentage *int   `json:"discount_percentage"`
	ValidFrom          string `json:"valid_from"`
	ValidUntil         string `json:"valid_until"`
	IsActive           *bool  `json:"is_active"`
}

// input converts the request, collecting unparseable dates into fields.
func (req offerRequest) input(fields map[string]string) domain.OfferInput {
	in := domain.OfferInput{
		Title:              req.Title,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		IsActive:           req.IsActive == nil || *req.IsActive,
	}
	in.ValidFrom = parseDate(fields, "valid_from", req.ValidFrom)
	in.ValidUntil = parseDate(fields, "valid_until", req.ValidUntil)
	return in
}

// parseDate accepts YYYY-MM-DD or an RFC 3339 timestamp. Empty input yields
// the zero time and is left for the service to reject.
func parseDate(fields map[string]string, key, raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if d, err := time.Parse(time.DateOnly, raw); err == nil {
		return d
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		y, m, d := ts.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	fields[key] = "must be a date (YYYY-MM-DD)"
	return time.Time{}
}

func (a *api) handleMemberOffers(w http.ResponseWriter, r *http.Request) {
	list, err := a.offerSvc.ListActive(r.Context())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (a *api) handleAdminOffersList(w http.ResponseWriter, r *http.Request) {
	list, err := a.offerSvc.ListAll(r.Context())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (a *api) handleAdminOffersCreate(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	fields := map[string]string{}
	in := req.input(fields)
	if len(fields) > 0 {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}

	actor, _ := CurrentPrincipal(r.Context())
	offer, err := a.offerSvc.Create(r.Context(), actor, in)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, offer)
}

func (a *api) handleAdminOffersUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}
	var req offerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	fields := map[string]string{}
	in := req.input(fields)
	if len(fields) > 0 {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}

	offer, err := a.offerSvc.Update(r.Context(), id, in)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, offer)
}

func (a *api) handleAdminOffersDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadID(w)
		return
	}
	if err := a.offerSvc.Delete(r.Context(), id); err != nil {
		a.writeErr(w, r, err)
		return
	}
	writeSuccess(w)
}
