package finance

import (
	"net/http"
	"time"

	financedomain "church-app-go/internal/domain/finance"
	"church-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

type offeringRequest struct {
	Type     string  `json:"type" validate:"omitempty,oneof=tithe thanksgiving mission building special general"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	PersonID *string `json:"person_id"`
	Notes    *string `json:"notes" validate:"omitempty,max=1000"`
}

type offeringResponse struct {
	ID         string    `json:"id"`
	ChurchID   string    `json:"church_id"`
	Type       string    `json:"type"`
	Amount     float64   `json:"amount"`
	Date       string    `json:"date"`
	PersonID   *string   `json:"person_id"`
	Notes      *string   `json:"notes"`
	RecordedBy string    `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Handlers) ListOfferings(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	filter, ok := parseFilter(w, r.URL.Query(), "type")
	if !ok {
		return
	}

	offerings, err := h.Finance.ListOfferings(r.Context(), access, filter)
	if err != nil {
		common.WriteServiceError(w, h.log, "offerings.list", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}

	response := make([]offeringResponse, 0, len(offerings))
	for _, offering := range offerings {
		response = append(response, toOfferingResponse(offering))
	}
	common.WriteJSON(w, http.StatusOK, common.Items(response))
}

func (h *Handlers) CreateOffering(w http.ResponseWriter, r *http.Request) {
	var req offeringRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	input, ok := req.toInput(w)
	if !ok {
		return
	}

	offering, err := h.Finance.CreateOffering(r.Context(), access, input)
	if err != nil {
		common.WriteServiceError(w, h.log, "offerings.create", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	common.WriteJSON(w, http.StatusCreated, toOfferingResponse(*offering))
}

func (h *Handlers) UpdateOffering(w http.ResponseWriter, r *http.Request) {
	var req offeringRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	input, ok := req.toInput(w)
	if !ok {
		return
	}
	id := chi.URLParam(r, "offeringID")

	offering, err := h.Finance.UpdateOffering(r.Context(), access, id, input)
	if err != nil {
		common.WriteServiceError(w, h.log, "offerings.update", err, "user_id", access.UserID, "church_id", access.ChurchID, "offering_id", id)
		return
	}
	common.WriteJSON(w, http.StatusOK, toOfferingResponse(*offering))
}

func (h *Handlers) DeleteOffering(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "offeringID")

	if err := h.Finance.DeleteOffering(r.Context(), access, id); err != nil {
		common.WriteServiceError(w, h.log, "offerings.delete", err, "user_id", access.UserID, "church_id", access.ChurchID, "offering_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (req offeringRequest) toInput(w http.ResponseWriter) (financedomain.OfferingInput, bool) {
	date, err := common.ParseDate(req.Date)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return financedomain.OfferingInput{}, false
	}
	return financedomain.OfferingInput{
		Type:     req.Type,
		Amount:   req.Amount,
		Date:     date,
		PersonID: req.PersonID,
		Notes:    req.Notes,
	}, true
}

func toOfferingResponse(offering financedomain.Offering) offeringResponse {
	return offeringResponse{
		ID:         offering.ID,
		ChurchID:   offering.ChurchID,
		Type:       offering.Type,
		Amount:     offering.Amount,
		Date:       common.FormatDate(offering.Date),
		PersonID:   offering.PersonID,
		Notes:      offering.Notes,
		RecordedBy: offering.RecordedBy,
		CreatedAt:  offering.CreatedAt,
	}
}
