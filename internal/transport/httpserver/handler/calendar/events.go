package calendar

import (
	"net/http"
	"time"

	calendardomain "church-app-go/internal/domain/calendar"
	"church-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

type eventRequest struct {
	Title       string  `json:"title" validate:"required,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Type        string  `json:"type" validate:"omitempty,oneof=worship meeting event education other"`
	StartAt     string  `json:"start_at" validate:"required"`
	EndAt       string  `json:"end_at"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	ChurchID    string    `json:"church_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Type        string    `json:"type"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Location    *string   `json:"location"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListEvents returns events overlapping [from, to]. Without bounds it covers
// the current month.
func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()

	from, err := common.ParseTimestamp(query.Get("from"))
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid from")
		return
	}
	to, err := common.ParseTimestamp(query.Get("to"))
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid to")
		return
	}
	if from.IsZero() {
		now := h.now().UTC()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if to.IsZero() {
		to = from.AddDate(0, 1, 0).Add(-time.Second)
	}

	events, err := h.Events.List(r.Context(), access, from, to)
	if err != nil {
		common.WriteServiceError(w, h.log, "events.list", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}

	response := make([]eventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, toEventResponse(event))
	}
	common.WriteJSON(w, http.StatusOK, common.Items(response))
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "eventID")

	event, err := h.Events.Get(r.Context(), access, id)
	if err != nil {
		common.WriteServiceError(w, h.log, "events.get", err, "user_id", access.UserID, "church_id", access.ChurchID, "event_id", id)
		return
	}
	common.WriteJSON(w, http.StatusOK, toEventResponse(*event))
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
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

	event, err := h.Events.Create(r.Context(), access, input)
	if err != nil {
		common.WriteServiceError(w, h.log, "events.create", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	common.WriteJSON(w, http.StatusCreated, toEventResponse(*event))
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
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
	id := chi.URLParam(r, "eventID")

	event, err := h.Events.Update(r.Context(), access, id, input)
	if err != nil {
		common.WriteServiceError(w, h.log, "events.update", err, "user_id", access.UserID, "church_id", access.ChurchID, "event_id", id)
		return
	}
	common.WriteJSON(w, http.StatusOK, toEventResponse(*event))
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "eventID")

	if err := h.Events.Delete(r.Context(), access, id); err != nil {
		common.WriteServiceError(w, h.log, "events.delete", err, "user_id", access.UserID, "church_id", access.ChurchID, "event_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (req eventRequest) toInput(w http.ResponseWriter) (calendardomain.EventInput, bool) {
	startAt, err := common.ParseTimestamp(req.StartAt)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid start_at")
		return calendardomain.EventInput{}, false
	}
	endAt, err := common.ParseTimestamp(req.EndAt)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid end_at")
		return calendardomain.EventInput{}, false
	}
	return calendardomain.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		StartAt:     startAt,
		EndAt:       endAt,
		Location:    req.Location,
	}, true
}

func toEventResponse(event calendardomain.Event) eventResponse {
	return eventResponse{
		ID:          event.ID,
		ChurchID:    event.ChurchID,
		Title:       event.Title,
		Description: event.Description,
		Type:        event.Type,
		StartAt:     event.StartAt,
		EndAt:       event.EndAt,
		Location:    event.Location,
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt,
	}
}
