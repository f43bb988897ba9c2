package calendar

import (
	"net/http"
	"strings"
	"time"

	scheduledomain "church-app-go/internal/domain/schedule"
	"church-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

type dutyRequest struct {
	DutyType string  `json:"duty_type" validate:"required,max=32"`
	DutyName string  `json:"duty_name" validate:"required,max=120"`
	PersonID *string `json:"person_id"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Status   string  `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes    *string `json:"notes" validate:"omitempty,max=1000"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

type dutyResponse struct {
	ID         string    `json:"id"`
	ChurchID   string    `json:"church_id"`
	DutyType   string    `json:"duty_type"`
	DutyName   string    `json:"duty_name"`
	PersonID   *string   `json:"person_id"`
	PersonName *string   `json:"person_name"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	Notes      *string   `json:"notes"`
	AssignedBy string    `json:"assigned_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Handlers) ListSchedules(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()

	from, err := common.ParseDatePtr(query.Get("from"))
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid from")
		return
	}
	to, err := common.ParseDatePtr(query.Get("to"))
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid to")
		return
	}

	duties, err := h.Schedules.List(r.Context(), access, scheduledomain.ListFilter{
		From:   from,
		To:     to,
		Status: strings.TrimSpace(query.Get("status")),
	})
	if err != nil {
		common.WriteServiceError(w, h.log, "schedules.list", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}

	response := make([]dutyResponse, 0, len(duties))
	for _, duty := range duties {
		entry := toDutyResponse(duty.Duty)
		if duty.PersonName != "" {
			name := duty.PersonName
			entry.PersonName = &name
		}
		response = append(response, entry)
	}
	common.WriteJSON(w, http.StatusOK, common.Items(response))
}

func (h *Handlers) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req dutyRequest
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

	duty, err := h.Schedules.Create(r.Context(), access, input)
	if err != nil {
		common.WriteServiceError(w, h.log, "schedules.create", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	common.WriteJSON(w, http.StatusCreated, toDutyResponse(*duty))
}

func (h *Handlers) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req dutyRequest
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
	id := chi.URLParam(r, "scheduleID")

	duty, err := h.Schedules.Update(r.Context(), access, id, input)
	if err != nil {
		common.WriteServiceError(w, h.log, "schedules.update", err, "user_id", access.UserID, "church_id", access.ChurchID, "schedule_id", id)
		return
	}
	common.WriteJSON(w, http.StatusOK, toDutyResponse(*duty))
}

func (h *Handlers) SetScheduleStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "scheduleID")

	duty, err := h.Schedules.SetStatus(r.Context(), access, id, req.Status)
	if err != nil {
		common.WriteServiceError(w, h.log, "schedules.set_status", err, "user_id", access.UserID, "church_id", access.ChurchID, "schedule_id", id)
		return
	}
	common.WriteJSON(w, http.StatusOK, toDutyResponse(*duty))
}

func (h *Handlers) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "scheduleID")

	if err := h.Schedules.Delete(r.Context(), access, id); err != nil {
		common.WriteServiceError(w, h.log, "schedules.delete", err, "user_id", access.UserID, "church_id", access.ChurchID, "schedule_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (req dutyRequest) toInput(w http.ResponseWriter) (scheduledomain.DutyInput, bool) {
	date, err := common.ParseDate(req.Date)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return scheduledomain.DutyInput{}, false
	}
	return scheduledomain.DutyInput{
		DutyType: req.DutyType,
		DutyName: req.DutyName,
		PersonID: req.PersonID,
		Date:     date,
		Status:   req.Status,
		Notes:    req.Notes,
	}, true
}

func toDutyResponse(duty scheduledomain.Duty) dutyResponse {
	return dutyResponse{
		ID:         duty.ID,
		ChurchID:   duty.ChurchID,
		DutyType:   duty.DutyType,
		DutyName:   duty.DutyName,
		PersonID:   duty.PersonID,
		Date:       common.FormatDate(duty.Date),
		Status:     duty.Status,
		Notes:      duty.Notes,
		AssignedBy: duty.AssignedBy,
		CreatedAt:  duty.CreatedAt,
	}
}
