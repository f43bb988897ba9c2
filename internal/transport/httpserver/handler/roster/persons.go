package roster

import (
	"errors"
	"net/http"
	"strings"
	"time"

	rosterdomain "church-app-go/internal/domain/roster"
	"church-app-go/internal/integrations/storage"
	"church-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

const maxPhotoBytes = 10 << 20

type createPersonRequest struct {
	Name           string  `json:"name" validate:"required,max=50"`
	Phone          *string `json:"phone" validate:"omitempty,max=32"`
	Age            *int    `json:"age" validate:"omitempty,min=0,max=150"`
	Grade          *string `json:"grade" validate:"omitempty,max=32"`
	Type           string  `json:"type" validate:"required,oneof=student teacher"`
	AttendanceDays []int   `json:"attendance_days" validate:"omitempty,dive,min=0,max=6"`
	Notes          *string `json:"notes" validate:"omitempty,max=1000"`
}

type updatePersonRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=50"`
	Phone          *string `json:"phone" validate:"omitempty,max=32"`
	Age            *int    `json:"age" validate:"omitempty,min=0,max=150"`
	Grade          *string `json:"grade" validate:"omitempty,max=32"`
	Type           *string `json:"type" validate:"omitempty,oneof=student teacher"`
	AttendanceDays *[]int  `json:"attendance_days" validate:"omitempty,dive,min=0,max=6"`
	Notes          *string `json:"notes" validate:"omitempty,max=1000"`
}

type personResponse struct {
	ID             string    `json:"id"`
	ChurchID       string    `json:"church_id"`
	Name           string    `json:"name"`
	Phone          *string   `json:"phone"`
	Age            *int      `json:"age"`
	Grade          *string   `json:"grade"`
	Type           string    `json:"type"`
	PhotoURL       *string   `json:"photo_url"`
	AttendanceDays []int     `json:"attendance_days"`
	Notes          *string   `json:"notes"`
	RegisteredBy   string    `json:"registered_by"`
	RegisteredAt   time.Time `json:"registered_at"`
}

func (h *Handlers) ListPersons(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()

	persons, err := h.Persons.ListPersons(r.Context(), access.ChurchID, rosterdomain.ListFilter{
		Type:  strings.TrimSpace(query.Get("type")),
		Query: strings.TrimSpace(query.Get("q")),
	})
	if err != nil {
		common.WriteServiceError(w, h.log, "persons.list", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}

	response := make([]personResponse, 0, len(persons))
	for _, person := range persons {
		response = append(response, toPersonResponse(person))
	}
	common.WriteJSON(w, http.StatusOK, common.Items(response))
}

func (h *Handlers) GetPerson(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	personID := chi.URLParam(r, "personID")

	person, err := h.Persons.GetPerson(r.Context(), access.ChurchID, personID)
	if err != nil {
		common.WriteServiceError(w, h.log, "persons.get", err, "user_id", access.UserID, "church_id", access.ChurchID, "person_id", personID)
		return
	}
	common.WriteJSON(w, http.StatusOK, toPersonResponse(*person))
}

func (h *Handlers) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req createPersonRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}

	person, err := h.Persons.CreatePerson(r.Context(), rosterdomain.CreatePersonInput{
		ChurchID:       access.ChurchID,
		RegisteredBy:   access.UserID,
		Name:           req.Name,
		Phone:          req.Phone,
		Age:            req.Age,
		Grade:          req.Grade,
		Type:           req.Type,
		AttendanceDays: req.AttendanceDays,
		Notes:          req.Notes,
	})
	if err != nil {
		common.WriteServiceError(w, h.log, "persons.create", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	common.WriteJSON(w, http.StatusCreated, toPersonResponse(*person))
}

func (h *Handlers) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	var req updatePersonRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	personID := chi.URLParam(r, "personID")

	person, err := h.Persons.UpdatePerson(r.Context(), rosterdomain.UpdatePersonInput{
		ID:             personID,
		ChurchID:       access.ChurchID,
		Name:           req.Name,
		Phone:          req.Phone,
		Age:            req.Age,
		Grade:          req.Grade,
		Type:           req.Type,
		AttendanceDays: req.AttendanceDays,
		Notes:          req.Notes,
	})
	if err != nil {
		common.WriteServiceError(w, h.log, "persons.update", err, "user_id", access.UserID, "church_id", access.ChurchID, "person_id", personID)
		return
	}
	common.WriteJSON(w, http.StatusOK, toPersonResponse(*person))
}

func (h *Handlers) DeletePerson(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	personID := chi.URLParam(r, "personID")

	if err := h.Persons.DeletePerson(r.Context(), access.ChurchID, personID); err != nil {
		common.WriteServiceError(w, h.log, "persons.delete", err, "user_id", access.UserID, "church_id", access.ChurchID, "person_id", personID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto accepts a multipart "photo" field.
func (h *Handlers) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	personID := chi.URLParam(r, "personID")

	if _, err := h.Persons.GetPerson(r.Context(), access.ChurchID, personID); err != nil {
		common.WriteServiceError(w, h.log, "persons.upload_photo", err, "user_id", access.UserID, "church_id", access.ChurchID, "person_id", personID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	file, _, err := r.FormFile("photo")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "photo file is required")
		return
	}
	defer file.Close()

	url, err := h.photos.UploadPersonPhoto(r.Context(), access.ChurchID, personID, file)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidImage):
			common.WriteError(w, http.StatusBadRequest, "invalid_image", "file is not a supported image")
		case errors.Is(err, storage.ErrNotConfigured):
			h.log.InternalError("persons.upload_photo: storage not configured", err)
			common.WriteError(w, http.StatusServiceUnavailable, "storage_not_configured", "photo storage not configured")
		default:
			h.log.InternalError("persons.upload_photo: upload failed", err, "church_id", access.ChurchID, "person_id", personID)
			common.WriteError(w, http.StatusBadGateway, "upload_failed", "photo upload failed")
		}
		return
	}

	person, err := h.Persons.SetPhoto(r.Context(), access.ChurchID, personID, url)
	if err != nil {
		common.WriteServiceError(w, h.log, "persons.upload_photo", err, "user_id", access.UserID, "church_id", access.ChurchID, "person_id", personID)
		return
	}
	common.WriteJSON(w, http.StatusOK, toPersonResponse(*person))
}

func toPersonResponse(person rosterdomain.Person) personResponse {
	days := []int(person.AttendanceDays)
	if days == nil {
		days = []int{}
	}
	return personResponse{
		ID:             person.ID,
		ChurchID:       person.ChurchID,
		Name:           person.Name,
		Phone:          person.Phone,
		Age:            person.Age,
		Grade:          person.Grade,
		Type:           person.Type,
		PhotoURL:       person.PhotoURL,
		AttendanceDays: days,
		Notes:          person.Notes,
		RegisteredBy:   person.RegisteredBy,
		RegisteredAt:   person.RegisteredAt,
	}
}
