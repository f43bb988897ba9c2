package common

import (
	"net/http"
	"time"

	churchdomain "church-app-go/internal/domain/church"
	"github.com/go-chi/chi/v5"
)

type createChurchRequest struct {
	Name        string `json:"name" validate:"required,max=80"`
	Description string `json:"description" validate:"max=1000"`
}

type updateChurchRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=80"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type updateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin teacher member"`
}

type churchResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	OwnerID     string    `json:"owner_id"`
	Role        string    `json:"role,omitempty"`
	MemberCount *int64    `json:"member_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type memberResponse struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	AvatarURL *string   `json:"avatar_url"`
	Role      string    `json:"role"`
	RoleLabel string    `json:"role_label"`
	IsOwner   bool      `json:"is_owner"`
	JoinedAt  time.Time `json:"joined_at"`
}

func (h *Handlers) ListChurches(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(w, r)
	if !ok {
		return
	}

	churches, err := h.Churches.ListChurches(r.Context(), user.ID)
	if err != nil {
		WriteServiceError(w, h.log, "churches.list", err, "user_id", user.ID)
		return
	}

	response := make([]churchResponse, 0, len(churches))
	for _, item := range churches {
		count := item.MemberCount
		c := toChurchResponse(item.Church, item.Role)
		c.MemberCount = &count
		response = append(response, c)
	}
	writeJSON(w, http.StatusOK, Items(response))
}

func (h *Handlers) CreateChurch(w http.ResponseWriter, r *http.Request) {
	var req createChurchRequest
	if !DecodeRequest(w, r, &req) {
		return
	}
	user, ok := CurrentUser(w, r)
	if !ok {
		return
	}

	church, err := h.Churches.CreateChurch(r.Context(), churchdomain.CreateChurchInput{
		OwnerID:     user.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		WriteServiceError(w, h.log, "churches.create", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusCreated, toChurchResponse(*church, churchdomain.RoleAdmin))
}

func (h *Handlers) GetChurch(w http.ResponseWriter, r *http.Request) {
	access, ok := CurrentAccess(w, r)
	if !ok {
		return
	}

	church, err := h.Churches.GetChurch(r.Context(), access.ChurchID)
	if err != nil {
		WriteServiceError(w, h.log, "churches.get", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	writeJSON(w, http.StatusOK, toChurchResponse(*church, access.EffectiveRole()))
}

func (h *Handlers) UpdateChurch(w http.ResponseWriter, r *http.Request) {
	var req updateChurchRequest
	if !DecodeRequest(w, r, &req) {
		return
	}
	access, ok := CurrentAccess(w, r)
	if !ok {
		return
	}

	church, err := h.Churches.UpdateChurch(r.Context(), access, churchdomain.UpdateChurchInput{
		ChurchID:    access.ChurchID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		WriteServiceError(w, h.log, "churches.update", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	writeJSON(w, http.StatusOK, toChurchResponse(*church, access.EffectiveRole()))
}

func (h *Handlers) DeleteChurch(w http.ResponseWriter, r *http.Request) {
	access, ok := CurrentAccess(w, r)
	if !ok {
		return
	}

	if err := h.Churches.DeleteChurch(r.Context(), access); err != nil {
		WriteServiceError(w, h.log, "churches.delete", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	access, ok := CurrentAccess(w, r)
	if !ok {
		return
	}

	members, err := h.Churches.ListMembers(r.Context(), access)
	if err != nil {
		WriteServiceError(w, h.log, "churches.list_members", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}

	response := make([]memberResponse, 0, len(members))
	for _, member := range members {
		role := member.Role
		if member.IsOwner {
			role = churchdomain.RoleAdmin
		}
		response = append(response, memberResponse{
			UserID:    member.UserID,
			Name:      member.Name,
			Email:     member.Email,
			Phone:     member.Phone,
			AvatarURL: member.AvatarURL,
			Role:      role,
			RoleLabel: churchdomain.RoleLabel(role),
			IsOwner:   member.IsOwner,
			JoinedAt:  member.JoinedAt,
		})
	}
	writeJSON(w, http.StatusOK, Items(response))
}

func (h *Handlers) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	var req updateMemberRoleRequest
	if !DecodeRequest(w, r, &req) {
		return
	}
	access, ok := CurrentAccess(w, r)
	if !ok {
		return
	}
	target := chi.URLParam(r, "userID")

	if err := h.Churches.UpdateMemberRole(r.Context(), access, target, req.Role); err != nil {
		WriteServiceError(w, h.log, "churches.update_member_role", err, "user_id", access.UserID, "church_id", access.ChurchID, "target_user_id", target)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	access, ok := CurrentAccess(w, r)
	if !ok {
		return
	}
	target := chi.URLParam(r, "userID")

	if err := h.Churches.RemoveMember(r.Context(), access, target); err != nil {
		WriteServiceError(w, h.log, "churches.remove_member", err, "user_id", access.UserID, "church_id", access.ChurchID, "target_user_id", target)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) LeaveChurch(w http.ResponseWriter, r *http.Request) {
	access, ok := CurrentAccess(w, r)
	if !ok {
		return
	}

	if err := h.Churches.Leave(r.Context(), access); err != nil {
		WriteServiceError(w, h.log, "churches.leave", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toChurchResponse(church churchdomain.Church, role string) churchResponse {
	return churchResponse{
		ID:          church.ID,
		Name:        church.Name,
		Slug:        church.Slug,
		Description: church.Description,
		OwnerID:     church.OwnerID,
		Role:        role,
		CreatedAt:   church.CreatedAt,
	}
}
