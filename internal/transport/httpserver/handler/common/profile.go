package common

import (
	"net/http"
	"time"

	userdomain "church-app-go/internal/domain/user"
)

type updateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=50"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

type profileResponse struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Bio       *string   `json:"bio"`
	Email     *string   `json:"email"`
	AvatarURL *string   `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.Users.GetProfile(r.Context(), user.ID)
	if err != nil {
		WriteServiceError(w, h.log, "profile.get", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !DecodeRequest(w, r, &req) {
		return
	}
	user, ok := CurrentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.Users.UpdateProfile(r.Context(), userdomain.UpdateProfileInput{
		UserID:    user.ID,
		Name:      req.Name,
		Phone:     req.Phone,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		WriteServiceError(w, h.log, "profile.update", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func toProfileResponse(profile *userdomain.Profile) profileResponse {
	return profileResponse{
		UserID:    profile.UserID,
		Name:      profile.Name,
		Phone:     profile.Phone,
		Bio:       profile.Bio,
		Email:     profile.Email,
		AvatarURL: profile.AvatarURL,
		UpdatedAt: profile.UpdatedAt,
	}
}
