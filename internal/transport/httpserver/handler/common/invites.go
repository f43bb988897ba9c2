package common

import (
	"net/http"
	"time"

	churchdomain "church-app-go/internal/domain/church"
	"github.com/go-chi/chi/v5"
)

type createInviteRequest struct {
	Role          string `json:"role" validate:"omitempty,oneof=admin teacher member"`
	MaxUses       int    `json:"max_uses" validate:"min=0"`
	ExpiresInDays int    `json:"expires_in_days" validate:"min=0"`
}

type inviteResponse struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Link      string    `json:"link"`
	Role      string    `json:"role"`
	MaxUses   int       `json:"max_uses"`
	UsedCount int       `json:"used_count"`
	ExpiresAt time.Time `json:"expires_at"`
	Expired   bool      `json:"expired"`
	CreatedAt time.Time `json:"created_at"`
}

type redeemInviteResponse struct {
	Church churchResponse `json:"church"`
	Role   string         `json:"role"`
}

func (h *Handlers) ListInvites(w http.ResponseWriter, r *http.Request) {
	access, ok := CurrentAccess(w, r)
	if !ok {
		return
	}

	invites, err := h.Churches.ListInvites(r.Context(), access)
	if err != nil {
		WriteServiceError(w, h.log, "invites.list", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}

	now := time.Now()
	response := make([]inviteResponse, 0, len(invites))
	for _, invite := range invites {
		response = append(response, h.toInviteResponse(invite, now))
	}
	writeJSON(w, http.StatusOK, Items(response))
}

func (h *Handlers) CreateInvite(w http.ResponseWriter, r *http.Request) {
	var req createInviteRequest
	if !DecodeRequest(w, r, &req) {
		return
	}
	access, ok := CurrentAccess(w, r)
	if !ok {
		return
	}

	invite, err := h.Churches.CreateInvite(r.Context(), access, churchdomain.CreateInviteInput{
		ChurchID:      access.ChurchID,
		CreatedBy:     access.UserID,
		Role:          req.Role,
		MaxUses:       req.MaxUses,
		ExpiresInDays: req.ExpiresInDays,
	})
	if err != nil {
		WriteServiceError(w, h.log, "invites.create", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	writeJSON(w, http.StatusCreated, h.toInviteResponse(*invite, time.Now()))
}

func (h *Handlers) RevokeInvite(w http.ResponseWriter, r *http.Request) {
	access, ok := CurrentAccess(w, r)
	if !ok {
		return
	}
	inviteID := chi.URLParam(r, "inviteID")

	if err := h.Churches.RevokeInvite(r.Context(), access, inviteID); err != nil {
		WriteServiceError(w, h.log, "invites.revoke", err, "user_id", access.UserID, "church_id", access.ChurchID, "invite_id", inviteID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) RedeemInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(w, r)
	if !ok {
		return
	}
	token := chi.URLParam(r, "token")

	church, membership, err := h.Churches.RedeemInvite(r.Context(), token, user.ID)
	if err != nil {
		WriteServiceError(w, h.log, "invites.redeem", err, "user_id", user.ID)
		return
	}

	h.log.Info("invites.redeem: joined church", "user_id", user.ID, "church_id", church.ID, "role", membership.Role)
	writeJSON(w, http.StatusOK, redeemInviteResponse{
		Church: toChurchResponse(*church, membership.Role),
		Role:   membership.Role,
	})
}

func (h *Handlers) toInviteResponse(invite churchdomain.InviteToken, now time.Time) inviteResponse {
	return inviteResponse{
		ID:        invite.ID,
		Token:     invite.Token,
		Link:      h.cfg.BaseURL + "/invite/" + invite.Token,
		Role:      invite.Role,
		MaxUses:   invite.MaxUses,
		UsedCount: invite.UsedCount,
		ExpiresAt: invite.ExpiresAt,
		Expired:   invite.Expired(now) || invite.Exhausted(),
		CreatedAt: invite.CreatedAt,
	}
}
