package community

import (
	"net/http"
	"time"

	announcementdomain "church-app-go/internal/domain/announcement"
	"church-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

type createAnnouncementRequest struct {
	Title       string  `json:"title" validate:"required,max=120"`
	Content     string  `json:"content" validate:"required"`
	IsPinned    bool    `json:"is_pinned"`
	IsImportant bool    `json:"is_important"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

type updateAnnouncementRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=120"`
	Content     *string `json:"content"`
	IsPinned    *bool   `json:"is_pinned"`
	IsImportant *bool   `json:"is_important"`
	ImageURL    *string `json:"image_url"`
}

type announcementResponse struct {
	ID           string    `json:"id"`
	ChurchID     string    `json:"church_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name,omitempty"`
	IsPinned     bool      `json:"is_pinned"`
	IsImportant  bool      `json:"is_important"`
	ImageURL     *string   `json:"image_url"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type announcementCommentResponse struct {
	ID              string    `json:"id"`
	AnnouncementID  string    `json:"announcement_id"`
	Content         string    `json:"content"`
	AuthorID        string    `json:"author_id"`
	AuthorName      string    `json:"author_name,omitempty"`
	AuthorRoleLabel string    `json:"author_role_label"`
	CreatedAt       time.Time `json:"created_at"`
}

func (h *Handlers) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}

	items, err := h.Announcements.List(r.Context(), access)
	if err != nil {
		common.WriteServiceError(w, h.log, "announcements.list", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}

	response := make([]announcementResponse, 0, len(items))
	for _, item := range items {
		entry := toAnnouncementResponse(item.Announcement)
		entry.AuthorName = item.AuthorName
		entry.CommentCount = item.CommentCount
		response = append(response, entry)
	}
	common.WriteJSON(w, http.StatusOK, common.Items(response))
}

func (h *Handlers) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "announcementID")

	item, err := h.Announcements.Get(r.Context(), access, id)
	if err != nil {
		common.WriteServiceError(w, h.log, "announcements.get", err, "user_id", access.UserID, "church_id", access.ChurchID, "announcement_id", id)
		return
	}
	common.WriteJSON(w, http.StatusOK, toAnnouncementResponse(*item))
}

func (h *Handlers) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req createAnnouncementRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}

	item, err := h.Announcements.Create(r.Context(), access, announcementdomain.CreateInput{
		Title:       req.Title,
		Content:     req.Content,
		IsPinned:    req.IsPinned,
		IsImportant: req.IsImportant,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		common.WriteServiceError(w, h.log, "announcements.create", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	common.WriteJSON(w, http.StatusCreated, toAnnouncementResponse(*item))
}

func (h *Handlers) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req updateAnnouncementRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "announcementID")

	item, err := h.Announcements.Update(r.Context(), access, announcementdomain.UpdateInput{
		ID:          id,
		Title:       req.Title,
		Content:     req.Content,
		IsPinned:    req.IsPinned,
		IsImportant: req.IsImportant,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		common.WriteServiceError(w, h.log, "announcements.update", err, "user_id", access.UserID, "church_id", access.ChurchID, "announcement_id", id)
		return
	}
	common.WriteJSON(w, http.StatusOK, toAnnouncementResponse(*item))
}

func (h *Handlers) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "announcementID")

	if err := h.Announcements.Delete(r.Context(), access, id); err != nil {
		common.WriteServiceError(w, h.log, "announcements.delete", err, "user_id", access.UserID, "church_id", access.ChurchID, "announcement_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListAnnouncementComments(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "announcementID")

	comments, err := h.Announcements.ListComments(r.Context(), access, id)
	if err != nil {
		common.WriteServiceError(w, h.log, "announcements.list_comments", err, "user_id", access.UserID, "church_id", access.ChurchID, "announcement_id", id)
		return
	}

	response := make([]announcementCommentResponse, 0, len(comments))
	for _, comment := range comments {
		entry := toAnnouncementComment(comment.Comment)
		entry.AuthorName = comment.AuthorName
		response = append(response, entry)
	}
	common.WriteJSON(w, http.StatusOK, common.Items(response))
}

func (h *Handlers) AddAnnouncementComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "announcementID")

	comment, err := h.Announcements.AddComment(r.Context(), access, id, req.Content)
	if err != nil {
		common.WriteServiceError(w, h.log, "announcements.add_comment", err, "user_id", access.UserID, "church_id", access.ChurchID, "announcement_id", id)
		return
	}
	common.WriteJSON(w, http.StatusCreated, toAnnouncementComment(*comment))
}

func (h *Handlers) DeleteAnnouncementComment(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	commentID := chi.URLParam(r, "commentID")

	if err := h.Announcements.DeleteComment(r.Context(), access, commentID); err != nil {
		common.WriteServiceError(w, h.log, "announcements.delete_comment", err, "user_id", access.UserID, "church_id", access.ChurchID, "comment_id", commentID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toAnnouncementResponse(item announcementdomain.Announcement) announcementResponse {
	return announcementResponse{
		ID:          item.ID,
		ChurchID:    item.ChurchID,
		Title:       item.Title,
		Content:     item.Content,
		AuthorID:    item.AuthorID,
		IsPinned:    item.IsPinned,
		IsImportant: item.IsImportant,
		ImageURL:    item.ImageURL,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toAnnouncementComment(comment announcementdomain.Comment) announcementCommentResponse {
	return announcementCommentResponse{
		ID:              comment.ID,
		AnnouncementID:  comment.AnnouncementID,
		Content:         comment.Content,
		AuthorID:        comment.AuthorID,
		AuthorRoleLabel: comment.AuthorRoleLabel,
		CreatedAt:       comment.CreatedAt,
	}
}
