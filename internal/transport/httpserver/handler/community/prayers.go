package community

import (
	"net/http"
	"time"

	prayerdomain "church-app-go/internal/domain/prayer"
	"church-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

type createPrayerRequest struct {
	Title       string  `json:"title" validate:"required,max=120"`
	Content     string  `json:"content" validate:"required"`
	IsAnonymous bool    `json:"is_anonymous"`
	Category    string  `json:"category" validate:"omitempty,oneof=general health family work church mission"`
	PersonID    *string `json:"person_id"`
}

type updatePrayerRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=120"`
	Content     *string `json:"content"`
	IsAnonymous *bool   `json:"is_anonymous"`
	Category    *string `json:"category" validate:"omitempty,oneof=general health family work church mission"`
	PersonID    *string `json:"person_id"`
}

type answerPrayerRequest struct {
	Testimony *string `json:"testimony" validate:"omitempty,max=2000"`
}

type prayerResponse struct {
	ID           string     `json:"id"`
	ChurchID     string     `json:"church_id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	AuthorID     *string    `json:"author_id"`
	AuthorName   *string    `json:"author_name"`
	IsAnonymous  bool       `json:"is_anonymous"`
	IsAnswered   bool       `json:"is_answered"`
	Testimony    *string    `json:"testimony"`
	AnsweredAt   *time.Time `json:"answered_at"`
	PersonID     *string    `json:"person_id"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	CommentCount int64      `json:"comment_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type prayerCommentResponse struct {
	ID         string    `json:"id"`
	PrayerID   string    `json:"prayer_id"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Handlers) ListPrayers(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()

	items, err := h.Prayers.List(r.Context(), access, prayerdomain.Filter{
		Status:   query.Get("status"),
		Category: query.Get("category"),
	})
	if err != nil {
		common.WriteServiceError(w, h.log, "prayers.list", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}

	response := make([]prayerResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toPrayerResponse(item))
	}
	common.WriteJSON(w, http.StatusOK, common.Items(response))
}

func (h *Handlers) GetPrayer(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "prayerID")

	item, err := h.Prayers.Get(r.Context(), access, id)
	if err != nil {
		common.WriteServiceError(w, h.log, "prayers.get", err, "user_id", access.UserID, "church_id", access.ChurchID, "prayer_id", id)
		return
	}
	common.WriteJSON(w, http.StatusOK, toPrayerResponse(*item))
}

func (h *Handlers) CreatePrayer(w http.ResponseWriter, r *http.Request) {
	var req createPrayerRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}

	item, err := h.Prayers.Create(r.Context(), access, prayerdomain.CreateInput{
		Title:       req.Title,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
		Category:    req.Category,
		PersonID:    req.PersonID,
	})
	if err != nil {
		common.WriteServiceError(w, h.log, "prayers.create", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	common.WriteJSON(w, http.StatusCreated, toPrayerResponse(*item))
}

func (h *Handlers) UpdatePrayer(w http.ResponseWriter, r *http.Request) {
	var req updatePrayerRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "prayerID")

	item, err := h.Prayers.Update(r.Context(), access, prayerdomain.UpdateInput{
		ID:          id,
		Title:       req.Title,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
		Category:    req.Category,
		PersonID:    req.PersonID,
	})
	if err != nil {
		common.WriteServiceError(w, h.log, "prayers.update", err, "user_id", access.UserID, "church_id", access.ChurchID, "prayer_id", id)
		return
	}
	common.WriteJSON(w, http.StatusOK, toPrayerResponse(*item))
}

func (h *Handlers) AnswerPrayer(w http.ResponseWriter, r *http.Request) {
	var req answerPrayerRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "prayerID")

	item, err := h.Prayers.MarkAnswered(r.Context(), access, id, req.Testimony)
	if err != nil {
		common.WriteServiceError(w, h.log, "prayers.answer", err, "user_id", access.UserID, "church_id", access.ChurchID, "prayer_id", id)
		return
	}
	common.WriteJSON(w, http.StatusOK, toPrayerResponse(*item))
}

func (h *Handlers) DeletePrayer(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "prayerID")

	if err := h.Prayers.Delete(r.Context(), access, id); err != nil {
		common.WriteServiceError(w, h.log, "prayers.delete", err, "user_id", access.UserID, "church_id", access.ChurchID, "prayer_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListPrayerComments(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "prayerID")

	comments, err := h.Prayers.ListComments(r.Context(), access, id)
	if err != nil {
		common.WriteServiceError(w, h.log, "prayers.list_comments", err, "user_id", access.UserID, "church_id", access.ChurchID, "prayer_id", id)
		return
	}

	response := make([]prayerCommentResponse, 0, len(comments))
	for _, comment := range comments {
		entry := toPrayerComment(comment.Comment)
		entry.AuthorName = comment.AuthorName
		response = append(response, entry)
	}
	common.WriteJSON(w, http.StatusOK, common.Items(response))
}

func (h *Handlers) AddPrayerComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "prayerID")

	comment, err := h.Prayers.AddComment(r.Context(), access, id, req.Content)
	if err != nil {
		common.WriteServiceError(w, h.log, "prayers.add_comment", err, "user_id", access.UserID, "church_id", access.ChurchID, "prayer_id", id)
		return
	}
	common.WriteJSON(w, http.StatusCreated, toPrayerComment(*comment))
}

func (h *Handlers) DeletePrayerComment(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	commentID := chi.URLParam(r, "commentID")

	if err := h.Prayers.DeleteComment(r.Context(), access, commentID); err != nil {
		common.WriteServiceError(w, h.log, "prayers.delete_comment", err, "user_id", access.UserID, "church_id", access.ChurchID, "comment_id", commentID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// toPrayerResponse renders a redacted author as null.
func toPrayerResponse(item prayerdomain.Listed) prayerResponse {
	response := prayerResponse{
		ID:           item.ID,
		ChurchID:     item.ChurchID,
		Title:        item.Title,
		Content:      item.Content,
		IsAnonymous:  item.IsAnonymous,
		IsAnswered:   item.IsAnswered,
		Testimony:    item.Testimony,
		AnsweredAt:   item.AnsweredAt,
		PersonID:     item.PersonID,
		Category:     item.Category,
		Status:       item.Status,
		CommentCount: item.CommentCount,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
	if item.AuthorID != "" {
		authorID := item.AuthorID
		response.AuthorID = &authorID
	}
	if item.AuthorName != "" {
		authorName := item.AuthorName
		response.AuthorName = &authorName
	}
	return response
}

func toPrayerComment(comment prayerdomain.Comment) prayerCommentResponse {
	return prayerCommentResponse{
		ID:        comment.ID,
		PrayerID:  comment.PrayerID,
		Content:   comment.Content,
		AuthorID:  comment.AuthorID,
		CreatedAt: comment.CreatedAt,
	}
}
