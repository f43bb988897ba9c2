package announcement

import (
	"context"
	"strings"
	"time"

	"church-app-go/internal/domain/church"
	"church-app-go/internal/domain/validation"
	"github.com/google/uuid"
)

const (
	maxTitleLength   = 120
	maxCommentLength = 1000
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, access church.Access) ([]Listed, error) {
	items, err := s.repo.List(ctx, access.ChurchID)
	if err != nil {
		return nil, err
	}
	SortFeed(items)
	return items, nil
}

func (s *Service) Get(ctx context.Context, access church.Access, id string) (*Announcement, error) {
	return s.repo.Get(ctx, access.ChurchID, id)
}

func (s *Service) Create(ctx context.Context, access church.Access, input CreateInput) (*Announcement, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}

	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, validation.Required("content")
	}

	announcement := Announcement{
		ID:          uuid.NewString(),
		ChurchID:    access.ChurchID,
		Title:       title,
		Content:     content,
		AuthorID:    access.UserID,
		IsPinned:    input.IsPinned,
		IsImportant: input.IsImportant,
		ImageURL:    trimmedPtr(input.ImageURL),
	}
	if err := s.repo.Create(ctx, &announcement); err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (s *Service) Update(ctx context.Context, access church.Access, input UpdateInput) (*Announcement, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}

	announcement, err := s.repo.Get(ctx, access.ChurchID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		announcement.Title = title
	}
	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return nil, validation.Required("content")
		}
		announcement.Content = content
	}
	if input.IsPinned != nil {
		announcement.IsPinned = *input.IsPinned
	}
	if input.IsImportant != nil {
		announcement.IsImportant = *input.IsImportant
	}
	if input.ImageURL != nil {
		announcement.ImageURL = trimmedPtr(input.ImageURL)
	}
	announcement.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

func (s *Service) Delete(ctx context.Context, access church.Access, id string) error {
	if !access.IsAdmin() {
		return church.ErrForbidden
	}
	deleted, err := s.repo.Delete(ctx, access.ChurchID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAnnouncementNotFound
	}
	return nil
}

func (s *Service) ListComments(ctx context.Context, access church.Access, announcementID string) ([]CommentView, error) {
	if _, err := s.repo.Get(ctx, access.ChurchID, announcementID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, announcementID)
}

// AddComment stamps the comment with the author's role label at the time of
// writing.
func (s *Service) AddComment(ctx context.Context, access church.Access, announcementID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validation.Required("content")
	}
	if len([]rune(content)) > maxCommentLength {
		return nil, validation.New("content", "is too long")
	}
	if _, err := s.repo.Get(ctx, access.ChurchID, announcementID); err != nil {
		return nil, err
	}

	comment := Comment{
		ID:              uuid.NewString(),
		AnnouncementID:  announcementID,
		ChurchID:        access.ChurchID,
		Content:         content,
		AuthorID:        access.UserID,
		AuthorRoleLabel: access.RoleLabel(),
	}
	if err := s.repo.CreateComment(ctx, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment is allowed for the comment author and church admins.
func (s *Service) DeleteComment(ctx context.Context, access church.Access, commentID string) error {
	comment, err := s.repo.GetComment(ctx, access.ChurchID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != access.UserID && !access.IsAdmin() {
		return church.ErrForbidden
	}

	deleted, err := s.repo.DeleteComment(ctx, access.ChurchID, commentID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCommentNotFound
	}
	return nil
}

func validateTitle(value string) (string, error) {
	title := strings.TrimSpace(value)
	if title == "" {
		return "", validation.Required("title")
	}
	if len([]rune(title)) > maxTitleLength {
		return "", validation.New("title", "is too long")
	}
	return title, nil
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
