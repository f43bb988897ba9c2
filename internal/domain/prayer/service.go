package prayer

import (
	"context"
	"strings"
	"time"

	"church-app-go/internal/domain/church"
	"church-app-go/internal/domain/roster"
	"church-app-go/internal/domain/validation"
	"github.com/google/uuid"
)

const (
	maxTitleLength   = 120
	maxCommentLength = 1000
)

// PersonLookup confirms a linked person belongs to the church.
type PersonLookup interface {
	GetPerson(ctx context.Context, churchID, personID string) (*roster.Person, error)
}

type Service struct {
	repo    Repository
	persons PersonLookup
	now     func() time.Time
}

func NewService(repo Repository, persons PersonLookup) *Service {
	return &Service{repo: repo, persons: persons, now: time.Now}
}

// Redact hides the author of an anonymous request from everyone but the
// author and church admins.
func Redact(item Listed, access church.Access) Listed {
	if !item.IsAnonymous || item.AuthorID == access.UserID || access.IsAdmin() {
		return item
	}
	item.AuthorID = ""
	item.AuthorName = ""
	return item
}

func canModify(request *Request, access church.Access) bool {
	return request.AuthorID == access.UserID || access.IsAdmin()
}

func (s *Service) List(ctx context.Context, access church.Access, filter Filter) ([]Listed, error) {
	filter.Status = strings.TrimSpace(filter.Status)
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, validation.New("status", "must be praying or answered")
	}
	filter.Category = strings.TrimSpace(filter.Category)
	if filter.Category != "" && !ValidCategory(filter.Category) {
		return nil, validation.New("category", "is unknown")
	}

	items, err := s.repo.List(ctx, access.ChurchID, filter)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = Redact(items[i], access)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, access church.Access, id string) (*Listed, error) {
	item, err := s.repo.Find(ctx, access.ChurchID, id)
	if err != nil {
		return nil, err
	}
	redacted := Redact(*item, access)
	return &redacted, nil
}

func (s *Service) Create(ctx context.Context, access church.Access, input CreateInput) (*Listed, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, validation.Required("content")
	}
	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}
	personID, err := s.linkedPerson(ctx, access.ChurchID, input.PersonID)
	if err != nil {
		return nil, err
	}

	request := Request{
		ID:          uuid.NewString(),
		ChurchID:    access.ChurchID,
		Title:       title,
		Content:     content,
		AuthorID:    access.UserID,
		IsAnonymous: input.IsAnonymous,
		PersonID:    personID,
		Category:    category,
		Status:      StatusPraying,
	}
	if err := s.repo.Create(ctx, &request); err != nil {
		return nil, err
	}
	return s.Get(ctx, access, request.ID)
}

func (s *Service) Update(ctx context.Context, access church.Access, input UpdateInput) (*Listed, error) {
	request, err := s.repo.Get(ctx, access.ChurchID, input.ID)
	if err != nil {
		return nil, err
	}
	if !canModify(request, access) {
		return nil, church.ErrForbidden
	}

	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		request.Title = title
	}
	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return nil, validation.Required("content")
		}
		request.Content = content
	}
	if input.IsAnonymous != nil {
		request.IsAnonymous = *input.IsAnonymous
	}
	if input.Category != nil {
		category, err := normalizeCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		request.Category = category
	}
	if input.PersonID != nil {
		personID, err := s.linkedPerson(ctx, access.ChurchID, input.PersonID)
		if err != nil {
			return nil, err
		}
		request.PersonID = personID
	}
	request.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, request); err != nil {
		return nil, err
	}
	return s.Get(ctx, access, request.ID)
}

// MarkAnswered closes the request with an optional testimony.
func (s *Service) MarkAnswered(ctx context.Context, access church.Access, id string, testimony *string) (*Listed, error) {
	request, err := s.repo.Get(ctx, access.ChurchID, id)
	if err != nil {
		return nil, err
	}
	if !canModify(request, access) {
		return nil, church.ErrForbidden
	}

	now := s.now().UTC()
	request.IsAnswered = true
	request.Status = StatusAnswered
	request.AnsweredAt = &now
	request.Testimony = trimmedPtr(testimony)
	request.UpdatedAt = now

	if err := s.repo.Update(ctx, request); err != nil {
		return nil, err
	}
	return s.Get(ctx, access, request.ID)
}

func (s *Service) Delete(ctx context.Context, access church.Access, id string) error {
	request, err := s.repo.Get(ctx, access.ChurchID, id)
	if err != nil {
		return err
	}
	if !canModify(request, access) {
		return church.ErrForbidden
	}

	deleted, err := s.repo.Delete(ctx, access.ChurchID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPrayerNotFound
	}
	return nil
}

func (s *Service) ListComments(ctx context.Context, access church.Access, prayerID string) ([]CommentView, error) {
	if _, err := s.repo.Get(ctx, access.ChurchID, prayerID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, prayerID)
}

func (s *Service) AddComment(ctx context.Context, access church.Access, prayerID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validation.Required("content")
	}
	if len([]rune(content)) > maxCommentLength {
		return nil, validation.New("content", "is too long")
	}
	if _, err := s.repo.Get(ctx, access.ChurchID, prayerID); err != nil {
		return nil, err
	}

	comment := Comment{
		ID:       uuid.NewString(),
		PrayerID: prayerID,
		ChurchID: access.ChurchID,
		Content:  content,
		AuthorID: access.UserID,
	}
	if err := s.repo.CreateComment(ctx, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

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

// linkedPerson returns nil for a blank id. A person from another church reads
// as not found.
func (s *Service) linkedPerson(ctx context.Context, churchID string, value *string) (*string, error) {
	personID := trimmedPtr(value)
	if personID == nil {
		return nil, nil
	}
	if _, err := s.persons.GetPerson(ctx, churchID, *personID); err != nil {
		return nil, err
	}
	return personID, nil
}

func normalizeCategory(value string) (string, error) {
	category := strings.TrimSpace(strings.ToLower(value))
	if category == "" {
		return DefaultCategory, nil
	}
	if !ValidCategory(category) {
		return "", validation.New("category", "is unknown")
	}
	return category, nil
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
