package calendar

import (
	"context"
	"strings"
	"time"

	"church-app-go/internal/domain/church"
	"church-app-go/internal/domain/validation"
	"github.com/google/uuid"
)

const maxListSpan = 366 * 24 * time.Hour

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, access church.Access, from, to time.Time) ([]Event, error) {
	if to.Before(from) {
		return nil, validation.New("to", "must not be before from")
	}
	if to.Sub(from) > maxListSpan {
		return nil, validation.New("to", "range is too long")
	}
	return s.repo.ListOverlapping(ctx, access.ChurchID, from, to)
}

func (s *Service) Get(ctx context.Context, access church.Access, id string) (*Event, error) {
	return s.repo.Get(ctx, access.ChurchID, id)
}

func (s *Service) Create(ctx context.Context, access church.Access, input EventInput) (*Event, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}
	if err := normalizeEvent(&input); err != nil {
		return nil, err
	}

	event := Event{
		ID:          uuid.NewString(),
		ChurchID:    access.ChurchID,
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		StartAt:     input.StartAt.UTC(),
		EndAt:       input.EndAt.UTC(),
		Location:    input.Location,
		CreatedBy:   access.UserID,
	}
	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Service) Update(ctx context.Context, access church.Access, id string, input EventInput) (*Event, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}
	event, err := s.repo.Get(ctx, access.ChurchID, id)
	if err != nil {
		return nil, err
	}
	if err := normalizeEvent(&input); err != nil {
		return nil, err
	}

	event.Title = input.Title
	event.Description = input.Description
	event.Type = input.Type
	event.StartAt = input.StartAt.UTC()
	event.EndAt = input.EndAt.UTC()
	event.Location = input.Location
	event.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
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
		return ErrEventNotFound
	}
	return nil
}

func normalizeEvent(input *EventInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return validation.Required("title")
	}
	input.Type = strings.TrimSpace(strings.ToLower(input.Type))
	if input.Type == "" {
		input.Type = DefaultEventType
	}
	if !ValidEventType(input.Type) {
		return validation.New("type", "is unknown")
	}
	if input.StartAt.IsZero() {
		return validation.Required("start_at")
	}
	if input.EndAt.IsZero() {
		input.EndAt = input.StartAt
	}
	if input.EndAt.Before(input.StartAt) {
		return validation.New("end_at", "must not be before start_at")
	}
	input.Description = trimmedPtr(input.Description)
	input.Location = trimmedPtr(input.Location)
	return nil
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
