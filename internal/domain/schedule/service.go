package schedule

import (
	"context"
	"strings"
	"time"

	"church-app-go/internal/domain/church"
	"church-app-go/internal/domain/roster"
	"church-app-go/internal/domain/validation"
	"github.com/google/uuid"
)

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

func (s *Service) List(ctx context.Context, access church.Access, filter ListFilter) ([]Listed, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, validation.New("to", "must not be before from")
	}
	filter.Status = strings.TrimSpace(filter.Status)
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, validation.New("status", "is unknown")
	}
	return s.repo.List(ctx, access.ChurchID, filter)
}

func (s *Service) Create(ctx context.Context, access church.Access, input DutyInput) (*Duty, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}
	if err := s.normalize(ctx, access.ChurchID, &input); err != nil {
		return nil, err
	}

	duty := Duty{
		ID:         uuid.NewString(),
		ChurchID:   access.ChurchID,
		DutyType:   input.DutyType,
		DutyName:   input.DutyName,
		PersonID:   input.PersonID,
		Date:       input.Date,
		Status:     input.Status,
		Notes:      input.Notes,
		AssignedBy: access.UserID,
	}
	if err := s.repo.Create(ctx, &duty); err != nil {
		return nil, err
	}
	return &duty, nil
}

func (s *Service) Update(ctx context.Context, access church.Access, id string, input DutyInput) (*Duty, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}
	duty, err := s.repo.Get(ctx, access.ChurchID, id)
	if err != nil {
		return nil, err
	}
	if err := s.normalize(ctx, access.ChurchID, &input); err != nil {
		return nil, err
	}

	duty.DutyType = input.DutyType
	duty.DutyName = input.DutyName
	duty.PersonID = input.PersonID
	duty.Date = input.Date
	duty.Status = input.Status
	duty.Notes = input.Notes
	duty.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, duty); err != nil {
		return nil, err
	}
	return duty, nil
}

// SetStatus moves a duty between scheduled, completed and cancelled.
func (s *Service) SetStatus(ctx context.Context, access church.Access, id, status string) (*Duty, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}
	status = strings.TrimSpace(status)
	if !ValidStatus(status) {
		return nil, validation.New("status", "is unknown")
	}

	duty, err := s.repo.Get(ctx, access.ChurchID, id)
	if err != nil {
		return nil, err
	}
	duty.Status = status
	duty.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, duty); err != nil {
		return nil, err
	}
	return duty, nil
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
		return ErrDutyNotFound
	}
	return nil
}

func (s *Service) normalize(ctx context.Context, churchID string, input *DutyInput) error {
	input.DutyType = strings.TrimSpace(strings.ToLower(input.DutyType))
	if input.DutyType == "" {
		return validation.Required("duty_type")
	}
	input.DutyName = strings.TrimSpace(input.DutyName)
	if input.DutyName == "" {
		return validation.Required("duty_name")
	}
	if input.Date.IsZero() {
		return validation.Required("date")
	}
	y, m, d := input.Date.Date()
	input.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	input.Status = strings.TrimSpace(input.Status)
	if input.Status == "" {
		input.Status = StatusScheduled
	}
	if !ValidStatus(input.Status) {
		return validation.New("status", "is unknown")
	}

	input.PersonID = trimmedPtr(input.PersonID)
	if input.PersonID != nil {
		if _, err := s.persons.GetPerson(ctx, churchID, *input.PersonID); err != nil {
			return err
		}
	}
	input.Notes = trimmedPtr(input.Notes)
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
