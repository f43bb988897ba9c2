package finance

import (
	"context"
	"strings"
	"time"

	"church-app-go/internal/domain/church"
	"church-app-go/internal/domain/roster"
	"church-app-go/internal/domain/validation"
	"github.com/google/uuid"
)

const maxAmount = 1_000_000_000_000

// PersonLookup confirms a linked person belongs to the church.
type PersonLookup interface {
	GetPerson(ctx context.Context, churchID, personID string) (*roster.Person, error)
}

// Service guards both ledgers; every operation is admin only.
type Service struct {
	repo    Repository
	persons PersonLookup
	now     func() time.Time
}

func NewService(repo Repository, persons PersonLookup) *Service {
	return &Service{repo: repo, persons: persons, now: time.Now}
}

func (s *Service) ListOfferings(ctx context.Context, access church.Access, filter ListFilter) ([]Offering, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}
	if err := validateRange(filter); err != nil {
		return nil, err
	}
	return s.repo.ListOfferings(ctx, access.ChurchID, filter)
}

func (s *Service) CreateOffering(ctx context.Context, access church.Access, input OfferingInput) (*Offering, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}
	if err := s.validateOffering(ctx, access.ChurchID, &input); err != nil {
		return nil, err
	}

	offering := Offering{
		ID:         uuid.NewString(),
		ChurchID:   access.ChurchID,
		Type:       input.Type,
		Amount:     input.Amount,
		Date:       dateOnly(input.Date),
		PersonID:   input.PersonID,
		Notes:      trimmedPtr(input.Notes),
		RecordedBy: access.UserID,
	}
	if err := s.repo.CreateOffering(ctx, &offering); err != nil {
		return nil, err
	}
	return &offering, nil
}

func (s *Service) UpdateOffering(ctx context.Context, access church.Access, id string, input OfferingInput) (*Offering, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}
	offering, err := s.repo.GetOffering(ctx, access.ChurchID, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateOffering(ctx, access.ChurchID, &input); err != nil {
		return nil, err
	}

	offering.Type = input.Type
	offering.Amount = input.Amount
	offering.Date = dateOnly(input.Date)
	offering.PersonID = input.PersonID
	offering.Notes = trimmedPtr(input.Notes)
	offering.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateOffering(ctx, offering); err != nil {
		return nil, err
	}
	return offering, nil
}

func (s *Service) DeleteOffering(ctx context.Context, access church.Access, id string) error {
	if !access.IsAdmin() {
		return church.ErrForbidden
	}
	deleted, err := s.repo.DeleteOffering(ctx, access.ChurchID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrOfferingNotFound
	}
	return nil
}

func (s *Service) ListExpenses(ctx context.Context, access church.Access, filter ListFilter) ([]Expense, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}
	if err := validateRange(filter); err != nil {
		return nil, err
	}
	return s.repo.ListExpenses(ctx, access.ChurchID, filter)
}

func (s *Service) CreateExpense(ctx context.Context, access church.Access, input ExpenseInput) (*Expense, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}
	if err := validateExpense(&input); err != nil {
		return nil, err
	}

	expense := Expense{
		ID:          uuid.NewString(),
		ChurchID:    access.ChurchID,
		Category:    input.Category,
		Amount:      input.Amount,
		Date:        dateOnly(input.Date),
		Description: trimmedPtr(input.Description),
		Notes:       trimmedPtr(input.Notes),
		RecordedBy:  access.UserID,
	}
	if err := s.repo.CreateExpense(ctx, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *Service) UpdateExpense(ctx context.Context, access church.Access, id string, input ExpenseInput) (*Expense, error) {
	if !access.IsAdmin() {
		return nil, church.ErrForbidden
	}
	expense, err := s.repo.GetExpense(ctx, access.ChurchID, id)
	if err != nil {
		return nil, err
	}
	if err := validateExpense(&input); err != nil {
		return nil, err
	}

	expense.Category = input.Category
	expense.Amount = input.Amount
	expense.Date = dateOnly(input.Date)
	expense.Description = trimmedPtr(input.Description)
	expense.Notes = trimmedPtr(input.Notes)
	expense.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *Service) DeleteExpense(ctx context.Context, access church.Access, id string) error {
	if !access.IsAdmin() {
		return church.ErrForbidden
	}
	deleted, err := s.repo.DeleteExpense(ctx, access.ChurchID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *Service) Summary(ctx context.Context, access church.Access, from, to *time.Time) (Summary, error) {
	if !access.IsAdmin() {
		return Summary{}, church.ErrForbidden
	}
	filter := ListFilter{From: from, To: to}
	if err := validateRange(filter); err != nil {
		return Summary{}, err
	}

	offerings, err := s.repo.ListOfferings(ctx, access.ChurchID, filter)
	if err != nil {
		return Summary{}, err
	}
	expenses, err := s.repo.ListExpenses(ctx, access.ChurchID, filter)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(offerings, expenses), nil
}

func (s *Service) validateOffering(ctx context.Context, churchID string, input *OfferingInput) error {
	input.Type = strings.TrimSpace(strings.ToLower(input.Type))
	if input.Type == "" {
		input.Type = OfferingGeneral
	}
	if !ValidOfferingType(input.Type) {
		return validation.New("type", "is unknown")
	}
	if err := validateAmount(input.Amount); err != nil {
		return err
	}
	if input.Date.IsZero() {
		return validation.Required("date")
	}

	input.PersonID = trimmedPtr(input.PersonID)
	if input.PersonID != nil {
		if _, err := s.persons.GetPerson(ctx, churchID, *input.PersonID); err != nil {
			return err
		}
	}
	return nil
}

func validateExpense(input *ExpenseInput) error {
	input.Category = strings.TrimSpace(input.Category)
	if input.Category == "" {
		return validation.Required("category")
	}
	if err := validateAmount(input.Amount); err != nil {
		return err
	}
	if input.Date.IsZero() {
		return validation.Required("date")
	}
	return nil
}

func validateAmount(amount float64) error {
	if amount <= 0 {
		return validation.New("amount", "must be positive")
	}
	if amount > maxAmount {
		return validation.New("amount", "is too large")
	}
	return nil
}

func validateRange(filter ListFilter) error {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return validation.New("to", "must not be before from")
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
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
