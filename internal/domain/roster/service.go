package roster

import (
	"context"
	"sort"
	"strings"
	"time"

	"church-app-go/internal/domain/validation"
	"github.com/google/uuid"
)

const (
	maxPersonNameLength = 60
	maxAge              = 130
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListPersons(ctx context.Context, churchID string, filter ListFilter) ([]Person, error) {
	filter.Type = strings.TrimSpace(filter.Type)
	if filter.Type != "" && !validType(filter.Type) {
		return nil, validation.New("type", "must be student or teacher")
	}
	filter.Query = strings.TrimSpace(filter.Query)
	return s.repo.ListPersons(ctx, churchID, filter)
}

func (s *Service) GetPerson(ctx context.Context, churchID, personID string) (*Person, error) {
	return s.repo.GetPerson(ctx, churchID, personID)
}

func (s *Service) CreatePerson(ctx context.Context, input CreatePersonInput) (*Person, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	personType := strings.TrimSpace(input.Type)
	if personType == "" {
		personType = TypeStudent
	}
	if !validType(personType) {
		return nil, validation.New("type", "must be student or teacher")
	}

	if err := validateAge(input.Age); err != nil {
		return nil, err
	}

	days, err := NormalizeDays(input.AttendanceDays)
	if err != nil {
		return nil, err
	}

	person := Person{
		ID:             uuid.NewString(),
		ChurchID:       input.ChurchID,
		Name:           name,
		Phone:          trimmedPtr(input.Phone),
		Age:            input.Age,
		Grade:          trimmedPtr(input.Grade),
		Type:           personType,
		AttendanceDays: days,
		Notes:          trimmedPtr(input.Notes),
		RegisteredBy:   input.RegisteredBy,
	}
	if err := s.repo.CreatePerson(ctx, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

func (s *Service) UpdatePerson(ctx context.Context, input UpdatePersonInput) (*Person, error) {
	person, err := s.repo.GetPerson(ctx, input.ChurchID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		person.Name = name
	}
	if input.Type != nil {
		personType := strings.TrimSpace(*input.Type)
		if !validType(personType) {
			return nil, validation.New("type", "must be student or teacher")
		}
		person.Type = personType
	}
	if input.Age != nil {
		if err := validateAge(input.Age); err != nil {
			return nil, err
		}
		person.Age = input.Age
	}
	if input.Phone != nil {
		person.Phone = trimmedPtr(input.Phone)
	}
	if input.Grade != nil {
		person.Grade = trimmedPtr(input.Grade)
	}
	if input.Notes != nil {
		person.Notes = trimmedPtr(input.Notes)
	}
	if input.AttendanceDays != nil {
		days, err := NormalizeDays(*input.AttendanceDays)
		if err != nil {
			return nil, err
		}
		person.AttendanceDays = days
	}
	person.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdatePerson(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *Service) SetPhoto(ctx context.Context, churchID, personID, url string) (*Person, error) {
	if strings.TrimSpace(url) == "" {
		return nil, validation.Required("photo_url")
	}
	if err := s.repo.UpdatePhotoURL(ctx, churchID, personID, url); err != nil {
		return nil, err
	}
	return s.repo.GetPerson(ctx, churchID, personID)
}

func (s *Service) DeletePerson(ctx context.Context, churchID, personID string) error {
	deleted, err := s.repo.DeletePerson(ctx, churchID, personID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPersonNotFound
	}
	return nil
}

// PartitionEligible splits persons into those expected on day and the rest,
// preserving input order.
func PartitionEligible(persons []Person, day time.Time) (eligible, ineligible []Person) {
	eligible = make([]Person, 0, len(persons))
	ineligible = make([]Person, 0)
	for _, person := range persons {
		if person.IsEligibleOn(day) {
			eligible = append(eligible, person)
		} else {
			ineligible = append(ineligible, person)
		}
	}
	return eligible, ineligible
}

// NormalizeDays validates weekday indices (0=Sunday..6=Saturday) and returns
// them sorted without duplicates.
func NormalizeDays(days []int) ([]int, error) {
	seen := make(map[int]struct{}, len(days))
	result := make([]int, 0, len(days))
	for _, day := range days {
		if day < 0 || day > 6 {
			return nil, validation.New("attendance_days", "weekday must be between 0 and 6")
		}
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		result = append(result, day)
	}
	sort.Ints(result)
	return result, nil
}

func validateName(value string) (string, error) {
	name := strings.TrimSpace(value)
	if name == "" {
		return "", validation.Required("name")
	}
	if len([]rune(name)) > maxPersonNameLength {
		return "", validation.New("name", "is too long")
	}
	return name, nil
}

func validateAge(age *int) error {
	if age == nil {
		return nil
	}
	if *age < 0 || *age > maxAge {
		return validation.New("age", "is out of range")
	}
	return nil
}

func validType(value string) bool {
	return value == TypeStudent || value == TypeTeacher
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
