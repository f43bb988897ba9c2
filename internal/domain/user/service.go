package user

import (
	"context"
	"strings"

	"church-app-go/internal/domain/validation"
)

const maxNameLength = 60

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpsertProfile records the email and avatar reported by the identity
// provider on every authenticated request. Name, phone and bio are owned by
// the user and never touched here.
func (s *Service) UpsertProfile(ctx context.Context, userID, email, avatarURL string) error {
	if userID == "" {
		return validation.Required("user_id")
	}

	profile := Profile{UserID: userID}
	if email != "" {
		profile.Email = &email
	}
	if avatarURL != "" {
		profile.AvatarURL = &avatarURL
	}

	return s.repo.UpsertProfile(ctx, &profile)
}

// EnsureProfile creates the profile row on first login. An existing profile
// is left untouched.
func (s *Service) EnsureProfile(ctx context.Context, userID, name, avatarURL string) error {
	if userID == "" {
		return validation.Required("user_id")
	}

	profile := Profile{UserID: userID, Name: truncate(strings.TrimSpace(name), maxNameLength)}
	if avatarURL != "" {
		profile.AvatarURL = &avatarURL
	}

	_, err := s.repo.CreateProfileIfAbsent(ctx, &profile)
	return err
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*Profile, error) {
	profile, err := s.repo.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, validation.Required("name")
		}
		if len([]rune(name)) > maxNameLength {
			return nil, validation.New("name", "is too long")
		}
		profile.Name = name
	}
	if input.Phone != nil {
		profile.Phone = trimmedOrNil(*input.Phone)
	}
	if input.Bio != nil {
		profile.Bio = trimmedOrNil(*input.Bio)
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = trimmedOrNil(*input.AvatarURL)
	}

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func trimmedOrNil(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
