package church

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"church-app-go/internal/domain/validation"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	maxChurchNameLength = 80
	slugAttempts        = 10
	slugSuffixLength    = 4
	fallbackSlug        = "church"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateChurch stores the church and the creator's admin membership in a
// single transaction. Either both rows exist afterwards or neither does.
func (s *Service) CreateChurch(ctx context.Context, input CreateChurchInput) (*Church, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validation.Required("name")
	}
	if len([]rune(name)) > maxChurchNameLength {
		return nil, validation.New("name", "is too long")
	}
	if input.OwnerID == "" {
		return nil, validation.Required("owner_id")
	}

	var result Church
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		churchSlug, err := generateUniqueSlug(ctx, tx, name)
		if err != nil {
			return err
		}

		church := Church{
			ID:          uuid.NewString(),
			Name:        name,
			Slug:        churchSlug,
			Description: trimmedOrNil(input.Description),
			OwnerID:     input.OwnerID,
		}
		if err := tx.CreateChurch(ctx, &church); err != nil {
			return err
		}

		member := Membership{
			ID:       uuid.NewString(),
			ChurchID: church.ID,
			UserID:   input.OwnerID,
			Role:     RoleAdmin,
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			return err
		}

		result = church
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) GetChurch(ctx context.Context, churchID string) (*Church, error) {
	return s.repo.GetChurch(ctx, churchID)
}

func (s *Service) ListChurches(ctx context.Context, userID string) ([]ChurchWithRole, error) {
	return s.repo.ListChurchesByUser(ctx, userID)
}

// ResolveAccess loads the caller's role in the church. Callers that are
// neither owner nor member get ErrNotMember.
func (s *Service) ResolveAccess(ctx context.Context, churchID, userID string) (Access, error) {
	church, err := s.repo.GetChurch(ctx, churchID)
	if err != nil {
		return Access{}, err
	}

	access := Access{
		ChurchID: church.ID,
		UserID:   userID,
		IsOwner:  church.OwnerID == userID,
	}

	member, err := s.repo.GetMember(ctx, churchID, userID)
	switch {
	case err == nil:
		access.Role = member.Role
	case errors.Is(err, ErrMemberNotFound):
		if !access.IsOwner {
			return Access{}, ErrNotMember
		}
	default:
		return Access{}, err
	}

	return access, nil
}

func (s *Service) IsAdmin(ctx context.Context, churchID, userID string) (bool, error) {
	access, err := s.ResolveAccess(ctx, churchID, userID)
	if err != nil {
		if errors.Is(err, ErrNotMember) {
			return false, nil
		}
		return false, err
	}
	return access.IsAdmin(), nil
}

func (s *Service) UpdateChurch(ctx context.Context, access Access, input UpdateChurchInput) (*Church, error) {
	if !access.IsAdmin() {
		return nil, ErrForbidden
	}

	church, err := s.repo.GetChurch(ctx, access.ChurchID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, validation.Required("name")
		}
		if len([]rune(name)) > maxChurchNameLength {
			return nil, validation.New("name", "is too long")
		}
		church.Name = name
	}
	if input.Description != nil {
		church.Description = trimmedOrNil(*input.Description)
	}
	church.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateChurch(ctx, church); err != nil {
		return nil, err
	}
	return church, nil
}

// DeleteChurch removes the church and everything scoped to it. Only the
// owner may do this.
func (s *Service) DeleteChurch(ctx context.Context, access Access) error {
	if !access.IsOwner {
		return ErrNotOwner
	}
	return s.repo.DeleteChurch(ctx, access.ChurchID)
}

func (s *Service) ListMembers(ctx context.Context, access Access) ([]MemberProfile, error) {
	church, err := s.repo.GetChurch(ctx, access.ChurchID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, access.ChurchID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].IsOwner = members[i].UserID == church.OwnerID
	}
	return members, nil
}

func (s *Service) UpdateMemberRole(ctx context.Context, access Access, userID, role string) error {
	if !access.IsAdmin() {
		return ErrForbidden
	}
	if !ValidRole(role) {
		return ErrInvalidRole
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		church, err := tx.GetChurch(ctx, access.ChurchID)
		if err != nil {
			return err
		}
		if church.OwnerID == userID {
			return ErrOwnerRoleFixed
		}
		if _, err := tx.GetMember(ctx, access.ChurchID, userID); err != nil {
			return err
		}
		return tx.UpdateMemberRole(ctx, access.ChurchID, userID, role)
	})
}

func (s *Service) RemoveMember(ctx context.Context, access Access, userID string) error {
	if !access.IsAdmin() {
		return ErrForbidden
	}

	church, err := s.repo.GetChurch(ctx, access.ChurchID)
	if err != nil {
		return err
	}
	if church.OwnerID == userID {
		return ErrCannotRemoveOwner
	}

	deleted, err := s.repo.DeleteMember(ctx, access.ChurchID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMemberNotFound
	}
	return nil
}

func (s *Service) Leave(ctx context.Context, access Access) error {
	if access.IsOwner {
		return ErrOwnerCannotLeave
	}

	deleted, err := s.repo.DeleteMember(ctx, access.ChurchID, access.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMemberNotFound
	}
	return nil
}

func generateUniqueSlug(ctx context.Context, repo Repository, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = fallbackSlug
	}

	candidate := base
	for i := 0; i < slugAttempts; i++ {
		taken, err := repo.IsSlugTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}

		suffix, err := randomBase36(slugSuffixLength)
		if err != nil {
			return "", err
		}
		candidate = base + "-" + suffix
	}
	return "", ErrSlugGenerationFailed
}

func randomBase36(length int) (string, error) {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	max := big.NewInt(int64(len(alphabet)))

	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[n.Int64()])
	}

	return builder.String(), nil
}

func trimmedOrNil(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
