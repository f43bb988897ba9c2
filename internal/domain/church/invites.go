package church

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"church-app-go/internal/domain/validation"
	"github.com/google/uuid"
)

const (
	defaultInviteMaxUses     = 1
	defaultInviteExpiryDays  = 7
	maxInviteUses            = 1000
	maxInviteExpiryDays      = 365
	inviteChurchPrefixLength = 8
	inviteRandomLength       = 8
)

// CreateInvite issues a shareable token granting the given role. The token
// is unguessable enough for a link but is not treated as a secret.
func (s *Service) CreateInvite(ctx context.Context, access Access, input CreateInviteInput) (*InviteToken, error) {
	if !access.IsAdmin() {
		return nil, ErrForbidden
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = RoleMember
	}
	if !ValidRole(role) {
		return nil, ErrInvalidRole
	}

	maxUses := input.MaxUses
	if maxUses <= 0 {
		maxUses = defaultInviteMaxUses
	}
	if maxUses > maxInviteUses {
		return nil, validation.New("max_uses", "must be at most "+strconv.Itoa(maxInviteUses))
	}

	days := input.ExpiresInDays
	if days <= 0 {
		days = defaultInviteExpiryDays
	}
	if days > maxInviteExpiryDays {
		return nil, validation.New("expires_in_days", "must be at most "+strconv.Itoa(maxInviteExpiryDays))
	}

	now := s.now().UTC()
	token, err := generateInviteToken(access.ChurchID, now)
	if err != nil {
		return nil, err
	}

	invite := InviteToken{
		ID:        uuid.NewString(),
		ChurchID:  access.ChurchID,
		Token:     token,
		Role:      role,
		ExpiresAt: now.AddDate(0, 0, days),
		MaxUses:   maxUses,
		UsedCount: 0,
		CreatedBy: access.UserID,
	}
	if err := s.repo.CreateInvite(ctx, &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

// RedeemInvite adds the user to the invite's church. The use counter is
// bumped with a conditional update inside the same transaction as the
// membership insert, so concurrent redemptions cannot exceed MaxUses.
func (s *Service) RedeemInvite(ctx context.Context, token, userID string) (*Church, *Membership, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil, validation.Required("token")
	}

	var (
		church Church
		member Membership
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		invite, err := tx.GetInviteByToken(ctx, token)
		if err != nil {
			return err
		}
		if invite.Expired(s.now()) {
			return ErrInviteExpired
		}
		if invite.Exhausted() {
			return ErrInviteExhausted
		}

		found, err := tx.GetChurch(ctx, invite.ChurchID)
		if err != nil {
			return err
		}
		if found.OwnerID == userID {
			return ErrAlreadyMember
		}
		_, err = tx.GetMember(ctx, invite.ChurchID, userID)
		switch {
		case err == nil:
			return ErrAlreadyMember
		case !errors.Is(err, ErrMemberNotFound):
			return err
		}

		claimed, err := tx.IncrementInviteUse(ctx, invite.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrInviteExhausted
		}

		member = Membership{
			ID:       uuid.NewString(),
			ChurchID: invite.ChurchID,
			UserID:   userID,
			Role:     invite.Role,
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			return err
		}

		church = *found
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &church, &member, nil
}

func (s *Service) ListInvites(ctx context.Context, access Access) ([]InviteToken, error) {
	if !access.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.ListInvites(ctx, access.ChurchID)
}

func (s *Service) RevokeInvite(ctx context.Context, access Access, inviteID string) error {
	if !access.IsAdmin() {
		return ErrForbidden
	}
	deleted, err := s.repo.DeleteInvite(ctx, access.ChurchID, inviteID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInviteNotFound
	}
	return nil
}

// PurgeStaleInvites deletes invites that can no longer be redeemed.
func (s *Service) PurgeStaleInvites(ctx context.Context) (int64, error) {
	return s.repo.DeleteStaleInvites(ctx, s.now().UTC())
}

// generateInviteToken builds church prefix + base-36 millis + random suffix.
func generateInviteToken(churchID string, now time.Time) (string, error) {
	prefix := strings.ReplaceAll(churchID, "-", "")
	if len(prefix) > inviteChurchPrefixLength {
		prefix = prefix[:inviteChurchPrefixLength]
	}

	suffix, err := randomBase36(inviteRandomLength)
	if err != nil {
		return "", err
	}

	return prefix + strconv.FormatInt(now.UnixMilli(), 36) + suffix, nil
}
