package church

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateChurch(ctx context.Context, church *Church) error
	GetChurch(ctx context.Context, churchID string) (*Church, error)
	ListChurchesByUser(ctx context.Context, userID string) ([]ChurchWithRole, error)
	UpdateChurch(ctx context.Context, church *Church) error
	DeleteChurch(ctx context.Context, churchID string) error
	IsSlugTaken(ctx context.Context, slug string) (bool, error)

	AddMember(ctx context.Context, member *Membership) error
	GetMember(ctx context.Context, churchID, userID string) (*Membership, error)
	ListMembers(ctx context.Context, churchID string) ([]MemberProfile, error)
	UpdateMemberRole(ctx context.Context, churchID, userID, role string) error
	DeleteMember(ctx context.Context, churchID, userID string) (bool, error)

	CreateInvite(ctx context.Context, invite *InviteToken) error
	GetInviteByToken(ctx context.Context, token string) (*InviteToken, error)
	ListInvites(ctx context.Context, churchID string) ([]InviteToken, error)
	IncrementInviteUse(ctx context.Context, inviteID string) (bool, error)
	DeleteInvite(ctx context.Context, churchID, inviteID string) (bool, error)
	DeleteStaleInvites(ctx context.Context, now time.Time) (int64, error)
}
