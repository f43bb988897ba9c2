package user

import "context"

type Repository interface {
	UpsertProfile(ctx context.Context, profile *Profile) error
	CreateProfileIfAbsent(ctx context.Context, profile *Profile) (bool, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, profile *Profile) error
}
