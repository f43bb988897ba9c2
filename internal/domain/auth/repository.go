package auth

import "context"

type Repository interface {
	FindIdentity(ctx context.Context, provider, externalID string) (*Identity, error)
	// CreateIdentity returns ErrIdentityExists when the provider account is
	// already linked.
	CreateIdentity(ctx context.Context, identity *Identity) error
}
