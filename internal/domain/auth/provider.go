package auth

import "context"

// Provider is one external OAuth login.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for a provider access token.
	Exchange(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (ProviderProfile, error)
}
