package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ProfileEnsurer creates the application profile on first login.
type ProfileEnsurer interface {
	EnsureProfile(ctx context.Context, userID, name, avatarURL string) error
}

type Service struct {
	repo      Repository
	providers map[string]Provider
	sessions  *Sessions
	profiles  ProfileEnsurer
}

func NewService(repo Repository, sessions *Sessions, profiles ProfileEnsurer, providers ...Provider) *Service {
	byName := make(map[string]Provider, len(providers))
	for _, provider := range providers {
		byName[provider.Name()] = provider
	}
	return &Service{
		repo:      repo,
		providers: byName,
		sessions:  sessions,
		profiles:  profiles,
	}
}

func (s *Service) AuthCodeURL(providerName, state string) (string, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return "", ErrUnknownProvider
	}
	return provider.AuthCodeURL(state), nil
}

// LoginWithCode completes the browser redirect flow.
func (s *Service) LoginWithCode(ctx context.Context, providerName, code string) (*LoginResult, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, ErrUnknownProvider
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrMissingCode
	}

	accessToken, err := provider.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}
	return s.login(ctx, provider, accessToken)
}

// LoginWithAccessToken is used by native apps that already hold a provider
// access token.
func (s *Service) LoginWithAccessToken(ctx context.Context, providerName, accessToken string) (*LoginResult, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, ErrUnknownProvider
	}
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, fmt.Errorf("%w: access token is empty", ErrProfileFetch)
	}
	return s.login(ctx, provider, accessToken)
}

func (s *Service) ParseSession(token string) (string, error) {
	return s.sessions.Parse(token)
}

func (s *Service) login(ctx context.Context, provider Provider, accessToken string) (*LoginResult, error) {
	profile, err := provider.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileFetch, err)
	}
	if profile.ExternalID == "" {
		return nil, fmt.Errorf("%w: provider returned no account id", ErrProfileFetch)
	}

	userID, isNew, err := s.resolveUser(ctx, provider.Name(), profile.ExternalID)
	if err != nil {
		return nil, err
	}

	if s.profiles != nil {
		if err := s.profiles.EnsureProfile(ctx, userID, profile.Nickname, profile.AvatarURL); err != nil {
			return nil, fmt.Errorf("ensure profile: %w", err)
		}
	}

	token, expiresAt, err := s.sessions.Issue(userID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    userID,
		IsNew:     isNew,
		Profile:   profile,
	}, nil
}

// resolveUser returns the user linked to the external account, linking a new
// user id on first login. A concurrent first login for the same account
// resolves to whichever link was stored first.
func (s *Service) resolveUser(ctx context.Context, provider, externalID string) (string, bool, error) {
	identity, err := s.repo.FindIdentity(ctx, provider, externalID)
	if err == nil {
		return identity.UserID, false, nil
	}
	if !errors.Is(err, ErrIdentityNotFound) {
		return "", false, fmt.Errorf("find identity: %w", err)
	}

	identity = &Identity{
		ID:         uuid.NewString(),
		Provider:   provider,
		ExternalID: externalID,
		UserID:     uuid.NewString(),
	}
	if err := s.repo.CreateIdentity(ctx, identity); err != nil {
		if !errors.Is(err, ErrIdentityExists) {
			return "", false, fmt.Errorf("create identity: %w", err)
		}
		existing, err := s.repo.FindIdentity(ctx, provider, externalID)
		if err != nil {
			return "", false, fmt.Errorf("find identity: %w", err)
		}
		return existing.UserID, false, nil
	}
	return identity.UserID, true, nil
}
