package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeIdentityRepo struct {
	identities map[string]Identity
	// raceWith is stored right before the first insert to simulate a
	// concurrent login winning.
	raceWith *Identity
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{identities: make(map[string]Identity)}
}

func (r *fakeIdentityRepo) FindIdentity(ctx context.Context, provider, externalID string) (*Identity, error) {
	identity, ok := r.identities[provider+"|"+externalID]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	return &identity, nil
}

func (r *fakeIdentityRepo) CreateIdentity(ctx context.Context, identity *Identity) error {
	if r.raceWith != nil {
		r.identities[r.raceWith.Provider+"|"+r.raceWith.ExternalID] = *r.raceWith
		r.raceWith = nil
	}
	key := identity.Provider + "|" + identity.ExternalID
	if _, ok := r.identities[key]; ok {
		return ErrIdentityExists
	}
	r.identities[key] = *identity
	return nil
}

type fakeProvider struct {
	profile     ProviderProfile
	exchangeErr error
	profileErr  error
	codes       []string
}

func (p *fakeProvider) Name() string { return ProviderKakao }

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://kauth.example/authorize?state=" + state
}

func (p *fakeProvider) Exchange(ctx context.Context, code string) (string, error) {
	p.codes = append(p.codes, code)
	if p.exchangeErr != nil {
		return "", p.exchangeErr
	}
	return "provider-token-" + code, nil
}

func (p *fakeProvider) FetchProfile(ctx context.Context, accessToken string) (ProviderProfile, error) {
	if p.profileErr != nil {
		return ProviderProfile{}, p.profileErr
	}
	return p.profile, nil
}

type recordingProfiles struct {
	ensured map[string]string
}

func (r *recordingProfiles) EnsureProfile(ctx context.Context, userID, name, avatarURL string) error {
	if _, ok := r.ensured[userID]; !ok {
		r.ensured[userID] = name
	}
	return nil
}

func newTestService(provider *fakeProvider) (*Service, *fakeIdentityRepo, *recordingProfiles) {
	repo := newFakeIdentityRepo()
	profiles := &recordingProfiles{ensured: map[string]string{}}
	sessions := NewSessions(testSecret, time.Hour, "church-app")
	return NewService(repo, sessions, profiles, provider), repo, profiles
}

func TestLoginWithCodeCreatesIdentityOnce(t *testing.T) {
	provider := &fakeProvider{profile: ProviderProfile{ExternalID: "4242", Nickname: "Grace", AvatarURL: "https://img/a.png"}}
	service, repo, profiles := newTestService(provider)
	ctx := context.Background()

	first, err := service.LoginWithCode(ctx, ProviderKakao, "code-1")
	require.NoError(t, err)
	assert.True(t, first.IsNew)
	assert.NotEmpty(t, first.Token)
	assert.Equal(t, "Grace", profiles.ensured[first.UserID])

	second, err := service.LoginWithCode(ctx, ProviderKakao, "code-2")
	require.NoError(t, err)
	assert.False(t, second.IsNew)
	assert.Equal(t, first.UserID, second.UserID)
	assert.Len(t, repo.identities, 1)

	userID, err := service.ParseSession(second.Token)
	require.NoError(t, err)
	assert.Equal(t, first.UserID, userID)
}

func TestLoginResolvesConcurrentFirstLogin(t *testing.T) {
	provider := &fakeProvider{profile: ProviderProfile{ExternalID: "4242"}}
	service, repo, _ := newTestService(provider)
	repo.raceWith = &Identity{ID: "i-0", Provider: ProviderKakao, ExternalID: "4242", UserID: "winner"}

	result, err := service.LoginWithAccessToken(context.Background(), ProviderKakao, "native-token")
	require.NoError(t, err)
	assert.Equal(t, "winner", result.UserID)
	assert.False(t, result.IsNew)
}

func TestLoginErrors(t *testing.T) {
	ctx := context.Background()

	service, _, _ := newTestService(&fakeProvider{})
	_, err := service.LoginWithCode(ctx, ProviderKakao, " ")
	assert.ErrorIs(t, err, ErrMissingCode)

	_, err = service.LoginWithCode(ctx, "naver", "code")
	assert.ErrorIs(t, err, ErrUnknownProvider)

	service, _, _ = newTestService(&fakeProvider{exchangeErr: errors.New("invalid_grant")})
	_, err = service.LoginWithCode(ctx, ProviderKakao, "code")
	assert.ErrorIs(t, err, ErrTokenExchange)

	service, _, _ = newTestService(&fakeProvider{profileErr: errors.New("401")})
	_, err = service.LoginWithCode(ctx, ProviderKakao, "code")
	assert.ErrorIs(t, err, ErrProfileFetch)

	service, _, _ = newTestService(&fakeProvider{profile: ProviderProfile{}})
	_, err = service.LoginWithAccessToken(ctx, ProviderKakao, "token")
	assert.ErrorIs(t, err, ErrProfileFetch)
}

func TestAuthCodeURL(t *testing.T) {
	service, _, _ := newTestService(&fakeProvider{})

	url, err := service.AuthCodeURL(ProviderKakao, "xyz")
	require.NoError(t, err)
	assert.Equal(t, "https://kauth.example/authorize?state=xyz", url)

	_, err = service.AuthCodeURL("google", "xyz")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestSessions(t *testing.T) {
	sessions := NewSessions(testSecret, time.Hour, "church-app")
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	token, expiresAt, err := sessions.Issue("user-1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	userID, err := sessions.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	other := NewSessions("another-secret-that-is-long", time.Hour, "church-app")
	other.now = sessions.now
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	sessions.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = sessions.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = sessions.Parse(none)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionsRequireSecret(t *testing.T) {
	sessions := NewSessions("short", time.Hour, "church-app")
	assert.False(t, sessions.Enabled())

	_, _, err := sessions.Issue("user-1")
	assert.ErrorIs(t, err, ErrSessionNotConfigured)
}
