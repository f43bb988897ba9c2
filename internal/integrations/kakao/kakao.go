package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"church-app-go/internal/config"
	authdomain "church-app-go/internal/domain/auth"
	"golang.org/x/oauth2"
)

// Provider implements the Kakao login flow.
type Provider struct {
	oauth      *oauth2.Config
	profileURL string
	client     *http.Client
}

type profileResponse struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"profile"`
	} `json:"kakao_account"`
	Properties struct {
		Nickname     string `json:"nickname"`
		ProfileImage string `json:"profile_image"`
	} `json:"properties"`
}

func New(cfg config.KakaoConfig) *Provider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		profileURL: cfg.ProfileURL,
		client:     &http.Client{Timeout: timeout},
	}
}

func (p *Provider) Name() string {
	return authdomain.ProviderKakao
}

func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

func (p *Provider) Exchange(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("kakao: empty access token")
	}
	return token.AccessToken, nil
}

func (p *Provider) FetchProfile(ctx context.Context, accessToken string) (authdomain.ProviderProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		return authdomain.ProviderProfile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return authdomain.ProviderProfile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return authdomain.ProviderProfile{}, fmt.Errorf("kakao: profile status %d: %s", resp.StatusCode, body)
	}

	var payload profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return authdomain.ProviderProfile{}, fmt.Errorf("kakao: decode profile: %w", err)
	}
	if payload.ID == 0 {
		return authdomain.ProviderProfile{}, fmt.Errorf("kakao: profile without id")
	}

	return authdomain.ProviderProfile{
		ExternalID: strconv.FormatInt(payload.ID, 10),
		Nickname:   firstNonEmpty(payload.KakaoAccount.Profile.Nickname, payload.Properties.Nickname),
		Email:      payload.KakaoAccount.Email,
		AvatarURL:  firstNonEmpty(payload.KakaoAccount.Profile.ProfileImageURL, payload.Properties.ProfileImage),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
