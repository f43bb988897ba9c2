package common

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	authdomain "church-app-go/internal/domain/auth"
	userdomain "church-app-go/internal/domain/user"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const stateCookie = "oauth_state"

type nativeLoginRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

type loginUserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	IsNew     bool   `json:"is_new"`
}

type loginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      loginUserResponse `json:"user"`
}

type authMeResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// OAuthLogin redirects the browser to the provider's consent page.
func (h *Handlers) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	state := uuid.NewString()

	target, err := h.Auth.AuthCodeURL(provider, state)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_provider", "unknown auth provider")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/api/auth",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, target, http.StatusFound)
}

// OAuthCallback finishes the browser flow. Failures never render an error
// page; they send the browser back to the login screen with a code.
func (h *Handlers) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	query := r.URL.Query()

	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/api/auth", MaxAge: -1})

	// A missing cookie counts as a mismatch.
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
		h.log.Warn("auth.callback: state mismatch", "provider", provider, "cookie_present", err == nil)
		h.loginFailed(w, r, "invalid_state")
		return
	}

	result, err := h.Auth.LoginWithCode(r.Context(), provider, query.Get("code"))
	if err != nil {
		code := "login_failed"
		switch {
		case errors.Is(err, authdomain.ErrMissingCode):
			code = "missing_code"
		case errors.Is(err, authdomain.ErrTokenExchange):
			code = "token_exchange_failed"
		case errors.Is(err, authdomain.ErrProfileFetch):
			code = "profile_fetch_failed"
		}
		h.log.BusinessError("auth.callback: login failed", err, "provider", provider, "code", code)
		h.loginFailed(w, r, code)
		return
	}

	h.log.Info("auth.callback: logged in", "provider", provider, "user_id", result.UserID, "is_new", result.IsNew)
	http.Redirect(w, r, h.cfg.BaseURL+"/auth/complete#token="+url.QueryEscape(result.Token), http.StatusFound)
}

func (h *Handlers) loginFailed(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, h.cfg.BaseURL+"/login?error="+url.QueryEscape(code), http.StatusFound)
}

// NativeLogin serves mobile apps that completed the provider SDK login.
func (h *Handlers) NativeLogin(w http.ResponseWriter, r *http.Request) {
	var req nativeLoginRequest
	if !DecodeRequest(w, r, &req) {
		return
	}
	provider := chi.URLParam(r, "provider")

	result, err := h.Auth.LoginWithAccessToken(r.Context(), provider, req.AccessToken)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrUnknownProvider):
			writeError(w, http.StatusNotFound, "unknown_provider", "unknown auth provider")
		case errors.Is(err, authdomain.ErrProfileFetch):
			h.log.BusinessError("auth.native: profile fetch failed", err, "provider", provider)
			writeError(w, http.StatusUnauthorized, "profile_fetch_failed", "provider rejected the access token")
		case errors.Is(err, authdomain.ErrSessionNotConfigured):
			h.log.InternalError("auth.native: sessions not configured", err)
			writeError(w, http.StatusServiceUnavailable, "auth_not_configured", "auth not configured")
		default:
			h.log.InternalError("auth.native: login failed", err, "provider", provider)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User: loginUserResponse{
			ID:        result.UserID,
			Name:      result.Profile.Nickname,
			AvatarURL: result.Profile.AvatarURL,
			IsNew:     result.IsNew,
		},
	})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(w, r)
	if !ok {
		return
	}

	response := authMeResponse{ID: user.ID, Email: user.Email, Name: user.Name}
	if user.AvatarURL != "" {
		response.AvatarURL = &user.AvatarURL
	}

	profile, err := h.Users.GetProfile(r.Context(), user.ID)
	switch {
	case err == nil:
		if profile.Name != "" {
			response.Name = profile.Name
		}
		if profile.Email != nil && response.Email == "" {
			response.Email = *profile.Email
		}
		if profile.AvatarURL != nil {
			response.AvatarURL = profile.AvatarURL
		}
	case !errors.Is(err, userdomain.ErrProfileNotFound):
		h.log.InternalError("auth.me: get profile failed", err, "user_id", user.ID)
	}

	writeJSON(w, http.StatusOK, response)
}
