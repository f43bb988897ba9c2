package auth

import "errors"

var (
	ErrUnknownProvider      = errors.New("unknown auth provider")
	ErrMissingCode          = errors.New("authorization code is missing")
	ErrTokenExchange        = errors.New("token exchange failed")
	ErrProfileFetch         = errors.New("profile fetch failed")
	ErrIdentityNotFound     = errors.New("identity not found")
	ErrIdentityExists       = errors.New("identity already linked")
	ErrInvalidSession       = errors.New("invalid session token")
	ErrSessionNotConfigured = errors.New("session secret not configured")
)
