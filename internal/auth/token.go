// Package auth keeps the client side of the external token service:
// it stores the access token the user obtained at login and answers
// whether the session still counts as authenticated.  Tokens are
// only inspected here, never verified; verification is the token
// service's job.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/cinema-booking-client/internal/session"
)

// TokenStore holds the access token in the session store so it
// survives page reloads like every other piece of client state.
type TokenStore struct {
	store session.Store
}

// NewTokenStore wraps a session store.
func NewTokenStore(store session.Store) *TokenStore {
	return &TokenStore{store: store}
}

// SetToken saves the raw access token.
func (t *TokenStore) SetToken(ctx context.Context, token string) error {
	return t.store.Set(ctx, session.KeyAccessToken, []byte(token))
}

// Token returns the stored raw token, or an empty string when none is
// stored.
func (t *TokenStore) Token(ctx context.Context) string {
	raw, err := t.store.Get(ctx, session.KeyAccessToken)
	if err != nil {
		return ""
	}
	return string(raw)
}

// Clear drops the stored token, logging the user out locally.
func (t *TokenStore) Clear(ctx context.Context) error {
	err := t.store.Remove(ctx, session.KeyAccessToken)
	if errors.Is(err, session.ErrNotFound) {
		return nil
	}
	return err
}

// IsAuthenticated reports whether a token is stored and its exp claim
// lies in the future.  The signature is not checked: a forged token
// only lets the user reach a payment screen the server would reject.
func (t *TokenStore) IsAuthenticated(ctx context.Context) bool {
	raw := t.Token(ctx)
	if raw == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}
