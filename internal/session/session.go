// Package session keeps signed-in users server-side. The browser only holds an
// opaque session id cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tuanvumaihuynh/shopster-web/internal/model"
)

// ErrNotFound is returned by a Store for unknown or expired ids.
var ErrNotFound = errors.New("session not found")

type Session struct {
	ID              string     `json:"id"`
	User            model.User `json:"user"`
	AccessToken     string     `json:"access_token"`
	RefreshToken    string     `json:"refresh_token"`
	AccessExpiresAt time.Time  `json:"access_expires_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Expired reports whether the access token is past its expiry. Tokens without
// an exp claim never expire here; the store TTL bounds them.
func (s Session) Expired(now time.Time) bool {
	return !s.AccessExpiresAt.IsZero() && !now.Before(s.AccessExpiresAt)
}

func (s Session) IsStaff() bool {
	return s.User.IsStaff
}

type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type ctxKey struct{}

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the signed-in session loaded for the request, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok && s.AccessToken != ""
}

// AccessToken returns the bearer token of the request's session or "".
func AccessToken(ctx context.Context) string {
	s, _ := FromContext(ctx)
	return s.AccessToken
}

// tokenExpiry reads the exp claim of an access token without verifying it; the
// commerce API verifies tokens, the storefront only needs to know when to stop
// using one.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse access token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
