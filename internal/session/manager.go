package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/shopster-web/internal/config"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
)

// Manager ties the session cookie to the store.
type Manager struct {
	cfg    config.Session
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewManager(cfg config.Session, store Store, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		store:  store,
		logger: logger.With(slog.String("component", "session")),
		now:    time.Now,
	}
}

// Load returns the request's session. Missing, unknown and expired sessions
// all read as signed out; an expired one is removed from the store.
func (m *Manager) Load(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}

	ctx := r.Context()
	s, err := m.store.Get(ctx, cookie.Value)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.WarnContext(ctx, "load session failed", slog.Any("error", err))
		}
		return Session{}, false
	}

	if s.Expired(m.now()) {
		if err := m.store.Delete(ctx, s.ID); err != nil {
			m.logger.WarnContext(ctx, "delete expired session failed", slog.Any("error", err))
		}
		return Session{}, false
	}

	return s, true
}

// Establish creates a session for user and sets the cookie.
func (m *Manager) Establish(ctx context.Context, w http.ResponseWriter, user model.User, tokens model.Tokens) (Session, error) {
	exp, err := tokenExpiry(tokens.Access)
	if err != nil {
		m.logger.WarnContext(ctx, "access token has no readable expiry", slog.Any("error", err))
	}

	now := m.now()
	s := Session{
		ID:              uuid.NewString(),
		User:            user,
		AccessToken:     tokens.Access,
		RefreshToken:    tokens.Refresh,
		AccessExpiresAt: exp,
		CreatedAt:       now,
	}

	ttl := m.ttl(s, now)
	if err := m.store.Save(ctx, s, ttl); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}

	http.SetCookie(w, m.cookie(s.ID, ttl))
	return s, nil
}

// UpdateUser stores fresh profile data in an existing session.
func (m *Manager) UpdateUser(ctx context.Context, s Session, user model.User) (Session, error) {
	s.User = user
	if err := m.store.Save(ctx, s, m.ttl(s, m.now())); err != nil {
		return Session{}, fmt.Errorf("update session: %w", err)
	}
	return s, nil
}

// Destroy removes the request's session and clears the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, m.cookie("", -1))

	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	if err := m.store.Delete(r.Context(), cookie.Value); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (m *Manager) ttl(s Session, now time.Time) time.Duration {
	ttl := m.cfg.TTL
	if !s.AccessExpiresAt.IsZero() {
		if left := s.AccessExpiresAt.Sub(now); left < ttl {
			ttl = left
		}
	}
	return max(ttl, time.Second)
}

func (m *Manager) cookie(value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		c.MaxAge = -1
	} else {
		c.MaxAge = int(ttl.Seconds())
	}
	return c
}
