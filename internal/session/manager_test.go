package session

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shopster-web/internal/config"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func newTestManager(now *time.Time) (*Manager, *MemoryStore) {
	store := NewMemoryStore()
	store.now = func() time.Time { return *now }

	m := NewManager(config.Session{CookieName: "sf_session", TTL: 24 * time.Hour}, store,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.now = func() time.Time { return *now }
	return m, store
}

func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	user := model.User{ID: 1, Username: "ann", IsStaff: true}

	t.Run("Should establish and load a session", func(t *testing.T) {
		m, _ := newTestManager(&now)
		access := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})

		rec := httptest.NewRecorder()
		s, err := m.Establish(ctx, rec, user, model.Tokens{Access: access, Refresh: "r"})
		require.NoError(t, err)
		assert.Equal(t, now.Add(time.Hour).Unix(), s.AccessExpiresAt.Unix())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "sf_session", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, 3600, cookies[0].MaxAge)

		loaded, ok := m.Load(requestWithCookies(rec))
		require.True(t, ok)
		assert.Equal(t, access, loaded.AccessToken)
		assert.True(t, loaded.IsStaff())
	})

	t.Run("Should treat an expired access token as signed out", func(t *testing.T) {
		clock := now
		m, store := newTestManager(&clock)
		access := signedToken(t, jwt.MapClaims{"exp": clock.Add(time.Minute).Unix()})

		rec := httptest.NewRecorder()
		s, err := m.Establish(ctx, rec, user, model.Tokens{Access: access})
		require.NoError(t, err)

		// The store would still hold the session if its own TTL were longer.
		require.NoError(t, store.Save(ctx, s, time.Hour))
		clock = clock.Add(2 * time.Minute)

		_, ok := m.Load(requestWithCookies(rec))
		assert.False(t, ok)

		_, err = store.Get(ctx, s.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Should keep tokens without exp for the configured ttl", func(t *testing.T) {
		m, _ := newTestManager(&now)

		rec := httptest.NewRecorder()
		s, err := m.Establish(ctx, rec, user, model.Tokens{Access: "opaque-token"})
		require.NoError(t, err)
		assert.True(t, s.AccessExpiresAt.IsZero())
		assert.Equal(t, int((24 * time.Hour).Seconds()), rec.Result().Cookies()[0].MaxAge)
	})

	t.Run("Should ignore unknown cookies", func(t *testing.T) {
		m, _ := newTestManager(&now)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sf_session", Value: "nope"})

		_, ok := m.Load(r)
		assert.False(t, ok)
	})

	t.Run("Should destroy the session and clear the cookie", func(t *testing.T) {
		m, store := newTestManager(&now)

		rec := httptest.NewRecorder()
		s, err := m.Establish(ctx, rec, user, model.Tokens{Access: "opaque-token"})
		require.NoError(t, err)

		out := httptest.NewRecorder()
		require.NoError(t, m.Destroy(out, requestWithCookies(rec)))

		cleared := out.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Equal(t, -1, cleared[0].MaxAge)

		_, err = store.Get(ctx, s.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Should update the stored user", func(t *testing.T) {
		m, _ := newTestManager(&now)

		rec := httptest.NewRecorder()
		s, err := m.Establish(ctx, rec, user, model.Tokens{Access: "opaque-token"})
		require.NoError(t, err)

		_, err = m.UpdateUser(ctx, s, model.User{ID: 1, Username: "ann", FirstName: "Ann"})
		require.NoError(t, err)

		loaded, ok := m.Load(requestWithCookies(rec))
		require.True(t, ok)
		assert.Equal(t, "Ann", loaded.User.FirstName)
	})
}

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := NewContext(context.Background(), Session{AccessToken: "tok"})
	s, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok", s.AccessToken)
	assert.Equal(t, "tok", AccessToken(ctx))
}
