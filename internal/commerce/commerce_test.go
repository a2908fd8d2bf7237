package commerce_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/internal/commerce"
	"github.com/tuanvumaihuynh/shopster-web/internal/config"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/internal/storage/cache"
	"github.com/tuanvumaihuynh/shopster-web/pkg/correlationid"
	"github.com/tuanvumaihuynh/shopster-web/pkg/pagination"
	"github.com/tuanvumaihuynh/shopster-web/pkg/zerror"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, srv *httptest.Server, c cache.Cache) *commerce.Client {
	t.Helper()

	cl, err := commerce.NewClient(config.API{
		InternalBaseURL:    srv.URL,
		PublicBaseURL:      "http://public.example",
		Timeout:            2 * time.Second,
		ReadAttempts:       2,
		CatalogCacheTTL:    time.Minute,
		CategoriesCacheTTL: time.Minute,
	}, discardLogger(), c)
	require.NoError(t, err)
	return cl
}

// catalogServer serves total products in DRF page-number style.
func catalogServer(t *testing.T, total int, relativeLinks bool) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/products/", r.URL.Path)

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
		start := (page - 1) * size
		end := min(start+size, total)

		items := []model.Product{}
		for id := start; id < end; id++ {
			items = append(items, model.Product{ID: int64(id + 1), Slug: fmt.Sprintf("p-%d", id+1)})
		}

		origin := srv.URL
		if relativeLinks {
			origin = ""
		}
		var next, prev any
		if end < total {
			next = fmt.Sprintf("%s/api/products/?page=%d&page_size=%d", origin, page+1, size)
		}
		if page > 2 {
			prev = fmt.Sprintf("%s/api/products/?page=%d&page_size=%d", origin, page-1, size)
		} else if page == 2 {
			prev = fmt.Sprintf("%s/api/products/?page_size=%d", origin, size)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count":    total,
			"next":     next,
			"previous": prev,
			"results":  items,
		})
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

func TestFetchProductsPage(t *testing.T) {
	ctx := context.Background()

	t.Run("Should parse cursors from the next link", func(t *testing.T) {
		srv, _ := catalogServer(t, 30, false)
		cl := newClient(t, srv, nil)

		page := cl.FetchProductsPage(ctx, commerce.PageQuery{PageSize: 12})
		assert.Len(t, page.Items, 12)
		require.NotNil(t, page.NextPage)
		assert.Equal(t, 2, *page.NextPage)
		assert.Nil(t, page.PreviousPage)
		assert.Equal(t, 30, page.TotalCount)

		page = cl.FetchProductsPage(ctx, commerce.PageQuery{Page: 2, PageSize: 12})
		require.NotNil(t, page.NextPage)
		assert.Equal(t, 3, *page.NextPage)
		require.NotNil(t, page.PreviousPage)
		assert.Equal(t, 1, *page.PreviousPage)

		page = cl.FetchProductsPage(ctx, commerce.PageQuery{Page: 3, PageSize: 12})
		assert.Len(t, page.Items, 6)
		assert.Nil(t, page.NextPage)
	})

	t.Run("Should stop when the last page has no next link", func(t *testing.T) {
		srv, _ := catalogServer(t, 20, false)
		cl := newClient(t, srv, nil)

		page := cl.FetchProductsPage(ctx, commerce.PageQuery{Page: 2, PageSize: 10})
		assert.Len(t, page.Items, 10)
		assert.Nil(t, page.NextPage)
		assert.False(t, page.HasMore())
	})

	t.Run("Should resolve relative links", func(t *testing.T) {
		srv, _ := catalogServer(t, 30, true)
		cl := newClient(t, srv, nil)

		page := cl.FetchProductsPage(ctx, commerce.PageQuery{PageSize: 12})
		require.NotNil(t, page.NextPage)
		assert.Equal(t, 2, *page.NextPage)
	})

	t.Run("Should forward filters and default the page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "1", q.Get("page"))
			assert.Equal(t, "12", q.Get("page_size"))
			assert.Equal(t, "phones", q.Get("category"))
			assert.False(t, q.Has("search"))
			_, _ = w.Write([]byte(`{"count": 0, "next": null, "previous": null, "results": []}`))
		}))
		defer srv.Close()

		cl := newClient(t, srv, nil)
		page := cl.FetchProductsPage(ctx, commerce.PageQuery{
			Filters: map[string]string{"category": "phones", "search": "", "page": "9"},
		})
		assert.Empty(t, page.Items)
		assert.Zero(t, page.TotalCount)
	})

	t.Run("Should accept a bare array body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"id": 1, "slug": "a"}, {"id": 2, "slug": "b"}]`))
		}))
		defer srv.Close()

		page := newClient(t, srv, nil).FetchProductsPage(ctx, commerce.PageQuery{})
		assert.Len(t, page.Items, 2)
		assert.Equal(t, 2, page.TotalCount)
		assert.Nil(t, page.NextPage)
	})

	t.Run("Should fall back to the item count when count is not a number", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"count": "many", "next": 5, "results": [{"id": 1}]}`))
		}))
		defer srv.Close()

		page := newClient(t, srv, nil).FetchProductsPage(ctx, commerce.PageQuery{})
		assert.Equal(t, 1, page.TotalCount)
		assert.Nil(t, page.NextPage)
	})

	t.Run("Should degrade to an empty page on server errors", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		page := newClient(t, srv, nil).FetchProductsPage(ctx, commerce.PageQuery{})
		assert.Empty(t, page.Items)
		assert.Nil(t, page.NextPage)
		assert.Zero(t, page.TotalCount)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("Should serve repeated reads from the cache", func(t *testing.T) {
		srv, calls := catalogServer(t, 30, false)
		cl := newClient(t, srv, cache.NewMemory())

		first := cl.FetchProductsPage(ctx, commerce.PageQuery{PageSize: 12})
		second := cl.FetchProductsPage(ctx, commerce.PageQuery{PageSize: 12})

		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestLoadMoreEnumeratesEveryProductOnce(t *testing.T) {
	for _, tc := range []struct{ total, size int }{{30, 12}, {24, 12}, {1, 12}, {0, 5}, {17, 4}} {
		t.Run(fmt.Sprintf("%d by %d", tc.total, tc.size), func(t *testing.T) {
			srv, _ := catalogServer(t, tc.total, false)
			cl := newClient(t, srv, nil)

			acc := pagination.NewAccumulator(func(p model.Product) int64 { return p.ID })
			next := 1
			for requests := 0; ; requests++ {
				require.Less(t, requests, 100)
				page := cl.FetchProductsPage(context.Background(), commerce.PageQuery{Page: next, PageSize: tc.size})
				acc.MergePage(next, page.Items)
				if page.NextPage == nil {
					break
				}
				next = *page.NextPage
			}

			items := acc.Items()
			require.Len(t, items, tc.total)
			for i, p := range items {
				assert.Equal(t, int64(i+1), p.ID)
			}
		})
	}
}

func TestFetchProduct(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/api/products/phone/":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"id": 7, "slug": "phone", "price": "19.90", "can_review": true}`))
		default:
			http.Error(w, `{"detail": "Not found."}`, http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cl := newClient(t, srv, cache.NewMemory())

	p, ok := cl.FetchProduct(commerce.WithAccessToken(ctx, "tok"), "phone")
	require.True(t, ok)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "19.90", p.Price)
	assert.True(t, p.CanReview)

	calls.Store(0)
	_, ok = cl.FetchProduct(ctx, "missing")
	assert.False(t, ok)
	assert.Equal(t, int32(1), calls.Load(), "not found is not retried")

	calls.Store(0)
	_, ok = cl.FetchProduct(ctx, "")
	assert.False(t, ok)
	assert.Zero(t, calls.Load())
}

func TestFetchProductEscapesSlug(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int32
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		seen = append(seen, r.URL.EscapedPath())
		assert.Empty(t, r.Header.Get("Authorization"), "token must not leave the product route")
		http.Error(w, `{"detail": "Not found."}`, http.StatusNotFound)
	}))
	defer srv.Close()

	cl := newClient(t, srv, cache.NewMemory())

	t.Run("Should keep slashes inside the product segment", func(t *testing.T) {
		seen = nil
		_, ok := cl.FetchProduct(ctx, "a/b")
		assert.False(t, ok)
		assert.Equal(t, []string{"/api/products/a%2Fb/"}, seen)
	})

	t.Run("Should escape spaces and query characters", func(t *testing.T) {
		seen = nil
		_, ok := cl.FetchProduct(ctx, "mug?x=1")
		assert.False(t, ok)
		assert.Equal(t, []string{"/api/products/mug%3Fx=1/"}, seen)
	})

	t.Run("Should not send dot segments", func(t *testing.T) {
		calls.Store(0)
		for _, slug := range []string{".", ".."} {
			_, ok := cl.FetchProduct(commerce.WithAccessToken(ctx, "tok"), slug)
			assert.False(t, ok)
		}
		assert.Zero(t, calls.Load())
	})
}

func TestFetchCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("Should drop categories without slug", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "100", r.URL.Query().Get("page_size"))
			_, _ = w.Write([]byte(`{"results": [{"id": 1, "slug": "a"}, {"id": 2, "slug": ""}, {"id": 3}]}`))
		}))
		defer srv.Close()

		cats := newClient(t, srv, nil).FetchCategories(ctx)
		require.Len(t, cats, 1)
		assert.Equal(t, "a", cats[0].Slug)
	})

	t.Run("Should return an empty list on failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		cats := newClient(t, srv, nil).FetchCategories(ctx)
		assert.NotNil(t, cats)
		assert.Empty(t, cats)
	})
}

func TestAuth(t *testing.T) {
	ctx := correlationid.NewContext(context.Background(), "corr-1")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "corr-1", r.Header.Get(correlationid.Header))

		var body map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}

		switch r.URL.Path {
		case "/api/auth/login/":
			if body["username"] == "ann" && body["password"] == "secret1" {
				_, _ = w.Write([]byte(`{"access": "a", "refresh": "r"}`))
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail": "No active account found with the given credentials"}`))
		case "/api/auth/register/":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"username": ["A user with that username already exists."], "password": ["This password is too short.", "This password is too common."]}`))
		case "/api/auth/me/":
			if r.Header.Get("Authorization") != "Bearer a" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if r.Method == http.MethodPatch {
				assert.Equal(t, "Ann", body["first_name"])
				profile, _ := body["profile"].(map[string]any)
				assert.Equal(t, "Moscow", profile["default_shipping_city"])
			}
			_, _ = w.Write([]byte(`{"id": 1, "username": "ann", "first_name": "Ann", "is_staff": true, "profile": {"default_shipping_city": "Moscow"}}`))
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	cl := newClient(t, srv, nil)

	t.Run("Should log in with username and password", func(t *testing.T) {
		tokens, err := cl.Login(ctx, model.Credentials{Identifier: "ann", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, model.Tokens{Access: "a", Refresh: "r"}, tokens)

		_, err = cl.Login(ctx, model.Credentials{Identifier: "ann", Password: "bad"})
		require.ErrorIs(t, err, apperr.UnauthorizedErr)
	})

	t.Run("Should flatten registration errors", func(t *testing.T) {
		err := cl.Register(ctx, model.Registration{Username: "ann"})
		require.ErrorIs(t, err, apperr.UpstreamRejectedErr)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, "A user with that username already exists. This password is too short. This password is too common.", zErr.Msg())
	})

	t.Run("Should read and update the profile", func(t *testing.T) {
		u, err := cl.Me(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "ann", u.Username)
		assert.True(t, u.IsStaff)

		_, err = cl.Me(ctx, "expired")
		require.ErrorIs(t, err, apperr.UnauthorizedErr)

		u, err = cl.UpdateMe(ctx, "a", model.ProfileUpdate{
			FirstName: "Ann",
			Profile:   model.Profile{DefaultShippingCity: "Moscow"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Moscow", u.Profile.DefaultShippingCity)
	})

	t.Run("Should not call the API without a token", func(t *testing.T) {
		_, err := cl.Me(ctx, "")
		require.ErrorIs(t, err, apperr.UnauthorizedErr)
	})

	t.Run("Should accept empty success bodies", func(t *testing.T) {
		require.NoError(t, cl.RequestPasswordReset(ctx, model.PasswordResetRequest{Email: "a@b.c"}))
		require.NoError(t, cl.ConfirmPasswordReset(ctx, model.PasswordResetConfirm{UID: "u", Token: "t"}))
	})
}

func TestReviews(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/reviews/":
			assert.Equal(t, "7", r.URL.Query().Get("product"))
			if r.URL.Query().Get("page") == "1" {
				_, _ = w.Write([]byte(`{"count": 3, "next": "/api/reviews/?page=2&product=7", "results": [{"id": 1}, {"id": 2}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"count": 3, "next": null, "results": [{"id": 3}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/reviews/":
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.EqualValues(t, 7, body["product_id"])
			assert.EqualValues(t, 4, body["rating"])
			assert.Equal(t, "Great", body["body"])
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id": 9, "rating": 4, "body": "Great", "moderation_status": "pending", "is_owner": true}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/api/reviews/9/":
			_, _ = w.Write([]byte(`{"id": 9, "rating": 3, "body": "Fine", "moderation_status": "pending", "is_owner": true}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/reviews/9/":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"detail": "You do not have permission to perform this action."}`))
		}
	}))
	defer srv.Close()

	cl := newClient(t, srv, nil)

	page, err := cl.ListReviews(ctx, "", 7, 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	require.NotNil(t, page.NextPage)
	assert.Equal(t, 2, *page.NextPage)
	assert.Equal(t, 3, page.TotalCount)

	page, err = cl.ListReviews(ctx, "", 7, 2)
	require.NoError(t, err)
	assert.Nil(t, page.NextPage)

	created, err := cl.CreateReview(ctx, "tok", 7, model.ReviewInput{Rating: 4, Body: "Great"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, model.ModerationPending, created.ModerationStatus)

	updated, err := cl.UpdateReview(ctx, "tok", 9, model.ReviewInput{Rating: 3, Body: "Fine"})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)

	require.NoError(t, cl.DeleteReview(ctx, "tok", 9))

	err = cl.DeleteReview(ctx, "tok", 10)
	require.ErrorIs(t, err, apperr.UnauthorizedErr)
}

func TestStatsOverview(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"unauthorized", http.StatusUnauthorized, "", apperr.UnauthorizedErr, ""},
		{"forbidden", http.StatusForbidden, `{"detail": "staff only"}`, apperr.UnauthorizedErr, ""},
		{"bad request", http.StatusBadRequest, "date_from is invalid", apperr.UpstreamRejectedErr, "date_from is invalid"},
		{"server error", http.StatusInternalServerError, "database is down", apperr.UpstreamErr, "database is down"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newClient(t, srv, nil).StatsOverview(ctx, "tok", model.StatsRange{})
			require.ErrorIs(t, err, tc.wantErr)
			if tc.wantMsg != "" {
				var zErr zerror.ZError
				require.ErrorAs(t, err, &zErr)
				assert.Equal(t, tc.wantMsg, zErr.Msg())
			}
		})
	}

	t.Run("Should pass the date range", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2024-01-01", r.URL.Query().Get("date_from"))
			assert.False(t, r.URL.Query().Has("date_to"))
			_, _ = w.Write([]byte(`{"total_orders": 3, "gross_revenue": "150.00", "currency_breakdown": [{"currency": "RUB", "total_sales": "150.00", "total_orders": 3}], "top_products": [{"product_id": null, "product_name": "Deleted", "total_quantity": 2, "total_sales": "100.00"}]}`))
		}))
		defer srv.Close()

		stats, err := newClient(t, srv, nil).StatsOverview(ctx, "tok", model.StatsRange{DateFrom: "2024-01-01"})
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalOrders)
		require.Len(t, stats.TopProducts, 1)
		assert.Nil(t, stats.TopProducts[0].ProductID)
	})
}
