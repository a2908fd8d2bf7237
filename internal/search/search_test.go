package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	algolia "github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shopster-web/internal/commerce"
	"github.com/tuanvumaihuynh/shopster-web/pkg/money"
)

type mockIndex struct {
	mock.Mock
}

func (m *mockIndex) Search(query string, opts ...any) (algolia.QueryRes, error) {
	args := m.Called(query, len(opts))
	return args.Get(0).(algolia.QueryRes), args.Error(1)
}

func newTestSearcher(t *testing.T, index Index) Searcher {
	t.Helper()

	media, err := commerce.NewMedia("http://localhost:8000")
	require.NoError(t, err)
	prices, err := money.NewFormatter("ru-RU", "RUB")
	require.NoError(t, err)

	return NewSearcher(index, 12, media, prices, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSearcher_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("Should prompt for short queries without calling the index", func(t *testing.T) {
		index := &mockIndex{}
		s := newTestSearcher(t, index)

		for _, text := range []string{"", " ", "a", "  я  "} {
			res := s.Search(ctx, Query{Text: text})
			assert.Equal(t, StatePrompt, res.State, text)
			assert.Empty(t, res.Hits)
		}
		index.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("Should be unavailable without credentials", func(t *testing.T) {
		res := newTestSearcher(t, nil).Search(ctx, Query{Text: "phone"})
		assert.Equal(t, StateUnavailable, res.State)
	})

	t.Run("Should prepare hits for display", func(t *testing.T) {
		index := &mockIndex{}
		index.On("Search", "phone", 4).Return(algolia.QueryRes{
			Hits: []map[string]any{
				{"objectID": "1", "name": "Phone", "slug": "phone", "price": 1990.5, "currency": "RUB", "image_url": "/media/p.jpg", "category": "Phones"},
				{"objectID": "2", "name": "Case", "slug": "case", "price": 10, "currency": "", "image_url": "https://cdn.example/c.jpg", "category": "Accessories"},
			},
			NbHits: 2,
			Facets: map[string]map[string]int{"category": {"Accessories": 1, "Phones": 1}},
		}, nil)

		res := newTestSearcher(t, index).Search(ctx, Query{Text: "  phone ", Category: "Phones"})
		require.Equal(t, StateResults, res.State)
		assert.Equal(t, "phone", res.Query.Text)
		assert.Equal(t, 2, res.TotalHits)
		require.Len(t, res.Hits, 2)

		assert.Equal(t, "http://localhost:8000/media/p.jpg", res.Hits[0].ImageURL)
		assert.Equal(t, "https://cdn.example/c.jpg", res.Hits[1].ImageURL)
		assert.Equal(t, "/products/phone", res.Hits[0].URL)
		assert.Contains(t, res.Hits[0].DisplayPrice, "990,50")

		require.Len(t, res.Facets, 2)
		assert.Equal(t, "Accessories", res.Facets[0].Value)
		index.AssertExpectations(t)
	})

	t.Run("Should report empty results", func(t *testing.T) {
		index := &mockIndex{}
		index.On("Search", "zzz", 3).Return(algolia.QueryRes{}, nil)

		res := newTestSearcher(t, index).Search(ctx, Query{Text: "zzz"})
		assert.Equal(t, StateEmpty, res.State)
		assert.Zero(t, res.TotalHits)
	})

	t.Run("Should report index failures as unavailable", func(t *testing.T) {
		index := &mockIndex{}
		index.On("Search", "zzz", 3).Return(algolia.QueryRes{}, errors.New("timeout"))

		res := newTestSearcher(t, index).Search(ctx, Query{Text: "zzz"})
		assert.Equal(t, StateUnavailable, res.State)
	})
}

func TestCategoryFilter(t *testing.T) {
	assert.Equal(t, `category:"Phones"`, categoryFilter("Phones"))
	assert.Equal(t, `category:"A \"B\""`, categoryFilter(`A "B"`))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "results", StateResults.String())
	assert.Equal(t, "State(9)", State(9).String())
}
