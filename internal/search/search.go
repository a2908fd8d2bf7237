// Package search queries the hosted product search index for the
// search-as-you-type overlay.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/opt"
	algolia "github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/shopster-web/internal/commerce"
	"github.com/tuanvumaihuynh/shopster-web/internal/config"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/pkg/money"
)

var tracer = otel.Tracer("internal/search")

const (
	// MinQueryLength is the shortest trimmed query, in characters, sent to the index.
	MinQueryLength = 2

	CategoryFacet = "category"
)

// State is what the overlay shows. Exactly one applies to a result.
type State int

const (
	StatePrompt State = iota
	StateLoading
	StateEmpty
	StateResults
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StatePrompt:
		return "prompt"
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StateResults:
		return "results"
	case StateUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Query struct {
	Text     string
	Category string
}

// Hit is an index record prepared for display.
type Hit struct {
	model.SearchHit
	ImageURL     string
	DisplayPrice string
	URL          string
}

type Result struct {
	State     State
	Query     Query
	Hits      []Hit
	TotalHits int
	Facets    []model.Facet
}

// Index is the part of the search client the overlay uses.
type Index interface {
	Search(query string, opts ...any) (algolia.QueryRes, error)
}

type Searcher interface {
	Search(ctx context.Context, q Query) Result
}

type searcher struct {
	index       Index
	hitsPerPage int
	media       commerce.Media
	money       *money.Formatter
	logger      *slog.Logger
}

// NewIndex opens the configured index, or returns nil when search is not
// configured.
func NewIndex(cfg config.Search) Index {
	if !cfg.Enabled() {
		return nil
	}
	return algolia.NewClient(cfg.AppID, cfg.APIKey).InitIndex(cfg.IndexName)
}

// NewSearcher creates the overlay searcher. A nil index makes every
// non-trivial query come back unavailable.
func NewSearcher(index Index, hitsPerPage int, media commerce.Media, prices *money.Formatter, logger *slog.Logger) Searcher {
	if hitsPerPage < 1 {
		hitsPerPage = 12
	}
	return &searcher{
		index:       index,
		hitsPerPage: hitsPerPage,
		media:       media,
		money:       prices,
		logger:      logger.With(slog.String("component", "search")),
	}
}

// NormalizeQuery trims the text and reports whether it is long enough to send.
func NormalizeQuery(q Query) (Query, bool) {
	q.Text = strings.TrimSpace(q.Text)
	q.Category = strings.TrimSpace(q.Category)
	return q, utf8.RuneCountInString(q.Text) >= MinQueryLength
}

func (s *searcher) Search(ctx context.Context, q Query) Result {
	q, ok := NormalizeQuery(q)
	if !ok {
		return Result{State: StatePrompt, Query: q}
	}
	if s.index == nil {
		return Result{State: StateUnavailable, Query: q}
	}

	ctx, span := tracer.Start(ctx, "Searcher.Search", trace.WithAttributes(
		attribute.Int("search.query_length", utf8.RuneCountInString(q.Text)),
		attribute.String("search.category", q.Category),
	))
	defer span.End()

	opts := []any{
		ctx,
		opt.HitsPerPage(s.hitsPerPage),
		opt.Facets(CategoryFacet),
	}
	if q.Category != "" {
		opts = append(opts, opt.Filters(categoryFilter(q.Category)))
	}

	res, err := s.index.Search(q.Text, opts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		s.logger.WarnContext(ctx, "search index query failed", slog.Any("error", err))
		return Result{State: StateUnavailable, Query: q}
	}

	var records []model.SearchHit
	if err := res.UnmarshalHits(&records); err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "decode search hits failed", slog.Any("error", err))
		return Result{State: StateUnavailable, Query: q}
	}

	result := Result{
		State:     StateResults,
		Query:     q,
		Hits:      make([]Hit, 0, len(records)),
		TotalHits: res.NbHits,
		Facets:    facetValues(res.Facets[CategoryFacet]),
	}
	for _, rec := range records {
		result.Hits = append(result.Hits, s.prepare(rec))
	}
	if len(result.Hits) == 0 {
		result.State = StateEmpty
	}

	span.SetAttributes(attribute.Int("search.hits", res.NbHits))
	return result
}

func (s *searcher) prepare(rec model.SearchHit) Hit {
	return Hit{
		SearchHit:    rec,
		ImageURL:     s.media.URL(rec.ImageURL),
		DisplayPrice: s.money.FormatDecimal(decimal.NewFromFloat(rec.Price), rec.Currency),
		URL:          "/products/" + rec.Slug,
	}
}

func categoryFilter(category string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(category)
	return CategoryFacet + `:"` + escaped + `"`
}

// facetValues orders facet counts by count, then value.
func facetValues(counts map[string]int) []model.Facet {
	out := make([]model.Facet, 0, len(counts))
	for v, n := range counts {
		out = append(out, model.Facet{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
