package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/internal/event"
	"github.com/tuanvumaihuynh/shopster-web/internal/http/apierr"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/internal/search"
)

// searchResults is a search result plus what its template needs besides.
type searchResults struct {
	search.Result
	MinLength int
}

type searchPage struct {
	basePage
	Results searchResults
}

func searchQuery(r *http.Request) search.Query {
	q := r.URL.Query()
	return search.Query{Text: q.Get("q"), Category: q.Get("category")}
}

func (h *handler) runSearch(r *http.Request) searchResults {
	ctx := r.Context()
	res := h.searcher.Search(ctx, searchQuery(r))

	if res.State == search.StateResults || res.State == search.StateEmpty {
		h.events.SearchPerformed(ctx, sessionID(ctx), event.SearchPerformed{
			Query:     res.Query.Text,
			Category:  res.Query.Category,
			TotalHits: res.TotalHits,
		})
	}
	return searchResults{Result: res, MinLength: search.MinQueryLength}
}

// searchPage is the overlay's no-script fallback.
func (h *handler) searchPage(w http.ResponseWriter, r *http.Request) {
	results := h.runSearch(r)

	base := h.base(r, h.tr.T("search.title"))
	base.Search = results.Query

	h.page(w, r, http.StatusOK, "search", searchPage{basePage: base, Results: results})
}

// searchFragment renders only the overlay body.
func (h *handler) searchFragment(w http.ResponseWriter, r *http.Request) {
	h.partial(w, r, http.StatusOK, "search_results", h.runSearch(r))
}

type searchHitResponse struct {
	model.SearchHit
	ImageURL     string `json:"image_url"`
	DisplayPrice string `json:"display_price"`
	URL          string `json:"url"`
}

type facetResponse struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type searchResponse struct {
	State     string              `json:"state"`
	Query     string              `json:"query"`
	Category  string              `json:"category,omitempty"`
	Hits      []searchHitResponse `json:"hits"`
	TotalHits int                 `json:"total_hits"`
	Facets    []facetResponse     `json:"facets"`
}

// searchJSON serves the same search to other origins as JSON.
func (h *handler) searchJSON(w http.ResponseWriter, r *http.Request) {
	res := h.runSearch(r).Result

	if res.State == search.StateUnavailable {
		h.writeJSONError(w, r, apperr.SearchUnavailableErr)
		return
	}

	body := searchResponse{
		State:     res.State.String(),
		Query:     res.Query.Text,
		Category:  res.Query.Category,
		Hits:      make([]searchHitResponse, 0, len(res.Hits)),
		TotalHits: res.TotalHits,
		Facets:    make([]facetResponse, 0, len(res.Facets)),
	}
	for _, hit := range res.Hits {
		body.Hits = append(body.Hits, searchHitResponse{
			SearchHit:    hit.SearchHit,
			ImageURL:     hit.ImageURL,
			DisplayPrice: hit.DisplayPrice,
			URL:          hit.URL,
		})
	}
	for _, f := range res.Facets {
		body.Facets = append(body.Facets, facetResponse{Value: f.Value, Count: f.Count})
	}

	h.writeJSON(w, r, http.StatusOK, body)
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WarnContext(r.Context(), "error encoding response", slog.Any("error", err))
	}
}

func (h *handler) writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	h.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	h.writeJSON(w, r, res.StatusCode, res)
}
