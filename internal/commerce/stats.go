package commerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
)

// Stats reads the staff-only sales overview. 401 and 403 both come back as
// apperr.UnauthorizedErr; other failures carry the response text as message.
type Stats interface {
	StatsOverview(ctx context.Context, token string, rng model.StatsRange) (model.StatsOverview, error)
}

func (c *Client) StatsOverview(ctx context.Context, token string, rng model.StatsRange) (model.StatsOverview, error) {
	if token == "" {
		return model.StatsOverview{}, apperr.UnauthorizedErr
	}

	query := url.Values{}
	if rng.DateFrom != "" {
		query.Set("date_from", rng.DateFrom)
	}
	if rng.DateTo != "" {
		query.Set("date_to", rng.DateTo)
	}

	var stats model.StatsOverview
	if err := c.doJSON(ctx, request{
		op:     "StatsOverview",
		method: http.MethodGet,
		path:   "/api/stats/overview/",
		query:  query,
		token:  token,
	}, &stats); err != nil {
		return model.StatsOverview{}, fmt.Errorf("get stats overview: %w", err)
	}
	return stats, nil
}
