package commerce

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/internal/storage/cache"
)

const (
	DefaultPageSize    = 12
	HomeProductsLimit  = 6
	categoriesPageSize = 100
)

// PageQuery selects one page of the product list. Filters are forwarded as
// query parameters; empty values are dropped and they cannot override the
// page or page size.
type PageQuery struct {
	Page     int
	PageSize int
	Filters  map[string]string
}

// Catalog reads products and categories. Reads never fail: API errors degrade
// to empty results or not-found and are logged.
type Catalog interface {
	FetchProductsPage(ctx context.Context, q PageQuery) model.ProductPage
	FetchProducts(ctx context.Context, limit int) []model.Product
	FetchProduct(ctx context.Context, slug string) (model.Product, bool)
	FetchCategories(ctx context.Context) []model.Category
}

type tokenCtxKey struct{}

// WithAccessToken attaches the viewer's bearer token to ctx so catalog reads
// can return per-viewer fields such as can_review. Such reads bypass the cache.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

func accessTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenCtxKey{}).(string)
	return token
}

func (c *Client) FetchProductsPage(ctx context.Context, q PageQuery) model.ProductPage {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}

	query := url.Values{}
	for k, v := range q.Filters {
		if v == "" || k == "page" || k == "page_size" {
			continue
		}
		query.Set(k, v)
	}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("page_size", strconv.Itoa(q.PageSize))

	body, err := c.cachedGet(ctx, request{
		op:     "FetchProductsPage",
		method: http.MethodGet,
		path:   "/api/products/",
		query:  query,
	}, c.cfg.CatalogCacheTTL)
	if err != nil {
		c.logger.WarnContext(ctx, "fetch products page failed",
			slog.Int("page", q.Page), slog.Any("error", err))
		return model.ProductPage{}
	}

	page, err := decodeList[model.Product](body, c.baseURL)
	if err != nil {
		c.logger.WarnContext(ctx, "decode products page failed",
			slog.Int("page", q.Page), slog.Any("error", err))
		return model.ProductPage{}
	}

	return model.ProductPage{
		Items:        page.items,
		NextPage:     page.next,
		PreviousPage: page.previous,
		TotalCount:   page.totalCount,
	}
}

func (c *Client) FetchProducts(ctx context.Context, limit int) []model.Product {
	return c.FetchProductsPage(ctx, PageQuery{PageSize: limit}).Items
}

func (c *Client) FetchProduct(ctx context.Context, slug string) (model.Product, bool) {
	// Dot segments would be resolved away and reach another API route.
	if slug == "" || slug == "." || slug == ".." {
		return model.Product{}, false
	}

	var product model.Product
	body, err := c.cachedGet(ctx, request{
		op:     "FetchProduct",
		method: http.MethodGet,
		path:   "/api/products/" + url.PathEscape(slug) + "/",
		token:  accessTokenFrom(ctx),
	}, c.cfg.CatalogCacheTTL)
	if err == nil {
		err = decodeJSON(body, &product)
	}
	if err != nil {
		if !errors.Is(err, apperr.NotFoundErr) {
			c.logger.WarnContext(ctx, "fetch product failed",
				slog.String("slug", slug), slog.Any("error", err))
		}
		return model.Product{}, false
	}
	if product.ID == 0 && product.Slug == "" {
		return model.Product{}, false
	}

	return product, true
}

func (c *Client) FetchCategories(ctx context.Context) []model.Category {
	body, err := c.cachedGet(ctx, request{
		op:     "FetchCategories",
		method: http.MethodGet,
		path:   "/api/categories/",
		query:  url.Values{"page_size": {strconv.Itoa(categoriesPageSize)}},
	}, c.cfg.CategoriesCacheTTL)
	if err != nil {
		c.logger.WarnContext(ctx, "fetch categories failed", slog.Any("error", err))
		return []model.Category{}
	}

	page, err := decodeList[model.Category](body, c.baseURL)
	if err != nil {
		c.logger.WarnContext(ctx, "decode categories failed", slog.Any("error", err))
		return []model.Category{}
	}

	categories := make([]model.Category, 0, len(page.items))
	for _, cat := range page.items {
		if cat.Slug != "" {
			categories = append(categories, cat)
		}
	}
	return categories
}

// cachedGet serves anonymous GETs from the cache when one is configured.
func (c *Client) cachedGet(ctx context.Context, req request, ttl time.Duration) ([]byte, error) {
	if c.cache == nil || ttl <= 0 || req.token != "" {
		return c.doRaw(ctx, req)
	}

	key := "commerce:" + c.url(req.path, req.query).String()

	b, err := c.cache.Get(ctx, key)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		c.logger.WarnContext(ctx, "read catalog cache failed", slog.Any("error", err))
	}

	b, err = c.doRaw(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, b, ttl); err != nil {
		c.logger.WarnContext(ctx, "write catalog cache failed", slog.Any("error", err))
	}
	return b, nil
}
