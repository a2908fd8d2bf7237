package http

import (
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tuanvumaihuynh/shopster-web/internal/commerce"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/pkg/pagination"
)

// maxCatalogPages bounds how many pages a ?page=N catalog render accumulates.
const maxCatalogPages = 20

type homePage struct {
	basePage
	Products   []model.Product
	Categories []model.Category
}

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		products   []model.Product
		categories []model.Category
	)
	// Catalog reads are fail-soft, so the group never sees an error.
	var g errgroup.Group
	g.Go(func() error {
		products = h.catalog.FetchProducts(ctx, commerce.HomeProductsLimit)
		return nil
	})
	g.Go(func() error {
		categories = h.catalog.FetchCategories(ctx)
		return nil
	})
	_ = g.Wait()

	h.page(w, r, http.StatusOK, "home", homePage{
		basePage:   h.base(r, ""),
		Products:   products,
		Categories: categories,
	})
}

type catalogPage struct {
	basePage
	Products   []model.Product
	Categories []model.Category
	catalogFilter
	NextPage   *int
	TotalCount int
}

// feedData is what the load-more fragment renders.
type feedData struct {
	Products []model.Product
	catalogFilter
	NextPage *int
}

// catalogFilter is the product list filter carried from the query string into
// the API request and the load-more links.
type catalogFilter struct {
	Category string
	MinPrice string
	MaxPrice string
	InStock  string
}

func catalogFilters(r *http.Request) catalogFilter {
	q := r.URL.Query()
	return catalogFilter{
		Category: strings.TrimSpace(q.Get("category")),
		MinPrice: strings.TrimSpace(q.Get("min_price")),
		MaxPrice: strings.TrimSpace(q.Get("max_price")),
		InStock:  strings.TrimSpace(q.Get("in_stock")),
	}
}

// Params drops empty values so the API sees only the filters that were set.
func (f catalogFilter) Params() map[string]string {
	params := make(map[string]string, 4)
	for k, v := range map[string]string{
		"category":  f.Category,
		"min_price": f.MinPrice,
		"max_price": f.MaxPrice,
		"in_stock":  f.InStock,
	} {
		if v != "" {
			params[k] = v
		}
	}
	return params
}

func pageParam(r *http.Request, name string) int {
	page, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func productID(p model.Product) int64 { return p.ID }

// listProducts renders the catalog. With ?page=N every page up to N is shown,
// merged by product id, so a load-more link works without script.
func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := catalogFilters(r)
	filters := filter.Params()
	last := min(pageParam(r, "page"), maxCatalogPages)

	var (
		categories []model.Category
		acc        = pagination.NewAccumulator(productID)
		nextPage   *int
		total      int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories = h.catalog.FetchCategories(gctx)
		return nil
	})
	g.Go(func() error {
		for page := 1; page <= last; {
			res := h.catalog.FetchProductsPage(gctx, commerce.PageQuery{
				Page:     page,
				PageSize: commerce.DefaultPageSize,
				Filters:  filters,
			})
			acc.MergePage(page, res.Items)
			nextPage, total = res.NextPage, res.TotalCount
			if !res.HasMore() || *res.NextPage <= page {
				break
			}
			page = *res.NextPage
		}
		return nil
	})
	_ = g.Wait()

	h.page(w, r, http.StatusOK, "products", catalogPage{
		basePage:   h.base(r, h.tr.T("catalog.title")),
		Products:   acc.Items(),
		Categories: categories,
		catalogFilter: filter,
		NextPage:      nextPage,
		TotalCount: total,
	})
}

// productFeed renders one page of product cards for the load-more control.
func (h *handler) productFeed(w http.ResponseWriter, r *http.Request) {
	filter := catalogFilters(r)

	res := h.catalog.FetchProductsPage(r.Context(), commerce.PageQuery{
		Page:     pageParam(r, "page"),
		PageSize: commerce.DefaultPageSize,
		Filters:  filter.Params(),
	})

	h.partial(w, r, http.StatusOK, "product_feed", feedData{
		Products:      res.Items,
		catalogFilter: filter,
		NextPage:      res.NextPage,
	})
}
