package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/internal/commerce"
	"github.com/tuanvumaihuynh/shopster-web/internal/config"
	"github.com/tuanvumaihuynh/shopster-web/internal/event"
	"github.com/tuanvumaihuynh/shopster-web/internal/http/apierr"
	"github.com/tuanvumaihuynh/shopster-web/internal/http/view"
	"github.com/tuanvumaihuynh/shopster-web/internal/i18n"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/internal/reviews"
	"github.com/tuanvumaihuynh/shopster-web/internal/search"
	"github.com/tuanvumaihuynh/shopster-web/internal/session"
	"github.com/tuanvumaihuynh/shopster-web/internal/storage/kv"
	"github.com/tuanvumaihuynh/shopster-web/pkg/money"
	"github.com/tuanvumaihuynh/shopster-web/pkg/validator"
)

// Dependencies are the collaborators the handlers drive.
type Dependencies struct {
	Catalog  commerce.Catalog
	Auth     commerce.Auth
	Reviews  commerce.Reviews
	Stats    commerce.Stats
	Searcher search.Searcher
	Sessions *session.Manager
	Events   event.Publisher

	Validator  validator.Validator
	Translator *i18n.Translator
	Prices     *money.Formatter
	Media      commerce.Media

	// Health is optional; nil means there is no backing store to probe.
	Health kv.HealthChecker
}

type handler struct {
	site     config.Site
	logger   *slog.Logger
	view     *view.Renderer
	tr       *i18n.Translator
	validate validator.Validator

	catalog  commerce.Catalog
	auth     commerce.Auth
	reviews  commerce.Reviews
	stats    commerce.Stats
	searcher search.Searcher
	sessions *session.Manager
	events   event.Publisher
	health   kv.HealthChecker

	// reviewGuard makes review submits non-reentrant per viewer and product
	// across requests.
	reviewGuard *reviews.Guard
	now         func() time.Time
}

func newHandler(site config.Site, logger *slog.Logger, renderer *view.Renderer, deps Dependencies) *handler {
	return &handler{
		site:        site,
		logger:      logger,
		view:        renderer,
		tr:          deps.Translator,
		validate:    deps.Validator,
		catalog:     deps.Catalog,
		auth:        deps.Auth,
		reviews:     deps.Reviews,
		stats:       deps.Stats,
		searcher:    deps.Searcher,
		sessions:    deps.Sessions,
		events:      deps.Events,
		health:      deps.Health,
		reviewGuard: reviews.NewGuard(),
		now:         time.Now,
	}
}

// basePage is the data every page template sees.
type basePage struct {
	Title       string
	Description string
	Site        config.Site
	SignedIn    bool
	IsStaff     bool
	User        model.User
	Search      search.Query
	Year        int
}

func (h *handler) base(r *http.Request, title string) basePage {
	b := basePage{
		Title: title,
		Site:  h.site,
		Year:  h.now().Year(),
	}
	if s, ok := session.FromContext(r.Context()); ok {
		b.SignedIn = true
		b.IsStaff = s.IsStaff()
		b.User = s.User
	}
	return b
}

func (h *handler) page(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := h.view.Page(w, status, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "error rendering page",
			slog.String("page", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *handler) partial(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := h.view.Partial(w, status, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "error rendering fragment",
			slog.String("fragment", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

type errorPage struct {
	basePage
	Heading string
	Hint    string
}

func (h *handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusNotFound, "error", errorPage{
		basePage: h.base(r, h.tr.T("error.not_found")),
		Heading:  h.tr.T("error.not_found"),
		Hint:     h.tr.T("error.not_found_hint"),
	})
}

func (h *handler) internalError(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusInternalServerError, "error", errorPage{
		basePage: h.base(r, h.tr.T("error.internal")),
		Heading:  h.tr.T("error.internal"),
		Hint:     h.tr.T("error.internal_hint"),
	})
}

// handleError renders the error page matching err and logs it at a level
// following the status.
func (h *handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := apierr.StatusCode(err)

	logLevel := slog.LevelInfo
	if status >= 500 {
		logLevel = slog.LevelError
	} else if status >= 400 {
		logLevel = slog.LevelWarn
	}
	h.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if status == http.StatusNotFound {
		h.notFound(w, r)
		return
	}
	h.internalError(w, r)
}

// redirectToSignIn sends the visitor to the sign-in page, asking it to come
// back to next afterwards.
func redirectToSignIn(w http.ResponseWriter, r *http.Request, next string) {
	target := "/signin"
	if next != "" {
		target += "?" + url.Values{"next": {next}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeNext accepts only same-site absolute paths as post-login targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}

// firstValidationMessage localizes the first field error of err, or returns "".
func (h *handler) firstValidationMessage(err error) string {
	fe, ok := validator.FirstFieldError(err)
	if !ok {
		return ""
	}
	return h.tr.ValidationMessage(fe)
}

func sessionID(ctx context.Context) string {
	s, _ := session.FromContext(ctx)
	return s.ID
}

func isUnauthorized(err error) bool {
	return errors.Is(err, apperr.UnauthorizedErr)
}
