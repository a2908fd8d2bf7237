package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/shopster-web/internal/config"
	"github.com/tuanvumaihuynh/shopster-web/internal/http/metric"
	"github.com/tuanvumaihuynh/shopster-web/internal/http/middleware"
	"github.com/tuanvumaihuynh/shopster-web/internal/http/view"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics
	handler *handler
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	site config.Site,
	log *slog.Logger,
	deps Dependencies,
) (*Service, error) {
	logger := log.With(slog.String("service", "http"))

	renderer, err := view.New(view.Options{
		Translator: deps.Translator,
		Prices:     deps.Prices,
		Media:      deps.Media,
		Reload:     cfg.DevTemplates,
	})
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	return &Service{
		cfg:     cfg,
		logger:  logger,
		metrics: metric.New(),
		handler: newHandler(site, logger, renderer, deps),
	}, nil
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	return s.RunWithServer(ctx, s.Router())
}

// Router builds the complete route tree with its middleware.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)
	s.RegisterHandlers(r)
	return r
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	addr := fmt.Sprintf(":%d", s.cfg.Port)

	// Listen before returning so a port conflict fails startup instead of a goroutine.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.ErrorContext(ctx, "http server stopped unexpectedly", slog.Any("error", err))
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger, s.handler.internalError),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Logging(s.logger),
		middleware.Session(s.handler.sessions),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	h := s.handler

	r.NotFound(h.notFound)

	r.Get("/", h.home)
	r.Get("/robots.txt", h.robots)
	r.Get(middleware.HealthPath, h.healthz)
	r.Get("/checkout/success", h.checkoutSuccess)
	r.Handle(middleware.StaticPrefix+"*", http.StripPrefix("/static", view.Static()))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Get("/feed", h.productFeed)
		r.Get("/{slug}", h.productDetail)
		r.Post("/{slug}/reviews", h.submitReview)
		r.Post("/{slug}/reviews/{reviewID}/delete", h.deleteReview)
	})

	r.Get("/search", h.searchPage)
	r.Get("/search/results", h.searchFragment)
	r.With(middleware.Cors(s.cfg.CORSOrigins)).Get("/api/search", h.searchJSON)
	r.With(middleware.Cors(s.cfg.CORSOrigins)).Options("/api/search", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/signin", h.signInPage)
	r.Post("/signin", h.signIn)
	r.Get("/signup", h.signUpPage)
	r.Post("/signup", h.signUp)
	r.Post("/signout", h.signOut)
	r.Get("/forgot-password", h.forgotPasswordPage)
	r.Post("/forgot-password", h.forgotPassword)
	r.Get("/reset-password", h.resetPasswordPage)
	r.Post("/reset-password", h.resetPassword)

	r.Get("/account", h.accountPage)
	r.Post("/account", h.updateAccount)

	r.Get("/admin/stats", h.statsPage)

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}
