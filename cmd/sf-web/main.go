package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/shopster-web/internal/commerce"
	"github.com/tuanvumaihuynh/shopster-web/internal/config"
	"github.com/tuanvumaihuynh/shopster-web/internal/event"
	"github.com/tuanvumaihuynh/shopster-web/internal/http"
	"github.com/tuanvumaihuynh/shopster-web/internal/i18n"
	"github.com/tuanvumaihuynh/shopster-web/internal/log"
	"github.com/tuanvumaihuynh/shopster-web/internal/search"
	"github.com/tuanvumaihuynh/shopster-web/internal/session"
	"github.com/tuanvumaihuynh/shopster-web/internal/storage/cache"
	"github.com/tuanvumaihuynh/shopster-web/internal/storage/kv"
	"github.com/tuanvumaihuynh/shopster-web/internal/storage/mq"
	"github.com/tuanvumaihuynh/shopster-web/internal/telemetry"
	"github.com/tuanvumaihuynh/shopster-web/pkg/cmdutil"
	"github.com/tuanvumaihuynh/shopster-web/pkg/money"
	"github.com/tuanvumaihuynh/shopster-web/pkg/validator"
)

const cacheKeyPrefix = "sf:cache:"

type Config struct {
	Log     config.Log
	HTTP    config.HTTP
	API     config.API
	Site    config.Site
	Search  config.Search
	Session config.Session
	Redis   config.Redis
	Kafka   config.Kafka
	Otel    config.Otel
}

func (c *Config) Validate() error {
	return c.API.Validate()
}

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running storefront: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log, cfg.Site.Build)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	var (
		sessionStore session.Store = session.NewMemoryStore()
		respCache    cache.Cache   = cache.NewMemory()
		health       kv.HealthChecker
	)
	if cfg.Redis.Enabled() {
		redisClient, err := kv.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("error creating redis client: %w", err)
		}
		defer redisClient.Close()

		sessionStore = session.NewRedisStore(redisClient.Client, cfg.Session.KeyPrefix)
		respCache = cache.NewRedis(redisClient.Client, cacheKeyPrefix)
		health = redisClient
	} else {
		logger.WarnContext(ctx, "redis is not configured, keeping sessions and cache in memory")
	}

	commerceClient, err := commerce.NewClient(cfg.API, logger, respCache)
	if err != nil {
		return fmt.Errorf("error creating commerce client: %w", err)
	}

	media, err := commerce.NewMedia(cfg.API.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("error creating media resolver: %w", err)
	}

	prices, err := money.NewFormatter(cfg.Site.Locale, cfg.Site.DefaultCurrency)
	if err != nil {
		return fmt.Errorf("error creating price formatter: %w", err)
	}

	translator, err := i18n.New(cfg.Site.Locale)
	if err != nil {
		return fmt.Errorf("error creating translator: %w", err)
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	if !cfg.Search.Enabled() {
		logger.WarnContext(ctx, "search index is not configured, the overlay will report it unavailable")
	}
	searcher := search.NewSearcher(search.NewIndex(cfg.Search), cfg.Search.HitsPerPage, media, prices, logger)

	var producer mq.Producer = mq.NoopProducer{}
	if cfg.Kafka.Enabled() {
		kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
		if err != nil {
			return fmt.Errorf("error creating kafka producer: %w", err)
		}
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	events := event.New(logger, producer, cfg.Kafka.EventsTopic)

	httpSvc, err := http.New(cfg.HTTP, cfg.Site, logger, http.Dependencies{
		Catalog:    commerceClient,
		Auth:       commerceClient,
		Reviews:    commerceClient,
		Stats:      commerceClient,
		Searcher:   searcher,
		Sessions:   session.NewManager(cfg.Session, sessionStore, logger),
		Events:     events,
		Validator:  v,
		Translator: translator,
		Prices:     prices,
		Media:      media,
		Health:     health,
	})
	if err != nil {
		return fmt.Errorf("error creating http service: %w", err)
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		cleanup, err := events.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running event service: %w", err))
		}
		logger.InfoContext(ctx, "event service started", slog.Bool("kafka", cfg.Kafka.Enabled()))

		<-interruptChan

		logger.InfoContext(ctx, "event service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "event service is stopped")
	})

	wg.Go(func() {
		cleanup, err := httpSvc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Wait()

	return nil
}
