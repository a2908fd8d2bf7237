package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/shopster-web/internal/storage/mq"
	"github.com/tuanvumaihuynh/shopster-web/pkg/correlationid"
)

var tracer = otel.Tracer("internal/event")

const (
	defaultQueueSize    = 256
	defaultFlushTimeout = 5 * time.Second
)

// Publisher records storefront analytics. Publishing never blocks page
// rendering and never fails it.
type Publisher interface {
	ProductViewed(ctx context.Context, sessionID string, ev ProductViewed)
	SearchPerformed(ctx context.Context, sessionID string, ev SearchPerformed)
}

var _ Publisher = (*Service)(nil)

type queued struct {
	headers map[string]string
	event   Event
}

// Service buffers events and hands them to the producer from a single worker.
// When the buffer is full new events are dropped.
type Service struct {
	logger   *slog.Logger
	producer mq.Producer
	topic    string

	queue chan queued
	now   func() time.Time

	mu      sync.RWMutex
	stopped bool
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	producer mq.Producer,
	topic string,
) *Service {
	return &Service{
		logger:   logger.With(slog.String("service", "event")),
		producer: producer,
		topic:    topic,
		queue:    make(chan queued, defaultQueueSize),
		now:      time.Now,
	}
}

type CleanupFunc func()

// Run starts the publishing worker. The cleanup stops intake, drains what is
// already queued and flushes the producer if it buffers.
func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if s.producer == nil {
		return nil, fmt.Errorf("run event service: no producer")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for q := range s.queue {
			s.publish(context.WithoutCancel(ctx), q)
		}
	}()

	cleanup := func() {
		s.mu.Lock()
		if !s.stopped {
			s.stopped = true
			close(s.queue)
		}
		s.mu.Unlock()
		<-done
		s.flush(context.WithoutCancel(ctx))
	}

	return cleanup, nil
}

func (s *Service) flush(ctx context.Context) {
	f, ok := s.producer.(mq.Flusher)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, defaultFlushTimeout)
	defer cancel()

	if err := f.Flush(ctx); err != nil {
		s.logger.WarnContext(ctx, "error flushing events", slog.Any("error", err))
	}
}

func (s *Service) ProductViewed(ctx context.Context, sessionID string, ev ProductViewed) {
	s.enqueue(ctx, TypeProductViewed, sessionID, ev)
}

func (s *Service) SearchPerformed(ctx context.Context, sessionID string, ev SearchPerformed) {
	s.enqueue(ctx, TypeSearchPerformed, sessionID, ev)
}

func (s *Service) enqueue(ctx context.Context, typ Type, sessionID string, payload any) {
	q := queued{
		headers: mq.BuildHeaders(ctx),
		event: Event{
			ID:         uuid.NewString(),
			Type:       typ,
			OccurredAt: s.now().UTC(),
			SessionID:  sessionID,
			Payload:    payload,
		},
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stopped {
		return
	}

	select {
	case s.queue <- q:
	default:
		s.logger.WarnContext(ctx, "event queue full, dropping event", slog.String("type", string(typ)))
	}
}

func (s *Service) publish(ctx context.Context, q queued) {
	if id, ok := q.headers[correlationid.Header]; ok {
		ctx = correlationid.NewContext(ctx, id)
	}
	ctx, span := tracer.Start(ctx, "event.publish", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	payload, err := json.Marshal(q.event)
	if err != nil {
		s.logger.ErrorContext(ctx, "error marshaling event", slog.Any("error", err))
		return
	}

	key := string(q.event.Type)
	q.headers["event-type"] = key

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.producer.Produce(ctx, mq.ProduceMsg{
		Topic:        s.topic,
		Headers:      q.headers,
		Payload:      payload,
		PartitionKey: &key,
	}); err != nil {
		s.logger.WarnContext(ctx, "error publishing event",
			slog.String("type", key), slog.Any("error", err))
	}
}
