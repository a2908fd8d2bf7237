// Package commerce is the storefront's client for the commerce REST API.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.9.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/internal/config"
	"github.com/tuanvumaihuynh/shopster-web/internal/storage/cache"
	"github.com/tuanvumaihuynh/shopster-web/pkg/correlationid"
	"github.com/tuanvumaihuynh/shopster-web/pkg/retry"
)

var tracer = otel.Tracer("internal/commerce")

const maxErrorBody = 64 << 10

// Client talks to the commerce API. It implements Catalog, Auth, Reviews and
// Stats.
type Client struct {
	cfg        config.API
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	cache      cache.Cache
	readRetry  retry.Config
}

var (
	_ Catalog = (*Client)(nil)
	_ Auth    = (*Client)(nil)
	_ Reviews = (*Client)(nil)
	_ Stats   = (*Client)(nil)
)

// NewClient creates a client for the server-side API origin. c may be nil to
// disable response caching.
func NewClient(cfg config.API, logger *slog.Logger, c cache.Cache) (*Client, error) {
	base, err := url.Parse(cfg.ServerBaseURL())
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}

	return &Client{
		cfg:        cfg,
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With(slog.String("component", "commerce")),
		cache:      c,
		readRetry: retry.Config{
			MaxAttempts: cfg.ReadAttempts,
			Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
			ShouldRetry: func(err error) bool {
				return errors.Is(err, apperr.UpstreamErr)
			},
		},
	}, nil
}

type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	token  string
}

func (c *Client) url(path string, query url.Values) *url.URL {
	ref := &url.URL{Path: path}
	if unescaped, err := url.PathUnescape(path); err == nil && unescaped != path {
		ref = &url.URL{Path: unescaped, RawPath: path}
	}
	u := c.baseURL.ResolveReference(ref)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u
}

// doJSON performs req and decodes a JSON answer into out. out may be nil.
func (c *Client) doJSON(ctx context.Context, req request, out any) error {
	body, err := c.doRaw(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := decodeJSON(body, out); err != nil {
		return fmt.Errorf("%s: %w", req.op, err)
	}
	return nil
}

func decodeJSON(body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperr.UpstreamErr.WrapParent(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// doRaw performs req and returns the raw success body. GET requests are
// retried on transport errors and 5xx answers.
func (c *Client) doRaw(ctx context.Context, req request) ([]byte, error) {
	if req.method != http.MethodGet {
		return c.roundTrip(ctx, req)
	}
	return retry.DoWithResult(ctx, c.readRetry, func(ctx context.Context) ([]byte, error) {
		return c.roundTrip(ctx, req)
	})
}

func (c *Client) roundTrip(ctx context.Context, req request) ([]byte, error) {
	u := c.url(req.path, req.query)

	ctx, span := tracer.Start(ctx, "commerce."+req.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPMethodKey.String(req.method),
			semconv.HTTPURLKey.String(u.String()),
		),
	)
	defer span.End()

	httpReq, err := c.newRequest(ctx, req, u)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, err
	}

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return nil, apperr.UpstreamErr.WrapParent(fmt.Errorf("%s %s: %w", req.method, u.Path, err))
	}
	defer res.Body.Close()

	span.SetAttributes(semconv.HTTPStatusCodeKey.Int(res.StatusCode))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		err := errorFromResponse(res, b)
		span.SetStatus(codes.Error, fmt.Sprintf("error with HTTP status code %d", res.StatusCode))
		return nil, err
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.UpstreamErr.WrapParent(fmt.Errorf("read %s response: %w", req.op, err))
	}

	span.SetAttributes(attribute.Int("http.response_content_length", len(b)))
	span.SetStatus(codes.Ok, "")
	return b, nil
}

func (c *Client) newRequest(ctx context.Context, req request, u *url.URL) (*http.Request, error) {
	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s body: %w", req.op, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", req.op, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	if id, ok := correlationid.FromContext(ctx); ok {
		httpReq.Header.Set(correlationid.Header, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	return httpReq, nil
}

// errorFromResponse maps a non-success answer to a storefront error whose
// message is the flattened error payload.
func errorFromResponse(res *http.Response, body []byte) error {
	parent := fmt.Errorf("%s %s: status %d", res.Request.Method, res.Request.URL.Path, res.StatusCode)

	// Server error pages are not shown to users.
	msg := ""
	if res.StatusCode < 500 || !isHTML(res.Header.Get("Content-Type")) {
		msg = FlattenErrors(body)
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return apperr.UnauthorizedErr.WithMsg(msg).WrapParent(parent)
	case res.StatusCode == http.StatusNotFound:
		return apperr.NotFoundErr.WithMsg(msg).WrapParent(parent)
	case res.StatusCode >= 500:
		return apperr.UpstreamErr.WithMsg(msg).WrapParent(parent)
	default:
		return apperr.UpstreamRejectedErr.WithMsg(msg).WrapParent(parent)
	}
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "text/html"
}
