package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// robots allows every crawler and points them at the sitemap.
func (h *handler) robots(w http.ResponseWriter, r *http.Request) {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", strings.TrimRight(h.site.URL, "/"))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		h.logger.WarnContext(r.Context(), "error writing robots.txt", slog.Any("error", err))
	}
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	status, body := http.StatusOK, map[string]string{"status": "ok"}

	if h.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if ok, err := h.health.IsHealthy(ctx); !ok {
			h.logger.WarnContext(ctx, "redis is unhealthy", slog.Any("error", err))
			status, body = http.StatusServiceUnavailable, map[string]string{"status": "degraded", "redis": "down"}
		}
	}

	h.writeJSON(w, r, status, body)
}

type checkoutSuccessPage struct {
	basePage
	OrderID string
}

func (h *handler) checkoutSuccess(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, "checkout_success", checkoutSuccessPage{
		basePage: h.base(r, h.tr.T("checkout.title")),
		OrderID:  strings.TrimSpace(r.URL.Query().Get("order")),
	})
}
