package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/tuanvumaihuynh/shopster-web/internal/http/apierr"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/internal/session"
)

type statsPage struct {
	basePage
	Range    model.StatsRange
	Overview *model.StatsOverview
	Error    string
}

// statsPage renders the staff overview. A 401/403 from the API sends the
// viewer to sign-in; other failures are shown inline.
func (h *handler) statsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, ok := session.FromContext(ctx)
	if !ok {
		redirectToSignIn(w, r, "/admin/stats")
		return
	}

	q := r.URL.Query()
	data := statsPage{
		basePage: h.base(r, h.tr.T("stats.title")),
		Range: model.StatsRange{
			DateFrom: strings.TrimSpace(q.Get("date_from")),
			DateTo:   strings.TrimSpace(q.Get("date_to")),
		},
	}

	if err := h.validate.Validate(data.Range); err != nil {
		data.Error = h.firstValidationMessage(err)
		h.page(w, r, http.StatusUnprocessableEntity, "stats", data)
		return
	}

	overview, err := h.stats.StatsOverview(ctx, s.AccessToken, data.Range)
	if err != nil {
		if isUnauthorized(err) {
			redirectToSignIn(w, r, "/admin/stats")
			return
		}
		h.logger.WarnContext(ctx, "error loading stats", slog.Any("error", err))
		data.Error = apierr.UserMessage(err, apierr.New(err).Message)
		h.page(w, r, statusForUpstream(err), "stats", data)
		return
	}

	data.Overview = &overview
	h.page(w, r, http.StatusOK, "stats", data)
}
