package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/tuanvumaihuynh/shopster-web/internal/http/apierr"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/internal/session"
)

type accountPage struct {
	basePage
	Form  model.ProfileUpdate
	Saved bool
	Error string
}

func profileFormFrom(u model.User) model.ProfileUpdate {
	return model.ProfileUpdate{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Profile:   u.Profile,
	}
}

// accountPage shows the profile form. Without a session token it redirects to
// sign-in without calling the API; any profile fetch failure does the same.
func (h *handler) accountPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, ok := session.FromContext(ctx)
	if !ok {
		redirectToSignIn(w, r, "")
		return
	}

	user, err := h.auth.Me(ctx, s.AccessToken)
	if err != nil {
		h.logger.WarnContext(ctx, "error loading profile", slog.Any("error", err))
		redirectToSignIn(w, r, "")
		return
	}

	if _, err := h.sessions.UpdateUser(ctx, s, user); err != nil {
		h.logger.WarnContext(ctx, "error refreshing session user", slog.Any("error", err))
	}

	base := h.base(r, h.tr.T("account.title"))
	base.User = user
	h.page(w, r, http.StatusOK, "account", accountPage{
		basePage: base,
		Form:     profileFormFrom(user),
	})
}

func (h *handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, ok := session.FromContext(ctx)
	if !ok {
		redirectToSignIn(w, r, "")
		return
	}

	data := accountPage{basePage: h.base(r, h.tr.T("account.title"))}
	if err := r.ParseForm(); err != nil {
		data.Form = profileFormFrom(s.User)
		data.Error = h.tr.T("account.failed")
		h.page(w, r, http.StatusBadRequest, "account", data)
		return
	}

	upd := model.ProfileUpdate{
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Profile: model.Profile{
			Phone:                   strings.TrimSpace(r.PostFormValue("phone")),
			DefaultShippingAddress:  strings.TrimSpace(r.PostFormValue("default_shipping_address")),
			DefaultShippingCity:     strings.TrimSpace(r.PostFormValue("default_shipping_city")),
			DefaultShippingPostcode: strings.TrimSpace(r.PostFormValue("default_shipping_postcode")),
			DefaultShippingCountry:  strings.TrimSpace(r.PostFormValue("default_shipping_country")),
		},
	}
	data.Form = upd

	if err := h.validate.Validate(upd); err != nil {
		data.Error = h.firstValidationMessage(err)
		h.page(w, r, http.StatusUnprocessableEntity, "account", data)
		return
	}

	user, err := h.auth.UpdateMe(ctx, s.AccessToken, upd)
	if err != nil {
		if isUnauthorized(err) {
			redirectToSignIn(w, r, "")
			return
		}
		h.logger.WarnContext(ctx, "error updating profile", slog.Any("error", err))
		data.Error = apierr.UserMessage(err, h.tr.T("account.failed"))
		h.page(w, r, statusForUpstream(err), "account", data)
		return
	}

	if _, err := h.sessions.UpdateUser(ctx, s, user); err != nil {
		h.logger.WarnContext(ctx, "error refreshing session user", slog.Any("error", err))
	}

	data.basePage.User = user
	data.Form = profileFormFrom(user)
	data.Saved = true
	h.page(w, r, http.StatusOK, "account", data)
}
