package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/internal/http/apierr"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/internal/session"
)

type signInPage struct {
	basePage
	Identifier string
	Next       string
	Error      string
}

type signUpPage struct {
	basePage
	Form  model.Registration
	Error string
}

type forgotPasswordPage struct {
	basePage
	Email string
	Sent  bool
	Error string
}

type resetPasswordPage struct {
	basePage
	UID     string
	Token   string
	Invalid bool
	Done    bool
	Error   string
}

func (h *handler) signInPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()); ok {
		http.Redirect(w, r, "/account", http.StatusSeeOther)
		return
	}
	h.page(w, r, http.StatusOK, "signin", signInPage{
		basePage: h.base(r, h.tr.T("auth.signin_title")),
		Next:     safeNext(r.URL.Query().Get("next")),
	})
}

func (h *handler) renderSignIn(w http.ResponseWriter, r *http.Request, status int, data signInPage) {
	data.basePage = h.base(r, h.tr.T("auth.signin_title"))
	h.page(w, r, status, "signin", data)
}

func (h *handler) signIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderSignIn(w, r, http.StatusBadRequest, signInPage{Error: h.tr.T("auth.signin_required")})
		return
	}

	creds := model.Credentials{
		Identifier: strings.TrimSpace(r.PostFormValue("identifier")),
		Password:   r.PostFormValue("password"),
	}
	data := signInPage{Identifier: creds.Identifier, Next: safeNext(r.PostFormValue("next"))}

	if err := h.validate.Validate(creds); err != nil {
		data.Error = h.tr.T("auth.signin_required")
		h.renderSignIn(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	if err := h.establish(w, r, creds); err != nil {
		h.logger.WarnContext(r.Context(), "sign in failed", slog.Any("error", err))
		data.Error = h.tr.T("auth.signin_failed")
		h.renderSignIn(w, r, http.StatusUnauthorized, data)
		return
	}

	next := data.Next
	if next == "" {
		next = "/account"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// establish signs in with creds and opens a session for the returned user.
func (h *handler) establish(w http.ResponseWriter, r *http.Request, creds model.Credentials) error {
	ctx := r.Context()

	tokens, err := h.auth.Login(ctx, creds)
	if err != nil {
		return err
	}
	user, err := h.auth.Me(ctx, tokens.Access)
	if err != nil {
		return err
	}
	if _, err := h.sessions.Establish(ctx, w, user, tokens); err != nil {
		return err
	}
	return nil
}

func (h *handler) signUpPage(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, "signup", signUpPage{
		basePage: h.base(r, h.tr.T("auth.signup_title")),
	})
}

func (h *handler) signUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	render := func(status int, form model.Registration, msg string) {
		form.Password, form.PasswordConfirm = "", ""
		h.page(w, r, status, "signup", signUpPage{
			basePage: h.base(r, h.tr.T("auth.signup_title")),
			Form:     form,
			Error:    msg,
		})
	}

	if err := r.ParseForm(); err != nil {
		render(http.StatusBadRequest, model.Registration{}, h.tr.T("auth.signup_failed"))
		return
	}

	reg := model.Registration{
		Username:        strings.TrimSpace(r.PostFormValue("username")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("password_confirm"),
		FirstName:       strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:        strings.TrimSpace(r.PostFormValue("last_name")),
	}

	if err := h.validate.Validate(reg); err != nil {
		render(http.StatusUnprocessableEntity, reg, h.firstValidationMessage(err))
		return
	}

	if err := h.auth.Register(ctx, reg); err != nil {
		h.logger.WarnContext(ctx, "registration failed", slog.Any("error", err))
		render(statusForUpstream(err), reg, apierr.UserMessage(err, h.tr.T("auth.signup_failed")))
		return
	}

	creds := model.Credentials{Identifier: reg.Username, Password: reg.Password}
	if err := h.establish(w, r, creds); err != nil {
		h.logger.WarnContext(ctx, "sign in after registration failed", slog.Any("error", err))
		h.renderSignIn(w, r, http.StatusOK, signInPage{
			Identifier: reg.Username,
			Error:      h.tr.T("auth.signup_signin_failed"),
		})
		return
	}

	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (h *handler) signOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		h.logger.WarnContext(r.Context(), "error destroying session", slog.Any("error", err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) forgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, "forgot_password", forgotPasswordPage{
		basePage: h.base(r, h.tr.T("auth.forgot_title")),
	})
}

func (h *handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := forgotPasswordPage{basePage: h.base(r, h.tr.T("auth.forgot_title"))}

	if err := r.ParseForm(); err != nil {
		data.Error = h.tr.T("auth.forgot_failed")
		h.page(w, r, http.StatusBadRequest, "forgot_password", data)
		return
	}

	req := model.PasswordResetRequest{Email: strings.TrimSpace(r.PostFormValue("email"))}
	data.Email = req.Email

	if err := h.validate.Validate(req); err != nil {
		data.Error = h.firstValidationMessage(err)
		h.page(w, r, http.StatusUnprocessableEntity, "forgot_password", data)
		return
	}

	if err := h.auth.RequestPasswordReset(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "password reset request failed", slog.Any("error", err))
		data.Error = apierr.UserMessage(err, h.tr.T("auth.forgot_failed"))
		h.page(w, r, statusForUpstream(err), "forgot_password", data)
		return
	}

	data.Sent = true
	h.page(w, r, http.StatusOK, "forgot_password", data)
}

// resetPasswordPage shows the invalid-link state before any form when either
// uid or token is missing.
func (h *handler) resetPasswordPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := resetPasswordPage{
		basePage: h.base(r, h.tr.T("auth.reset_title")),
		UID:      q.Get("uid"),
		Token:    q.Get("token"),
	}
	data.Invalid = data.UID == "" || data.Token == ""

	h.page(w, r, http.StatusOK, "reset_password", data)
}

func (h *handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := resetPasswordPage{basePage: h.base(r, h.tr.T("auth.reset_title"))}

	if err := r.ParseForm(); err != nil {
		data.Invalid = true
		h.page(w, r, http.StatusBadRequest, "reset_password", data)
		return
	}

	req := model.PasswordResetConfirm{
		UID:             r.PostFormValue("uid"),
		Token:           r.PostFormValue("token"),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("password_confirm"),
	}
	data.UID, data.Token = req.UID, req.Token

	if req.UID == "" || req.Token == "" {
		data.Invalid = true
		data.Error = h.tr.T("auth.reset_invalid")
		h.page(w, r, http.StatusBadRequest, "reset_password", data)
		return
	}

	if err := h.validate.Validate(req); err != nil {
		data.Error = h.firstValidationMessage(err)
		h.page(w, r, http.StatusUnprocessableEntity, "reset_password", data)
		return
	}

	if err := h.auth.ConfirmPasswordReset(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "password reset failed", slog.Any("error", err))
		data.Error = apierr.UserMessage(err, h.tr.T("auth.reset_failed"))
		h.page(w, r, statusForUpstream(err), "reset_password", data)
		return
	}

	data.Done = true
	h.page(w, r, http.StatusOK, "reset_password", data)
}

// statusForUpstream is the page status after the commerce API refused or
// failed a form submission.
func statusForUpstream(err error) int {
	if errors.Is(err, apperr.UpstreamErr) {
		return http.StatusBadGateway
	}
	return http.StatusUnprocessableEntity
}
