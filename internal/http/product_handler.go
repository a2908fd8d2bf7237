package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/internal/commerce"
	"github.com/tuanvumaihuynh/shopster-web/internal/event"
	"github.com/tuanvumaihuynh/shopster-web/internal/http/apierr"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/internal/reviews"
	"github.com/tuanvumaihuynh/shopster-web/internal/session"
)

type productPage struct {
	basePage
	Product model.Product
	Reviews reviewsData
}

// reviewsData is what the review panel template renders.
type reviewsData struct {
	reviews.View
	Slug         string
	ReviewsPage  int
	Message      string
	DeleteTarget *model.Review
	LoadFailed   bool
}

// loadProduct fetches the product for the viewer; the access token makes the
// API fill in can_review and user_review.
func (h *handler) loadProduct(r *http.Request) (model.Product, bool) {
	ctx := commerce.WithAccessToken(r.Context(), session.AccessToken(r.Context()))
	return h.catalog.FetchProduct(ctx, chi.URLParam(r, "slug"))
}

// newPanel builds the review panel of p for the requesting viewer and loads
// review pages 1 through reviewsPage.
func (h *handler) newPanel(r *http.Request, p model.Product, reviewsPage int) (*reviews.Panel, bool) {
	ctx := r.Context()
	s, _ := session.FromContext(ctx)

	panel := reviews.NewPanel(h.reviews, h.validate, reviews.Options{
		ProductID:     p.ID,
		AccessToken:   s.AccessToken,
		CanReview:     p.CanReview,
		AverageRating: p.AverageRating,
		ReviewsCount:  p.ReviewsCount,
		UserReview:    p.UserReview,
		Guard:         h.reviewGuard,
		GuardKey:      reviewGuardKey(s, p.ID),
	})

	if err := panel.LoadThrough(ctx, reviewsPage); err != nil {
		h.logger.WarnContext(ctx, "error loading reviews",
			slog.Int64("product_id", p.ID), slog.Any("error", err))
		return panel, false
	}
	return panel, true
}

func reviewGuardKey(s session.Session, productID int64) string {
	viewer := s.ID
	if viewer == "" {
		viewer = "anonymous"
	}
	return viewer + ":" + strconv.FormatInt(productID, 10)
}

func (h *handler) renderProduct(w http.ResponseWriter, r *http.Request, status int, p model.Product, rd reviewsData) {
	base := h.base(r, p.Name)
	if p.MetaTitle != "" {
		base.Title = p.MetaTitle
	}
	base.Description = p.MetaDescription
	if base.Description == "" {
		base.Description = p.ShortDescription
	}

	h.page(w, r, status, "product", productPage{
		basePage: base,
		Product:  p,
		Reviews:  rd,
	})
}

func (h *handler) productDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := h.loadProduct(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	q := r.URL.Query()
	reviewsPage := pageParam(r, "reviews_page")
	panel, loaded := h.newPanel(r, p, reviewsPage)

	switch {
	case q.Has("cancel"):
		panel.Cancel()
	case q.Has("write"):
		if err := panel.OpenCreate(); err != nil {
			h.logger.DebugContext(ctx, "cannot open review form", slog.Any("error", err))
		}
	case q.Has("edit"):
		if id, err := strconv.ParseInt(q.Get("edit"), 10, 64); err == nil {
			if err := panel.OpenEdit(id); err != nil {
				h.logger.DebugContext(ctx, "cannot edit review", slog.Int64("review_id", id), slog.Any("error", err))
			}
		}
	}

	rd := reviewsData{
		Slug:        p.Slug,
		ReviewsPage: reviewsPage,
		LoadFailed:  !loaded,
	}
	if q.Has("delete") {
		if id, err := strconv.ParseInt(q.Get("delete"), 10, 64); err == nil {
			rd.DeleteTarget = ownReview(panel.View(), id)
		}
	}
	rd.View = panel.View()

	h.events.ProductViewed(ctx, sessionID(ctx), event.ProductViewed{ProductID: p.ID, Slug: p.Slug})

	h.renderProduct(w, r, http.StatusOK, p, rd)
}

func ownReview(v reviews.View, id int64) *model.Review {
	for _, rv := range v.Reviews {
		if rv.ID == id && rv.IsOwner {
			return &rv
		}
	}
	return nil
}

func reviewInputFromForm(r *http.Request) model.ReviewInput {
	rating, err := strconv.Atoi(r.PostFormValue("rating"))
	if err != nil {
		rating = 0
	}
	return model.ReviewInput{
		Rating: rating,
		Title:  r.PostFormValue("title"),
		Body:   r.PostFormValue("body"),
	}
}

func formPage(r *http.Request) int {
	page, err := strconv.Atoi(r.PostFormValue("reviews_page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// submitReview creates or edits the viewer's review and renders the product
// page with the updated panel.
func (h *handler) submitReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if _, ok := session.FromContext(ctx); !ok {
		redirectToSignIn(w, r, "/products/"+url.PathEscape(slug))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.handleError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}

	p, ok := h.loadProduct(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	reviewsPage := formPage(r)
	panel, loaded := h.newPanel(r, p, reviewsPage)

	var openErr error
	if raw := r.PostFormValue("review_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			openErr = apperr.ValidationErr.WrapParent(fmt.Errorf("parse review id: %w", err))
		} else {
			openErr = panel.OpenEdit(id)
		}
	} else {
		openErr = panel.OpenCreate()
	}

	rd := reviewsData{Slug: p.Slug, ReviewsPage: reviewsPage, LoadFailed: !loaded}
	status := http.StatusOK

	if openErr != nil {
		status, rd.Message = h.reviewFailure(openErr)
	} else if _, err := panel.Submit(ctx, reviewInputFromForm(r)); err != nil {
		if isUnauthorized(err) {
			redirectToSignIn(w, r, "/products/"+url.PathEscape(slug))
			return
		}
		status, rd.Message = h.reviewFailure(err)
		if status >= 500 {
			h.logger.ErrorContext(ctx, "error submitting review", slog.Any("error", err))
		}
	}

	rd.View = panel.View()
	h.renderProduct(w, r, status, p, rd)
}

// deleteReview removes the viewer's review. Without confirm=yes it only sends
// the viewer to the confirmation step.
func (h *handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if _, ok := session.FromContext(ctx); !ok {
		redirectToSignIn(w, r, "/products/"+url.PathEscape(slug))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.handleError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		h.notFound(w, r)
		return
	}

	p, ok := h.loadProduct(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	reviewsPage := formPage(r)
	panel, loaded := h.newPanel(r, p, reviewsPage)

	rd := reviewsData{Slug: p.Slug, ReviewsPage: reviewsPage, LoadFailed: !loaded}
	status := http.StatusOK

	err = panel.Delete(ctx, reviewID, r.PostFormValue("confirm") == "yes")
	switch {
	case err == nil:
	case errors.Is(err, reviews.ErrConfirmationRequired):
		target := fmt.Sprintf("/products/%s?delete=%d&reviews_page=%d#reviews", url.PathEscape(p.Slug), reviewID, reviewsPage)
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	case isUnauthorized(err):
		redirectToSignIn(w, r, "/products/"+url.PathEscape(slug))
		return
	default:
		status, rd.Message = h.reviewFailure(err)
		if errors.Is(err, apperr.UpstreamErr) || errors.Is(err, apperr.UpstreamRejectedErr) {
			rd.Message = apierr.UserMessage(err, h.tr.T("reviews.delete_failed"))
		}
	}

	rd.View = panel.View()
	h.renderProduct(w, r, status, p, rd)
}

// reviewFailure maps a panel error to a status and the message shown above
// the form.
func (h *handler) reviewFailure(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ValidationErr):
		if msg := h.firstValidationMessage(err); msg != "" {
			return http.StatusUnprocessableEntity, msg
		}
		return http.StatusUnprocessableEntity, h.tr.T("reviews.save_failed")
	case errors.Is(err, reviews.ErrBusy):
		return http.StatusConflict, h.tr.T("reviews.busy")
	case errors.Is(err, reviews.ErrNotOwner), isUnauthorized(err):
		return http.StatusForbidden, h.tr.T("reviews.save_failed")
	case errors.Is(err, apperr.NotFoundErr):
		return http.StatusNotFound, h.tr.T("reviews.save_failed")
	case errors.Is(err, apperr.UpstreamRejectedErr):
		return http.StatusUnprocessableEntity, apierr.UserMessage(err, h.tr.T("reviews.save_failed"))
	default:
		return http.StatusBadGateway, h.tr.T("reviews.save_failed")
	}
}
