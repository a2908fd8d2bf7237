// Package reviews implements the product review panel: a paginated list of
// reviews plus the compose/edit form of the viewer's own review.
package reviews

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/internal/commerce"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/pkg/pagination"
	"github.com/tuanvumaihuynh/shopster-web/pkg/ptr"
	"github.com/tuanvumaihuynh/shopster-web/pkg/validator"
	"github.com/tuanvumaihuynh/shopster-web/pkg/zerror"
)

// MaxPages bounds how many pages LoadThrough fetches for one render.
const MaxPages = 50

var (
	// ErrBusy is returned when a submit or load is already in flight.
	ErrBusy = apperr.BusyErr

	ErrConfirmationRequired = zerror.NewBadRequest("CONFIRMATION_REQUIRED", "deletion must be confirmed")
	ErrNotOwner             = zerror.NewForbidden("NOT_REVIEW_OWNER", "only the author can change a review")
	ErrFormClosed           = zerror.NewBadRequest("FORM_CLOSED", "the review form is not open")
)

type ListState int

const (
	ListIdle ListState = iota
	ListLoading
	ListLoaded
	ListError
)

type FormState int

const (
	FormHidden FormState = iota
	FormCreate
	FormEdit
	FormSubmitting
)

type Options struct {
	ProductID     int64
	AccessToken   string
	CanReview     bool
	AverageRating *float64
	ReviewsCount  int
	UserReview    *model.Review

	// Guard and GuardKey make the submit guard span several panels, e.g. one
	// per request for the same viewer and product.
	Guard    *Guard
	GuardKey string
}

// Panel is the review panel of one product for one viewer. It is safe for
// concurrent use; list and form transitions are serialized.
type Panel struct {
	mu sync.Mutex

	api      commerce.Reviews
	validate validator.Validator
	opts     Options
	guard    *Guard
	guardKey string

	list       ListState
	page       int
	nextPage   *int
	totalCount int
	reviews    *pagination.Accumulator[model.Review, int64]
	err        error

	form      FormState
	prevForm  FormState
	editingID int64
	input     model.ReviewInput
}

func reviewID(r model.Review) int64 { return r.ID }

func NewPanel(api commerce.Reviews, v validator.Validator, opts Options) *Panel {
	p := &Panel{
		api:        api,
		validate:   v,
		opts:       opts,
		guard:      opts.Guard,
		guardKey:   opts.GuardKey,
		reviews:    pagination.NewAccumulator(reviewID),
		nextPage:   ptr.New(1),
		totalCount: opts.ReviewsCount,
		input:      model.DefaultReviewInput(),
	}
	if p.guard == nil {
		p.guard = NewGuard()
	}
	if p.guardKey == "" {
		p.guardKey = "product:" + strconv.FormatInt(opts.ProductID, 10)
	}
	if opts.UserReview != nil {
		p.input = opts.UserReview.InputFrom()
	}
	if p.canSubmit() {
		p.form = FormCreate
	}
	return p
}

func (p *Panel) authenticated() bool {
	return p.opts.AccessToken != ""
}

func (p *Panel) canSubmit() bool {
	return p.opts.CanReview && p.authenticated()
}

// Load fetches one page. Page 1 replaces the list; later pages add reviews
// not already shown.
func (p *Panel) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	p.mu.Lock()
	if p.list == ListLoading {
		p.mu.Unlock()
		return ErrBusy
	}
	p.list = ListLoading
	p.err = nil
	p.mu.Unlock()

	res, err := p.api.ListReviews(ctx, p.opts.AccessToken, p.opts.ProductID, page)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.list = ListError
		p.err = err
		return fmt.Errorf("load reviews page %d: %w", page, err)
	}

	p.reviews.MergePage(page, res.Items)
	p.page = page
	p.nextPage = res.NextPage
	p.totalCount = res.TotalCount
	p.list = ListLoaded
	return nil
}

// LoadMore fetches the next page, if any.
func (p *Panel) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	next := p.nextPage
	p.mu.Unlock()

	if next == nil {
		return nil
	}
	return p.Load(ctx, *next)
}

// LoadThrough loads pages from 1 up to last, stopping early when the API has
// no further page.
func (p *Panel) LoadThrough(ctx context.Context, last int) error {
	last = min(max(last, 1), MaxPages)

	if err := p.Load(ctx, 1); err != nil {
		return err
	}
	for {
		p.mu.Lock()
		next := p.nextPage
		p.mu.Unlock()

		if next == nil || *next > last || *next <= p.currentPage() {
			return nil
		}
		if err := p.Load(ctx, *next); err != nil {
			return err
		}
	}
}

func (p *Panel) currentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// OpenCreate shows an empty compose form.
func (p *Panel) OpenCreate() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.canSubmit() {
		return apperr.UnauthorizedErr
	}
	if p.form == FormSubmitting {
		return ErrBusy
	}
	p.form = FormCreate
	p.editingID = 0
	p.input = model.DefaultReviewInput()
	return nil
}

// OpenEdit shows the form pre-filled with the viewer's review id.
func (p *Panel) OpenEdit(id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.authenticated() {
		return apperr.UnauthorizedErr
	}
	if p.form == FormSubmitting {
		return ErrBusy
	}

	r, ok := p.reviews.Get(id)
	if !ok && p.opts.UserReview != nil && p.opts.UserReview.ID == id {
		r, ok = *p.opts.UserReview, true
		r.IsOwner = true
	}
	if !ok {
		return apperr.NotFoundErr
	}
	if !r.IsOwner {
		return ErrNotOwner
	}

	p.form = FormEdit
	p.editingID = id
	p.input = r.InputFrom()
	return nil
}

// Cancel hides the form and resets its input. The list is not touched.
func (p *Panel) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.form == FormSubmitting {
		return
	}
	p.form = FormHidden
	p.editingID = 0
	p.input = model.DefaultReviewInput()
	p.err = nil
}

// Submit sends the open form. The list changes only after the API accepts the
// review: a new review is put first, an edited one is replaced where it is.
// On failure the form stays open with in as its input.
func (p *Panel) Submit(ctx context.Context, in model.ReviewInput) (model.Review, error) {
	release, ok := p.guard.TryAcquire(p.guardKey)
	if !ok {
		return model.Review{}, ErrBusy
	}
	defer release()

	p.mu.Lock()
	mode, editingID := p.form, p.editingID
	switch {
	case mode == FormSubmitting:
		p.mu.Unlock()
		return model.Review{}, ErrBusy
	case mode == FormHidden:
		p.mu.Unlock()
		return model.Review{}, ErrFormClosed
	case !p.authenticated():
		p.mu.Unlock()
		return model.Review{}, apperr.UnauthorizedErr
	}
	p.input = in
	if err := p.validate.Validate(in); err != nil {
		p.err = apperr.ValidationErr.WrapParent(err)
		p.mu.Unlock()
		return model.Review{}, p.err
	}
	p.prevForm = mode
	p.form = FormSubmitting
	p.err = nil
	p.mu.Unlock()

	var (
		saved model.Review
		err   error
	)
	if mode == FormEdit {
		saved, err = p.api.UpdateReview(ctx, p.opts.AccessToken, editingID, in)
	} else {
		saved, err = p.api.CreateReview(ctx, p.opts.AccessToken, p.opts.ProductID, in)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.form = p.prevForm
		p.err = err
		return model.Review{}, fmt.Errorf("submit review: %w", err)
	}

	if mode == FormEdit {
		p.reviews.Update(saved)
	} else {
		p.reviews.Prepend(saved)
	}
	p.form = FormHidden
	p.editingID = 0
	p.input = model.DefaultReviewInput()
	return saved, nil
}

// Delete removes the viewer's review. Without confirmation nothing is sent.
func (p *Panel) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if !p.authenticated() {
		return apperr.UnauthorizedErr
	}

	release, ok := p.guard.TryAcquire(p.guardKey)
	if !ok {
		return ErrBusy
	}
	defer release()

	p.mu.Lock()
	if p.form == FormSubmitting {
		p.mu.Unlock()
		return ErrBusy
	}
	p.prevForm = p.form
	p.form = FormSubmitting
	p.err = nil
	p.mu.Unlock()

	err := p.api.DeleteReview(ctx, p.opts.AccessToken, id)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.form = p.prevForm
		p.err = err
		return fmt.Errorf("delete review: %w", err)
	}

	p.reviews.Remove(id)
	p.form = FormHidden
	p.editingID = 0
	return nil
}

// View is a snapshot of the panel for rendering.
type View struct {
	ProductID     int64
	List          ListState
	Reviews       []model.Review
	Page          int
	NextPage      *int
	TotalCount    int
	AverageRating *float64
	ReviewsCount  int
	Err           error

	Form      FormState
	EditingID int64
	Input     model.ReviewInput

	Authenticated bool
	CanReview     bool
}

func (v View) FormVisible() bool {
	return v.Form != FormHidden
}

// ShowTrigger reports whether the "write a review" button replaces the form.
func (v View) ShowTrigger() bool {
	return v.CanReview && v.Authenticated && v.Form == FormHidden
}

func (v View) ShowSignInHint() bool {
	return !v.Authenticated
}

func (v View) HasMore() bool {
	return v.NextPage != nil
}

func (v View) Editing() bool {
	return v.Form == FormEdit || (v.Form == FormSubmitting && v.EditingID != 0)
}

// ValidationFailed reports whether Err is a form validation error.
func (v View) ValidationFailed() bool {
	return errors.Is(v.Err, apperr.ValidationErr)
}

func (p *Panel) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	return View{
		ProductID:     p.opts.ProductID,
		List:          p.list,
		Reviews:       p.reviews.Items(),
		Page:          p.page,
		NextPage:      p.nextPage,
		TotalCount:    p.totalCount,
		AverageRating: p.opts.AverageRating,
		ReviewsCount:  p.opts.ReviewsCount,
		Err:           p.err,
		Form:          p.form,
		EditingID:     p.editingID,
		Input:         p.input,
		Authenticated: p.authenticated(),
		CanReview:     p.opts.CanReview,
	}
}
