package commerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tuanvumaihuynh/shopster-web/internal/apperr"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
)

// Reviews lists and mutates product reviews. token may be empty for listing;
// when set, the API marks the viewer's own reviews with is_owner.
type Reviews interface {
	ListReviews(ctx context.Context, token string, productID int64, page int) (model.ReviewPage, error)
	CreateReview(ctx context.Context, token string, productID int64, in model.ReviewInput) (model.Review, error)
	UpdateReview(ctx context.Context, token string, reviewID int64, in model.ReviewInput) (model.Review, error)
	DeleteReview(ctx context.Context, token string, reviewID int64) error
}

type createReviewBody struct {
	ProductID int64 `json:"product_id"`
	model.ReviewInput
}

func (c *Client) ListReviews(ctx context.Context, token string, productID int64, page int) (model.ReviewPage, error) {
	if page < 1 {
		page = 1
	}

	body, err := c.doRaw(ctx, request{
		op:     "ListReviews",
		method: http.MethodGet,
		path:   "/api/reviews/",
		query: url.Values{
			"product": {strconv.FormatInt(productID, 10)},
			"page":    {strconv.Itoa(page)},
		},
		token: token,
	})
	if err != nil {
		return model.ReviewPage{}, fmt.Errorf("list reviews: %w", err)
	}

	list, err := decodeList[model.Review](body, c.baseURL)
	if err != nil {
		return model.ReviewPage{}, apperr.UpstreamErr.WrapParent(fmt.Errorf("list reviews: %w", err))
	}

	return model.ReviewPage{
		Items:      list.items,
		NextPage:   list.next,
		TotalCount: list.totalCount,
	}, nil
}

func (c *Client) CreateReview(ctx context.Context, token string, productID int64, in model.ReviewInput) (model.Review, error) {
	var review model.Review
	if err := c.doJSON(ctx, request{
		op:     "CreateReview",
		method: http.MethodPost,
		path:   "/api/reviews/",
		body:   createReviewBody{ProductID: productID, ReviewInput: in},
		token:  token,
	}, &review); err != nil {
		return model.Review{}, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (c *Client) UpdateReview(ctx context.Context, token string, reviewID int64, in model.ReviewInput) (model.Review, error) {
	var review model.Review
	if err := c.doJSON(ctx, request{
		op:     "UpdateReview",
		method: http.MethodPatch,
		path:   "/api/reviews/" + strconv.FormatInt(reviewID, 10) + "/",
		body:   in,
		token:  token,
	}, &review); err != nil {
		return model.Review{}, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (c *Client) DeleteReview(ctx context.Context, token string, reviewID int64) error {
	if err := c.doJSON(ctx, request{
		op:     "DeleteReview",
		method: http.MethodDelete,
		path:   "/api/reviews/" + strconv.FormatInt(reviewID, 10) + "/",
		token:  token,
	}, nil); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}
