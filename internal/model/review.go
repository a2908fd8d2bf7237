package model

import (
	"fmt"
	"time"
)

type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

func (s ModerationStatus) Validate() error {
	switch s {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return nil
	default:
		return fmt.Errorf("unknown moderation status %q", string(s))
	}
}

type ReviewAuthor struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type Review struct {
	ID               int64            `json:"id"`
	Rating           int              `json:"rating"`
	Title            string           `json:"title"`
	Body             string           `json:"body"`
	User             ReviewAuthor     `json:"user"`
	ModerationStatus ModerationStatus `json:"moderation_status"`
	VerifiedPurchase bool             `json:"verified_purchase"`
	CreatedAt        time.Time        `json:"created_at"`
	IsOwner          bool             `json:"is_owner"`
}

// ReviewPage is one page of a product's reviews.
type ReviewPage struct {
	Items      []Review
	NextPage   *int
	TotalCount int
}

// ReviewInput is the editable part of a review.
type ReviewInput struct {
	Rating int    `json:"rating" form:"rating" validate:"gte=1,lte=5"`
	Title  string `json:"title" form:"title" validate:"max=120"`
	Body   string `json:"body" form:"body" validate:"notblank"`
}

// DefaultReviewInput is the state of an empty compose form.
func DefaultReviewInput() ReviewInput {
	return ReviewInput{Rating: 5}
}

// InputFrom pre-fills the edit form with r.
func (r Review) InputFrom() ReviewInput {
	return ReviewInput{Rating: r.Rating, Title: r.Title, Body: r.Body}
}
