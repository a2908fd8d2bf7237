package event

import "time"

type Type string

const (
	TypeProductViewed   Type = "storefront.product_viewed"
	TypeSearchPerformed Type = "storefront.search_performed"
)

// Event is the envelope written to the events topic.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	// SessionID is empty for anonymous visitors.
	SessionID string `json:"session_id,omitempty"`
	Payload   any    `json:"payload"`
}

type ProductViewed struct {
	ProductID int64  `json:"product_id"`
	Slug      string `json:"slug"`
}

type SearchPerformed struct {
	Query     string `json:"query"`
	Category  string `json:"category,omitempty"`
	TotalHits int    `json:"total_hits"`
}
