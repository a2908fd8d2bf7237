package model

import "time"

type Category struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

type ProductImage struct {
	ID      int64  `json:"id"`
	Image   string `json:"image"`
	AltText string `json:"alt_text"`
	IsMain  bool   `json:"is_main"`
}

// Product is the catalog view of a product. Price is kept as the decimal
// string the commerce API sends.
type Product struct {
	ID               int64          `json:"id"`
	Slug             string         `json:"slug"`
	Sku              string         `json:"sku"`
	Name             string         `json:"name"`
	ShortDescription string         `json:"short_description"`
	Description      string         `json:"description"`
	MetaTitle        string         `json:"meta_title"`
	MetaDescription  string         `json:"meta_description"`
	MetaKeywords     string         `json:"meta_keywords"`
	Price            string         `json:"price"`
	Currency         string         `json:"currency"`
	Stock            int            `json:"stock"`
	Category         *Category      `json:"category"`
	Images           []ProductImage `json:"images"`
	CreatedAt        *time.Time     `json:"created_at,omitempty"`
	UpdatedAt        *time.Time     `json:"updated_at,omitempty"`

	AverageRating *float64 `json:"average_rating,omitempty"`
	ReviewsCount  int      `json:"reviews_count,omitempty"`
	CanReview     bool     `json:"can_review,omitempty"`
	UserReview    *Review  `json:"user_review,omitempty"`
}

// MainImage returns the image flagged as main, else the first one.
func (p Product) MainImage() (ProductImage, bool) {
	for _, img := range p.Images {
		if img.IsMain {
			return img, true
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0], true
	}
	return ProductImage{}, false
}

// ProductPage is one page of the product list.
type ProductPage struct {
	Items        []Product
	NextPage     *int
	PreviousPage *int
	TotalCount   int
}

// HasMore reports whether another page can be requested.
func (p ProductPage) HasMore() bool {
	return p.NextPage != nil
}
