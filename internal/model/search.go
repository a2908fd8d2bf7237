package model

// SearchHit is a product record as stored in the search index.
type SearchHit struct {
	ObjectID         string  `json:"objectID"`
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	Sku              string  `json:"sku"`
	ShortDescription string  `json:"short_description"`
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
	Stock            int     `json:"stock"`
	Category         string  `json:"category"`
	CategorySlug     string  `json:"category_slug"`
	ImageURL         string  `json:"image_url"`
}

// Facet is one value of a facet with its hit count.
type Facet struct {
	Value string
	Count int
}
