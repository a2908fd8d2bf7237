package model

type CurrencyBreakdown struct {
	Currency    string `json:"currency"`
	TotalSales  string `json:"total_sales"`
	TotalOrders int    `json:"total_orders"`
}

type TopProduct struct {
	ProductID     *int64 `json:"product_id"`
	ProductName   string `json:"product_name"`
	TotalQuantity int    `json:"total_quantity"`
	TotalSales    string `json:"total_sales"`
}

type StatsOverview struct {
	TotalOrders       int                 `json:"total_orders"`
	GrossRevenue      string              `json:"gross_revenue"`
	CurrencyBreakdown []CurrencyBreakdown `json:"currency_breakdown"`
	TopProducts       []TopProduct        `json:"top_products"`
}

// StatsRange bounds the statistics window. Dates are YYYY-MM-DD; empty means open.
type StatsRange struct {
	DateFrom string `form:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" validate:"omitempty,datetime=2006-01-02"`
}
