package models

// MerchantStats is the aggregate dashboard view for one merchant.
type MerchantStats struct {
	TotalProducts    int64            `json:"total_products"`
	ActiveProducts   int64            `json:"active_products"`
	ActiveCodes      int64            `json:"active_codes"`
	TotalRedemptions int64            `json:"total_redemptions"`
	OrdersByStatus   map[string]int64 `json:"orders_by_status"`
	DeliveredRevenue float64          `json:"delivered_revenue"`
}
