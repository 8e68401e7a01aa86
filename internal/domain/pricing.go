package domain

import "math"

type StockStatus string

const (
	StockOut StockStatus = "out_of_stock"
	StockLow StockStatus = "low_stock"
	StockIn  StockStatus = "in_stock"
)

// DefaultLowStockAlert applies when a record carries no explicit threshold.
const DefaultLowStockAlert = 5

// DeriveDiscountPrice computes the discounted price from a regular price and a
// percentage, clamped to [0, regular].
func DeriveDiscountPrice(regular float64, percent int) float64 {
	if regular <= 0 {
		return 0
	}
	price := math.Round(regular * (1 - float64(percent)/100))
	if price < 0 {
		return 0
	}
	if price > regular {
		return regular
	}
	return price
}

// DeriveDiscountPercent computes the discount percentage from a regular price
// and a discounted price, clamped to [0, 100].
func DeriveDiscountPercent(regular, price float64) int {
	if regular <= 0 {
		return 0
	}
	percent := int(math.Round((regular - price) / regular * 100))
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// ClassifyStock maps a quantity to a stock status. A non-positive alert
// threshold falls back to DefaultLowStockAlert.
func ClassifyStock(quantity, lowStockAlert int) StockStatus {
	if lowStockAlert <= 0 {
		lowStockAlert = DefaultLowStockAlert
	}
	switch {
	case quantity <= 0:
		return StockOut
	case quantity <= lowStockAlert:
		return StockLow
	default:
		return StockIn
	}
}
