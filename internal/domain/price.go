package domain

import (
	"math"
	"strconv"
	"strings"
)

// PriceRecord is the string-valued editing form of one price quotation. Fields
// hold whatever the text inputs hold; parsing happens on read, and a value
// that does not parse contributes zero.
type PriceRecord struct {
	RegularPrice    string `json:"regularPrice"`
	DiscountPrice   string `json:"discountPrice"`
	DiscountPercent string `json:"discountPercent"`
	CampaignPrice   string `json:"campaignPrice,omitempty"`
	CampaignStart   string `json:"campaignStart,omitempty"`
	CampaignEnd     string `json:"campaignEnd,omitempty"`
	StockQuantity   string `json:"stockQuantity"`
	LowStockAlert   string `json:"lowStockAlert"`
}

// ParseAmount reads a form price field as a non-negative amount; malformed or
// negative input yields 0.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseCount reads a form quantity field as a non-negative integer; malformed
// or negative input yields 0.
func ParseCount(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SetRegularPrice stores a new regular price and re-derives the discount
// price from the current percentage, which stays authoritative.
func (pr *PriceRecord) SetRegularPrice(v string) {
	pr.RegularPrice = v
	regular := ParseAmount(v)
	percent := ParseCount(pr.DiscountPercent)
	pr.DiscountPrice = formatAmount(DeriveDiscountPrice(regular, percent))
}

// SetDiscountPrice stores a new discount price and re-derives the percentage;
// the typed price becomes authoritative.
func (pr *PriceRecord) SetDiscountPrice(v string) {
	pr.DiscountPrice = v
	regular := ParseAmount(pr.RegularPrice)
	pr.DiscountPercent = strconv.Itoa(DeriveDiscountPercent(regular, ParseAmount(v)))
}

// SetDiscountPercent stores a new percentage and re-derives the discount
// price; the typed percentage becomes authoritative.
func (pr *PriceRecord) SetDiscountPercent(v string) {
	pr.DiscountPercent = v
	regular := ParseAmount(pr.RegularPrice)
	pr.DiscountPrice = formatAmount(DeriveDiscountPrice(regular, ParseCount(v)))
}

// ReconciledDiscountPrice returns the discount price to persist: the stored
// value when it agrees with the derived one within one unit, otherwise the
// derived value. The record itself is left untouched.
func (pr *PriceRecord) ReconciledDiscountPrice() float64 {
	regular := ParseAmount(pr.RegularPrice)
	stored := ParseAmount(pr.DiscountPrice)
	derived := DeriveDiscountPrice(regular, ParseCount(pr.DiscountPercent))
	if math.Abs(stored-derived) <= 1 {
		return stored
	}
	return derived
}

// AlertThreshold returns the low-stock threshold, defaulting when the field
// is empty or malformed.
func (pr *PriceRecord) AlertThreshold() int {
	if strings.TrimSpace(pr.LowStockAlert) == "" {
		return DefaultLowStockAlert
	}
	return ParseCount(pr.LowStockAlert)
}

// Status classifies the record's stock quantity.
func (pr *PriceRecord) Status() StockStatus {
	return ClassifyStock(ParseCount(pr.StockQuantity), pr.AlertThreshold())
}

// SetField routes a named form-field edit; price-triad fields go through the
// derivation setters so the triad stays consistent. Returns false for an
// unknown field.
func (pr *PriceRecord) SetField(field, value string) bool {
	switch field {
	case "regularPrice":
		pr.SetRegularPrice(value)
	case "discountPrice":
		pr.SetDiscountPrice(value)
	case "discountPercent":
		pr.SetDiscountPercent(value)
	case "campaignPrice":
		pr.CampaignPrice = value
	case "campaignStart":
		pr.CampaignStart = value
	case "campaignEnd":
		pr.CampaignEnd = value
	case "stockQuantity":
		pr.StockQuantity = value
	case "lowStockAlert":
		pr.LowStockAlert = value
	default:
		return false
	}
	return true
}
