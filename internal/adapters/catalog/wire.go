package catalog

import (
	"encoding/json"
	"strings"
)

// Number is a tolerant numeric wire field: it accepts JSON numbers, numeric
// strings, and null, and keeps the textual form so nothing is lost before the
// form layer decides how to parse it. Anything unreadable becomes the empty
// string rather than an unmarshal error.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*n = ""
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*n = ""
			return nil
		}
		*n = Number(strings.TrimSpace(str))
		return nil
	}
	*n = Number(s)
	return nil
}

func (n Number) String() string { return string(n) }

// PriceDoc is the nested price object the backend attaches to each storage
// tier. The same field names also appear flat on tiers in outbound payloads,
// which is why StorageDoc embeds it as a fallback.
type PriceDoc struct {
	RegularPrice    Number `json:"regularPrice"`
	DiscountPrice   Number `json:"discountPrice"`
	DiscountPercent Number `json:"discountPercent"`
	CampaignPrice   Number `json:"campaignPrice"`
	CampaignStart   string `json:"campaignStart"`
	CampaignEnd     string `json:"campaignEnd"`
	StockQuantity   Number `json:"stockQuantity"`
	LowStockAlert   Number `json:"lowStockAlert"`
}

type StorageDoc struct {
	ID           string    `json:"id"`
	StorageSize  string    `json:"storageSize"`
	DisplayOrder int       `json:"displayOrder"`
	Price        *PriceDoc `json:"price"`
	PriceDoc
}

type ColorDoc struct {
	ID                  string       `json:"id"`
	ColorName           string       `json:"colorName"`
	ColorImage          string       `json:"colorImage"`
	DisplayOrder        int          `json:"displayOrder"`
	HasStorage          bool         `json:"hasStorage"`
	UseDefaultStorages  bool         `json:"useDefaultStorages"`
	Storages            []StorageDoc `json:"storages"`
	SinglePrice         Number       `json:"singlePrice"`
	SingleComparePrice  Number       `json:"singleComparePrice"`
	SingleStockQuantity Number       `json:"singleStockQuantity"`
	ColorImageIndex     *int         `json:"colorImageIndex"` // payload-only, ignored on hydration
}

type AxisDoc struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	IsDefault          bool         `json:"isDefault"`
	DisplayOrder       int          `json:"displayOrder"`
	HasDefaultStorages bool         `json:"hasDefaultStorages"`
	DefaultStorages    []StorageDoc `json:"defaultStorages"`
	Colors             []ColorDoc   `json:"colors"`
}

type ImageDoc struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	ImageURL    string `json:"imageUrl"`
	AltText     string `json:"altText"`
	IsThumbnail bool   `json:"isThumbnail"`
}

type SpecDoc struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ProductDoc is the backend product document fetched when an edit or view
// session opens.
type ProductDoc struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	SKU              string `json:"sku"`
	ProductCode      string `json:"productCode"`
	Description      string `json:"description"`
	ShortDescription string `json:"shortDescription"`
	Warranty         string `json:"warranty"`

	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`

	IsActive     bool `json:"isActive"`
	IsOnline     bool `json:"isOnline"`
	IsPos        bool `json:"isPos"`
	IsPreOrder   bool `json:"isPreOrder"`
	IsOfficial   bool `json:"isOfficial"`
	FreeShipping bool `json:"freeShipping"`
	IsEmi        bool `json:"isEmi"`

	RewardPoints    Number `json:"rewardPoints"`
	MinBookingPrice Number `json:"minBookingPrice"`

	SeoTitle       string   `json:"seoTitle"`
	SeoDescription string   `json:"seoDescription"`
	SeoKeywords    []string `json:"seoKeywords"`
	CanonicalURL   string   `json:"canonicalUrl"`

	Tags           []string   `json:"tags"`
	Specifications []SpecDoc  `json:"specifications"`
	Videos         []string   `json:"videos"`
	Images         []ImageDoc `json:"images"`

	ProductType string     `json:"productType"`
	Colors      []ColorDoc `json:"colors"`
	Networks    []AxisDoc  `json:"networks"`
	Regions     []AxisDoc  `json:"regions"`
}
