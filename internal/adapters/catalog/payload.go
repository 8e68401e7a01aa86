package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/phenrril/newmobile/internal/domain"
)

// Outbound payload shapes. Ids are emitted only for persisted rows; a missing
// id tells the backend to create the row.

type storagePayload struct {
	ID              string   `json:"id,omitempty"`
	StorageSize     string   `json:"storageSize"`
	DisplayOrder    int      `json:"displayOrder"`
	RegularPrice    float64  `json:"regularPrice"`
	DiscountPrice   float64  `json:"discountPrice"`
	DiscountPercent int      `json:"discountPercent"`
	CampaignPrice   *float64 `json:"campaignPrice,omitempty"`
	CampaignStart   string   `json:"campaignStart,omitempty"`
	CampaignEnd     string   `json:"campaignEnd,omitempty"`
	StockQuantity   int      `json:"stockQuantity"`
	LowStockAlert   int      `json:"lowStockAlert"`
}

type colorPayload struct {
	ID                  string           `json:"id,omitempty"`
	ColorName           string           `json:"colorName"`
	ColorImage          string           `json:"colorImage,omitempty"`
	ColorImageIndex     *int             `json:"colorImageIndex,omitempty"`
	DisplayOrder        int              `json:"displayOrder"`
	HasStorage          bool             `json:"hasStorage,omitempty"`
	UseDefaultStorages  bool             `json:"useDefaultStorages,omitempty"`
	Storages            []storagePayload `json:"storages,omitempty"`
	SinglePrice         *float64         `json:"singlePrice,omitempty"`
	SingleComparePrice  *float64         `json:"singleComparePrice,omitempty"`
	SingleStockQuantity *int             `json:"singleStockQuantity,omitempty"`
}

type axisPayload struct {
	ID                 string           `json:"id,omitempty"`
	Name               string           `json:"name"`
	IsDefault          bool             `json:"isDefault"`
	DisplayOrder       int              `json:"displayOrder"`
	HasDefaultStorages bool             `json:"hasDefaultStorages,omitempty"`
	DefaultStorages    []storagePayload `json:"defaultStorages,omitempty"`
	Colors             []colorPayload   `json:"colors,omitempty"`
}

type imagePayload struct {
	ID          string `json:"id,omitempty"`
	URL         string `json:"url"`
	AltText     string `json:"altText,omitempty"`
	IsThumbnail bool   `json:"isThumbnail,omitempty"`
}

type productPayload struct {
	ID               string `json:"id,omitempty"`
	Name             string `json:"name,omitempty"`
	Slug             string `json:"slug,omitempty"`
	SKU              string `json:"sku,omitempty"`
	ProductCode      string `json:"productCode,omitempty"`
	Description      string `json:"description,omitempty"`
	ShortDescription string `json:"shortDescription,omitempty"`
	Warranty         string `json:"warranty,omitempty"`

	Categories []string `json:"categories,omitempty"`
	Brands     []string `json:"brands,omitempty"`

	IsActive     bool `json:"isActive,omitempty"`
	IsOnline     bool `json:"isOnline,omitempty"`
	IsPos        bool `json:"isPos,omitempty"`
	IsPreOrder   bool `json:"isPreOrder,omitempty"`
	IsOfficial   bool `json:"isOfficial,omitempty"`
	FreeShipping bool `json:"freeShipping,omitempty"`
	IsEmi        bool `json:"isEmi,omitempty"`

	RewardPoints    *float64 `json:"rewardPoints,omitempty"`
	MinBookingPrice *float64 `json:"minBookingPrice,omitempty"`

	SeoTitle       string   `json:"seoTitle,omitempty"`
	SeoDescription string   `json:"seoDescription,omitempty"`
	SeoKeywords    []string `json:"seoKeywords,omitempty"`
	CanonicalURL   string   `json:"canonicalUrl,omitempty"`

	Tags           []string       `json:"tags,omitempty"`
	Specifications []SpecDoc      `json:"specifications,omitempty"`
	Videos         []string       `json:"videos,omitempty"`
	Images         []imagePayload `json:"images,omitempty"`

	ProductType string         `json:"productType"`
	Colors      []colorPayload `json:"colors,omitempty"`
	Networks    []axisPayload  `json:"networks,omitempty"`
	Regions     []axisPayload  `json:"regions,omitempty"`
}

// BuildSubmission validates the tree and produces the two-part submission:
// the JSON document and the ordered attachment list. The source tree is read,
// never mutated, so a failed or rejected submit leaves the session intact.
func BuildSubmission(p *domain.Product) (*domain.Submission, error) {
	if errs := domain.Validate(p); len(errs) > 0 {
		return nil, errs
	}

	doc := productPayload{
		Name:             p.Name,
		Slug:             p.Slug,
		SKU:              p.SKU,
		ProductCode:      p.ProductCode,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Warranty:         p.Warranty,
		Categories:       p.CategoryIDs,
		Brands:           p.BrandIDs,
		IsActive:         p.IsActive,
		IsOnline:         p.IsOnline,
		IsPos:            p.IsPos,
		IsPreOrder:       p.IsPreOrder,
		IsOfficial:       p.IsOfficial,
		FreeShipping:     p.FreeShipping,
		IsEmi:            p.IsEmi,
		RewardPoints:     optionalAmount(p.RewardPoints),
		MinBookingPrice:  optionalAmount(p.MinBookingPrice),
		SeoTitle:         p.SEO.Title,
		SeoDescription:   p.SEO.Description,
		SeoKeywords:      splitList(p.SEO.Keywords),
		CanonicalURL:     p.SEO.CanonicalURL,
		Tags:             splitList(p.Tags),
		Videos:           p.Videos,
		ProductType:      string(p.Type),
	}
	if wireID, ok := p.ID.Wire(); ok {
		doc.ID = wireID
	}
	for _, s := range p.Specifications {
		doc.Specifications = append(doc.Specifications, SpecDoc{Key: s.Key, Value: s.Value})
	}
	if p.Thumbnail.URL != "" {
		doc.Images = append(doc.Images, buildImage(p.Thumbnail, true))
	}
	for _, g := range p.Gallery {
		doc.Images = append(doc.Images, buildImage(g, false))
	}

	var files []domain.Attachment
	switch p.Type {
	case domain.ProductBasic:
		doc.Colors, files = buildColors(p.BasicColors(), &files)
	case domain.ProductNetwork:
		doc.Networks, files = buildAxes(p.NetworkAxes())
	case domain.ProductRegion:
		doc.Regions, files = buildAxes(p.RegionAxes())
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return &domain.Submission{
		ProductID: p.ID,
		Type:      p.Type,
		Document:  data,
		Files:     files,
	}, nil
}

// buildAxes walks axes and their colors in display order, appending pending
// image files to one shared attachment list. Each color with a pending file
// records the attachment's position as its colorImageIndex.
func buildAxes(axes []domain.Axis) ([]axisPayload, []domain.Attachment) {
	var files []domain.Attachment
	ordered := sortedAxes(axes)
	out := make([]axisPayload, 0, len(ordered))
	for _, a := range ordered {
		ap := axisPayload{
			Name:               a.Name,
			IsDefault:          a.IsDefault,
			DisplayOrder:       a.DisplayOrder,
			HasDefaultStorages: a.HasDefaultStorages,
		}
		if wireID, ok := a.ID.Wire(); ok {
			ap.ID = wireID
		}
		if a.HasDefaultStorages {
			ap.DefaultStorages = buildStorages(a.DefaultStorages)
		}
		ap.Colors, files = buildColors(a.Colors, &files)
		out = append(out, ap)
	}
	return out, files
}

// buildColors serializes a color list in display order. files is shared so
// attachment positions stay global across axes.
func buildColors(colors []domain.ColorVariant, files *[]domain.Attachment) ([]colorPayload, []domain.Attachment) {
	ordered := sortedColors(colors)
	out := make([]colorPayload, 0, len(ordered))
	for _, c := range ordered {
		cp := colorPayload{
			ColorName:          c.ColorName,
			ColorImage:         c.ColorImage,
			DisplayOrder:       c.DisplayOrder,
			HasStorage:         c.HasStorage,
			UseDefaultStorages: c.UseDefaultStorages,
		}
		if wireID, ok := c.ID.Wire(); ok {
			cp.ID = wireID
		}
		if strings.HasPrefix(cp.ColorImage, "data:") {
			// Local previews never travel in the JSON document.
			cp.ColorImage = ""
		}
		if c.PendingImage != nil {
			idx := len(*files)
			cp.ColorImageIndex = &idx
			*files = append(*files, domain.Attachment{
				Name:        c.PendingImage.Name,
				ContentType: c.PendingImage.ContentType,
				Data:        c.PendingImage.Data,
			})
		}
		switch {
		case !c.HasStorage:
			// Flat-priced: numeric fields, no storages key at all.
			cp.SinglePrice = amountPtr(domain.ParseAmount(c.SinglePrice))
			cp.SingleComparePrice = amountPtr(domain.ParseAmount(c.SingleComparePrice))
			cp.SingleStockQuantity = countPtr(domain.ParseCount(c.SingleStockQuantity))
		case c.UseDefaultStorages:
			// The backend resolves pricing from the axis defaults by size label.
		default:
			cp.Storages = buildStorages(c.Storages)
		}
		out = append(out, cp)
	}
	return out, *files
}

func buildStorages(tiers []domain.StorageTier) []storagePayload {
	ordered := sortedStorages(tiers)
	out := make([]storagePayload, 0, len(ordered))
	for i := range ordered {
		t := &ordered[i]
		sp := storagePayload{
			StorageSize:     t.StorageSize,
			DisplayOrder:    t.DisplayOrder,
			RegularPrice:    domain.ParseAmount(t.RegularPrice),
			DiscountPrice:   t.ReconciledDiscountPrice(),
			DiscountPercent: clampPercent(domain.ParseCount(t.DiscountPercent)),
			CampaignPrice:   optionalAmount(t.CampaignPrice),
			CampaignStart:   t.CampaignStart,
			CampaignEnd:     t.CampaignEnd,
			StockQuantity:   domain.ParseCount(t.StockQuantity),
			LowStockAlert:   t.AlertThreshold(),
		}
		if wireID, ok := t.ID.Wire(); ok {
			sp.ID = wireID
		}
		out = append(out, sp)
	}
	return out
}

func buildImage(g domain.GalleryImage, thumbnail bool) imagePayload {
	ip := imagePayload{URL: g.URL, AltText: g.AltText, IsThumbnail: thumbnail}
	if wireID, ok := g.ID.Wire(); ok {
		ip.ID = wireID
	}
	return ip
}

// The sorted* helpers copy before sorting so serialization never reorders the
// live tree.

func sortedAxes(list []domain.Axis) []domain.Axis {
	out := make([]domain.Axis, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out
}

func sortedColors(list []domain.ColorVariant) []domain.ColorVariant {
	out := make([]domain.ColorVariant, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out
}

func sortedStorages(list []domain.StorageTier) []domain.StorageTier {
	out := make([]domain.StorageTier, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out
}

func clampPercent(v int) int {
	if v > 100 {
		return 100
	}
	return v
}

func optionalAmount(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return amountPtr(domain.ParseAmount(s))
}

func amountPtr(v float64) *float64 { return &v }
func countPtr(v int) *int          { return &v }
