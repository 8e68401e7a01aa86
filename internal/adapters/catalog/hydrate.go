package catalog

import (
	"sort"
	"strings"

	"github.com/phenrril/newmobile/internal/domain"
)

// Hydrate converts a backend product document into the string-valued editable
// tree. It is total: missing fields become empty strings, empty lists, or
// false, and only the list matching the shape discriminant is populated.
func Hydrate(doc *ProductDoc) *domain.Product {
	p := &domain.Product{
		ID:               domain.PersistedID(doc.ID),
		Name:             doc.Name,
		Slug:             doc.Slug,
		SKU:              doc.SKU,
		ProductCode:      doc.ProductCode,
		Description:      doc.Description,
		ShortDescription: doc.ShortDescription,
		Warranty:         doc.Warranty,
		CategoryIDs:      orEmpty(doc.Categories),
		BrandIDs:         orEmpty(doc.Brands),
		IsActive:         doc.IsActive,
		IsOnline:         doc.IsOnline,
		IsPos:            doc.IsPos,
		IsPreOrder:       doc.IsPreOrder,
		IsOfficial:       doc.IsOfficial,
		FreeShipping:     doc.FreeShipping,
		IsEmi:            doc.IsEmi,
		RewardPoints:     doc.RewardPoints.String(),
		MinBookingPrice:  doc.MinBookingPrice.String(),
		SEO: domain.SEO{
			Title:        doc.SeoTitle,
			Description:  doc.SeoDescription,
			Keywords:     joinList(doc.SeoKeywords),
			CanonicalURL: doc.CanonicalURL,
		},
		Tags:           joinList(doc.Tags),
		Specifications: hydrateSpecs(doc.Specifications),
		Videos:         orEmpty(doc.Videos),
		Gallery:        []domain.GalleryImage{},
		Type:           domain.ParseProductType(doc.ProductType),
		Colors:         []domain.ColorVariant{},
		Networks:       []domain.Axis{},
		Regions:        []domain.Axis{},
	}

	// The backend keeps the thumbnail on the flat image list behind a flag.
	for _, img := range doc.Images {
		url := img.ImageURL
		if url == "" {
			url = img.URL
		}
		entry := domain.GalleryImage{ID: domain.PersistedID(img.ID), URL: url, AltText: img.AltText}
		if img.IsThumbnail && p.Thumbnail.URL == "" {
			p.Thumbnail = entry
			continue
		}
		p.Gallery = append(p.Gallery, entry)
	}

	switch p.Type {
	case domain.ProductBasic:
		p.Colors = hydrateColors(doc.Colors)
	case domain.ProductNetwork:
		p.Networks = hydrateAxes(doc.Networks, domain.AxisNetwork)
	case domain.ProductRegion:
		p.Regions = hydrateAxes(doc.Regions, domain.AxisRegion)
	}

	return p
}

func hydrateID(raw, prefix string) domain.ID {
	if strings.TrimSpace(raw) != "" {
		return domain.PersistedID(raw)
	}
	return domain.NewLocalID(prefix)
}

func hydrateAxes(docs []AxisDoc, kind domain.AxisKind) []domain.Axis {
	prefix := domain.PrefixNetwork
	if kind == domain.AxisRegion {
		prefix = domain.PrefixRegion
	}
	axes := make([]domain.Axis, 0, len(docs))
	for _, d := range docs {
		a := domain.Axis{
			ID:                 hydrateID(d.ID, prefix),
			Kind:               kind,
			Name:               d.Name,
			IsDefault:          d.IsDefault,
			DisplayOrder:       d.DisplayOrder,
			HasDefaultStorages: d.HasDefaultStorages || kind == domain.AxisRegion,
			DefaultStorages:    hydrateStorages(d.DefaultStorages, domain.PrefixDefaultStorage),
			Colors:             hydrateColors(d.Colors),
		}
		axes = append(axes, a)
	}
	sortAxes(axes)
	return axes
}

func hydrateColors(docs []ColorDoc) []domain.ColorVariant {
	colors := make([]domain.ColorVariant, 0, len(docs))
	for _, d := range docs {
		colors = append(colors, domain.ColorVariant{
			ID:                  hydrateID(d.ID, domain.PrefixColor),
			ColorName:           d.ColorName,
			ColorImage:          d.ColorImage,
			DisplayOrder:        d.DisplayOrder,
			HasStorage:          d.HasStorage,
			UseDefaultStorages:  d.UseDefaultStorages,
			Storages:            hydrateStorages(d.Storages, domain.PrefixStorage),
			SinglePrice:         d.SinglePrice.String(),
			SingleComparePrice:  d.SingleComparePrice.String(),
			SingleStockQuantity: d.SingleStockQuantity.String(),
		})
	}
	sortColors(colors)
	return colors
}

func hydrateStorages(docs []StorageDoc, prefix string) []domain.StorageTier {
	tiers := make([]domain.StorageTier, 0, len(docs))
	for _, d := range docs {
		price := d.Price
		if price == nil {
			// Payload-shaped documents carry the price fields flat on the tier.
			price = &d.PriceDoc
		}
		alert := price.LowStockAlert.String()
		if alert == "" {
			alert = "5"
		}
		tiers = append(tiers, domain.StorageTier{
			ID:           hydrateID(d.ID, prefix),
			StorageSize:  d.StorageSize,
			DisplayOrder: d.DisplayOrder,
			PriceRecord: domain.PriceRecord{
				RegularPrice:    price.RegularPrice.String(),
				DiscountPrice:   price.DiscountPrice.String(),
				DiscountPercent: price.DiscountPercent.String(),
				CampaignPrice:   price.CampaignPrice.String(),
				CampaignStart:   price.CampaignStart,
				CampaignEnd:     price.CampaignEnd,
				StockQuantity:   price.StockQuantity.String(),
				LowStockAlert:   alert,
			},
		})
	}
	sortStorages(tiers)
	return tiers
}

func hydrateSpecs(docs []SpecDoc) []domain.SpecPair {
	specs := make([]domain.SpecPair, 0, len(docs))
	for _, d := range docs {
		specs = append(specs, domain.SpecPair{Key: d.Key, Value: d.Value})
	}
	return specs
}

// Sibling lists come back ordered by displayOrder and are renumbered so the
// values are contiguous regardless of what the backend stored.

func sortAxes(list []domain.Axis) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].DisplayOrder < list[j].DisplayOrder })
	for i := range list {
		list[i].DisplayOrder = i
	}
}

func sortColors(list []domain.ColorVariant) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].DisplayOrder < list[j].DisplayOrder })
	for i := range list {
		list[i].DisplayOrder = i
	}
}

func sortStorages(list []domain.StorageTier) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].DisplayOrder < list[j].DisplayOrder })
	for i := range list {
		list[i].DisplayOrder = i
	}
}

func joinList(list []string) string {
	return strings.Join(list, ", ")
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
