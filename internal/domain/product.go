package domain

import (
	"strconv"
	"strings"
)

// ProductType is the shape discriminant: exactly one of the three variant
// lists is populated, and the type is fixed for the lifetime of an edit
// session.
type ProductType string

const (
	ProductBasic   ProductType = "basic"
	ProductNetwork ProductType = "network"
	ProductRegion  ProductType = "region"
)

// ParseProductType lower-cases and matches the discriminant; anything
// unrecognized falls back to basic.
func ParseProductType(s string) ProductType {
	switch ProductType(strings.ToLower(strings.TrimSpace(s))) {
	case ProductNetwork:
		return ProductNetwork
	case ProductRegion:
		return ProductRegion
	default:
		return ProductBasic
	}
}

type SEO struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Keywords     string `json:"keywords"` // comma-separated in the form
	CanonicalURL string `json:"canonicalUrl"`
}

type SpecPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type GalleryImage struct {
	ID      ID     `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// Product is the editable aggregate for one edit session. All numeric fields
// are strings because they bind to text inputs; parsing happens at
// serialization.
type Product struct {
	ID               ID     `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	SlugEdited       bool   `json:"slugEdited"`
	SKU              string `json:"sku"`
	ProductCode      string `json:"productCode"`
	Description      string `json:"description"`
	ShortDescription string `json:"shortDescription"`
	Warranty         string `json:"warranty"`

	CategoryIDs []string `json:"categoryIds"`
	BrandIDs    []string `json:"brandIds"`

	IsActive     bool `json:"isActive"`
	IsOnline     bool `json:"isOnline"`
	IsPos        bool `json:"isPos"`
	IsPreOrder   bool `json:"isPreOrder"`
	IsOfficial   bool `json:"isOfficial"`
	FreeShipping bool `json:"freeShipping"`
	IsEmi        bool `json:"isEmi"`

	RewardPoints    string `json:"rewardPoints"`
	MinBookingPrice string `json:"minBookingPrice"`

	SEO            SEO            `json:"seo"`
	Tags           string         `json:"tags"` // comma-separated in the form
	Specifications []SpecPair     `json:"specifications"`
	Videos         []string       `json:"videos"`
	Thumbnail      GalleryImage   `json:"thumbnail"`
	Gallery        []GalleryImage `json:"gallery"`

	Type     ProductType    `json:"productType"`
	Colors   []ColorVariant `json:"colors"`
	Networks []Axis         `json:"networks"`
	Regions  []Axis         `json:"regions"`
}

// SetName updates the name and, until the slug is edited by hand, keeps the
// slug derived from it.
func (p *Product) SetName(name string) {
	p.Name = name
	if !p.SlugEdited {
		p.Slug = Slugify(name)
	}
}

// SetSlug overrides the slug by hand; auto-derivation stops from here on.
func (p *Product) SetSlug(slug string) {
	p.Slug = slug
	p.SlugEdited = true
}

// BasicColors returns the flat color list, or an empty slice when the product
// is not basic-shaped.
func (p *Product) BasicColors() []ColorVariant {
	if p.Type != ProductBasic {
		return []ColorVariant{}
	}
	return p.Colors
}

// NetworkAxes returns the network axes, or an empty slice for other shapes.
func (p *Product) NetworkAxes() []Axis {
	if p.Type != ProductNetwork {
		return []Axis{}
	}
	return p.Networks
}

// RegionAxes returns the region axes, or an empty slice for other shapes.
func (p *Product) RegionAxes() []Axis {
	if p.Type != ProductRegion {
		return []Axis{}
	}
	return p.Regions
}

// axes returns the live axis slice for the current shape, nil for basic.
func (p *Product) axes() *[]Axis {
	switch p.Type {
	case ProductNetwork:
		return &p.Networks
	case ProductRegion:
		return &p.Regions
	default:
		return nil
	}
}

// AddAxis appends a new axis of the product's kind. The first axis becomes
// the default. Returns nil on a basic product.
func (p *Product) AddAxis() *Axis {
	list := p.axes()
	if list == nil {
		return nil
	}
	kind := AxisNetwork
	if p.Type == ProductRegion {
		kind = AxisRegion
	}
	a := NewAxis(kind)
	a.DisplayOrder = len(*list)
	a.IsDefault = len(*list) == 0
	*list = append(*list, a)
	return &(*list)[len(*list)-1]
}

// RemoveAxis deletes the axis with the given id, renumbers the rest, and
// promotes the first remaining axis to default if the default was removed.
func (p *Product) RemoveAxis(id ID) bool {
	list := p.axes()
	if list == nil {
		return false
	}
	for i := range *list {
		if (*list)[i].ID == id {
			wasDefault := (*list)[i].IsDefault
			*list = append((*list)[:i], (*list)[i+1:]...)
			renumberAxes(*list)
			if wasDefault && len(*list) > 0 {
				(*list)[0].IsDefault = true
			}
			return true
		}
	}
	return false
}

// SetDefaultAxis marks one axis as default and clears the flag everywhere
// else, keeping the exactly-one-default invariant.
func (p *Product) SetDefaultAxis(id ID) bool {
	list := p.axes()
	if list == nil {
		return false
	}
	found := false
	for i := range *list {
		if (*list)[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for i := range *list {
		(*list)[i].IsDefault = (*list)[i].ID == id
	}
	return true
}

// FindAxis resolves an axis by id within the current shape.
func (p *Product) FindAxis(id ID) *Axis {
	list := p.axes()
	if list == nil {
		return nil
	}
	for i := range *list {
		if (*list)[i].ID == id {
			return &(*list)[i]
		}
	}
	return nil
}

// AddColor appends a color variant. With an empty axisID it targets the basic
// list; otherwise the named axis. Returns nil when the target does not exist
// for the current shape.
func (p *Product) AddColor(axisID ID) *ColorVariant {
	if axisID == "" {
		if p.Type != ProductBasic {
			return nil
		}
		p.Colors = append(p.Colors, ColorVariant{
			ID:           NewLocalID(PrefixColor),
			DisplayOrder: len(p.Colors),
			Storages:     []StorageTier{},
		})
		return &p.Colors[len(p.Colors)-1]
	}
	a := p.FindAxis(axisID)
	if a == nil {
		return nil
	}
	return a.AddColor()
}

// FindColor resolves a color variant by id anywhere in the tree.
func (p *Product) FindColor(id ID) *ColorVariant {
	if p.Type == ProductBasic {
		for i := range p.Colors {
			if p.Colors[i].ID == id {
				return &p.Colors[i]
			}
		}
		return nil
	}
	list := p.axes()
	if list == nil {
		return nil
	}
	for i := range *list {
		for j := range (*list)[i].Colors {
			if (*list)[i].Colors[j].ID == id {
				return &(*list)[i].Colors[j]
			}
		}
	}
	return nil
}

// FindStorage resolves a tier by id, searching axis defaults and color-owned
// tiers.
func (p *Product) FindStorage(id ID) *StorageTier {
	list := p.axes()
	if list == nil {
		return nil
	}
	for i := range *list {
		a := &(*list)[i]
		for j := range a.DefaultStorages {
			if a.DefaultStorages[j].ID == id {
				return &a.DefaultStorages[j]
			}
		}
		for j := range a.Colors {
			for k := range a.Colors[j].Storages {
				if a.Colors[j].Storages[k].ID == id {
					return &a.Colors[j].Storages[k]
				}
			}
		}
	}
	return nil
}

// Remove deletes whichever entity carries the id: an axis, a color, or a
// storage tier. Missing ids are a no-op.
func (p *Product) Remove(id ID) bool {
	if p.RemoveAxis(id) {
		return true
	}
	if p.Type == ProductBasic {
		for i := range p.Colors {
			if p.Colors[i].ID == id {
				p.Colors = append(p.Colors[:i], p.Colors[i+1:]...)
				renumberColors(p.Colors)
				return true
			}
		}
		return false
	}
	list := p.axes()
	if list == nil {
		return false
	}
	for i := range *list {
		a := &(*list)[i]
		if a.RemoveColor(id) || a.RemoveDefaultStorage(id) {
			return true
		}
		for j := range a.Colors {
			if a.Colors[j].RemoveStorage(id) {
				return true
			}
		}
	}
	return false
}

// Move repositions the entity carrying the id within its sibling list and
// renumbers the whole list. Positions clamp to the list bounds; missing ids
// are a no-op.
func (p *Product) Move(id ID, pos int) bool {
	if p.Type == ProductBasic {
		return moveColor(p.Colors, id, pos)
	}
	list := p.axes()
	if list == nil {
		return false
	}
	if moveAxis(*list, id, pos) {
		return true
	}
	for i := range *list {
		a := &(*list)[i]
		if moveColor(a.Colors, id, pos) || moveStorage(a.DefaultStorages, id, pos) {
			return true
		}
		for j := range a.Colors {
			if moveStorage(a.Colors[j].Storages, id, pos) {
				return true
			}
		}
	}
	return false
}

// Update routes a single-field edit to the entity carrying the id, or to the
// aggregate itself when the id is the product's own (or empty). Unknown ids
// and fields are no-ops. A displayOrder edit repositions the entity among its
// siblings instead of setting the field directly.
func (p *Product) Update(id ID, field, value string) bool {
	if id == p.ID || id == "" {
		return p.setField(field, value)
	}
	if field == "displayOrder" {
		pos, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return false
		}
		return p.Move(id, pos)
	}
	if a := p.FindAxis(id); a != nil {
		return a.SetField(field, value)
	}
	if c := p.FindColor(id); c != nil {
		return c.SetField(field, value)
	}
	if t := p.FindStorage(id); t != nil {
		return t.SetField(field, value)
	}
	return false
}

// AttachImage stores a pending file on the color with the given id.
func (p *Product) AttachImage(colorID ID, file *ImageFile, preview string) bool {
	c := p.FindColor(colorID)
	if c == nil {
		return false
	}
	c.AttachImage(file, preview)
	return true
}

// ReleaseFiles drops every pending attachment; called when a session closes.
func (p *Product) ReleaseFiles() {
	drop := func(colors []ColorVariant) {
		for i := range colors {
			colors[i].PendingImage = nil
		}
	}
	drop(p.Colors)
	for i := range p.Networks {
		drop(p.Networks[i].Colors)
	}
	for i := range p.Regions {
		drop(p.Regions[i].Colors)
	}
}

func parseFlag(v string) bool { return v == "true" || v == "1" }

func (p *Product) setField(field, value string) bool {
	switch field {
	case "name":
		p.SetName(value)
	case "slug":
		p.SetSlug(value)
	case "sku":
		p.SKU = value
	case "productCode":
		p.ProductCode = value
	case "description":
		p.Description = value
	case "shortDescription":
		p.ShortDescription = value
	case "warranty":
		p.Warranty = value
	case "rewardPoints":
		p.RewardPoints = value
	case "minBookingPrice":
		p.MinBookingPrice = value
	case "tags":
		p.Tags = value
	case "seoTitle":
		p.SEO.Title = value
	case "seoDescription":
		p.SEO.Description = value
	case "seoKeywords":
		p.SEO.Keywords = value
	case "canonicalUrl":
		p.SEO.CanonicalURL = value
	case "isActive":
		p.IsActive = parseFlag(value)
	case "isOnline":
		p.IsOnline = parseFlag(value)
	case "isPos":
		p.IsPos = parseFlag(value)
	case "isPreOrder":
		p.IsPreOrder = parseFlag(value)
	case "isOfficial":
		p.IsOfficial = parseFlag(value)
	case "freeShipping":
		p.FreeShipping = parseFlag(value)
	case "isEmi":
		p.IsEmi = parseFlag(value)
	default:
		return false
	}
	return true
}
