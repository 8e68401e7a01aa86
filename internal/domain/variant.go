package domain

// ImageFile is a pending binary upload held in memory for the lifetime of one
// edit session. It is never serialized into the JSON tree.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// StorageTier is a capacity-labeled price record owned by exactly one axis
// (as a default storage) or one color variant (as a custom storage).
type StorageTier struct {
	ID           ID     `json:"id"`
	StorageSize  string `json:"storageSize"`
	DisplayOrder int    `json:"displayOrder"`
	PriceRecord
}

// SetField routes a named edit to the tier; price fields fall through to the
// embedded record.
func (t *StorageTier) SetField(field, value string) bool {
	switch field {
	case "storageSize":
		t.StorageSize = value
		return true
	}
	return t.PriceRecord.SetField(field, value)
}

// ColorVariant is one color option. Under a network/region axis it either
// owns storage tiers, delegates to the axis defaults, or carries flat price
// fields; under a basic product it is always flat-priced.
type ColorVariant struct {
	ID           ID         `json:"id"`
	ColorName    string     `json:"colorName"`
	ColorImage   string     `json:"colorImage"`
	DisplayOrder int        `json:"displayOrder"`
	PendingImage *ImageFile `json:"-"`

	HasStorage         bool          `json:"hasStorage"`
	UseDefaultStorages bool          `json:"useDefaultStorages"`
	Storages           []StorageTier `json:"storages"`

	SinglePrice         string `json:"singlePrice"`
	SingleComparePrice  string `json:"singleComparePrice"`
	SingleStockQuantity string `json:"singleStockQuantity"`
}

// AddStorage appends a new custom tier with a placeholder id.
func (c *ColorVariant) AddStorage() *StorageTier {
	c.Storages = append(c.Storages, StorageTier{
		ID:           NewLocalID(PrefixStorage),
		DisplayOrder: len(c.Storages),
		PriceRecord:  PriceRecord{LowStockAlert: "5"},
	})
	return &c.Storages[len(c.Storages)-1]
}

// RemoveStorage deletes the tier with the given id and renumbers the rest.
// Missing ids are a no-op.
func (c *ColorVariant) RemoveStorage(id ID) bool {
	for i := range c.Storages {
		if c.Storages[i].ID == id {
			c.Storages = append(c.Storages[:i], c.Storages[i+1:]...)
			renumberStorages(c.Storages)
			return true
		}
	}
	return false
}

// AttachImage stores the pending file and its preview URL, replacing any
// earlier pending file.
func (c *ColorVariant) AttachImage(file *ImageFile, preview string) {
	c.PendingImage = file
	if preview != "" {
		c.ColorImage = preview
	}
}

func (c *ColorVariant) SetField(field, value string) bool {
	switch field {
	case "colorName":
		c.ColorName = value
	case "colorImage":
		c.ColorImage = value
	case "hasStorage":
		c.HasStorage = value == "true" || value == "1"
	case "useDefaultStorages":
		c.UseDefaultStorages = value == "true" || value == "1"
	case "singlePrice":
		c.SinglePrice = value
	case "singleComparePrice":
		c.SingleComparePrice = value
	case "singleStockQuantity":
		c.SingleStockQuantity = value
	default:
		return false
	}
	return true
}

// AxisKind partitions a product's SKU space: by carrier network or by sales
// region.
type AxisKind string

const (
	AxisNetwork AxisKind = "network"
	AxisRegion  AxisKind = "region"
)

// Axis is one named value on a product's variant axis, owning its default
// storage tiers and its color variants. Exactly one axis per product is the
// default; that is enforced by the aggregate, not here.
type Axis struct {
	ID                 ID             `json:"id"`
	Kind               AxisKind       `json:"-"`
	Name               string         `json:"name"`
	IsDefault          bool           `json:"isDefault"`
	DisplayOrder       int            `json:"displayOrder"`
	HasDefaultStorages bool           `json:"hasDefaultStorages"`
	DefaultStorages    []StorageTier  `json:"defaultStorages"`
	Colors             []ColorVariant `json:"colors"`
}

// NewAxis builds an empty axis with a placeholder id. Region axes always have
// default storages.
func NewAxis(kind AxisKind) Axis {
	prefix := PrefixNetwork
	if kind == AxisRegion {
		prefix = PrefixRegion
	}
	return Axis{
		ID:                 NewLocalID(prefix),
		Kind:               kind,
		HasDefaultStorages: kind == AxisRegion,
	}
}

// AddDefaultStorage appends a new default tier with a placeholder id.
func (a *Axis) AddDefaultStorage() *StorageTier {
	a.DefaultStorages = append(a.DefaultStorages, StorageTier{
		ID:           NewLocalID(PrefixDefaultStorage),
		DisplayOrder: len(a.DefaultStorages),
		PriceRecord:  PriceRecord{LowStockAlert: "5"},
	})
	return &a.DefaultStorages[len(a.DefaultStorages)-1]
}

// RemoveDefaultStorage deletes the default tier with the given id.
func (a *Axis) RemoveDefaultStorage(id ID) bool {
	for i := range a.DefaultStorages {
		if a.DefaultStorages[i].ID == id {
			a.DefaultStorages = append(a.DefaultStorages[:i], a.DefaultStorages[i+1:]...)
			renumberStorages(a.DefaultStorages)
			return true
		}
	}
	return false
}

// AddColor appends a new color variant with a placeholder id. Colors under an
// axis default to delegating to the axis's default tiers.
func (a *Axis) AddColor() *ColorVariant {
	a.Colors = append(a.Colors, ColorVariant{
		ID:                 NewLocalID(PrefixColor),
		DisplayOrder:       len(a.Colors),
		HasStorage:         true,
		UseDefaultStorages: a.HasDefaultStorages,
		Storages:           []StorageTier{},
	})
	return &a.Colors[len(a.Colors)-1]
}

// RemoveColor deletes the color with the given id and renumbers the rest.
func (a *Axis) RemoveColor(id ID) bool {
	for i := range a.Colors {
		if a.Colors[i].ID == id {
			a.Colors = append(a.Colors[:i], a.Colors[i+1:]...)
			renumberColors(a.Colors)
			return true
		}
	}
	return false
}

// DefaultStorageBySize resolves a default tier by its size label. This is how
// colors with useDefaultStorages find their pricing.
func (a *Axis) DefaultStorageBySize(size string) *StorageTier {
	for i := range a.DefaultStorages {
		if a.DefaultStorages[i].StorageSize == size {
			return &a.DefaultStorages[i]
		}
	}
	return nil
}

func (a *Axis) SetField(field, value string) bool {
	switch field {
	case "name":
		a.Name = value
	case "hasDefaultStorages":
		if a.Kind == AxisRegion {
			return true // region axes always keep default storages
		}
		a.HasDefaultStorages = value == "true" || value == "1"
	default:
		return false
	}
	return true
}

func renumberStorages(list []StorageTier) {
	for i := range list {
		list[i].DisplayOrder = i
	}
}

func renumberColors(list []ColorVariant) {
	for i := range list {
		list[i].DisplayOrder = i
	}
}

func renumberAxes(list []Axis) {
	for i := range list {
		list[i].DisplayOrder = i
	}
}

func clampIndex(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos >= n {
		return n - 1
	}
	return pos
}

func moveStorage(list []StorageTier, id ID, pos int) bool {
	for from := range list {
		if list[from].ID != id {
			continue
		}
		to := clampIndex(pos, len(list))
		v := list[from]
		if from < to {
			copy(list[from:], list[from+1:to+1])
		} else {
			copy(list[to+1:], list[to:from])
		}
		list[to] = v
		renumberStorages(list)
		return true
	}
	return false
}

func moveColor(list []ColorVariant, id ID, pos int) bool {
	for from := range list {
		if list[from].ID != id {
			continue
		}
		to := clampIndex(pos, len(list))
		v := list[from]
		if from < to {
			copy(list[from:], list[from+1:to+1])
		} else {
			copy(list[to+1:], list[to:from])
		}
		list[to] = v
		renumberColors(list)
		return true
	}
	return false
}

func moveAxis(list []Axis, id ID, pos int) bool {
	for from := range list {
		if list[from].ID != id {
			continue
		}
		to := clampIndex(pos, len(list))
		v := list[from]
		if from < to {
			copy(list[from:], list[from+1:to+1])
		} else {
			copy(list[to+1:], list[to:from])
		}
		list[to] = v
		renumberAxes(list)
		return true
	}
	return false
}
