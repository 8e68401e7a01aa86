package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/newmobile/internal/domain"
)

func TestNumberUnmarshal(t *testing.T) {
	var doc struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
	}
	raw := `{"a": 1299.5, "b": "450", "c": null, "d": " 7 "}`
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "1299.5", doc.A.String())
	assert.Equal(t, "450", doc.B.String())
	assert.Equal(t, "", doc.C.String())
	assert.Equal(t, "7", doc.D.String())
}

func TestHydrateDefaults(t *testing.T) {
	p := Hydrate(&ProductDoc{ID: "p1", Name: "Pixel 9"})

	assert.Equal(t, domain.ProductBasic, p.Type, "unknown shape falls back to basic")
	assert.NotNil(t, p.Colors)
	assert.NotNil(t, p.Networks)
	assert.NotNil(t, p.Regions)
	assert.NotNil(t, p.Gallery)
	assert.NotNil(t, p.CategoryIDs)
	assert.Equal(t, "", p.RewardPoints)
	id, ok := p.ID.Wire()
	assert.True(t, ok)
	assert.Equal(t, "p1", id)
}

func TestHydrateAssignsPlaceholderIDs(t *testing.T) {
	doc := &ProductDoc{
		ID:          "p1",
		ProductType: "network",
		Networks: []AxisDoc{{
			Name: "GSM",
			Colors: []ColorDoc{{
				ColorName: "Black",
				Storages:  []StorageDoc{{StorageSize: "128GB"}},
			}},
		}},
	}
	p := Hydrate(doc)

	axes := p.NetworkAxes()
	require.Len(t, axes, 1)
	assert.True(t, axes[0].ID.Local())
	require.Len(t, axes[0].Colors, 1)
	assert.True(t, axes[0].Colors[0].ID.Local())
	require.Len(t, axes[0].Colors[0].Storages, 1)
	assert.True(t, axes[0].Colors[0].Storages[0].ID.Local())
}

func TestHydrateOnlyMatchingShape(t *testing.T) {
	doc := &ProductDoc{
		ID:          "p1",
		ProductType: "region",
		Colors:      []ColorDoc{{ID: "c1", ColorName: "stale"}},
		Networks:    []AxisDoc{{ID: "n1", Name: "stale"}},
		Regions:     []AxisDoc{{ID: "r1", Name: "EU"}},
	}
	p := Hydrate(doc)

	assert.Empty(t, p.Colors)
	assert.Empty(t, p.Networks)
	require.Len(t, p.Regions, 1)
	assert.True(t, p.Regions[0].HasDefaultStorages, "region axes always carry default storages")
}

func TestHydrateThumbnailSplit(t *testing.T) {
	doc := &ProductDoc{
		ID: "p1",
		Images: []ImageDoc{
			{ID: "i1", URL: "a.jpg"},
			{ID: "i2", URL: "b.jpg", IsThumbnail: true},
			{ID: "i3", ImageURL: "c.jpg", IsThumbnail: true},
		},
	}
	p := Hydrate(doc)

	assert.Equal(t, "b.jpg", p.Thumbnail.URL, "first flagged image wins")
	require.Len(t, p.Gallery, 2)
	assert.Equal(t, "a.jpg", p.Gallery[0].URL)
	assert.Equal(t, "c.jpg", p.Gallery[1].URL, "extra thumbnails fall into the gallery")
}

func TestHydrateStoragePrices(t *testing.T) {
	t.Run("nested price object", func(t *testing.T) {
		doc := &ProductDoc{
			ID:          "p1",
			ProductType: "network",
			Networks: []AxisDoc{{Name: "GSM", Colors: []ColorDoc{{
				ColorName: "Black",
				Storages: []StorageDoc{{
					StorageSize: "128GB",
					Price: &PriceDoc{
						RegularPrice:  "1000",
						DiscountPrice: "900",
						StockQuantity: "12",
					},
				}},
			}}}},
		}
		tier := Hydrate(doc).Networks[0].Colors[0].Storages[0]
		assert.Equal(t, "1000", tier.RegularPrice)
		assert.Equal(t, "900", tier.DiscountPrice)
		assert.Equal(t, "12", tier.StockQuantity)
		assert.Equal(t, "5", tier.LowStockAlert, "missing alert defaults")
	})

	t.Run("flat fields when price object is absent", func(t *testing.T) {
		var sd StorageDoc
		raw := `{"storageSize":"256GB","regularPrice":1500,"discountPrice":"1350","lowStockAlert":3}`
		require.NoError(t, json.Unmarshal([]byte(raw), &sd))
		doc := &ProductDoc{
			ID:          "p1",
			ProductType: "network",
			Networks:    []AxisDoc{{Name: "GSM", Colors: []ColorDoc{{ColorName: "Black", Storages: []StorageDoc{sd}}}}},
		}
		tier := Hydrate(doc).Networks[0].Colors[0].Storages[0]
		assert.Equal(t, "1500", tier.RegularPrice)
		assert.Equal(t, "1350", tier.DiscountPrice)
		assert.Equal(t, "3", tier.LowStockAlert)
	})
}

func TestHydrateSortsAndRenumbers(t *testing.T) {
	doc := &ProductDoc{
		ID:          "p1",
		ProductType: "basic",
		Colors: []ColorDoc{
			{ID: "c2", ColorName: "Blue", DisplayOrder: 7},
			{ID: "c1", ColorName: "Black", DisplayOrder: 2},
		},
	}
	p := Hydrate(doc)

	require.Len(t, p.Colors, 2)
	assert.Equal(t, "Black", p.Colors[0].ColorName)
	assert.Equal(t, 0, p.Colors[0].DisplayOrder)
	assert.Equal(t, "Blue", p.Colors[1].ColorName)
	assert.Equal(t, 1, p.Colors[1].DisplayOrder)
}

func TestHydrateJoinsLists(t *testing.T) {
	doc := &ProductDoc{
		ID:          "p1",
		SeoKeywords: []string{"phone", "android"},
		Tags:        []string{"flagship"},
	}
	p := Hydrate(doc)
	assert.Equal(t, "phone, android", p.SEO.Keywords)
	assert.Equal(t, "flagship", p.Tags)
}
