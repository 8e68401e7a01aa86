package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDWire(t *testing.T) {
	tests := []struct {
		name   string
		id     ID
		want   string
		wantOK bool
	}{
		{"persisted", PersistedID("64f1c2"), "64f1c2", true},
		{"empty", "", "", false},
		{"local color", NewLocalID(PrefixColor), "", false},
		{"local network", NewLocalID(PrefixNetwork), "", false},
		{"local storage", NewLocalID(PrefixStorage), "", false},
		{"local default storage", NewLocalID(PrefixDefaultStorage), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.id.Wire()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLocalIDUnique(t *testing.T) {
	a := NewLocalID(PrefixColor)
	b := NewLocalID(PrefixColor)
	assert.NotEqual(t, a, b)
	assert.True(t, a.Local())
}

func TestShapeAccessors(t *testing.T) {
	p := &Product{Type: ProductNetwork}
	p.AddAxis()

	assert.Len(t, p.NetworkAxes(), 1)
	assert.Empty(t, p.RegionAxes())
	assert.Empty(t, p.BasicColors())

	basic := &Product{Type: ProductBasic}
	basic.AddColor("")
	assert.Len(t, basic.BasicColors(), 1)
	assert.Empty(t, basic.NetworkAxes())
	assert.Nil(t, basic.AddAxis())
}

func TestAddAxisDefaults(t *testing.T) {
	p := &Product{Type: ProductRegion}
	first := p.AddAxis()
	second := p.AddAxis()

	require.NotNil(t, first)
	assert.True(t, first.IsDefault)
	assert.False(t, second.IsDefault)
	assert.Equal(t, AxisRegion, first.Kind)
	assert.True(t, first.HasDefaultStorages, "region axes always carry default storages")
	assert.Equal(t, 0, first.DisplayOrder)
	assert.Equal(t, 1, second.DisplayOrder)
}

func TestRemoveAxisPromotesDefault(t *testing.T) {
	p := &Product{Type: ProductNetwork}
	first := p.AddAxis()
	second := p.AddAxis()
	third := p.AddAxis()
	_ = third

	require.True(t, p.Remove(first.ID))
	axes := p.NetworkAxes()
	require.Len(t, axes, 2)
	assert.True(t, axes[0].IsDefault)
	assert.Equal(t, second.ID, axes[0].ID)
	assert.Equal(t, []int{0, 1}, []int{axes[0].DisplayOrder, axes[1].DisplayOrder})
}

func TestSetDefaultAxisExclusive(t *testing.T) {
	p := &Product{Type: ProductNetwork}
	a := p.AddAxis()
	b := p.AddAxis()

	require.True(t, p.SetDefaultAxis(b.ID))
	assert.False(t, p.FindAxis(a.ID).IsDefault)
	assert.True(t, p.FindAxis(b.ID).IsDefault)

	assert.False(t, p.SetDefaultAxis("missing"))
	assert.True(t, p.FindAxis(b.ID).IsDefault, "failed switch leaves default untouched")
}

func TestAddColorPerShape(t *testing.T) {
	t.Run("basic takes empty axis id", func(t *testing.T) {
		p := &Product{Type: ProductBasic}
		c := p.AddColor("")
		require.NotNil(t, c)
		assert.False(t, c.HasStorage)
	})

	t.Run("network color delegates per axis", func(t *testing.T) {
		p := &Product{Type: ProductNetwork}
		a := p.AddAxis()
		c := p.AddColor(a.ID)
		require.NotNil(t, c)
		assert.True(t, c.HasStorage)
		assert.False(t, c.UseDefaultStorages)
	})

	t.Run("region color uses axis defaults", func(t *testing.T) {
		p := &Product{Type: ProductRegion}
		a := p.AddAxis()
		c := p.AddColor(a.ID)
		require.NotNil(t, c)
		assert.True(t, c.UseDefaultStorages)
	})

	t.Run("missing axis", func(t *testing.T) {
		p := &Product{Type: ProductNetwork}
		assert.Nil(t, p.AddColor("nope"))
	})
}

func TestRemoveIsNoOpForMissingIDs(t *testing.T) {
	p := &Product{Type: ProductNetwork}
	a := p.AddAxis()
	c := p.AddColor(a.ID)
	c.AddStorage()

	before := len(p.Networks[0].Colors[0].Storages)
	assert.False(t, p.Remove("ghost"))
	assert.Len(t, p.Networks[0].Colors[0].Storages, before)
	assert.Len(t, p.Networks, 1)
}

func TestRemoveStorageRenumbers(t *testing.T) {
	p := &Product{Type: ProductNetwork}
	a := p.AddAxis()
	c := p.AddColor(a.ID)
	s0 := c.AddStorage()
	s1 := c.AddStorage()
	s2 := c.AddStorage()
	_ = s1

	require.True(t, p.Remove(s0.ID))
	tiers := p.Networks[0].Colors[0].Storages
	require.Len(t, tiers, 2)
	assert.Equal(t, 0, tiers[0].DisplayOrder)
	assert.Equal(t, 1, tiers[1].DisplayOrder)
	assert.NotNil(t, p.FindStorage(s2.ID))
	assert.Nil(t, p.FindStorage(s0.ID))
}

func TestDefaultStorageResolution(t *testing.T) {
	p := &Product{Type: ProductRegion}
	a := p.AddAxis()
	ds := a.AddDefaultStorage()
	ds.StorageSize = "128GB"
	ds.SetRegularPrice("900")

	assert.Equal(t, "5", ds.LowStockAlert)
	found := a.DefaultStorageBySize("128GB")
	require.NotNil(t, found)
	assert.Equal(t, ds.ID, found.ID)
	assert.Nil(t, a.DefaultStorageBySize("256GB"))
}

func TestSlugFollowsNameUntilEdited(t *testing.T) {
	p := &Product{Type: ProductBasic}
	p.Update("", "name", "Galaxy S24 Ultra")
	assert.Equal(t, "galaxy-s24-ultra", p.Slug)

	p.Update("", "slug", "custom-slug")
	p.Update("", "name", "Galaxy S25")
	assert.Equal(t, "custom-slug", p.Slug, "manual slug stops auto-derivation")
	assert.Equal(t, "Galaxy S25", p.Name)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Galaxy S24 Ultra", "galaxy-s24-ultra"},
		{"  iPhone   15 Pro! ", "iphone-15-pro"},
		{"Teléfono Móvil", "telefono-movil"},
		{"--a--b--", "a-b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestUpdateRoutesByID(t *testing.T) {
	p := &Product{ID: PersistedID("p1"), Type: ProductNetwork}
	a := p.AddAxis()
	c := p.AddColor(a.ID)
	s := c.AddStorage()

	assert.True(t, p.Update(p.ID, "sku", "SKU-1"))
	assert.Equal(t, "SKU-1", p.SKU)

	assert.True(t, p.Update(a.ID, "name", "GSM"))
	assert.Equal(t, "GSM", p.FindAxis(a.ID).Name)

	assert.True(t, p.Update(c.ID, "colorName", "Black"))
	assert.Equal(t, "Black", p.FindColor(c.ID).ColorName)

	assert.True(t, p.Update(s.ID, "regularPrice", "1200"))
	assert.Equal(t, "1200", p.FindStorage(s.ID).RegularPrice)

	assert.False(t, p.Update("ghost", "name", "x"))
	assert.False(t, p.Update(a.ID, "notAField", "x"))
}

func TestMoveRenumbersSiblings(t *testing.T) {
	t.Run("axis moves and renumbers", func(t *testing.T) {
		p := &Product{Type: ProductNetwork}
		a0 := p.AddAxis()
		a1 := p.AddAxis()
		a2 := p.AddAxis()
		a0ID, a1ID, a2ID := a0.ID, a1.ID, a2.ID

		require.True(t, p.Update(a2ID, "displayOrder", "0"))
		assert.Equal(t, a2ID, p.Networks[0].ID)
		assert.Equal(t, a0ID, p.Networks[1].ID)
		assert.Equal(t, a1ID, p.Networks[2].ID)
		for i := range p.Networks {
			assert.Equal(t, i, p.Networks[i].DisplayOrder)
		}
	})

	t.Run("storage moves within its color", func(t *testing.T) {
		p := &Product{Type: ProductNetwork}
		a := p.AddAxis()
		c := p.AddColor(a.ID)
		s0 := c.AddStorage()
		s1 := c.AddStorage()
		s2 := c.AddStorage()
		s0ID, s1ID, s2ID := s0.ID, s1.ID, s2.ID

		require.True(t, p.Update(s0ID, "displayOrder", "2"))
		tiers := p.Networks[0].Colors[0].Storages
		assert.Equal(t, []ID{s1ID, s2ID, s0ID}, []ID{tiers[0].ID, tiers[1].ID, tiers[2].ID})
		for i := range tiers {
			assert.Equal(t, i, tiers[i].DisplayOrder)
		}
	})

	t.Run("basic color moves in the flat list", func(t *testing.T) {
		p := &Product{Type: ProductBasic}
		c0 := p.AddColor("")
		c1 := p.AddColor("")
		c0ID, c1ID := c0.ID, c1.ID

		require.True(t, p.Update(c1ID, "displayOrder", "0"))
		assert.Equal(t, c1ID, p.Colors[0].ID)
		assert.Equal(t, c0ID, p.Colors[1].ID)
		assert.Equal(t, 0, p.Colors[0].DisplayOrder)
		assert.Equal(t, 1, p.Colors[1].DisplayOrder)
	})

	t.Run("position clamps to the list bounds", func(t *testing.T) {
		p := &Product{Type: ProductNetwork}
		a0 := p.AddAxis()
		a1 := p.AddAxis()

		require.True(t, p.Update(a0.ID, "displayOrder", "99"))
		assert.Equal(t, a0.ID, p.Networks[1].ID)
		require.True(t, p.Update(a0.ID, "displayOrder", "-3"))
		assert.Equal(t, a0.ID, p.Networks[0].ID)
		assert.Equal(t, a1.ID, p.Networks[1].ID)
	})

	t.Run("bad input is a no-op", func(t *testing.T) {
		p := &Product{Type: ProductNetwork}
		a := p.AddAxis()
		assert.False(t, p.Update(a.ID, "displayOrder", "first"))
		assert.False(t, p.Update("ghost", "displayOrder", "0"))
		assert.Equal(t, a.ID, p.Networks[0].ID)
	})
}

func TestUnknownShapeIsInert(t *testing.T) {
	p := &Product{}
	assert.Nil(t, p.FindColor("c1"))
	assert.Nil(t, p.FindStorage("s1"))
	assert.False(t, p.Remove("c1"))
	assert.False(t, p.Move("c1", 0))
	assert.Empty(t, p.BasicColors())
}

func TestRegionAxisKeepsDefaultStorages(t *testing.T) {
	p := &Product{Type: ProductRegion}
	a := p.AddAxis()
	require.True(t, p.Update(a.ID, "hasDefaultStorages", "false"))
	assert.True(t, p.FindAxis(a.ID).HasDefaultStorages)

	n := &Product{Type: ProductNetwork}
	na := n.AddAxis()
	require.True(t, n.Update(na.ID, "hasDefaultStorages", "true"))
	assert.True(t, n.FindAxis(na.ID).HasDefaultStorages)
}

func TestAttachAndReleaseFiles(t *testing.T) {
	p := &Product{Type: ProductBasic}
	c := p.AddColor("")
	file := &ImageFile{Name: "black.png", ContentType: "image/png", Data: []byte{1, 2}}

	require.True(t, p.AttachImage(c.ID, file, "data:image/png;base64,xx"))
	got := p.FindColor(c.ID)
	assert.Same(t, file, got.PendingImage)
	assert.Equal(t, "data:image/png;base64,xx", got.ColorImage)

	replacement := &ImageFile{Name: "v2.png"}
	p.AttachImage(c.ID, replacement, "")
	assert.Same(t, replacement, p.FindColor(c.ID).PendingImage)

	p.ReleaseFiles()
	assert.Nil(t, p.FindColor(c.ID).PendingImage)

	assert.False(t, p.AttachImage("ghost", file, ""))
}

func TestValidate(t *testing.T) {
	t.Run("name required", func(t *testing.T) {
		errs := Validate(&Product{Type: ProductBasic})
		require.Len(t, errs, 1)
		assert.Equal(t, "name", errs[0].Field)
	})

	t.Run("basic color needs name and price", func(t *testing.T) {
		p := &Product{Name: "x", Type: ProductBasic}
		p.AddColor("")
		errs := Validate(p)
		require.Len(t, errs, 2)
		assert.Equal(t, "colors[0].colorName", errs[0].Field)
		assert.Equal(t, "colors[0].singlePrice", errs[1].Field)
	})

	t.Run("exactly one default axis", func(t *testing.T) {
		p := &Product{Name: "x", Type: ProductNetwork}
		a := p.AddAxis()
		b := p.AddAxis()
		p.FindAxis(a.ID).Name = "GSM"
		b.Name = "CDMA"
		b.IsDefault = true // second default snuck in
		errs := Validate(p)
		require.Len(t, errs, 1)
		assert.Equal(t, "networks", errs[0].Field)
	})

	t.Run("own storages must not be empty", func(t *testing.T) {
		p := &Product{Name: "x", Type: ProductNetwork}
		a := p.AddAxis()
		a.Name = "GSM"
		c := p.AddColor(a.ID)
		c.ColorName = "Black"
		errs := Validate(p)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Field, "storages")
	})

	t.Run("flat color needs all three fields", func(t *testing.T) {
		p := &Product{Name: "x", Type: ProductNetwork}
		a := p.AddAxis()
		a.Name = "GSM"
		c := p.AddColor(a.ID)
		c.ColorName = "Black"
		c.HasStorage = false
		c.SinglePrice = "0" // zero is fine, empty is not
		errs := Validate(p)
		require.Len(t, errs, 2)
		assert.Contains(t, errs[0].Field, "singleComparePrice")
		assert.Contains(t, errs[1].Field, "singleStockQuantity")
	})

	t.Run("valid tree", func(t *testing.T) {
		p := &Product{Name: "x", Type: ProductRegion}
		a := p.AddAxis()
		a.Name = "EU"
		ds := a.AddDefaultStorage()
		ds.StorageSize = "128GB"
		c := p.AddColor(a.ID)
		c.ColorName = "Black"
		assert.Nil(t, Validate(p))
	})
}
