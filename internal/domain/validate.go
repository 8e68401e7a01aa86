package domain

import (
	"fmt"
	"strings"
)

// Validate checks everything that must hold before a submission is built.
// It returns nil when the tree is submittable.
func Validate(p *Product) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "required"})
	}

	switch p.Type {
	case ProductBasic:
		for i := range p.Colors {
			errs = append(errs, validateColor(&p.Colors[i], fmt.Sprintf("colors[%d]", i), true)...)
		}
	case ProductNetwork, ProductRegion:
		axes := *p.axes()
		defaults := 0
		for i := range axes {
			if axes[i].IsDefault {
				defaults++
			}
		}
		if len(axes) > 0 && defaults != 1 {
			errs = append(errs, ValidationError{Field: string(p.Type) + "s", Message: "exactly one default required"})
		}
		for i := range axes {
			a := &axes[i]
			scope := fmt.Sprintf("%ss[%d]", p.Type, i)
			if strings.TrimSpace(a.Name) == "" {
				errs = append(errs, ValidationError{Field: scope + ".name", Message: "required"})
			}
			for j := range a.Colors {
				errs = append(errs, validateColor(&a.Colors[j], fmt.Sprintf("%s.colors[%d]", scope, j), false)...)
			}
		}
	}

	return errs
}

func validateColor(c *ColorVariant, scope string, basic bool) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(c.ColorName) == "" {
		errs = append(errs, ValidationError{Field: scope + ".colorName", Message: "required"})
	}
	if basic {
		if strings.TrimSpace(c.SinglePrice) == "" {
			errs = append(errs, ValidationError{Field: scope + ".singlePrice", Message: "required"})
		}
		return errs
	}
	if c.HasStorage {
		if !c.UseDefaultStorages && len(c.Storages) == 0 {
			errs = append(errs, ValidationError{Field: scope + ".storages", Message: "at least one storage required"})
		}
		return errs
	}
	// Flat-priced color: all three fields must be present, zero is fine.
	flat := []struct{ field, val string }{
		{scope + ".singlePrice", c.SinglePrice},
		{scope + ".singleComparePrice", c.SingleComparePrice},
		{scope + ".singleStockQuantity", c.SingleStockQuantity},
	}
	for _, f := range flat {
		if strings.TrimSpace(f.val) == "" {
			errs = append(errs, ValidationError{Field: f.field, Message: "required"})
		}
	}
	return errs
}
