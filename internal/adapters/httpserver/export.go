package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/newmobile/internal/domain"
)

// handlePricingExport renders the session's pricing matrix as a spreadsheet:
// one row per priced unit (flat color, tier, or default tier). It works off a
// snapshot so concurrent edits cannot race the export.
func (s *Server) handlePricingExport(w http.ResponseWriter, r *http.Request, id string) {
	view, err := s.sessions.View(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var p domain.Product
	if err := json.Unmarshal(view.Product, &p); err != nil {
		s.writeError(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"Axis", "Color", "Storage", "Regular", "Discount", "Discount %", "Stock", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	_ = f.SetColWidth(sheet, "A", "C", 18)

	row := 2
	switch p.Type {
	case domain.ProductBasic:
		for i := range p.Colors {
			row = writeColorRows(f, sheet, row, "", &p.Colors[i], nil)
		}
	case domain.ProductNetwork, domain.ProductRegion:
		for _, a := range append(p.NetworkAxes(), p.RegionAxes()...) {
			for i := range a.Colors {
				row = writeColorRows(f, sheet, row, a.Name, &a.Colors[i], &a)
			}
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="pricing.xlsx"`)
	if _, err := f.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("could not stream spreadsheet")
	}
}

func writeColorRows(f *excelize.File, sheet string, row int, axisName string, c *domain.ColorVariant, axis *domain.Axis) int {
	if !c.HasStorage {
		pr := domain.PriceRecord{RegularPrice: c.SingleComparePrice, DiscountPrice: c.SinglePrice, StockQuantity: c.SingleStockQuantity}
		if pr.RegularPrice == "" {
			pr.RegularPrice = c.SinglePrice
		}
		writePriceRow(f, sheet, row, axisName, c.ColorName, "-", &pr)
		return row + 1
	}
	tiers := c.Storages
	if c.UseDefaultStorages && axis != nil {
		tiers = axis.DefaultStorages
	}
	for i := range tiers {
		writePriceRow(f, sheet, row, axisName, c.ColorName, tiers[i].StorageSize, &tiers[i].PriceRecord)
		row++
	}
	return row
}

func writePriceRow(f *excelize.File, sheet string, row int, axis, color, storage string, pr *domain.PriceRecord) {
	values := []any{
		axis,
		color,
		storage,
		domain.ParseAmount(pr.RegularPrice),
		pr.ReconciledDiscountPrice(),
		domain.ParseCount(pr.DiscountPercent),
		domain.ParseCount(pr.StockQuantity),
		string(pr.Status()),
	}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			log.Warn().Err(err).Str("cell", fmt.Sprintf("%s!%s", sheet, cell)).Msg("could not set cell")
		}
	}
}
