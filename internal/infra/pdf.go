package infra

// pdf.go; dealer price list export using go-pdf/fpdf. One row per
// aggregated product family: part number, title, sizes, retail price and the
// wholesale price for the requested tier.

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/adamcernik/biketime-public-sub000/internal/dto"
)

// PriceListPDF renders an A4 price list for one dealer tier.
func PriceListPDF(items []dto.AggregatedProduct, tier string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 14, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Biketime", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Dealer price list (tier %s)", tier), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, time.Now().Format("02.01.2006"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	col1 := contentW * 0.20 // part number
	col2 := contentW * 0.36 // title
	col3 := contentW * 0.16 // sizes
	col4 := contentW * 0.14 // retail
	col5 := contentW * 0.14 // tier price

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Part no.", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Model", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Sizes", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "Retail CZK", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 6, fmt.Sprintf("Tier %s CZK", tier), "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, it := range items {
		retail := "-"
		if it.PriceCzk != nil {
			retail = it.PriceCzk.StringFixed(0)
		}
		tierPrice := "-"
		if p, ok := it.PriceLevelsCzk[tier]; ok {
			tierPrice = p.StringFixed(0)
		}

		pdf.CellFormat(col1, 5, it.PartNumber, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, strings.TrimSpace(it.Brand+" "+it.Model), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, strings.Join(it.Sizes, " "), "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 5, retail, "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 5, tierPrice, "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
