package offer

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Oferta"

// Export renders the offer as an XLSX workbook. It returns the file bytes and
// a suggested file name.
func (s *Service) Export(ctx context.Context, id int64) ([]byte, string, error) {
	details, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := renderXLSX(details)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	name := strings.NewReplacer("/", "-", " ", "_").Replace(details.OfferNumber) + ".xlsx"
	return data, name, nil
}

func renderXLSX(d *OfferDetails) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	widths := []float64{6, 48, 10, 16, 10, 18}
	for i, col := range columns {
		if err := f.SetColWidth(exportSheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: stringPtr("#,##0.00")})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: stringPtr("#,##0.00"),
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	if err := f.MergeCell(exportSheet, "A1", "F1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(exportSheet, "A1", sanitizeCell(fmt.Sprintf("Oferta %s", d.OfferNumber)))
	f.SetCellStyle(exportSheet, "A1", "F1", titleStyle)
	f.SetCellValue(exportSheet, "A2", sanitizeCell(d.Title))
	f.SetCellValue(exportSheet, "A3", "Data: "+d.CreatedAt.Format("2006-01-02"))

	headers := []string{"Lp.", "Nazwa", "Ilość", "Cena jedn. netto", "Rabat %", "Wartość netto"}
	for i, h := range headers {
		f.SetCellValue(exportSheet, fmt.Sprintf("%s5", columns[i]), h)
	}
	f.SetCellStyle(exportSheet, "A5", "F5", headerStyle)

	row := 6
	for i, it := range d.Items {
		r := fmt.Sprint(row)
		f.SetCellValue(exportSheet, "A"+r, i+1)
		f.SetCellValue(exportSheet, "B"+r, sanitizeCell(it.Name))
		f.SetCellValue(exportSheet, "C"+r, it.Quantity.InexactFloat64())
		f.SetCellValue(exportSheet, "D"+r, it.UnitPrice.InexactFloat64())
		f.SetCellValue(exportSheet, "E"+r, it.DiscountPercent.InexactFloat64())
		f.SetCellValue(exportSheet, "F"+r, it.Subtotal.InexactFloat64())
		f.SetCellStyle(exportSheet, "D"+r, "D"+r, moneyStyle)
		f.SetCellStyle(exportSheet, "F"+r, "F"+r, moneyStyle)
		row++
	}

	row++
	summary := []struct {
		label string
		value float64
	}{
		{"Razem netto", d.Totals.Net.InexactFloat64()},
		{fmt.Sprintf("VAT %s%%", d.VATRate.String()), d.Totals.VAT.InexactFloat64()},
		{"Razem brutto", d.Totals.Gross.InexactFloat64()},
	}
	for _, line := range summary {
		r := fmt.Sprint(row)
		f.SetCellValue(exportSheet, "E"+r, line.label)
		f.SetCellValue(exportSheet, "F"+r, line.value)
		f.SetCellStyle(exportSheet, "E"+r, "F"+r, totalStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeCell stops user text from being read as a formula.
func sanitizeCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@", rune(s[0])) {
		return "'" + s
	}
	return s
}

func stringPtr(s string) *string { return &s }
