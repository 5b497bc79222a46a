package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/designaurora/quotecalc/internal/invoice"
)

const (
	invoiceSheet = "Invoice"
	termsSheet   = "Terms"
	packageSheet = "Package"
)

// Excel renders doc as an XLSX workbook: the invoice sheet, a terms sheet
// and, when a package was used, a package summary sheet.
func Excel(doc invoice.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), invoiceSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeInvoiceSheet(f, st, doc); err != nil {
		return nil, err
	}
	if err := writeTermsSheet(f, st, doc); err != nil {
		return nil, err
	}
	if doc.Banner != nil {
		if err := writePackageSheet(f, st, *doc.Banner); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type styles struct {
	title, subtitle, header, body, numeric, label, value int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	if st.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	}); err != nil {
		return st, fmt.Errorf("create title style: %w", err)
	}

	if st.subtitle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	}); err != nil {
		return st, fmt.Errorf("create subtitle style: %w", err)
	}

	if st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	}); err != nil {
		return st, fmt.Errorf("create header style: %w", err)
	}

	if st.body, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	}); err != nil {
		return st, fmt.Errorf("create body style: %w", err)
	}

	if st.numeric, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    thinBorders(),
	}); err != nil {
		return st, fmt.Errorf("create numeric style: %w", err)
	}

	if st.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return st, fmt.Errorf("create label style: %w", err)
	}

	if st.value, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return st, fmt.Errorf("create value style: %w", err)
	}

	return st, nil
}

func writeInvoiceSheet(f *excelize.File, st styles, doc invoice.Document) error {
	sheet := invoiceSheet

	for col, width := range map[string]float64{"A": 44, "B": 14, "C": 18, "D": 20} {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	header := []struct {
		cell, value string
		style       int
	}{
		{"A1", doc.Brand, st.title},
		{"A2", doc.InvoiceID + "    Date: " + doc.Date, st.subtitle},
		{"A3", doc.Project, st.subtitle},
		{"A4", doc.Client, st.subtitle},
	}
	for _, h := range header {
		end := "D" + h.cell[1:]
		if err := f.MergeCell(sheet, h.cell, end); err != nil {
			return fmt.Errorf("merge %s: %w", h.cell, err)
		}
		f.SetCellValue(sheet, h.cell, sanitizeExcelCell(h.value))
		f.SetCellStyle(sheet, h.cell, end, h.style)
	}

	for i, h := range []string{"Description", "Area / Qty", "Rate", "Amount"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 6)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A6", "D6", st.header)

	row := 7
	if doc.Empty() {
		start := fmt.Sprintf("A%d", row)
		end := fmt.Sprintf("D%d", row)
		if err := f.MergeCell(sheet, start, end); err != nil {
			return fmt.Errorf("merge empty row: %w", err)
		}
		f.SetCellValue(sheet, start, invoice.EmptyMessage)
		f.SetCellStyle(sheet, start, end, st.body)
		row++
	}
	for _, r := range doc.Rows {
		n := fmt.Sprint(row)
		f.SetCellValue(sheet, "A"+n, sanitizeExcelCell(r.Description))
		f.SetCellValue(sheet, "B"+n, r.Area)
		f.SetCellValue(sheet, "C"+n, r.Rate)
		f.SetCellValue(sheet, "D"+n, r.Amount)
		f.SetCellStyle(sheet, "A"+n, "A"+n, st.body)
		f.SetCellStyle(sheet, "B"+n, "D"+n, st.numeric)
		row++
	}

	row++
	for _, s := range [][2]string{
		{"Subtotal:", doc.Subtotal},
		{"Discount:", doc.Discount},
		{"Total:", doc.Total},
	} {
		n := fmt.Sprint(row)
		f.SetCellValue(sheet, "C"+n, s[0])
		f.SetCellStyle(sheet, "C"+n, "C"+n, st.label)
		f.SetCellValue(sheet, "D"+n, s[1])
		f.SetCellStyle(sheet, "D"+n, "D"+n, st.value)
		row++
	}

	if doc.Notes != "" {
		row++
		n := fmt.Sprint(row)
		if err := f.MergeCell(sheet, "A"+n, "D"+n); err != nil {
			return fmt.Errorf("merge notes: %w", err)
		}
		f.SetCellValue(sheet, "A"+n, sanitizeExcelCell(doc.Notes))
	}

	return nil
}

func writeTermsSheet(f *excelize.File, st styles, doc invoice.Document) error {
	if _, err := f.NewSheet(termsSheet); err != nil {
		return fmt.Errorf("create terms sheet: %w", err)
	}
	if err := f.SetColWidth(termsSheet, "A", "A", 90); err != nil {
		return fmt.Errorf("set terms width: %w", err)
	}

	row := 1
	for _, section := range doc.Terms {
		cell := fmt.Sprintf("A%d", row)
		f.SetCellValue(termsSheet, cell, sanitizeExcelCell(section.Title))
		f.SetCellStyle(termsSheet, cell, cell, st.label)
		row++
		for _, item := range section.Items {
			f.SetCellValue(termsSheet, fmt.Sprintf("A%d", row), "• "+item)
			row++
		}
		row++
	}
	return nil
}

func writePackageSheet(f *excelize.File, st styles, b invoice.Banner) error {
	if _, err := f.NewSheet(packageSheet); err != nil {
		return fmt.Errorf("create package sheet: %w", err)
	}
	if err := f.SetColWidth(packageSheet, "A", "A", 24); err != nil {
		return fmt.Errorf("set package width: %w", err)
	}
	if err := f.SetColWidth(packageSheet, "B", "B", 70); err != nil {
		return fmt.Errorf("set package width: %w", err)
	}

	f.SetCellValue(packageSheet, "A1", sanitizeExcelCell(b.PackageName))
	f.SetCellStyle(packageSheet, "A1", "A1", st.title)

	pairs := [][2]string{
		{"Client Name", sanitizeExcelCell(b.ClientName)},
		{"Project Name", sanitizeExcelCell(b.ProjectName)},
		{"Date", b.Date},
		{"Interior Rate", b.InteriorRate},
	}
	if b.ElevationRate != "" {
		pairs = append(pairs, [2]string{"Elevation Rate", b.ElevationRate})
	}
	pairs = append(pairs,
		[2]string{"Site Area", b.SiteArea},
		[2]string{"Discount Range", b.DiscountRange},
		[2]string{"Subtotal", b.Subtotal},
		[2]string{b.DiscountLabel, b.Discount},
		[2]string{"Total Investment", b.Total},
	)

	row := 3
	for _, p := range pairs {
		n := fmt.Sprint(row)
		f.SetCellValue(packageSheet, "A"+n, p[0])
		f.SetCellStyle(packageSheet, "A"+n, "A"+n, st.body)
		f.SetCellValue(packageSheet, "B"+n, p[1])
		f.SetCellStyle(packageSheet, "B"+n, "B"+n, st.body)
		row++
	}

	row++
	f.SetCellValue(packageSheet, fmt.Sprintf("A%d", row), "What's Included")
	row++
	for _, feature := range b.Features {
		f.SetCellValue(packageSheet, fmt.Sprintf("B%d", row), sanitizeExcelCell(feature))
		row++
	}
	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
