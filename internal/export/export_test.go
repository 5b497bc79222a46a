package export

import (
	"bytes"
	"compress/zlib"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/designaurora/quotecalc/internal/catalog"
	"github.com/designaurora/quotecalc/internal/invoice"
	"github.com/designaurora/quotecalc/internal/pricing"
)

func sampleDocument(t *testing.T, withPackage bool) invoice.Document {
	t.Helper()

	in := pricing.ProjectInput{
		ClientName:      "=HYPERLINK(\"x\")",
		ProjectName:     "Lake View Villa",
		Currency:        "₹",
		SiteArea:        1000,
		DiscountPercent: 7,
		ElevationArea:   500,
		ElevationRate:   12,
		InteriorArea:    1000,
		InteriorRate:    25,
		ExtraItems: []pricing.ExtraItem{
			{Description: "3D walkthrough", Rate: 5000},
		},
	}

	var pkg *catalog.Package
	if withPackage {
		p, ok := catalog.Default().Lookup("standard")
		if !ok {
			t.Fatal("standard package missing")
		}
		pkg = &p
	}
	now := time.Date(2025, time.March, 7, 9, 5, 0, 0, time.UTC)
	return invoice.Build(in, pricing.ComputeBreakdown(in), pkg, now)
}

func TestPDF(t *testing.T) {
	tests := []struct {
		name string
		doc  invoice.Document
	}{
		{"without package", sampleDocument(t, false)},
		{"with package banner", sampleDocument(t, true)},
		{"empty", invoice.Build(pricing.ProjectInput{}, pricing.ComputeBreakdown(pricing.ProjectInput{}), nil, time.Now())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := PDF(tt.doc)
			if err != nil {
				t.Fatalf("PDF() error = %v", err)
			}
			if len(result) < 5 {
				t.Fatal("PDF() returned too few bytes")
			}
			if string(result[:5]) != "%PDF-" {
				t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
			}
		})
	}
}

var pdfStream = regexp.MustCompile(`(?s)stream\r?\n(.*?)\r?\nendstream`)

// pdfContent returns the raw PDF followed by every stream that inflates.
func pdfContent(t *testing.T, data []byte) string {
	t.Helper()
	var sb strings.Builder
	sb.Write(data)
	for _, m := range pdfStream.FindAllSubmatch(data, -1) {
		r, err := zlib.NewReader(bytes.NewReader(m[1]))
		if err != nil {
			continue
		}
		inflated, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}
		sb.Write(inflated)
	}
	return sb.String()
}

func TestPDF_CurrencySymbol(t *testing.T) {
	result, err := PDF(sampleDocument(t, true))
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}

	content := pdfContent(t, result)
	for _, want := range []string{"(Rs. 33,480.00)", "(Rs. 36,000.00)", "(Rs.25/sq ft)"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected PDF text %q", want)
		}
	}
	if strings.Contains(content, "(. 33,480.00)") {
		t.Errorf("currency symbol was dropped")
	}
}

func TestExcel(t *testing.T) {
	result, err := Excel(sampleDocument(t, true))
	if err != nil {
		t.Fatalf("Excel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{invoiceSheet, termsSheet, packageSheet}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Fatalf("sheets = %v, want %v", sheets, want)
		}
	}

	if got, _ := f.GetCellValue(invoiceSheet, "A1"); got != "DesignAurora" {
		t.Errorf("A1 = %q", got)
	}
	if got, _ := f.GetCellValue(invoiceSheet, "A7"); got != "Elevation Design" {
		t.Errorf("A7 = %q", got)
	}
	if got, _ := f.GetCellValue(invoiceSheet, "D8"); got != "₹ 25,000.00" {
		t.Errorf("D8 = %q", got)
	}
	if got, _ := f.GetCellValue(invoiceSheet, "D13"); got != "₹ 33,480.00" {
		t.Errorf("D13 (total) = %q", got)
	}
	if got, _ := f.GetCellValue(termsSheet, "A1"); got != "Standard Package - Project Guidelines:" {
		t.Errorf("terms A1 = %q", got)
	}
	if got, _ := f.GetCellValue(packageSheet, "B3"); !strings.HasPrefix(got, "'=") {
		t.Errorf("client name not sanitized: %q", got)
	}
}

func TestExcel_EmptyWithoutPackage(t *testing.T) {
	doc := invoice.Build(pricing.ProjectInput{}, pricing.ComputeBreakdown(pricing.ProjectInput{}), nil, time.Now())

	result, err := Excel(doc)
	if err != nil {
		t.Fatalf("Excel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	if n := len(f.GetSheetList()); n != 2 {
		t.Errorf("sheets = %d, want 2", n)
	}
	if got, _ := f.GetCellValue(invoiceSheet, "A7"); got != invoice.EmptyMessage {
		t.Errorf("A7 = %q", got)
	}
}

func TestText(t *testing.T) {
	out := Text(sampleDocument(t, true))

	for _, want := range []string{
		"INV-250307-0905",
		"Project: Lake View Villa",
		"Elevation Design",
		"₹ 6,000.00",
		"Subtotal: ₹ 36,000.00",
		"Discount: ₹ 2,520.00 (7%)",
		"Total:    ₹ 33,480.00",
		"Total site area considered: 1,000 sq ft • Discount applied: 7.00%",
		"Standard Package - Project Guidelines:",
		"General Terms:",
		"STANDARD PACKAGE",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text invoice missing %q\n%s", want, out)
		}
	}
	if strings.Index(out, "Project Guidelines") > strings.Index(out, "General Terms") {
		t.Error("package terms must precede general terms")
	}
}

func TestText_Empty(t *testing.T) {
	out := Text(invoice.Build(pricing.ProjectInput{}, pricing.ComputeBreakdown(pricing.ProjectInput{}), nil, time.Now()))
	if !strings.Contains(out, invoice.EmptyMessage) {
		t.Errorf("expected empty message, got\n%s", out)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1", "'+1"},
		{"-1", "'-1"},
		{"@cmd", "'@cmd"},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.input); got != tt.want {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
