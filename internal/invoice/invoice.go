// Package invoice turns a computed breakdown into display-ready text: the
// document shared by the HTML page, the PDF, the spreadsheet and the plain
// text renderings.
package invoice

import (
	"strconv"
	"strings"
	"time"

	"github.com/designaurora/quotecalc/internal/catalog"
	"github.com/designaurora/quotecalc/internal/pricing"
)

const (
	// DefaultBrand prefixes exported filenames.
	DefaultBrand = "DesignAurora"

	idLayout       = "INV-060102-1504"
	dateLayout     = "Jan 02, 2006"
	fileDateLayout = "2006-01-02"

	// EmptyMessage is shown in place of the table when nothing is billable.
	EmptyMessage = "Please enter at least one rate and area to generate an invoice."
)

// Row is one formatted invoice line.
type Row struct {
	Kind        pricing.Kind `json:"kind"`
	Description string       `json:"description"`
	Area        string       `json:"area"`
	Rate        string       `json:"rate"`
	Amount      string       `json:"amount"`
}

// Banner is the promotional summary shown when a package drives the quote.
type Banner struct {
	PackageName   string   `json:"packageName"`
	ClientName    string   `json:"clientName"`
	ProjectName   string   `json:"projectName"`
	Date          string   `json:"date"`
	InteriorRate  string   `json:"interiorRate"`
	ElevationRate string   `json:"elevationRate,omitempty"`
	SiteArea      string   `json:"siteArea"`
	DiscountRange string   `json:"discountRange"`
	Subtotal      string   `json:"subtotal"`
	DiscountLabel string   `json:"discountLabel"`
	Discount      string   `json:"discount"`
	Total         string   `json:"total"`
	Features      []string `json:"features"`
	Rules         []string `json:"rules"`
}

// Document is everything a renderer needs to draw one invoice.
type Document struct {
	Brand     string                 `json:"brand"`
	InvoiceID string                 `json:"invoiceId"`
	Date      string                 `json:"date"`
	Project   string                 `json:"project"`
	Client    string                 `json:"client"`
	Rows      []Row                  `json:"rows"`
	Subtotal  string                 `json:"subtotal"`
	Discount  string                 `json:"discount"`
	Total     string                 `json:"total"`
	Notes     string                 `json:"notes"`
	Terms     []catalog.TermsSection `json:"terms"`
	Banner    *Banner                `json:"banner,omitempty"`
	Filename  string                 `json:"filename"`
}

// Empty reports whether the document has no billable rows.
func (d Document) Empty() bool {
	return len(d.Rows) == 0
}

// Renderer builds documents with a fixed brand and number format.
type Renderer struct {
	Brand    string
	Grouping Grouping
	// GeneralTerms defaults to catalog.GeneralTerms when nil.
	GeneralTerms []string
}

// Build renders with the default brand and Indian grouping.
func Build(in pricing.ProjectInput, b pricing.Breakdown, pkg *catalog.Package, now time.Time) Document {
	return Renderer{}.Build(in, b, pkg, now)
}

// Filename returns the export filename for the default brand.
func Filename(in pricing.ProjectInput, pkg *catalog.Package, now time.Time) string {
	return Renderer{}.Filename(in, pkg, now)
}

// Build formats the breakdown of in. pkg is the package the quote was made
// with, or nil.
func (r Renderer) Build(in pricing.ProjectInput, b pricing.Breakdown, pkg *catalog.Package, now time.Time) Document {
	f := Formatter{Currency: in.Currency, Grouping: r.Grouping}

	doc := Document{
		Brand:     r.brand(),
		InvoiceID: now.Format(idLayout),
		Date:      now.Format(dateLayout),
		Project:   "Project: " + orDash(in.ProjectName),
		Client:    "Client: " + orDash(in.ClientName),
		Rows:      make([]Row, 0, len(b.Items)),
		Subtotal:  f.Money(b.Subtotal),
		Discount:  Dash,
		Total:     f.Money(b.Total),
		Notes:     notes(in, f),
		Terms:     catalog.Terms(pkg, r.generalTerms()),
		Filename:  r.Filename(in, pkg, now),
	}

	for _, item := range b.Items {
		doc.Rows = append(doc.Rows, row(item, f))
	}

	if b.DiscountAmount != 0 {
		doc.Discount = f.Money(b.DiscountAmount) + " (" + plain(in.DiscountPercent) + "%)"
	}

	if pkg != nil {
		doc.Banner = banner(in, b, *pkg, f, doc.Date)
	}

	return doc
}

// Filename is DesignAurora_<Package>_<Client>_<YYYY-MM-DD>.pdf with every
// character outside [A-Za-z0-9] replaced by an underscore.
func (r Renderer) Filename(in pricing.ProjectInput, pkg *catalog.Package, now time.Time) string {
	packageName := "Package"
	if pkg != nil {
		packageName = safeName(pkg.Name)
	}
	clientName := "Client"
	if in.ClientName != "" {
		clientName = safeName(in.ClientName)
	}
	return safeName(r.brand()) + "_" + packageName + "_" + clientName + "_" + now.Format(fileDateLayout) + ".pdf"
}

func (r Renderer) brand() string {
	if r.Brand == "" {
		return DefaultBrand
	}
	return r.Brand
}

func (r Renderer) generalTerms() []string {
	if r.GeneralTerms == nil {
		return catalog.GeneralTerms
	}
	return r.GeneralTerms
}

func row(item pricing.LineItem, f Formatter) Row {
	out := Row{
		Kind:        item.Kind,
		Description: item.Description,
		Area:        Dash,
		Rate:        Dash,
		Amount:      f.Money(item.Amount),
	}
	if item.Area != nil {
		out.Area = f.Number(*item.Area)
	}
	if item.Rate != 0 {
		out.Rate = f.Money(item.Rate)
	}
	return out
}

func notes(in pricing.ProjectInput, f Formatter) string {
	parts := make([]string, 0, 2)
	if in.SiteArea != 0 {
		parts = append(parts, "Total site area considered: "+f.Number(in.SiteArea)+" sq ft")
	}
	if in.DiscountPercent != 0 {
		parts = append(parts, "Discount applied: "+Percent(in.DiscountPercent)+"%")
	}
	return strings.Join(parts, " • ")
}

func banner(in pricing.ProjectInput, b pricing.Breakdown, pkg catalog.Package, f Formatter, date string) *Banner {
	bn := &Banner{
		PackageName:   pkg.Name,
		ClientName:    orDash(in.ClientName),
		ProjectName:   orDash(in.ProjectName),
		Date:          date,
		InteriorRate:  in.Currency + plain(pkg.InteriorRate) + "/sq ft",
		SiteArea:      f.Number(in.SiteArea) + " sq ft",
		DiscountRange: plain(pkg.DiscountMin) + "% - " + plain(pkg.DiscountMax) + "%",
		Subtotal:      f.Money(b.Subtotal),
		DiscountLabel: "Discount (" + plain(in.DiscountPercent) + "%)",
		Discount:      "- " + f.Money(b.DiscountAmount),
		Total:         f.Money(b.Total),
		Features:      append([]string(nil), pkg.Features...),
		Rules:         append([]string(nil), pkg.Rules...),
	}
	if pkg.OffersElevation() {
		bn.ElevationRate = in.Currency + plain(pkg.ElevationRate) + "/sq ft"
	}
	return bn
}

func orDash(s string) string {
	if s == "" {
		return Dash
	}
	return s
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func safeName(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			continue
		}
		sb.WriteByte('_')
	}
	return sb.String()
}
