// Package form turns raw calculator form values into a pricing.ProjectInput.
// It owns every defaulting and leniency rule: malformed numbers become zero,
// text is trimmed and a selected package overrides the rate fields.
package form

import (
	"math"
	"net/url"
	"strings"

	"github.com/spf13/cast"

	"github.com/designaurora/quotecalc/internal/catalog"
	"github.com/designaurora/quotecalc/internal/pricing"
)

// Form field names.
const (
	FieldClientName     = "client_name"
	FieldProjectName    = "project_name"
	FieldCurrency       = "currency"
	FieldSiteArea       = "site_area"
	FieldDiscount       = "discount"
	FieldElevationArea  = catalog.FieldElevationArea
	FieldElevationRate  = catalog.FieldElevationRate
	FieldElevationNotes = catalog.FieldElevationNotes
	FieldInteriorArea   = "interior_area"
	FieldInteriorRate   = catalog.FieldInteriorRate
	FieldInteriorNotes  = "interior_notes"
	FieldExtraDesc      = "extra_desc"
	FieldExtraQty       = "extra_qty"
	FieldExtraRate      = "extra_rate"
	FieldProjectType    = "project_type"
	FieldPackage        = "package"
)

// DefaultCurrency is used when the currency field is left blank.
const DefaultCurrency = "₹"

// ProjectType narrows the form to one side of the project.
type ProjectType string

const (
	ProjectFull     ProjectType = "full"
	ProjectInterior ProjectType = "interior"
	ProjectExterior ProjectType = "exterior"
)

// ParseProjectType returns the matching project type, ProjectFull otherwise.
func ParseProjectType(s string) ProjectType {
	switch ProjectType(strings.ToLower(strings.TrimSpace(s))) {
	case ProjectInterior:
		return ProjectInterior
	case ProjectExterior:
		return ProjectExterior
	default:
		return ProjectFull
	}
}

// Session is the calculator state owned by the caller for one submission:
// the project type and the confirmed package, if any.
type Session struct {
	ProjectType ProjectType
	Package     *catalog.Package
	// Currency replaces DefaultCurrency when the form leaves it blank.
	Currency string
}

// ParseNumber converts a raw field to a number. Blank, malformed and
// non-finite values are zero.
func ParseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Collect builds the project input from raw form values and normalizes it.
// values is not modified.
func Collect(values url.Values, s Session) pricing.ProjectInput {
	v := cloneValues(values)

	if s.Package != nil {
		ApplySelection(v, *s.Package)
	}
	applyProjectType(v, s.ProjectType)

	siteArea := ParseNumber(v.Get(FieldSiteArea))

	currency := strings.TrimSpace(v.Get(FieldCurrency))
	if currency == "" {
		currency = s.Currency
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	elevationArea := 0.0
	if raw := v.Get(FieldElevationArea); raw != "" {
		elevationArea = ParseNumber(raw)
	}

	interiorArea := siteArea
	if raw := v.Get(FieldInteriorArea); raw != "" {
		interiorArea = ParseNumber(raw)
	}

	in := pricing.ProjectInput{
		ClientName:      strings.TrimSpace(v.Get(FieldClientName)),
		ProjectName:     strings.TrimSpace(v.Get(FieldProjectName)),
		Currency:        currency,
		SiteArea:        siteArea,
		DiscountPercent: ParseNumber(v.Get(FieldDiscount)),
		ElevationArea:   elevationArea,
		ElevationRate:   ParseNumber(v.Get(FieldElevationRate)),
		ElevationNotes:  strings.TrimSpace(v.Get(FieldElevationNotes)),
		InteriorArea:    interiorArea,
		InteriorRate:    ParseNumber(v.Get(FieldInteriorRate)),
		InteriorNotes:   strings.TrimSpace(v.Get(FieldInteriorNotes)),
		ExtraItems:      collectExtraItems(v),
	}
	if s.Package != nil {
		in.PackageKey = s.Package.Key
	}
	return Normalize(in)
}

// ExtraRow is one raw extra item row of the form.
type ExtraRow struct {
	Desc string
	Qty  string
	Rate string
}

// ExtraRows pairs the repeated extra_* fields by position.
func ExtraRows(v url.Values) []ExtraRow {
	descs := v[FieldExtraDesc]
	qtys := v[FieldExtraQty]
	rates := v[FieldExtraRate]

	rows := make([]ExtraRow, 0, len(descs))
	for i, desc := range descs {
		rows = append(rows, ExtraRow{Desc: desc, Qty: at(qtys, i), Rate: at(rates, i)})
	}
	return rows
}

func collectExtraItems(v url.Values) []pricing.ExtraItem {
	rows := ExtraRows(v)
	items := make([]pricing.ExtraItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, pricing.ExtraItem{
			Description: row.Desc,
			Qty:         ParseNumber(row.Qty),
			Rate:        ParseNumber(row.Rate),
		})
	}
	return items
}

// ApplySelection writes the package rates over the rate fields of v, clears
// the fields the package disables and keeps the discount inside the package
// range. A blank discount becomes the package default.
func ApplySelection(v url.Values, pkg catalog.Package) {
	sel := catalog.Apply(pkg)

	v.Set(FieldInteriorRate, cast.ToString(sel.InteriorRate))
	if pkg.OffersElevation() {
		v.Set(FieldElevationRate, cast.ToString(sel.ElevationRate))
	}
	for _, field := range sel.DisabledFields {
		v.Set(field, "")
	}

	if strings.TrimSpace(v.Get(FieldDiscount)) == "" {
		v.Set(FieldDiscount, cast.ToString(sel.Discount))
		return
	}
	discount := catalog.ClampDiscount(pkg, ParseNumber(v.Get(FieldDiscount)))
	v.Set(FieldDiscount, cast.ToString(discount))
}

func applyProjectType(v url.Values, pt ProjectType) {
	switch pt {
	case ProjectExterior:
		v.Set(FieldInteriorArea, "")
		v.Set(FieldInteriorRate, "0")
	case ProjectInterior:
		v.Set(FieldElevationArea, "")
		v.Set(FieldElevationRate, "")
	}
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, vs := range values {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
