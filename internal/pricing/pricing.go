package pricing

import "math"

const (
	elevationLabel = "Elevation Design"
	interiorLabel  = "Interior Design"
	noteSeparator  = " – "
)

// Kind identifies which section of the project a line item was derived from.
type Kind string

const (
	KindElevation Kind = "elevation"
	KindInterior  Kind = "interior"
	KindExtra     Kind = "extra"
)

// ExtraItem is a free-form billable entry added by the user.
type ExtraItem struct {
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	Rate        float64 `json:"rate"`
}

// ProjectInput is the normalized record produced by the form collector.
type ProjectInput struct {
	ClientName      string      `json:"clientName"`
	ProjectName     string      `json:"projectName"`
	Currency        string      `json:"currency"`
	SiteArea        float64     `json:"siteArea"`
	DiscountPercent float64     `json:"discountPercent"`
	ElevationArea   float64     `json:"elevationArea"`
	ElevationRate   float64     `json:"elevationRate"`
	ElevationNotes  string      `json:"elevationNotes"`
	InteriorArea    float64     `json:"interiorArea"`
	InteriorRate    float64     `json:"interiorRate"`
	InteriorNotes   string      `json:"interiorNotes"`
	ExtraItems      []ExtraItem `json:"extraItems"`
	PackageKey      string      `json:"selectedPackageKey,omitempty"`
}

// LineItem is one billable row of the invoice.
// A nil Area means the row has no area or quantity to show, which is
// different from a zero area.
type LineItem struct {
	Kind        Kind     `json:"kind"`
	Description string   `json:"description"`
	Area        *float64 `json:"area"`
	Rate        float64  `json:"rate"`
	Amount      float64  `json:"amount"`
}

// Breakdown is the priced result of a calculation.
type Breakdown struct {
	Items          []LineItem `json:"items"`
	Subtotal       float64    `json:"subtotal"`
	DiscountAmount float64    `json:"discountAmount"`
	Total          float64    `json:"total"`
}

// Empty reports whether nothing billable was derived from the input.
func (b Breakdown) Empty() bool {
	return len(b.Items) == 0
}

// ComputeBreakdown derives the invoice line items from in and totals them.
// Items are ordered elevation, interior, then extras in input order.
func ComputeBreakdown(in ProjectInput) Breakdown {
	items := make([]LineItem, 0, len(in.ExtraItems)+2)

	if in.ElevationArea > 0 && in.ElevationRate > 0 {
		items = append(items, LineItem{
			Kind:        KindElevation,
			Description: describe(elevationLabel, in.ElevationNotes),
			Area:        areaOf(in.ElevationArea),
			Rate:        in.ElevationRate,
			Amount:      in.ElevationArea * in.ElevationRate,
		})
	}

	if in.InteriorArea > 0 && in.InteriorRate > 0 {
		items = append(items, LineItem{
			Kind:        KindInterior,
			Description: describe(interiorLabel, in.InteriorNotes),
			Area:        areaOf(in.InteriorArea),
			Rate:        in.InteriorRate,
			Amount:      in.InteriorArea * in.InteriorRate,
		})
	}

	for _, extra := range in.ExtraItems {
		items = append(items, extraLine(extra))
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Amount
	}

	discountAmount := subtotal * (finiteOrZero(in.DiscountPercent) / 100.0)

	return Breakdown{
		Items:          items,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          subtotal - discountAmount,
	}
}

// extraLine bills a rate-only item once and a quantity-only item at zero.
func extraLine(extra ExtraItem) LineItem {
	qty := 1.0
	if extra.Qty > 0 {
		qty = extra.Qty
	}
	rate := 0.0
	if extra.Rate > 0 {
		rate = extra.Rate
	}

	var area *float64
	if extra.Qty != 0 && !math.IsNaN(extra.Qty) {
		area = areaOf(extra.Qty)
	}

	return LineItem{
		Kind:        KindExtra,
		Description: extra.Description,
		Area:        area,
		Rate:        extra.Rate,
		Amount:      qty * rate,
	}
}

func describe(label, notes string) string {
	if notes == "" {
		return label
	}
	return label + noteSeparator + notes
}

func areaOf(v float64) *float64 {
	return &v
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
