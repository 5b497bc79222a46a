package form

import (
	"math"
	"strings"

	"github.com/designaurora/quotecalc/internal/pricing"
)

// Normalize applies the rules every project input obeys before pricing,
// whatever it was collected from. Text is trimmed, non-finite numbers
// become zero and an extra item is kept only when it has a description and
// a positive qty or rate. in is not modified.
func Normalize(in pricing.ProjectInput) pricing.ProjectInput {
	out := in
	out.ClientName = strings.TrimSpace(in.ClientName)
	out.ProjectName = strings.TrimSpace(in.ProjectName)
	out.Currency = strings.TrimSpace(in.Currency)
	out.ElevationNotes = strings.TrimSpace(in.ElevationNotes)
	out.InteriorNotes = strings.TrimSpace(in.InteriorNotes)
	out.PackageKey = strings.TrimSpace(in.PackageKey)

	out.SiteArea = finite(in.SiteArea)
	out.DiscountPercent = finite(in.DiscountPercent)
	out.ElevationArea = finite(in.ElevationArea)
	out.ElevationRate = finite(in.ElevationRate)
	out.InteriorArea = finite(in.InteriorArea)
	out.InteriorRate = finite(in.InteriorRate)

	out.ExtraItems = make([]pricing.ExtraItem, 0, len(in.ExtraItems))
	for _, extra := range in.ExtraItems {
		item := pricing.ExtraItem{
			Description: strings.TrimSpace(extra.Description),
			Qty:         finite(extra.Qty),
			Rate:        finite(extra.Rate),
		}
		if item.Description != "" && (item.Qty > 0 || item.Rate > 0) {
			out.ExtraItems = append(out.ExtraItems, item)
		}
	}
	return out
}

// Request is a project input as sent to the JSON API. A missing
// interiorArea means the site area and a missing elevationArea means 0,
// the same defaults the form applies to blank fields.
type Request struct {
	pricing.ProjectInput
	InteriorArea  *float64 `json:"interiorArea"`
	ElevationArea *float64 `json:"elevationArea"`
}

// Input resolves the area defaults and normalizes the result.
func (r Request) Input() pricing.ProjectInput {
	in := r.ProjectInput

	in.InteriorArea = in.SiteArea
	if r.InteriorArea != nil {
		in.InteriorArea = *r.InteriorArea
	}
	in.ElevationArea = 0
	if r.ElevationArea != nil {
		in.ElevationArea = *r.ElevationArea
	}

	return Normalize(in)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
