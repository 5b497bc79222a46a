package catalog

// Form field names that a package selection locks.
const (
	FieldInteriorRate   = "interior_rate"
	FieldElevationArea  = "elevation_area"
	FieldElevationRate  = "elevation_rate"
	FieldElevationNotes = "elevation_notes"
)

// Selection is what the calculator form does when a package is confirmed:
// rates to prefill, the allowed discount range and which inputs to lock.
type Selection struct {
	PackageKey     string   `json:"packageKey"`
	InteriorRate   float64  `json:"interiorRate"`
	ElevationRate  float64  `json:"elevationRate"`
	DiscountMin    float64  `json:"discountMin"`
	DiscountMax    float64  `json:"discountMax"`
	Discount       float64  `json:"discount"`
	ReadOnlyFields []string `json:"readOnlyFields"`
	DisabledFields []string `json:"disabledFields"`
}

// Disabled reports whether field is disabled by the selection.
func (s Selection) Disabled(field string) bool {
	for _, f := range s.DisabledFields {
		if f == field {
			return true
		}
	}
	return false
}

// ReadOnly reports whether field is locked to the package value.
func (s Selection) ReadOnly(field string) bool {
	for _, f := range s.ReadOnlyFields {
		if f == field {
			return true
		}
	}
	return false
}

// Apply returns the form changes implied by choosing pkg.
// The interior rate always becomes read-only. The elevation rate is locked
// when offered; otherwise every elevation input is disabled and cleared.
func Apply(pkg Package) Selection {
	sel := Selection{
		PackageKey:     pkg.Key,
		InteriorRate:   pkg.InteriorRate,
		DiscountMin:    pkg.DiscountMin,
		DiscountMax:    pkg.DiscountMax,
		Discount:       pkg.DiscountMin,
		ReadOnlyFields: []string{FieldInteriorRate},
		DisabledFields: []string{},
	}

	if pkg.OffersElevation() {
		sel.ElevationRate = pkg.ElevationRate
		sel.ReadOnlyFields = append(sel.ReadOnlyFields, FieldElevationRate)
	} else {
		sel.DisabledFields = append(sel.DisabledFields, FieldElevationArea, FieldElevationRate, FieldElevationNotes)
	}

	return sel
}

// ClampDiscount bounds pct to the package's discount range.
func ClampDiscount(pkg Package, pct float64) float64 {
	if pct < pkg.DiscountMin {
		return pkg.DiscountMin
	}
	if pct > pkg.DiscountMax {
		return pkg.DiscountMax
	}
	return pct
}
