// Package catalog holds the design package tiers offered by the studio and
// the pure transforms the calculator form applies when one is selected.
package catalog

import (
	"errors"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrNotFound is returned when a package key is not part of the catalog.
var ErrNotFound = errors.New("package not found")

// Package is a predefined pricing tier.
// An ElevationRate of 0 means elevation design is not offered.
type Package struct {
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	InteriorRate  float64  `json:"interiorRate"`
	ElevationRate float64  `json:"elevationRate"`
	DiscountMin   float64  `json:"discountMin"`
	DiscountMax   float64  `json:"discountMax"`
	Features      []string `json:"features"`
	Rules         []string `json:"rules"`
}

// OffersElevation reports whether the package includes elevation design.
func (p Package) OffersElevation() bool {
	return p.ElevationRate > 0
}

// Validate checks the package definition, including DiscountMin <= DiscountMax.
func (p Package) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Key, validation.Required),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.InteriorRate, validation.Min(0.0)),
		validation.Field(&p.ElevationRate, validation.Min(0.0)),
		validation.Field(&p.DiscountMin, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&p.DiscountMax,
			validation.Min(0.0),
			validation.Max(100.0),
			validation.By(func(any) error {
				if p.DiscountMax < p.DiscountMin {
					return errors.New("must be greater than or equal to discountMin")
				}
				return nil
			}),
		),
	)
}

func (p Package) clone() Package {
	p.Features = slices.Clone(p.Features)
	p.Rules = slices.Clone(p.Rules)
	return p
}

// Catalog is an ordered, read-only set of packages.
type Catalog struct {
	packages []Package
}

// New builds a catalog from pkgs, keeping their order. Every package must
// validate and keys must be unique.
func New(pkgs ...Package) (Catalog, error) {
	seen := make(map[string]bool, len(pkgs))
	out := make([]Package, 0, len(pkgs))
	for _, p := range pkgs {
		if err := p.Validate(); err != nil {
			return Catalog{}, err
		}
		if seen[p.Key] {
			return Catalog{}, errors.New("duplicate package key " + p.Key)
		}
		seen[p.Key] = true
		out = append(out, p.clone())
	}
	return Catalog{packages: out}, nil
}

// Packages returns a copy of the packages in catalog order.
func (c Catalog) Packages() []Package {
	out := make([]Package, len(c.packages))
	for i, p := range c.packages {
		out[i] = p.clone()
	}
	return out
}

// Lookup returns the package registered under key.
func (c Catalog) Lookup(key string) (Package, bool) {
	for _, p := range c.packages {
		if p.Key == key {
			return p.clone(), true
		}
	}
	return Package{}, false
}

// Len returns the number of packages.
func (c Catalog) Len() int {
	return len(c.packages)
}

// Default returns the built-in catalog: basic, standard and luxury.
func Default() Catalog {
	c, err := New(defaultPackages()...)
	if err != nil {
		panic("catalog: invalid built-in package: " + err.Error())
	}
	return c
}

func defaultPackages() []Package {
	return []Package{
		{
			Key:           "basic",
			Name:          "Basic Package",
			InteriorRate:  15,
			ElevationRate: 0,
			DiscountMin:   5,
			DiscountMax:   5,
			Features: []string{
				"Basic interior design planning",
				"2D floor plans",
				"Basic material recommendations",
			},
			Rules: []string{
				"Elevation design is not included in this package",
				"Interior rate is fixed at ₹15 per sq ft",
				"Standard discount of 5% applies",
				"1 revision included",
				"Suitable for small to medium projects",
			},
		},
		{
			Key:           "standard",
			Name:          "Standard Package",
			InteriorRate:  25,
			ElevationRate: 12,
			DiscountMin:   5,
			DiscountMax:   7,
			Features: []string{
				"Complete interior design",
				"3D renderings",
				"Detailed material schedule",
				"Elevation design (₹12/sq ft)",
				"2 revisions included",
			},
			Rules: []string{
				"Interior rate fixed at ₹25 per sq ft",
				"Elevation rate fixed at ₹12 per sq ft (optional)",
				"Discount range: 5% to 7%",
				"2 design revisions included",
				"Best for medium-sized residential projects",
			},
		},
		{
			Key:           "luxury",
			Name:          "Luxury Package",
			InteriorRate:  40,
			ElevationRate: 20,
			DiscountMin:   5,
			DiscountMax:   10,
			Features: []string{
				"Premium interior design",
				"Photorealistic 3D renders",
				"Custom material sourcing",
				"Premium elevation design (₹20/sq ft)",
				"Lighting design consultation",
				"Unlimited revisions",
				"Dedicated project manager",
			},
			Rules: []string{
				"Interior rate fixed at ₹40 per sq ft",
				"Elevation rate fixed at ₹20 per sq ft (optional)",
				"Discount range: 5% to 10%",
				"Unlimited design revisions",
				"Includes lighting and consultation services",
				"Dedicated project manager assigned",
				"Suitable for high-end luxury projects",
			},
		},
	}
}
