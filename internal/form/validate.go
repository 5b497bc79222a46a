package form

import (
	"errors"

	"github.com/designaurora/quotecalc/internal/pricing"
)

var (
	// ErrSiteAreaRequired is returned when no usable site area was entered.
	ErrSiteAreaRequired = errors.New("site area required")
	// ErrNothingToInvoice is returned when the input yields no billable line.
	ErrNothingToInvoice = errors.New("nothing to invoice")
)

// ValidationError carries a message meant for the person filling the form.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate reports why a submission cannot be turned into an invoice.
// A nil error means the breakdown has at least one line.
func Validate(in pricing.ProjectInput, b pricing.Breakdown, pt ProjectType) error {
	if in.SiteArea == 0 {
		return &ValidationError{Err: ErrSiteAreaRequired, Message: "Please enter the site area in sq ft."}
	}
	if b.Empty() {
		return &ValidationError{Err: ErrNothingToInvoice, Message: emptyMessage(pt)}
	}
	return nil
}

func emptyMessage(pt ProjectType) string {
	switch pt {
	case ProjectExterior:
		return "Please enter valid exterior/elevation area and rate."
	case ProjectInterior:
		return "Please enter valid interior area and rate."
	default:
		return "Please enter at least one valid rate and area (for Interior, Exterior, or an extra item)."
	}
}
