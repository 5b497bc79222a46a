package invoice

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Grouping selects how the integer part of a number is split by commas.
type Grouping string

const (
	// GroupingIndian groups the last three digits, then pairs (1,23,456).
	GroupingIndian Grouping = "indian"
	// GroupingWestern groups by thousands (123,456).
	GroupingWestern Grouping = "western"
)

// ParseGrouping returns GroupingWestern for "western" and GroupingIndian otherwise.
func ParseGrouping(s string) Grouping {
	if strings.EqualFold(strings.TrimSpace(s), string(GroupingWestern)) {
		return GroupingWestern
	}
	return GroupingIndian
}

// Formatter renders money and areas for display.
type Formatter struct {
	Currency string
	Grouping Grouping
}

// Dash marks a value that is absent or cannot be displayed.
const Dash = "–"

// Money formats v as "<currency> <amount>" with exactly two decimals.
// Halves round away from zero.
func (f Formatter) Money(v float64) string {
	if !finite(v) {
		return Dash
	}
	amount := f.group(decimal.NewFromFloat(v).StringFixed(2))
	if f.Currency == "" {
		return amount
	}
	return f.Currency + " " + amount
}

// Number formats v with at most two decimals and no trailing zeros.
func (f Formatter) Number(v float64) string {
	if !finite(v) {
		return Dash
	}
	return f.group(decimal.NewFromFloat(v).Round(2).String())
}

// Percent formats a percentage with exactly two decimals, without the sign.
func Percent(v float64) string {
	if !finite(v) {
		return Dash
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// group inserts separators into the integer part of a plain decimal string.
func (f Formatter) group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, frac, hasFrac := strings.Cut(s, ".")

	switch f.Grouping {
	case GroupingWestern:
		if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
			intPart = humanize.Comma(n)
		}
	default:
		intPart = applyIndianGrouping(intPart)
	}

	if hasFrac {
		return sign + intPart + "." + frac
	}
	return sign + intPart
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
