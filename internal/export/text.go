package export

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/designaurora/quotecalc/internal/invoice"
)

// Text renders doc as a plain-text invoice for terminals and email bodies.
func Text(doc invoice.Document) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s  %s\n", doc.Brand, doc.InvoiceID)
	fmt.Fprintf(&buf, "Date: %s\n", doc.Date)
	fmt.Fprintln(&buf, doc.Project)
	fmt.Fprintln(&buf, doc.Client)
	fmt.Fprintln(&buf)

	if doc.Empty() {
		fmt.Fprintln(&buf, invoice.EmptyMessage)
	} else {
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Description\tArea / Qty\tRate\tAmount\t")
		for _, r := range doc.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", r.Description, r.Area, r.Rate, r.Amount)
		}
		tw.Flush()
	}

	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Subtotal: %s\n", doc.Subtotal)
	fmt.Fprintf(&buf, "Discount: %s\n", doc.Discount)
	fmt.Fprintf(&buf, "Total:    %s\n", doc.Total)

	if doc.Notes != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, doc.Notes)
	}

	for _, section := range doc.Terms {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, section.Title)
		for _, item := range section.Items {
			fmt.Fprintf(&buf, "  • %s\n", item)
		}
	}

	if b := doc.Banner; b != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, strings.ToUpper(b.PackageName))
		fmt.Fprintf(&buf, "Interior Rate: %s\n", b.InteriorRate)
		if b.ElevationRate != "" {
			fmt.Fprintf(&buf, "Elevation Rate: %s\n", b.ElevationRate)
		}
		fmt.Fprintf(&buf, "Site Area: %s\n", b.SiteArea)
		fmt.Fprintf(&buf, "Discount Range: %s\n", b.DiscountRange)
		fmt.Fprintf(&buf, "Total Investment: %s\n", b.Total)
		for _, feature := range b.Features {
			fmt.Fprintf(&buf, "  + %s\n", feature)
		}
	}

	return buf.String()
}
