package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/designaurora/quotecalc/internal/catalog"
	"github.com/designaurora/quotecalc/internal/export"
	"github.com/designaurora/quotecalc/internal/form"
	"github.com/designaurora/quotecalc/internal/invoice"
	"github.com/designaurora/quotecalc/internal/pricing"
)

// calcOptions mirrors the calculator form. Numbers stay strings so the
// form rules for blank and malformed values apply unchanged.
type calcOptions struct {
	siteArea       string
	interiorArea   string
	interiorRate   string
	interiorNotes  string
	elevationArea  string
	elevationRate  string
	elevationNotes string
	discount       string
	packageKey     string
	projectType    string
	client         string
	project        string
	currency       string
	extras         []string

	pdfPath  string
	xlsxPath string
	asJSON   bool
}

type calcResult struct {
	Input     pricing.ProjectInput `json:"input"`
	Breakdown pricing.Breakdown    `json:"breakdown"`
	Document  invoice.Document     `json:"document"`
}

func newCalcCmd(a *app) *cobra.Command {
	opts := &calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute a quotation and print the invoice",
		Example: `  quotecalc calc --site-area 1000 --interior-rate 25 \
    --elevation-area 500 --elevation-rate 12 --discount 7 \
    --extra "3D walkthrough::5000" --client "Asha Rao" --pdf invoice.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCalc(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.siteArea, "site-area", "", "total site area in sq ft (required)")
	f.StringVar(&opts.interiorArea, "interior-area", "", "interior area in sq ft (defaults to the site area)")
	f.StringVar(&opts.interiorRate, "interior-rate", "", "interior design rate per sq ft")
	f.StringVar(&opts.interiorNotes, "interior-notes", "", "notes appended to the interior line")
	f.StringVar(&opts.elevationArea, "elevation-area", "", "elevation area in sq ft")
	f.StringVar(&opts.elevationRate, "elevation-rate", "", "elevation design rate per sq ft")
	f.StringVar(&opts.elevationNotes, "elevation-notes", "", "notes appended to the elevation line")
	f.StringVar(&opts.discount, "discount", "", "discount percentage")
	f.StringVar(&opts.packageKey, "package", "", "package key (basic, standard, luxury)")
	f.StringVar(&opts.projectType, "project-type", "full", "full, interior or exterior")
	f.StringVar(&opts.client, "client", "", "client name")
	f.StringVar(&opts.project, "project", "", "project name")
	f.StringVar(&opts.currency, "currency", "", "currency symbol")
	f.StringArrayVar(&opts.extras, "extra", nil, `extra item as "description:qty:rate" (repeatable)`)
	f.StringVar(&opts.pdfPath, "pdf", "", "write the invoice PDF to this file")
	f.StringVar(&opts.xlsxPath, "xlsx", "", "write the invoice spreadsheet to this file")
	f.BoolVar(&opts.asJSON, "json", false, "print input, breakdown and document as JSON")

	return cmd
}

func (a *app) runCalc(cmd *cobra.Command, opts *calcOptions) error {
	values, err := opts.values()
	if err != nil {
		return err
	}

	cat, err := a.catalog(cmd.Context())
	if err != nil {
		return err
	}

	var pkg *catalog.Package
	if opts.packageKey != "" {
		p, ok := cat.Lookup(opts.packageKey)
		if !ok {
			return fmt.Errorf("unknown package %q", opts.packageKey)
		}
		pkg = &p
	}

	pt := form.ParseProjectType(opts.projectType)
	in := form.Collect(values, form.Session{ProjectType: pt, Package: pkg, Currency: a.cfg.Currency})
	b := pricing.ComputeBreakdown(in)
	if err := form.Validate(in, b, pt); err != nil {
		return err
	}

	doc := a.renderer().Build(in, b, pkg, a.now())

	if opts.pdfPath != "" {
		body, err := export.PDF(doc)
		if err != nil {
			return err
		}
		if err := writeFile(cmd.ErrOrStderr(), opts.pdfPath, body); err != nil {
			return err
		}
	}
	if opts.xlsxPath != "" {
		body, err := export.Excel(doc)
		if err != nil {
			return err
		}
		if err := writeFile(cmd.ErrOrStderr(), opts.xlsxPath, body); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(calcResult{Input: in, Breakdown: b, Document: doc})
	}
	_, err = io.WriteString(out, export.Text(doc))
	return err
}

func (o *calcOptions) values() (url.Values, error) {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}

	set(form.FieldSiteArea, o.siteArea)
	set(form.FieldInteriorArea, o.interiorArea)
	set(form.FieldInteriorRate, o.interiorRate)
	set(form.FieldInteriorNotes, o.interiorNotes)
	set(form.FieldElevationArea, o.elevationArea)
	set(form.FieldElevationRate, o.elevationRate)
	set(form.FieldElevationNotes, o.elevationNotes)
	set(form.FieldDiscount, o.discount)
	set(form.FieldClientName, o.client)
	set(form.FieldProjectName, o.project)
	set(form.FieldCurrency, o.currency)

	for _, raw := range o.extras {
		desc, qty, rate, err := parseExtra(raw)
		if err != nil {
			return nil, err
		}
		v.Add(form.FieldExtraDesc, desc)
		v.Add(form.FieldExtraQty, qty)
		v.Add(form.FieldExtraRate, rate)
	}
	return v, nil
}

// parseExtra splits "description:qty:rate". The description may itself
// contain colons; qty and rate are the last two fields.
func parseExtra(raw string) (desc, qty, rate string, err error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 {
		return "", "", "", fmt.Errorf("invalid --extra %q: want description:qty:rate", raw)
	}
	n := len(parts)
	return strings.Join(parts[:n-2], ":"), parts[n-2], parts[n-1], nil
}

func writeFile(log io.Writer, path string, body []byte) error {
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(log, "wrote %s (%d bytes)\n", path, len(body))
	return nil
}
