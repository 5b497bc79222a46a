package main

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/designaurora/quotecalc/internal/catalog"
	"github.com/designaurora/quotecalc/internal/export"
	"github.com/designaurora/quotecalc/internal/form"
	"github.com/designaurora/quotecalc/internal/invoice"
	"github.com/designaurora/quotecalc/internal/pricing"
)

var (
	errInvalidForm    = errors.New("invalid form")
	errUnknownPackage = errors.New("unknown package")
)

type homeViewData struct {
	baseViewData
	Currency    string
	Packages    []catalog.Package
	Selected    *catalog.Package
	Selection   *catalog.Selection
	Values      url.Values
	ProjectType form.ProjectType
	Extras      []form.ExtraRow
}

type invoiceViewData struct {
	baseViewData
	Doc    invoice.Document
	Values url.Values
}

// quote is one run of the collect, validate, compute and render pipeline.
type quote struct {
	catalog   catalog.Catalog
	values    url.Values
	pkg       *catalog.Package
	input     pricing.ProjectInput
	breakdown pricing.Breakdown
	doc       invoice.Document
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Load(r.Context())
	if err != nil {
		slog.Error("load catalog", "error", err)
		http.Error(w, "failed to load packages", http.StatusInternalServerError)
		return
	}

	values := url.Values{}
	data := s.homeView(r, cat, values, nil)

	if key := strings.TrimSpace(r.URL.Query().Get(form.FieldPackage)); key != "" {
		pkg, ok := cat.Lookup(key)
		if !ok {
			data.ErrorMessage = "Unknown package: " + key
		} else {
			data = s.homeView(r, cat, values, &pkg)
		}
	}

	s.renderTemplate(w, http.StatusOK, "home.html", data)
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q, ok := s.quoteOrFail(w, r)
	if !ok {
		return
	}
	s.renderTemplate(w, http.StatusOK, "invoice.html", invoiceViewData{
		baseViewData: s.base(r),
		Doc:          q.doc,
		Values:       q.values,
	})
}

// handleQuoteEdit redisplays the form with the submitted values.
func (s *server) handleQuoteEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	cat, err := s.store.Load(r.Context())
	if err != nil {
		slog.Error("load catalog", "error", err)
		http.Error(w, "failed to load packages", http.StatusInternalServerError)
		return
	}

	var pkg *catalog.Package
	if p, ok := cat.Lookup(strings.TrimSpace(r.PostForm.Get(form.FieldPackage))); ok {
		pkg = &p
	}
	s.renderTemplate(w, http.StatusOK, "home.html", s.homeView(r, cat, r.PostForm, pkg))
}

func (s *server) handleQuotePDF(w http.ResponseWriter, r *http.Request) {
	q, ok := s.quoteOrFail(w, r)
	if !ok {
		return
	}

	body, err := export.PDF(q.doc)
	if err != nil {
		slog.Error("render pdf", "invoice_id", q.doc.InvoiceID, "error", err)
		http.Error(w, "failed to render pdf", http.StatusInternalServerError)
		return
	}
	writeDownload(w, "application/pdf", q.doc.Filename, body)
}

func (s *server) handleQuoteExcel(w http.ResponseWriter, r *http.Request) {
	q, ok := s.quoteOrFail(w, r)
	if !ok {
		return
	}

	body, err := export.Excel(q.doc)
	if err != nil {
		slog.Error("render xlsx", "invoice_id", q.doc.InvoiceID, "error", err)
		http.Error(w, "failed to render spreadsheet", http.StatusInternalServerError)
		return
	}
	filename := strings.TrimSuffix(q.doc.Filename, ".pdf") + ".xlsx"
	writeDownload(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, body)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	q, ok := s.quoteOrFail(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(export.Text(q.doc)))
}

// quoteOrFail runs the pipeline and writes the failure response itself.
// Validation failures redisplay the form with a 400.
func (s *server) quoteOrFail(w http.ResponseWriter, r *http.Request) (quote, bool) {
	q, err := s.buildQuote(r)
	if err == nil {
		return q, true
	}

	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		data := s.homeView(r, q.catalog, q.values, q.pkg)
		data.ErrorMessage = verr.Message
		s.renderTemplate(w, http.StatusBadRequest, "home.html", data)
	case errors.Is(err, errInvalidForm):
		http.Error(w, "invalid form", http.StatusBadRequest)
	case errors.Is(err, errUnknownPackage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("build quote", "error", err)
		http.Error(w, "failed to build quote", http.StatusInternalServerError)
	}
	return q, false
}

func (s *server) buildQuote(r *http.Request) (quote, error) {
	var q quote
	if err := r.ParseForm(); err != nil {
		return q, errInvalidForm
	}
	q.values = r.PostForm

	cat, err := s.store.Load(r.Context())
	if err != nil {
		return q, err
	}
	q.catalog = cat

	if key := strings.TrimSpace(q.values.Get(form.FieldPackage)); key != "" {
		pkg, ok := cat.Lookup(key)
		if !ok {
			return q, errUnknownPackage
		}
		q.pkg = &pkg
	}

	pt := form.ParseProjectType(q.values.Get(form.FieldProjectType))
	q.input = form.Collect(q.values, form.Session{
		ProjectType: pt,
		Package:     q.pkg,
		Currency:    s.currency,
	})
	q.breakdown = pricing.ComputeBreakdown(q.input)

	if err := form.Validate(q.input, q.breakdown, pt); err != nil {
		return q, err
	}

	q.doc = s.renderer.Build(q.input, q.breakdown, q.pkg, s.now())
	return q, nil
}

// homeView prepares the calculator form. A selected package prefills its
// locked rates and the default discount.
func (s *server) homeView(r *http.Request, cat catalog.Catalog, values url.Values, pkg *catalog.Package) homeViewData {
	v := url.Values{}
	for k, vs := range values {
		v[k] = append([]string(nil), vs...)
	}

	data := homeViewData{
		baseViewData: s.base(r),
		Currency:     s.currency,
		Packages:     cat.Packages(),
		Selected:     pkg,
		Values:       v,
		ProjectType:  form.ParseProjectType(v.Get(form.FieldProjectType)),
	}

	if pkg != nil {
		sel := catalog.Apply(*pkg)
		data.Selection = &sel
		form.ApplySelection(v, *pkg)
	}

	data.Extras = form.ExtraRows(v)
	if len(data.Extras) == 0 {
		data.Extras = []form.ExtraRow{{}}
	}

	return data
}

func writeDownload(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(body)
}
