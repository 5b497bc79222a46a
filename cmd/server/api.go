package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/designaurora/quotecalc/internal/catalog"
	"github.com/designaurora/quotecalc/internal/form"
	"github.com/designaurora/quotecalc/internal/invoice"
	"github.com/designaurora/quotecalc/internal/pricing"
)

const maxAPIBody = 1 << 20

type quoteResponse struct {
	Input     pricing.ProjectInput `json:"input"`
	Breakdown pricing.Breakdown    `json:"breakdown"`
	Document  invoice.Document     `json:"document"`
}

type packageResponse struct {
	Package   catalog.Package   `json:"package"`
	Selection catalog.Selection `json:"selection"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleAPIQuote prices a project input after applying the same defaults
// and filters as the calculator form. A selectedPackageKey only adds the
// package terms and banner to the document.
func (s *server) handleAPIQuote(w http.ResponseWriter, r *http.Request) {
	var req form.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAPIBody))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	in := req.Input()
	if in.Currency == "" {
		in.Currency = s.currency
	}

	cat, err := s.store.Load(r.Context())
	if err != nil {
		slog.Error("load catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load packages"})
		return
	}

	var pkg *catalog.Package
	if in.PackageKey != "" {
		p, ok := cat.Lookup(in.PackageKey)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: errUnknownPackage.Error()})
			return
		}
		pkg = &p
	}

	b := pricing.ComputeBreakdown(in)
	if err := form.Validate(in, b, form.ProjectFull); err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Message})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to validate quote"})
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		Input:     in,
		Breakdown: b,
		Document:  s.renderer.Build(in, b, pkg, s.now()),
	})
}

func (s *server) handleAPIPackages(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Load(r.Context())
	if err != nil {
		slog.Error("load catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load packages"})
		return
	}
	writeJSON(w, http.StatusOK, cat.Packages())
}

func (s *server) handleAPIPackage(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Load(r.Context())
	if err != nil {
		slog.Error("load catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load packages"})
		return
	}

	pkg, ok := cat.Lookup(chi.URLParam(r, "key"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: catalog.ErrNotFound.Error()})
		return
	}
	writeJSON(w, http.StatusOK, packageResponse{Package: pkg, Selection: catalog.Apply(pkg)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response", "error", err)
	}
}
