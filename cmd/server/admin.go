package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/designaurora/quotecalc/internal/catalog"
)

type adminPackage struct {
	catalog.Package
	FeaturesText string
	RulesText    string
}

type adminPackagesViewData struct {
	baseViewData
	Packages []adminPackage
}

func (s *server) handleAdminPackagesForm(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.Load(r.Context())
	if err != nil {
		slog.Error("load catalog", "error", err)
		http.Error(w, "failed to load packages", http.StatusInternalServerError)
		return
	}

	data := adminPackagesViewData{baseViewData: s.base(r)}
	data.ErrorMessage = r.URL.Query().Get("error")
	data.SuccessMessage = r.URL.Query().Get("success")
	for _, p := range cat.Packages() {
		data.Packages = append(data.Packages, adminPackage{
			Package:      p,
			FeaturesText: strings.Join(p.Features, "\n"),
			RulesText:    strings.Join(p.Rules, "\n"),
		})
	}

	s.renderTemplate(w, http.StatusOK, "admin_packages.html", data)
}

func (s *server) handleAdminPackageUpdate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	pkg, err := parsePackageForm(key, r)
	if err == nil {
		err = pkg.Validate()
	}
	if err != nil {
		http.Redirect(w, r, "/admin/packages?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	if err := s.store.Save(r.Context(), pkg); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "package not found", http.StatusNotFound)
			return
		}
		slog.Error("save package", "key", key, "error", err)
		http.Error(w, "failed to save package", http.StatusInternalServerError)
		return
	}

	slog.Info("package updated", "key", key)
	http.Redirect(w, r, "/admin/packages?success="+url.QueryEscape(pkg.Name+" saved."), http.StatusSeeOther)
}

func parsePackageForm(key string, r *http.Request) (catalog.Package, error) {
	pkg := catalog.Package{
		Key:      key,
		Name:     strings.TrimSpace(r.FormValue("name")),
		Features: splitLines(r.FormValue("features")),
		Rules:    splitLines(r.FormValue("rules")),
	}

	var err error
	if pkg.InteriorRate, err = parseNonNegativeFloat(r.FormValue("interior_rate"), "interior_rate"); err != nil {
		return pkg, err
	}
	if pkg.ElevationRate, err = parseNonNegativeFloat(r.FormValue("elevation_rate"), "elevation_rate"); err != nil {
		return pkg, err
	}
	if pkg.DiscountMin, err = parsePercent(r.FormValue("discount_min"), "discount_min"); err != nil {
		return pkg, err
	}
	if pkg.DiscountMax, err = parsePercent(r.FormValue("discount_max"), "discount_max"); err != nil {
		return pkg, err
	}

	return pkg, nil
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return value, nil
}

func parsePercent(raw, field string) (float64, error) {
	value, err := parseNonNegativeFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value > 100 {
		return 0, fmt.Errorf("%s must be between 0 and 100", field)
	}
	return value, nil
}

func splitLines(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
