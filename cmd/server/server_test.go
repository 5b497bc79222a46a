package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/designaurora/quotecalc/internal/catalog"
	"github.com/designaurora/quotecalc/internal/config"
	"github.com/designaurora/quotecalc/internal/db"
	"github.com/designaurora/quotecalc/internal/migrations"
	"github.com/designaurora/quotecalc/internal/seed"
)

const (
	testAdminEmail    = "admin@designaurora.in"
	testAdminPassword = "s3cret"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "server-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := seed.Run(context.Background(), database, seed.Config{
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
		Catalog:       catalog.Default(),
	}); err != nil {
		t.Fatalf("seed database: %v", err)
	}

	srv := newServer(database, config.Config{
		Env:            "dev",
		SessionSecret:  "test-secret",
		Currency:       "₹",
		NumberGrouping: "indian",
		BrandName:      "DesignAurora",
	})
	srv.now = func() time.Time { return time.Date(2025, time.March, 7, 9, 5, 0, 0, time.UTC) }
	return srv
}

func scenarioForm() url.Values {
	form := url.Values{}
	form.Set("client_name", "Asha Rao")
	form.Set("project_name", "Lake View Villa")
	form.Set("site_area", "1000")
	form.Set("elevation_area", "500")
	form.Set("elevation_rate", "12")
	form.Set("interior_rate", "25")
	form.Set("discount", "7")
	form.Add("extra_desc", "3D walkthrough")
	form.Add("extra_qty", "")
	form.Add("extra_rate", "5000")
	return form
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func assertContains(t *testing.T, body string, expected ...string) {
	t.Helper()
	for _, e := range expected {
		if !strings.Contains(body, e) {
			t.Fatalf("expected body to contain %q, got: %s", e, body)
		}
	}
}

func TestHandleHome(t *testing.T) {
	h := newTestServer(t).routes()

	rr := get(t, h, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	assertContains(t, rr.Body.String(), "Basic Package", "Standard Package", "Luxury Package", `name="site_area"`)
}

func TestHandleHome_PreselectsPackage(t *testing.T) {
	h := newTestServer(t).routes()

	rr := get(t, h, "/?package=standard")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	assertContains(t, rr.Body.String(),
		`name="package" value="standard"`,
		`name="interior_rate" inputmode="decimal" value="25" readonly`,
		`name="discount" inputmode="decimal" value="5"`,
		"Allowed range: 5% - 7%",
	)
}

func TestHandleHome_UnknownPackage(t *testing.T) {
	h := newTestServer(t).routes()

	rr := get(t, h, "/?package=platinum")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	assertContains(t, rr.Body.String(), "Unknown package: platinum")
}

func TestHandleQuote_RendersInvoice(t *testing.T) {
	h := newTestServer(t).routes()

	rr := postForm(t, h, "/quote", scenarioForm())
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	assertContains(t, rr.Body.String(),
		"INV-250307-0905",
		"Project: Lake View Villa",
		"Elevation Design",
		"₹ 6,000.00",
		"₹ 36,000.00",
		"₹ 2,520.00 (7%)",
		"₹ 33,480.00",
		"General Terms:",
		`formaction="/quote/pdf"`,
	)
}

func TestHandleQuote_WithPackageShowsBanner(t *testing.T) {
	h := newTestServer(t).routes()

	form := scenarioForm()
	form.Set("package", "standard")
	form.Set("interior_rate", "999")
	form.Set("discount", "50")

	rr := postForm(t, h, "/quote", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	assertContains(t, rr.Body.String(),
		"Standard Package - Project Guidelines:",
		"Investment Summary",
		"₹ 25.00",
		"₹ 33,480.00",
	)
}

func TestHandleQuote_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(url.Values)
		message string
	}{
		{
			name:    "missing site area",
			mutate:  func(f url.Values) { f.Del("site_area") },
			message: "Please enter the site area in sq ft.",
		},
		{
			name: "nothing billable",
			mutate: func(f url.Values) {
				f.Set("elevation_rate", "")
				f.Set("interior_rate", "")
				f.Del("extra_desc")
			},
			message: "Please enter at least one valid rate and area (for Interior, Exterior, or an extra item).",
		},
		{
			name: "exterior without elevation",
			mutate: func(f url.Values) {
				f.Set("project_type", "exterior")
				f.Set("elevation_area", "")
				f.Del("extra_desc")
			},
			message: "Please enter valid exterior/elevation area and rate.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t).routes()
			form := scenarioForm()
			tt.mutate(form)

			rr := postForm(t, h, "/quote", form)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rr.Code)
			}
			assertContains(t, rr.Body.String(), tt.message, `value="Asha Rao"`)
		})
	}
}

func TestHandleQuote_UnknownPackage(t *testing.T) {
	h := newTestServer(t).routes()

	form := scenarioForm()
	form.Set("package", "platinum")

	rr := postForm(t, h, "/quote", form)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleQuoteEdit_KeepsValues(t *testing.T) {
	h := newTestServer(t).routes()

	rr := postForm(t, h, "/quote/edit", scenarioForm())
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	assertContains(t, rr.Body.String(), `value="Lake View Villa"`, `value="3D walkthrough"`, `value="5000"`)
}

func TestHandleQuoteEdit_ShowsPricedPackageValues(t *testing.T) {
	h := newTestServer(t).routes()

	form := scenarioForm()
	form.Set("package", "standard")
	form.Set("discount", "50")
	form.Set("interior_rate", "99")

	rr := postForm(t, h, "/quote/edit", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	assertContains(t, body, `name="discount" inputmode="decimal" value="7"`, `name="interior_rate" inputmode="decimal" value="25"`)
	for _, stale := range []string{`value="50"`, `value="99"`} {
		if strings.Contains(body, stale) {
			t.Fatalf("expected %s to be replaced by the package value", stale)
		}
	}
}

func TestHandleQuotePDF(t *testing.T) {
	h := newTestServer(t).routes()

	form := scenarioForm()
	form.Set("package", "standard")

	rr := postForm(t, h, "/quote/pdf", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "DesignAurora_Standard_Package_Asha_Rao_2025-03-07.pdf") {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("body is not a PDF")
	}
}

func TestHandleQuoteExcel(t *testing.T) {
	h := newTestServer(t).routes()

	rr := postForm(t, h, "/quote/xlsx", scenarioForm())
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, ".xlsx") {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("body is not valid Excel: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("Invoice", "A3"); got != "Project: Lake View Villa" {
		t.Fatalf("A3 = %q", got)
	}
}

func TestHandleQuoteText(t *testing.T) {
	h := newTestServer(t).routes()

	rr := postForm(t, h, "/quote/text", scenarioForm())
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("expected text/plain content type, got %q", rr.Header().Get("Content-Type"))
	}
	assertContains(t, rr.Body.String(), "Client: Asha Rao", "Total:    ₹ 33,480.00", "Discount applied: 7.00%")
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(t).routes()

	rr := get(t, h, "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	assertContains(t, rr.Body.String(), `"status":"ok"`)
}

func TestStaticAssets(t *testing.T) {
	h := newTestServer(t).routes()

	rr := get(t, h, "/static/app.css")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
}
