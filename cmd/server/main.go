package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/designaurora/quotecalc/internal/catalog"
	"github.com/designaurora/quotecalc/internal/config"
	"github.com/designaurora/quotecalc/internal/db"
	"github.com/designaurora/quotecalc/internal/invoice"
	"github.com/designaurora/quotecalc/internal/logging"
	"github.com/designaurora/quotecalc/internal/migrations"
	"github.com/designaurora/quotecalc/internal/seed"
	"github.com/designaurora/quotecalc/web"
)

type server struct {
	auth     *authService
	db       *sql.DB
	store    *catalog.Store
	renderer invoice.Renderer
	currency string
	now      func() time.Time
}

type baseViewData struct {
	Brand          string
	Authenticated  bool
	ErrorMessage   string
	SuccessMessage string
}

type loginViewData struct {
	baseViewData
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logging.Fatal("failed to open database", "error", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		logging.Fatal("failed to run database migrations", "error", err)
	}

	stats, err := seed.Run(context.Background(), database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		Catalog:       catalog.Default(),
	})
	if err != nil {
		logging.Fatal("failed to seed database", "error", err)
	}
	slog.Info("seed complete", "inserts", stats.Inserts)

	srv := newServer(database, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", httpServer.Addr, "env", cfg.Env)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func newServer(database *sql.DB, cfg config.Config) *server {
	return &server{
		auth:  newAuthService(database, cfg.SessionSecret, !cfg.IsDev()),
		db:    database,
		store: catalog.NewStore(database),
		renderer: invoice.Renderer{
			Brand:    cfg.BrandName,
			Grouping: invoice.ParseGrouping(cfg.NumberGrouping),
		},
		currency: cfg.Currency,
		now:      time.Now,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static))))
	r.Get("/healthz", s.handleHealth)

	r.Get("/", s.handleHome)
	r.Post("/quote", s.handleQuote)
	r.Post("/quote/edit", s.handleQuoteEdit)
	r.Post("/quote/pdf", s.handleQuotePDF)
	r.Post("/quote/xlsx", s.handleQuoteExcel)
	r.Post("/quote/text", s.handleQuoteText)

	r.Route("/api", func(r chi.Router) {
		r.Post("/quote", s.handleAPIQuote)
		r.Get("/packages", s.handleAPIPackages)
		r.Get("/packages/{key}", s.handleAPIPackage)
	})

	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.auth.requireAdmin)
		r.Get("/packages", s.handleAdminPackagesForm)
		r.Post("/packages/{key}", s.handleAdminPackageUpdate)
	})

	return r
}

func (s *server) base(r *http.Request) baseViewData {
	return baseViewData{
		Brand:         s.renderer.Brand,
		Authenticated: s.auth.isAuthenticated(r),
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if s.auth.isAuthenticated(r) {
		http.Redirect(w, r, "/admin/packages", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, http.StatusOK, "login.html", loginViewData{baseViewData: s.base(r)})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	valid, err := s.auth.validateCredentials(r.Context(), email, password)
	if err != nil {
		slog.Error("validate credentials", "error", err)
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}
	if !valid {
		data := loginViewData{baseViewData: s.base(r)}
		data.ErrorMessage = "Invalid email or password."
		s.renderTemplate(w, http.StatusUnauthorized, "login.html", data)
		return
	}

	s.auth.setSessionCookie(w, email)
	http.Redirect(w, r, "/admin/packages", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	templates, err := template.ParseFS(web.Templates, "layout.html", page)
	if err != nil {
		slog.Error("parse template", "page", page, "error", err)
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		slog.Error("render template", "page", page, "error", err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
