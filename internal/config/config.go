package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultEnv      = "dev"
	defaultDBPath   = "./dev.db"
	defaultPort     = "8080"
	defaultCurrency = "₹"
	defaultBrand    = "DesignAurora"
	defaultGrouping = "indian"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env            string
	AdminEmail     string
	AdminPassword  string
	SessionSecret  string
	DBPath         string
	Port           string
	LogLevel       string
	Currency       string
	NumberGrouping string
	BrandName      string
}

// IsDev reports whether the server runs in local development mode.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv
}

// Load reads the dotenv files (if any) and the environment and returns a
// populated Config. Variables already set in the environment win over files.
func Load(files ...string) Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// Missing files are fine; production injects real environment variables.
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to load dotenv file", "file", f, "error", err)
		}
	}

	cfg := Config{
		Env:            strings.ToLower(os.Getenv("APP_ENV")),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		DBPath:         os.Getenv("DB_PATH"),
		Port:           os.Getenv("PORT"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		Currency:       os.Getenv("CURRENCY"),
		NumberGrouping: strings.ToLower(os.Getenv("NUMBER_GROUPING")),
		BrandName:      os.Getenv("BRAND_NAME"),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	if cfg.NumberGrouping != "indian" && cfg.NumberGrouping != "western" {
		cfg.NumberGrouping = defaultGrouping
	}
	if cfg.BrandName == "" {
		cfg.BrandName = defaultBrand
	}

	if cfg.AdminEmail == "" {
		slog.Warn("ADMIN_EMAIL is not set; package editing is unavailable")
	}
	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET is not set")
	}

	return cfg
}
