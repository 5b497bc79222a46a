package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"APP_ENV", "ADMIN_EMAIL", "ADMIN_PASSWORD", "SESSION_SECRET", "DB_PATH", "PORT", "LOG_LEVEL", "CURRENCY", "NUMBER_GROUPING", "BRAND_NAME"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.Port != "8080" || cfg.DBPath != "./dev.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Currency != "₹" || cfg.NumberGrouping != "indian" || cfg.BrandName != "DesignAurora" {
		t.Fatalf("unexpected display defaults: %+v", cfg)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected dev environment by default")
	}
}

func TestLoad_ReadsDotEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv only fills unset variables, so drop the empty placeholders.
	for _, k := range []string{"PORT", "CURRENCY", "NUMBER_GROUPING", "APP_ENV"} {
		os.Unsetenv(k)
	}

	path := filepath.Join(t.TempDir(), ".env")
	content := []byte(`
# comment
PORT=9090
export CURRENCY="USD"
NUMBER_GROUPING=western
APP_ENV=production
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Cleanup(func() {
		for _, k := range []string{"PORT", "CURRENCY", "NUMBER_GROUPING", "APP_ENV"} {
			os.Unsetenv(k)
		}
	})

	cfg := Load(path)

	if cfg.Port != "9090" {
		t.Fatalf("Port=%q, want %q", cfg.Port, "9090")
	}
	if cfg.Currency != "USD" {
		t.Fatalf("Currency=%q, want %q", cfg.Currency, "USD")
	}
	if cfg.NumberGrouping != "western" {
		t.Fatalf("NumberGrouping=%q, want %q", cfg.NumberGrouping, "western")
	}
	if cfg.IsDev() {
		t.Fatalf("expected production environment")
	}
}

func TestLoad_DoesNotOverwriteExistingEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=9999\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if got := Load(path).Port; got != "7000" {
		t.Fatalf("Port=%q, want %q", got, "7000")
	}
}

func TestLoad_UnknownGroupingFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("NUMBER_GROUPING", "roman")

	if got := Load(filepath.Join(t.TempDir(), "none.env")).NumberGrouping; got != "indian" {
		t.Fatalf("NumberGrouping=%q, want indian", got)
	}
}
