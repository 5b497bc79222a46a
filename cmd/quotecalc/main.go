package main

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/designaurora/quotecalc/internal/catalog"
	"github.com/designaurora/quotecalc/internal/config"
	"github.com/designaurora/quotecalc/internal/db"
	"github.com/designaurora/quotecalc/internal/invoice"
	"github.com/designaurora/quotecalc/internal/logging"
	"github.com/designaurora/quotecalc/internal/migrations"
)

func main() {
	slog.SetDefault(logging.New(os.Stderr, cmp.Or(os.Getenv("LOG_LEVEL"), "ERROR")))

	cfg := config.Load()
	if err := newRootCmd(cfg, time.Now).Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg    config.Config
	now    func() time.Time
	dbPath string
}

func newRootCmd(cfg config.Config, now func() time.Time) *cobra.Command {
	a := &app{cfg: cfg, now: now}

	root := &cobra.Command{
		Use:          "quotecalc",
		Short:        "Price interior and elevation design projects",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "read packages from this SQLite database instead of the built-in catalog")

	root.AddCommand(newCalcCmd(a), newPackagesCmd(a))
	return root
}

// catalog returns the built-in catalog, or the stored one when --db is set.
func (a *app) catalog(ctx context.Context) (catalog.Catalog, error) {
	if a.dbPath == "" {
		return catalog.Default(), nil
	}

	database, err := db.Open(a.dbPath)
	if err != nil {
		return catalog.Catalog{}, err
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		return catalog.Catalog{}, err
	}

	cat, err := catalog.NewStore(database).Load(ctx)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("load catalog from %s: %w", a.dbPath, err)
	}
	return cat, nil
}

func (a *app) renderer() invoice.Renderer {
	return invoice.Renderer{
		Brand:    a.cfg.BrandName,
		Grouping: invoice.ParseGrouping(a.cfg.NumberGrouping),
	}
}
