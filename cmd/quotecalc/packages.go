package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/designaurora/quotecalc/internal/invoice"
)

func newPackagesCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List the design packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cat.Packages())
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tINTERIOR\tELEVATION\tDISCOUNT")
			for _, p := range cat.Packages() {
				elevation := invoice.Dash
				if p.OffersElevation() {
					elevation = a.cfg.Currency + plain(p.ElevationRate) + "/sq ft"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%% - %s%%\n",
					p.Key, p.Name,
					a.cfg.Currency+plain(p.InteriorRate)+"/sq ft",
					elevation,
					plain(p.DiscountMin), plain(p.DiscountMax),
				)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the packages as JSON")
	return cmd
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
