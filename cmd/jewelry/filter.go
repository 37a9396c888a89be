package main

import (
	"fmt"
	"maps"
	"os"

	"github.com/matst80/slask-jewelry/pkg/browse"
	"github.com/matst80/slask-jewelry/pkg/facet"
	"github.com/matst80/slask-jewelry/pkg/types"
	"github.com/spf13/cobra"
)

var localFlags queryFlags

var filterCmd = &cobra.Command{
	Use:   "filter <products.json>",
	Short: "Filter a local product file without calling the API",
	Long: `Loads a product file (a JSON array or {"products": [...]}) and filters it
in memory with the same rules the API uses. Paging flags are ignored.`,
	Example: `  jewelry filter products.json -f color=D -r carat=1: --sort low-high`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		items, err := types.DecodeProducts(f)
		if err != nil {
			return err
		}

		// a local file may mix diamonds and jewelry
		reg := maps.Clone(types.DiamondFacets)
		maps.Copy(reg, types.JewelryFacets)

		values, err := localFlags.values(reg)
		if err != nil {
			return err
		}
		sr, err := types.ParseSearchRequest(values, reg, app.cfg.Browse.PageSize)
		if err != nil {
			return err
		}

		view := browse.NewFilteredView(items, facet.Criteria{})
		view.SetFilters(sr.Filters, sr.Sort)
		matched := view.Items()

		w := cmd.OutOrStdout()
		printProducts(w, matched)
		fmt.Fprintf(w, "\n%d of %d products\n", len(matched), len(items))
		return nil
	},
}

func init() {
	localFlags.register(filterCmd.Flags())
}
