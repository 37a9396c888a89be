package main

import (
	"errors"
	"fmt"

	"github.com/matst80/slask-jewelry/pkg/browse"
	"github.com/matst80/slask-jewelry/pkg/types"
	"github.com/spf13/cobra"
)

var productCmd = &cobra.Command{
	Use:     "product <category> <id>",
	Short:   "Show one product",
	Example: "  jewelry product diamonds d-1001\n  jewelry product earrings j-2005",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := types.ResolveCategory(args[0])
		p := browse.NewPaginator(app.client, category, browse.WithLogger(app.logger))
		p.FetchByID(category, args[1])
		p.Wait()

		s := p.State()
		if s.SelectedError != "" {
			return errors.New(s.SelectedError)
		}
		w := cmd.OutOrStdout()
		printProducts(w, []types.Product{*s.Selected})
		if ratio := s.Selected.LWRatio(); ratio.Valid {
			fmt.Fprintf(w, "\nlength/width ratio %.2f\n", ratio.Value)
		}
		return nil
	},
}
