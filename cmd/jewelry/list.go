package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/matst80/slask-jewelry/pkg/browse"
	"github.com/matst80/slask-jewelry/pkg/types"
	"github.com/matst80/slask-jewelry/pkg/urlstate"
	"github.com/spf13/cobra"
)

var (
	diamondFlags queryFlags
	jewelryFlags queryFlags
)

var diamondsCmd = &cobra.Command{
	Use:   "diamonds",
	Short: "List loose diamonds",
	Example: `  jewelry diamonds -f color=D,E -r carat=1:2 --sort low-high
  jewelry diamonds -q '?page=2&shape=Oval&minPrice=1000'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return list(cmd.OutOrStdout(), types.CategoryDiamonds, &diamondFlags)
	},
}

var jewelryCmd = &cobra.Command{
	Use:   "jewelry [category]",
	Short: "List jewelry, optionally within one category",
	Long: `Lists jewelry. category is one of rings, engagement-rings, wedding-bands,
earrings, necklaces, bracelets or pendants; anything else lists everything.`,
	Example: `  jewelry jewelry earrings -f metal=Gold
  jewelry jewelry -f metal=Gold,Platinum -r price=:2000`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := types.CategoryAll
		if len(args) == 1 {
			category = types.ResolveJewelryCategory(args[0])
		}
		return list(cmd.OutOrStdout(), category, &jewelryFlags)
	},
}

func init() {
	diamondFlags.register(diamondsCmd.Flags())
	jewelryFlags.register(jewelryCmd.Flags())
}

// list seeds a browser from the flags through a location, exactly like a
// deep link would, and prints the first result page.
func list(w io.Writer, category types.Category, q *queryFlags) error {
	values, err := q.values(category.Registry())
	if err != nil {
		return err
	}
	loc, err := urlstate.NewLocation(values.Encode())
	if err != nil {
		return err
	}

	b := browse.NewBrowser(app.client, category,
		browse.WithLogger(app.logger),
		browse.WithTracker(app.tracker),
		browse.WithDefaultLimit(app.cfg.Browse.PageSize),
		browse.WithDebounce(app.cfg.DebounceDelay()),
		browse.WithURL(&urlstate.Binding{Location: loc}))
	b.Start()
	b.Wait()

	s := b.State()
	if s.Error != "" {
		return errors.New(s.Error)
	}
	printProducts(w, s.Items)
	fmt.Fprintf(w, "\npage %d of %d, %d products\n", s.Pagination.CurrentPage, s.Pagination.TotalPages, s.Pagination.TotalCount)
	fmt.Fprintf(w, "query: ?%s\n", loc.String())
	return nil
}

func printProducts(w io.Writer, items []types.Product) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSHAPE\tCOLOR\tMETAL\tCARAT\tPRICE")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, p.Shape, p.Color, p.Metal, number(p.Carat), price(p))
	}
	_ = tw.Flush()
}

func number(n types.Number) string {
	if !n.Valid {
		return "-"
	}
	return fmt.Sprintf("%.2f", n.Value)
}

func price(p types.Product) string {
	if !p.Price.Valid {
		return "-"
	}
	return p.Price.Decimal.StringFixed(2)
}
