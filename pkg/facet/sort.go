package facet

import (
	"slices"

	"github.com/matst80/slask-jewelry/pkg/types"
)

// SortProducts orders items in place by price. The sort is stable, so equal
// prices keep their relative order; records without a price go last.
// Non-price sort options leave the order alone.
func SortProducts(items []types.Product, sort types.SortOption) {
	if !sort.IsPriceSort() {
		return
	}
	desc := sort == types.SortHighLow
	slices.SortStableFunc(items, func(a, b types.Product) int {
		switch {
		case !a.Price.Valid && !b.Price.Valid:
			return 0
		case !a.Price.Valid:
			return 1
		case !b.Price.Valid:
			return -1
		}
		cmp := a.Price.Decimal.Cmp(b.Price.Decimal)
		if desc {
			return -cmp
		}
		return cmp
	})
}
