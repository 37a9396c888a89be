package facet

import (
	"slices"
	"strings"

	"github.com/matst80/slask-jewelry/pkg/types"
)

// Criteria is a client-side refinement of an already loaded product list.
// Zero fields do not constrain.
type Criteria struct {
	Search        string
	Shapes        []string
	Colors        []string
	Clarities     []string
	Cuts          []string
	Polishes      []string
	Symmetries    []string
	Fluorescences []string
	Labs          []string
	Metals        []string
	MetalColors   []string

	Carat   *types.Range
	Price   *types.Range
	Table   *types.Range
	Depth   *types.Range
	Length  *types.Range
	Width   *types.Range
	LWRatio *types.Range

	Sort types.SortOption
}

type predicate func(*types.Product) bool

func (c *Criteria) keySelections() map[string][]string {
	return map[string][]string{
		"color":        c.Colors,
		"clarity":      c.Clarities,
		"cut":          c.Cuts,
		"polish":       c.Polishes,
		"symmetry":     c.Symmetries,
		"fluorescence": c.Fluorescences,
		"lab":          c.Labs,
		"metal":        c.Metals,
		"metalColor":   c.MetalColors,
	}
}

func (c *Criteria) rangeSelections() map[string]*types.Range {
	return map[string]*types.Range{
		"carat":   c.Carat,
		"price":   c.Price,
		"table":   c.Table,
		"depth":   c.Depth,
		"length":  c.Length,
		"width":   c.Width,
		"lwRatio": c.LWRatio,
	}
}

// predicates lists only the active constraints, in evaluation order:
// search, shape/category, exact facets, ranges.
func (c *Criteria) predicates() []predicate {
	ret := make([]predicate, 0, 8)
	if term := strings.ToLower(strings.TrimSpace(c.Search)); term != "" {
		ret = append(ret, func(p *types.Product) bool {
			return strings.Contains(strings.ToLower(p.Title), term)
		})
	}
	if len(c.Shapes) > 0 {
		shapes := c.Shapes
		ret = append(ret, func(p *types.Product) bool {
			// upstream records carry either the shape, the category id or
			// the category name
			return matchesAny(p.Shape, shapes) ||
				matchesAny(p.CategoryID, shapes) ||
				matchesAny(p.CategoryName, shapes)
		})
	}
	selections := c.keySelections()
	for _, key := range sortedKeys(selections) {
		values := selections[key]
		if len(values) == 0 {
			continue
		}
		field := keyFields[key]
		ret = append(ret, func(p *types.Product) bool {
			return matchesAny(field(p), values)
		})
	}
	ranges := c.rangeSelections()
	for _, key := range sortedKeys(ranges) {
		r := ranges[key]
		if r == nil || r.IsZero() {
			continue
		}
		field := numberFields[key]
		bounds := *r
		ret = append(ret, func(p *types.Product) bool {
			n := field(p)
			// records without the attribute are never excluded by it
			if !n.Valid {
				return true
			}
			return bounds.Contains(n.Value)
		})
	}
	return ret
}

func matchesAny(value string, selections []string) bool {
	return value != "" && types.ContainsFold(value, selections)
}

func (c *Criteria) Matches(p *types.Product) bool {
	for _, pred := range c.predicates() {
		if !pred(p) {
			return false
		}
	}
	return true
}

// FilterAndSort returns the items matching c, ordered by c.Sort. The input
// is not modified; the result is always a new slice.
func FilterAndSort(items []types.Product, c Criteria) []types.Product {
	preds := c.predicates()
	ret := make([]types.Product, 0, len(items))
outer:
	for i := range items {
		for _, pred := range preds {
			if !pred(&items[i]) {
				continue outer
			}
		}
		ret = append(ret, items[i])
	}
	SortProducts(ret, c.Sort)
	return ret
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
