package types

import "strings"

type Category string

const (
	CategoryDiamonds        Category = "diamonds"
	CategoryAll             Category = "all"
	CategoryRings           Category = "rings"
	CategoryEngagementRings Category = "engagement-rings"
	CategoryWeddingBands    Category = "wedding-bands"
	CategoryEarrings        Category = "earrings"
	CategoryNecklaces       Category = "necklaces"
	CategoryBracelets       Category = "bracelets"
	CategoryPendants        Category = "pendants"
)

var knownCategories = map[Category]struct{}{
	CategoryDiamonds:        {},
	CategoryAll:             {},
	CategoryRings:           {},
	CategoryEngagementRings: {},
	CategoryWeddingBands:    {},
	CategoryEarrings:        {},
	CategoryNecklaces:       {},
	CategoryBracelets:       {},
	CategoryPendants:        {},
}

// ResolveCategory maps free-form input to a known category, falling back to
// "all" so an unexpected value still lists everything.
func ResolveCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := knownCategories[c]; ok {
		return c
	}
	return CategoryAll
}

// ResolveJewelryCategory is ResolveCategory restricted to jewelry; loose
// diamonds have their own browser and registry.
func ResolveJewelryCategory(s string) Category {
	if c := ResolveCategory(s); c != CategoryDiamonds {
		return c
	}
	return CategoryAll
}

// ListPath is the search endpoint for the category.
func (c Category) ListPath() string {
	switch c {
	case CategoryDiamonds:
		return "/product/diamonds"
	case CategoryAll, "":
		return "/product/jewelry"
	default:
		return "/product/" + string(c)
	}
}

// ItemPath is the detail endpoint for one record of the category.
func (c Category) ItemPath(id string) string {
	if c == "" || c == CategoryAll {
		c = "jewelry"
	}
	return "/product/" + string(c) + "/" + id
}

func (c Category) Registry() Registry {
	if c == CategoryDiamonds {
		return DiamondFacets
	}
	return JewelryFacets
}
