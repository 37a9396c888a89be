package facet

import "github.com/matst80/slask-jewelry/pkg/types"

// CriteriaFromFilters maps a FilterSet onto Criteria so the same selection
// can be applied server side (as query parameters) or in memory.
func CriteriaFromFilters(fs types.FilterSet, sort types.SortOption) Criteria {
	c := Criteria{
		Search:        fs.SearchTerm(),
		Shapes:        fs.Values("shape"),
		Colors:        fs.Values("color"),
		Clarities:     fs.Values("clarity"),
		Cuts:          fs.Values("cut"),
		Polishes:      fs.Values("polish"),
		Symmetries:    fs.Values("symmetry"),
		Fluorescences: fs.Values("fluorescence"),
		Labs:          fs.Values("lab"),
		Metals:        fs.Values("metal"),
		MetalColors:   fs.Values("metalColor"),
		Sort:          sort,
	}
	c.Carat = rangeOf(fs, "carat")
	c.Price = rangeOf(fs, "price")
	c.Table = rangeOf(fs, "table")
	c.Depth = rangeOf(fs, "depth")
	c.Length = rangeOf(fs, "length")
	c.Width = rangeOf(fs, "width")
	c.LWRatio = rangeOf(fs, "lwRatio")
	return c
}

func rangeOf(fs types.FilterSet, key string) *types.Range {
	if r, ok := fs.Range(key); ok {
		return &r
	}
	return nil
}
