package types

const SearchTermKey = "searchTerm"

// FacetSpec describes how a FilterSet key behaves when updated and how it
// is written to a query string.
type FacetSpec struct {
	Key  string
	Kind FilterKind
	// Toggle facets treat a single-value update as add-or-remove.
	Toggle bool
	// CaseInsensitive facets carry a <key>CaseInsensitive=true marker on
	// the wire.
	CaseInsensitive bool
	// Bounds is the full slider range; a selection covering it is dropped.
	Bounds *Range
}

type Registry map[string]FacetSpec

func NewRegistry(specs ...FacetSpec) Registry {
	r := make(Registry, len(specs)+1)
	r[SearchTermKey] = FacetSpec{Key: SearchTermKey, Kind: TextFilter}
	for _, s := range specs {
		r[s.Key] = s
	}
	return r
}

// Spec falls back to a plain value facet for keys the registry does not know.
func (r Registry) Spec(key string) FacetSpec {
	if s, ok := r[key]; ok {
		return s
	}
	if key == SearchTermKey {
		return FacetSpec{Key: key, Kind: TextFilter}
	}
	return FacetSpec{Key: key, Kind: ValuesFilter}
}

func bounds(min, max float64) *Range {
	r := Between(min, max)
	return &r
}

func valueFacet(key string) FacetSpec {
	return FacetSpec{Key: key, Kind: ValuesFilter}
}

func toggleFacet(key string) FacetSpec {
	return FacetSpec{Key: key, Kind: ValuesFilter, Toggle: true, CaseInsensitive: true}
}

func rangeFacet(key string, b *Range) FacetSpec {
	return FacetSpec{Key: key, Kind: RangeFilter, Bounds: b}
}

var DiamondFacets = NewRegistry(
	valueFacet("shape"),
	valueFacet("color"),
	valueFacet("cut"),
	valueFacet("clarity"),
	valueFacet("lab"),
	valueFacet("fluorescence"),
	valueFacet("polish"),
	valueFacet("symmetry"),
	rangeFacet("price", bounds(0, 5_000_000)),
	rangeFacet("carat", bounds(0, 30)),
	rangeFacet("table", bounds(0, 100)),
	rangeFacet("depth", bounds(0, 100)),
	rangeFacet("length", nil),
	rangeFacet("width", nil),
	rangeFacet("lwRatio", bounds(0.75, 2.75)),
)

var JewelryFacets = NewRegistry(
	toggleFacet("metal"),
	toggleFacet("metalColor"),
	valueFacet("shape"),
	rangeFacet("price", bounds(0, 5_000_000)),
	rangeFacet("carat", bounds(0, 30)),
)
