package facet

import (
	"slices"
	"testing"

	"github.com/matst80/slask-jewelry/pkg/types"
	"github.com/shopspring/decimal"
)

func product(id string, price float64) types.Product {
	return types.Product{
		ID:    id,
		Title: "Item " + id,
		Price: decimal.NewNullDecimal(decimal.NewFromFloat(price)),
	}
}

func ids(items []types.Product) []string {
	ret := make([]string, len(items))
	for i, p := range items {
		ret[i] = p.ID
	}
	return ret
}

func sampleItems() []types.Product {
	a := product("a", 1200)
	a.Title = "Round Brilliant"
	a.Shape = "Round"
	a.Color = "D"
	a.Carat = types.NumberOf(1.1)
	a.Length, a.Width = types.NumberOf(6.5), types.NumberOf(6.5)

	b := product("b", 800)
	b.Title = "Oval Cut"
	b.Shape = "oval"
	b.Color = "e"
	b.Carat = types.NumberOf(0.7)
	b.Length, b.Width = types.NumberOf(7.7), types.NumberOf(5.5)

	c := product("c", 3000)
	c.Title = "Halo Ring"
	c.CategoryName = "Rings"
	c.Metal = "Gold"

	d := types.Product{ID: "d", Title: "Price on request", Color: "F", Carat: types.NumberOf(2.4)}
	return []types.Product{a, b, c, d}
}

func TestFilterAndSortEmptyCriteriaIsIdentity(t *testing.T) {
	items := sampleItems()
	got := FilterAndSort(items, Criteria{})
	if !slices.Equal(ids(got), ids(items)) {
		t.Errorf("Expected %v, got %v", ids(items), ids(got))
	}
	got[0].ID = "changed"
	if items[0].ID != "a" {
		t.Errorf("Expected input to be left untouched")
	}
}

func TestFilterAndSortIsIdempotent(t *testing.T) {
	items := sampleItems()
	carat := types.Between(0.5, 2)
	criteria := []Criteria{
		{Colors: []string{"d", "E"}},
		{Carat: &carat, Sort: types.SortHighLow},
		{Search: "ring", Sort: types.SortLowHigh},
		{Shapes: []string{"rings", "round"}},
		{Sort: types.SortLowHigh},
	}
	for _, c := range criteria {
		once := FilterAndSort(items, c)
		twice := FilterAndSort(once, c)
		if !slices.Equal(ids(once), ids(twice)) {
			t.Errorf("Expected idempotent result for %+v: %v vs %v", c, ids(once), ids(twice))
		}
	}
}

func TestRangeFilterKeepsRecordsMissingTheField(t *testing.T) {
	items := []types.Product{{ID: "nocarat"}, {ID: "small", Carat: types.NumberOf(0.3)}, {ID: "ok", Carat: types.NumberOf(1.5)}}
	r := types.Between(1, 2)
	got := FilterAndSort(items, Criteria{Carat: &r})
	if !slices.Equal(ids(got), []string{"nocarat", "ok"}) {
		t.Errorf("Expected [nocarat ok], got %v", ids(got))
	}
}

func TestExactFacetExcludesRecordsMissingTheField(t *testing.T) {
	got := FilterAndSort(sampleItems(), Criteria{Colors: []string{"D", "e", "F"}})
	if !slices.Equal(ids(got), []string{"a", "b", "d"}) {
		t.Errorf("Expected [a b d], got %v", ids(got))
	}
}

func TestShapeMatchesShapeOrCategory(t *testing.T) {
	got := FilterAndSort(sampleItems(), Criteria{Shapes: []string{"OVAL", "rings"}})
	if !slices.Equal(ids(got), []string{"b", "c"}) {
		t.Errorf("Expected [b c], got %v", ids(got))
	}
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := FilterAndSort(sampleItems(), Criteria{Search: " BRILL "})
	if !slices.Equal(ids(got), []string{"a"}) {
		t.Errorf("Expected [a], got %v", ids(got))
	}
}

func TestDerivedRatioRange(t *testing.T) {
	r := types.Between(1.2, 1.5)
	got := FilterAndSort(sampleItems(), Criteria{LWRatio: &r})
	// a is 1.0, b is 1.4, c and d have no dimensions
	if !slices.Equal(ids(got), []string{"b", "c", "d"}) {
		t.Errorf("Expected [b c d], got %v", ids(got))
	}
}

func TestSortIsStable(t *testing.T) {
	items := []types.Product{product("five-a", 5), product("one", 1), product("five-b", 5), product("two", 2)}

	got := FilterAndSort(items, Criteria{Sort: types.SortLowHigh})
	if !slices.Equal(ids(got), []string{"one", "two", "five-a", "five-b"}) {
		t.Errorf("Unexpected low-high order %v", ids(got))
	}

	got = FilterAndSort(items, Criteria{Sort: types.SortHighLow})
	if !slices.Equal(ids(got), []string{"five-a", "five-b", "two", "one"}) {
		t.Errorf("Unexpected high-low order %v", ids(got))
	}
}

func TestSortPutsMissingPriceLast(t *testing.T) {
	got := FilterAndSort(sampleItems(), Criteria{Sort: types.SortHighLow})
	if !slices.Equal(ids(got), []string{"c", "a", "b", "d"}) {
		t.Errorf("Expected [c a b d], got %v", ids(got))
	}
}

func TestCriteriaFromFilters(t *testing.T) {
	fs := types.FilterSet{
		"color":             types.Values("D"),
		"carat":             types.InRange(types.AtLeast(1)),
		types.SearchTermKey: types.Text("round"),
	}
	c := CriteriaFromFilters(fs, types.SortLowHigh)
	if c.Search != "round" || !slices.Equal(c.Colors, []string{"D"}) || c.Carat == nil || *c.Carat.Min != 1 {
		t.Errorf("Unexpected criteria %+v", c)
	}
	if c.Price != nil {
		t.Errorf("Expected no price range")
	}
	got := FilterAndSort(sampleItems(), c)
	if !slices.Equal(ids(got), []string{"a"}) {
		t.Errorf("Expected [a], got %v", ids(got))
	}
}
