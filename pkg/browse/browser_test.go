package browse

import (
	"testing"
	"time"

	"github.com/matst80/slask-jewelry/pkg/types"
	"github.com/matst80/slask-jewelry/pkg/urlstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 40 * time.Millisecond

func newDiamondBrowser(src Source, opts ...Option) *Browser {
	opts = append([]Option{WithDebounce(testDebounce)}, opts...)
	return NewBrowser(src, types.CategoryDiamonds, opts...)
}

func TestBurstOfFilterChangesFetchesOnce(t *testing.T) {
	src := &fakeSource{}
	b := newDiamondBrowser(src, WithDefaultLimit(12))
	b.Start()
	b.Wait()

	reqs := src.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, 1, reqs[0].Page)
	assert.Equal(t, 12, reqs[0].Limit)

	b.UpdateFilters(types.Update{"color": types.Values("D")})
	time.Sleep(10 * time.Millisecond)
	b.UpdateFilters(types.Update{"color": types.Values("D", "E")})
	b.Wait()

	reqs = src.requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, 1, reqs[1].Page)
	assert.Equal(t, []string{"D", "E"}, reqs[1].Filters.Values("color"))
	assert.Equal(t, "D,E", reqs[1].Values(types.DiamondFacets).Get("color"))

	require.NoError(t, b.ChangePage(2))
	b.Wait()
	reqs = src.requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, 2, reqs[2].Page)
	assert.Equal(t, []string{"D", "E"}, reqs[2].Filters.Values("color"))
}

func TestUpdateFiltersPrunesEmptyKeys(t *testing.T) {
	b := newDiamondBrowser(&fakeSource{})
	b.UpdateFilters(types.Update{"color": types.Values("D")})
	assert.Equal(t, []string{"D"}, b.State().Filters.Values("color"))

	b.UpdateFilters(types.Update{"color": types.Values()})
	assert.NotContains(t, b.State().Filters, "color")

	b.UpdateFilters(types.Update{"price": types.InRange(types.Between(0, 5_000_000))})
	assert.NotContains(t, b.State().Filters, "price", "a range covering the whole scale is no filter")
	b.Wait()
}

func TestToggleFacetSingleValueToggles(t *testing.T) {
	src := &fakeSource{}
	b := NewBrowser(src, types.CategoryRings, WithDebounce(testDebounce))

	b.UpdateFilters(types.Update{"metal": types.Values("Gold")})
	b.UpdateFilters(types.Update{"metal": types.Values("Platinum")})
	assert.Equal(t, []string{"Gold", "Platinum"}, b.State().Filters.Values("metal"))

	b.UpdateFilters(types.Update{"metal": types.Values("GOLD")})
	assert.Equal(t, []string{"Platinum"}, b.State().Filters.Values("metal"))

	b.UpdateFilters(types.Update{"metal": types.Values("Silver", "Gold")})
	assert.Equal(t, []string{"Silver", "Gold"}, b.State().Filters.Values("metal"))
	b.Wait()

	reqs := src.requests()
	require.Len(t, reqs, 1)
	q := reqs[0].Values(types.JewelryFacets)
	assert.Equal(t, "Silver,Gold", q.Get("metal"))
	assert.Equal(t, "true", q.Get("metalCaseInsensitive"))
}

func TestSortIsImmediate(t *testing.T) {
	src := &fakeSource{}
	b := newDiamondBrowser(src)
	require.NoError(t, b.ChangePage(3))
	b.UpdateSortOption(types.SortLowHigh)
	assert.False(t, b.debounce.Pending())
	b.Paginator.Wait()
	assert.Len(t, src.requests(), 2, "sort must not wait for the debounce")
	assert.Equal(t, 3, src.find(t, sortedBy(types.SortLowHigh)).Page)
	assert.Equal(t, types.SortLowHigh, b.State().Sort)
}

func TestClearFiltersCancelsPendingFetch(t *testing.T) {
	src := &fakeSource{}
	loc, err := urlstate.NewLocation("d_page=4&utm_source=mail")
	require.NoError(t, err)
	b := newDiamondBrowser(src, WithURL(&urlstate.Binding{Location: loc}))

	b.UpdateFilters(types.Update{"color": types.Values("D")})
	b.ClearFilters()
	b.Wait()

	reqs := src.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, 1, reqs[0].Page)
	assert.Empty(t, reqs[0].Filters)
	assert.Empty(t, b.State().Filters)

	got := loc.Values()
	assert.Equal(t, "1", got.Get("page"))
	assert.Equal(t, "4", got.Get("d_page"))
	assert.Equal(t, "mail", got.Get("utm_source"))
}

func TestSearchResetsPage(t *testing.T) {
	src := &fakeSource{}
	b := newDiamondBrowser(src)
	require.NoError(t, b.ChangePage(3))
	b.Wait()

	b.Search("  oval ")
	assert.Equal(t, 1, b.State().Pagination.CurrentPage, "page resets before the debounced fetch")
	assert.Equal(t, "oval", b.State().Filters.SearchTerm())
	b.Wait()

	reqs := src.requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, 1, reqs[1].Page)
	assert.Equal(t, "oval", reqs[1].Filters.SearchTerm())

	b.Search("")
	assert.NotContains(t, b.State().Filters, types.SearchTermKey)
	b.Wait()
}

func TestSetCategoryIsImmediate(t *testing.T) {
	src := &fakeSource{}
	b := NewBrowser(src, types.CategoryAll, WithDebounce(time.Hour))
	b.UpdateFilters(types.Update{"metal": types.Values("Gold")})

	b.SetCategory("earrings")
	b.Wait()
	reqs := src.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, types.CategoryEarrings, reqs[0].Category)
	assert.Equal(t, []string{"Gold"}, reqs[0].Filters.Values("metal"))

	b.SetCategory("tiaras")
	b.Wait()
	reqs = src.requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, types.CategoryAll, reqs[1].Category)
}

func TestURLSeedsOnceThenFollowsState(t *testing.T) {
	src := &fakeSource{}
	loc, err := urlstate.NewLocation("?page=2&limit=24&color=D&minCarat=1&utm_source=mail")
	require.NoError(t, err)
	b := newDiamondBrowser(src, WithURL(&urlstate.Binding{Location: loc}))
	b.Start()
	b.Wait()

	reqs := src.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, 2, reqs[0].Page)
	assert.Equal(t, 24, reqs[0].Limit)
	assert.Equal(t, []string{"D"}, reqs[0].Filters.Values("color"))
	r, ok := reqs[0].Filters.Range("carat")
	require.True(t, ok)
	assert.Equal(t, 1.0, *r.Min)

	// later edits to the location are not read back
	loc.Replace([]string{"color"}, map[string][]string{"color": {"F"}})
	b.UpdateSortOption(types.SortHighLow)
	b.Wait()

	got := loc.Values()
	assert.Equal(t, "D", got.Get("color"))
	assert.Equal(t, "high-low", got.Get("sort"))
	assert.Equal(t, "2", got.Get("page"))
	assert.Equal(t, "24", got.Get("limit"))
	assert.Equal(t, "1", got.Get("minCarat"))
	assert.Equal(t, "mail", got.Get("utm_source"))
}

func TestBrowsersShareLocation(t *testing.T) {
	loc, err := urlstate.NewLocation("")
	require.NoError(t, err)
	diamonds := newDiamondBrowser(&fakeSource{}, WithURL(&urlstate.Binding{Location: loc, Prefix: "d_"}))
	jewelry := NewBrowser(&fakeSource{}, types.CategoryAll,
		WithDebounce(testDebounce),
		WithURL(&urlstate.Binding{Location: loc}))

	require.NoError(t, diamonds.ChangePage(3))
	jewelry.UpdateFilters(types.Update{"metal": types.Values("Gold")})
	jewelry.Wait()
	jewelry.ClearFilters()
	diamonds.Wait()
	jewelry.Wait()

	got := loc.Values()
	assert.Equal(t, "3", got.Get("d_page"))
	assert.Equal(t, "1", got.Get("page"))
	assert.NotContains(t, got, "metal")
}

func TestJewelryBrowserNeverSwitchesToDiamonds(t *testing.T) {
	src := &fakeSource{}
	loc, err := urlstate.NewLocation("category=diamonds&metal=Gold")
	require.NoError(t, err)
	b := NewBrowser(src, types.CategoryAll,
		WithDebounce(testDebounce),
		WithURL(&urlstate.Binding{Location: loc}))
	b.Start()
	b.Wait()
	assert.Equal(t, types.CategoryAll, src.find(t, onPage(1)).Category)

	b.SetCategory(types.CategoryDiamonds)
	b.Wait()
	reqs := src.requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, types.CategoryAll, reqs[1].Category)
	assert.Equal(t, []string{"Gold"}, reqs[1].Filters.Values("metal"))
}

func TestDiamondBrowserKeepsItsCategory(t *testing.T) {
	src := &fakeSource{}
	b := newDiamondBrowser(src)
	b.SetCategory(types.CategoryRings)
	b.Wait()

	reqs := src.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, types.CategoryDiamonds, reqs[0].Category)
}
