package browse

import (
	"time"

	"github.com/matst80/slask-jewelry/pkg/debounce"
	"github.com/matst80/slask-jewelry/pkg/types"
	"github.com/matst80/slask-jewelry/pkg/urlstate"
	"go.uber.org/zap"
)

// Browser is a Paginator with facets, sort and category. Every trigger ends
// in the same epoch guarded fetch, so stale suppression does not depend on
// what caused a request.
type Browser struct {
	*Paginator
	debounce *debounce.Debouncer
	binding  *urlstate.Binding
}

func NewBrowser(source Source, category types.Category, opts ...Option) *Browser {
	o := buildOptions(opts)
	b := &Browser{
		Paginator: newPaginator(source, category, o),
		debounce:  debounce.New(o.debounce),
		binding:   o.binding,
	}
	if b.binding != nil {
		if b.binding.DefaultLimit < 1 {
			b.binding.DefaultLimit = o.defaultLimit
		}
		if b.binding.DefaultCategory == "" {
			b.binding.DefaultCategory = category
		}
		if b.binding.Registry == nil {
			b.binding.Registry = category.Registry()
		}
	}
	b.beforeInit = b.seed
	return b
}

// seed reads the bound location once; from then on the browser state is
// the source of truth and the location only mirrors it.
func (b *Browser) seed() {
	if b.binding == nil {
		return
	}
	sr, err := b.binding.Read()
	if err != nil {
		b.logger.Warn("ignoring malformed url parameters", zap.Error(err))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.page, b.limit = sr.Page, sr.Limit
	b.state.Filters = sr.Filters
	b.state.Sort = sr.Sort
	b.state.Category = resolveCategory(b.state.Category, string(sr.Category))
}

// resolveCategory keeps a browser within its family: diamonds stay on
// diamonds and jewelry never switches over to them.
func resolveCategory(current types.Category, requested string) types.Category {
	if current == types.CategoryDiamonds {
		return current
	}
	return types.ResolveJewelryCategory(requested)
}

// UpdateFilters merges u into the filters and schedules a debounced fetch of
// page 1. Empty entries remove their key. A single value for a toggle facet
// flips that value; anything else replaces the key.
func (b *Browser) UpdateFilters(u types.Update) {
	b.mu.Lock()
	b.state.Filters = b.state.Filters.Apply(u, b.state.Category.Registry())
	b.commit()
	b.debounce.Call(b.refetchFirstPage)
}

// Search sets or clears the free text term. The page drops back to 1 at
// once; the fetch itself goes through the filter debounce.
func (b *Browser) Search(term string) {
	b.mu.Lock()
	b.state.Filters = b.state.Filters.Apply(types.Update{
		types.SearchTermKey: types.Text(term),
	}, b.state.Category.Registry())
	b.page = 1
	b.state.Pagination.CurrentPage = 1
	b.commit()
	b.debounce.Call(b.refetchFirstPage)
}

// UpdateSortOption refetches right away at the current page and limit.
func (b *Browser) UpdateSortOption(opt types.SortOption) {
	b.mu.Lock()
	page, limit := b.page, b.limit
	b.mu.Unlock()
	b.fetch(page, limit, func(s *State) { s.Sort = opt })
	b.writeURL()
}

// ClearFilters drops every filter and any pending debounced fetch, then
// loads page 1 immediately.
func (b *Browser) ClearFilters() {
	b.debounce.Cancel()
	b.mu.Lock()
	limit := b.limit
	b.mu.Unlock()
	b.fetch(1, limit, func(s *State) { s.Filters = types.FilterSet{} })
	if b.binding != nil {
		b.binding.Reset()
	}
}

// SetCategory switches the jewelry category. Unknown categories list
// everything; a diamond browser keeps listing diamonds.
func (b *Browser) SetCategory(c types.Category) {
	b.debounce.Cancel()
	b.mu.Lock()
	limit := b.limit
	b.mu.Unlock()
	b.fetch(1, limit, func(s *State) {
		s.Category = resolveCategory(s.Category, string(c))
	})
	b.writeURL()
}

func (b *Browser) ChangePage(n int) error {
	if err := b.Paginator.ChangePage(n); err != nil {
		return err
	}
	b.writeURL()
	return nil
}

func (b *Browser) ChangeLimit(n int) error {
	if err := b.Paginator.ChangeLimit(n); err != nil {
		return err
	}
	b.writeURL()
	return nil
}

// Wait blocks until no debounced fetch is pending and every dispatched
// request has settled.
func (b *Browser) Wait() {
	for {
		for b.debounce.Pending() {
			time.Sleep(time.Millisecond)
		}
		b.Paginator.Wait()
		if !b.debounce.Pending() {
			return
		}
	}
}

func (b *Browser) refetchFirstPage() {
	b.mu.Lock()
	limit := b.limit
	b.mu.Unlock()
	b.fetch(1, limit, nil)
	b.writeURL()
}

func (b *Browser) writeURL() {
	if b.binding == nil {
		return
	}
	b.mu.Lock()
	sr := types.SearchRequest{
		Page:     b.page,
		Limit:    b.limit,
		Sort:     b.state.Sort,
		Category: b.state.Category,
		Filters:  b.state.Filters,
	}
	b.mu.Unlock()
	b.binding.Write(sr)
}
