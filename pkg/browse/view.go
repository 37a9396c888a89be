package browse

import (
	"sync"

	"github.com/matst80/slask-jewelry/pkg/facet"
	"github.com/matst80/slask-jewelry/pkg/types"
)

type ViewState struct {
	Items   []types.Product
	Loading bool
}

// FilteredView filters a fully loaded list in memory. Every change
// recomputes synchronously; Loading is only true while that runs.
type FilteredView struct {
	run sync.Mutex

	mu        sync.RWMutex
	items     []types.Product
	criteria  facet.Criteria
	filtered  []types.Product
	loading   bool
	listeners []func(ViewState)
}

func NewFilteredView(items []types.Product, criteria facet.Criteria) *FilteredView {
	v := &FilteredView{items: items, criteria: criteria}
	v.filtered = facet.FilterAndSort(items, criteria)
	return v
}

func (v *FilteredView) Subscribe(fn func(ViewState)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

func (v *FilteredView) Items() []types.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filtered
}

func (v *FilteredView) Loading() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loading
}

func (v *FilteredView) Criteria() facet.Criteria {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.criteria
}

func (v *FilteredView) SetItems(items []types.Product) {
	v.recompute(func() { v.items = items })
}

func (v *FilteredView) SetCriteria(c facet.Criteria) {
	v.recompute(func() { v.criteria = c })
}

// SetFilters replaces the criteria with the ones a FilterSet describes.
func (v *FilteredView) SetFilters(fs types.FilterSet, sort types.SortOption) {
	v.SetCriteria(facet.CriteriaFromFilters(fs, sort))
}

func (v *FilteredView) recompute(change func()) {
	v.run.Lock()
	defer v.run.Unlock()

	v.mu.Lock()
	change()
	v.loading = true
	items, criteria := v.items, v.criteria
	v.mu.Unlock()
	v.notify()

	filtered := facet.FilterAndSort(items, criteria)

	v.mu.Lock()
	v.filtered = filtered
	v.loading = false
	v.mu.Unlock()
	v.notify()
}

func (v *FilteredView) notify() {
	v.mu.RLock()
	s := ViewState{Items: v.filtered, Loading: v.loading}
	listeners := v.listeners
	v.mu.RUnlock()
	for _, fn := range listeners {
		fn(s)
	}
}
