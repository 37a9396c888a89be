// Package browse coordinates product list fetches. A Paginator owns one
// product family; every request it sends carries an epoch and only the
// latest epoch may touch state, so a slow early response can never
// overwrite a later one.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/matst80/slask-jewelry/pkg/catalog"
	"github.com/matst80/slask-jewelry/pkg/metrics"
	"github.com/matst80/slask-jewelry/pkg/tracking"
	"github.com/matst80/slask-jewelry/pkg/types"
	"go.uber.org/zap"
)

var (
	ErrInvalidPage  = errors.New("page must be a positive integer")
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)

// Source is the product API. catalog.Client implements it.
type Source interface {
	Search(ctx context.Context, req types.SearchRequest) (*catalog.Result, error)
	Product(ctx context.Context, category types.Category, id string) (*types.Product, error)
}

// State is a snapshot; slices and maps in it are never mutated afterwards.
type State struct {
	Items      []types.Product
	Pagination types.Pagination
	Loading    bool
	Error      string

	Selected        *types.Product
	SelectedLoading bool
	SelectedError   string

	Filters  types.FilterSet
	Sort     types.SortOption
	Category types.Category
}

type Paginator struct {
	source  Source
	ctx     context.Context
	logger  *zap.Logger
	tracker tracking.Tracker

	mu          sync.Mutex
	state       State
	page        int
	limit       int
	listEpoch   uint64
	detailEpoch uint64
	listeners   []func(State)

	version   uint64
	notifyMu  sync.Mutex
	delivered uint64

	once       sync.Once
	beforeInit func()
	wg         sync.WaitGroup
}

func NewPaginator(source Source, category types.Category, opts ...Option) *Paginator {
	o := buildOptions(opts)
	return newPaginator(source, category, o)
}

func newPaginator(source Source, category types.Category, o options) *Paginator {
	return &Paginator{
		source:  source,
		ctx:     o.ctx,
		logger:  o.logger,
		tracker: o.tracker,
		page:    1,
		limit:   o.defaultLimit,
		state: State{
			Filters:  types.FilterSet{},
			Category: category,
		},
	}
}

// State returns the current snapshot.
func (p *Paginator) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe registers fn to receive every new state. Listeners run on the
// goroutine that changed the state and must not start fetches synchronously.
func (p *Paginator) Subscribe(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Start runs the initial fetch. Only the first call has any effect.
func (p *Paginator) Start() {
	p.once.Do(func() {
		if p.beforeInit != nil {
			p.beforeInit()
		}
		p.mu.Lock()
		page, limit := p.page, p.limit
		p.mu.Unlock()
		p.Fetch(page, limit)
	})
}

// Wait blocks until every dispatched request has settled.
func (p *Paginator) Wait() {
	p.wg.Wait()
}

// Fetch requests a page. Values below 1 are coerced to 1. The returned
// epoch identifies the request; its result is applied only if no other
// Fetch happened in the meantime.
func (p *Paginator) Fetch(page, limit int) uint64 {
	return p.fetch(page, limit, nil)
}

// fetch stamps a new epoch and dispatches. mutate runs under the lock
// before the request is built.
func (p *Paginator) fetch(page, limit int, mutate func(*State)) uint64 {
	page, limit = max(page, 1), max(limit, 1)

	p.mu.Lock()
	if mutate != nil {
		mutate(&p.state)
	}
	p.page, p.limit = page, limit
	p.listEpoch++
	epoch := p.listEpoch
	p.state.Loading = true
	p.state.Error = ""
	req := types.SearchRequest{
		Page:     page,
		Limit:    limit,
		Sort:     p.state.Sort,
		Category: p.state.Category,
		Filters:  p.state.Filters.Clone(),
	}
	p.commit()

	metrics.Fetches.WithLabelValues(metrics.KindList).Inc()
	p.logger.Debug("fetching products",
		zap.Uint64("epoch", epoch),
		zap.String("category", string(req.Category)),
		zap.Int("page", page),
		zap.Int("limit", limit))

	p.wg.Add(1)
	go p.runList(epoch, req)
	return epoch
}

func (p *Paginator) runList(epoch uint64, req types.SearchRequest) {
	defer p.wg.Done()
	res, err := p.source.Search(p.ctx, req)

	p.mu.Lock()
	if epoch != p.listEpoch {
		p.mu.Unlock()
		metrics.StaleResponses.Inc()
		p.logger.Debug("dropping stale response", zap.Uint64("epoch", epoch), zap.Error(err))
		return
	}
	p.state.Loading = false
	if err != nil {
		metrics.FetchErrors.WithLabelValues(metrics.KindList).Inc()
		p.logger.Warn("product fetch failed", zap.Uint64("epoch", epoch), zap.Error(err))
		p.state.Error = catalog.ErrorMessage(err, "Failed to fetch products")
		p.commit()
		return
	}
	p.state.Items = res.Products
	p.state.Pagination = res.Pagination
	p.commit()

	if err := p.tracker.TrackSearch(p.ctx, tracking.NewSearchEvent(req, len(res.Products))); err != nil {
		metrics.TrackingErrors.Inc()
	}
}

// FetchByID loads one product into the Selected slot. It has its own epoch
// and never touches the list state.
func (p *Paginator) FetchByID(category types.Category, id string) uint64 {
	p.mu.Lock()
	p.detailEpoch++
	epoch := p.detailEpoch
	p.state.SelectedLoading = true
	p.state.SelectedError = ""
	p.commit()

	metrics.Fetches.WithLabelValues(metrics.KindDetail).Inc()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		product, err := p.source.Product(p.ctx, category, id)

		p.mu.Lock()
		if epoch != p.detailEpoch {
			p.mu.Unlock()
			metrics.StaleResponses.Inc()
			p.logger.Debug("dropping stale product response", zap.String("id", id))
			return
		}
		p.state.SelectedLoading = false
		if err != nil {
			metrics.FetchErrors.WithLabelValues(metrics.KindDetail).Inc()
			p.logger.Warn("product detail fetch failed", zap.String("id", id), zap.Error(err))
			p.state.Selected = nil
			p.state.SelectedError = catalog.ErrorMessage(err, "Failed to fetch product")
		} else {
			p.state.Selected = product
		}
		p.commit()
	}()
	return epoch
}

// ChangePage fetches page n with the current limit. n below 1 is rejected
// without touching state.
func (p *Paginator) ChangePage(n int) error {
	if n < 1 {
		p.logger.Warn("ignoring invalid page", zap.Int("page", n))
		return fmt.Errorf("%w: %d", ErrInvalidPage, n)
	}
	p.mu.Lock()
	limit := p.limit
	p.mu.Unlock()
	p.fetch(n, limit, nil)
	return nil
}

// ChangeLimit fetches the current page with limit n.
func (p *Paginator) ChangeLimit(n int) error {
	if n < 1 {
		p.logger.Warn("ignoring invalid limit", zap.Int("limit", n))
		return fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	p.mu.Lock()
	page := p.page
	p.mu.Unlock()
	p.fetch(page, n, nil)
	return nil
}

// ParsePage converts user input into a page number.
func ParsePage(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPage, s)
	}
	return n, nil
}

// commit publishes the current state. It must be called with p.mu held
// and releases it. A snapshot that lost the race to a newer one is not
// delivered, so listeners never observe state going backwards.
func (p *Paginator) commit() {
	p.version++
	version := p.version
	snapshot := p.state
	listeners := p.listeners
	p.mu.Unlock()

	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()
	if version < p.delivered {
		return
	}
	p.delivered = version
	for _, fn := range listeners {
		fn(snapshot)
	}
}
