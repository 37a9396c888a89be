package tracking

import (
	"context"
	"net/url"
	"sync"

	"github.com/matst80/slask-jewelry/pkg/types"
)

type Tracker interface {
	TrackSearch(ctx context.Context, e SearchEvent) error
}

const (
	EventSearch uint16 = 1
)

type BaseEvent struct {
	SessionID string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

type SearchEvent struct {
	*BaseEvent
	Category string `json:"category"`
	Query    string `json:"query,omitempty"`
	Filters  string `json:"filters,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Page     int    `json:"page"`
	Results  int    `json:"noi"`
}

// NewSearchEvent describes a completed list fetch. Filters are carried as
// their query-string encoding.
func NewSearchEvent(sr types.SearchRequest, results int) SearchEvent {
	filters := url.Values{}
	types.EncodeFilters(sr.Filters, sr.Category.Registry(), filters)
	return SearchEvent{
		Category: string(sr.Category),
		Query:    sr.Filters.SearchTerm(),
		Filters:  filters.Encode(),
		Sort:     string(sr.Sort),
		Page:     sr.Page,
		Results:  results,
	}
}

type Nop struct{}

func (Nop) TrackSearch(context.Context, SearchEvent) error { return nil }

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []SearchEvent
}

func (r *Recorder) TrackSearch(_ context.Context, e SearchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Events() []SearchEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SearchEvent(nil), r.events...)
}
