// Package urlstate keeps the deep-link query string. One Location is shared
// by every browser in the process; each Binding only touches its own keys.
package urlstate

import (
	"net/url"
	"strings"
	"sync"
)

type Location struct {
	mu        sync.RWMutex
	values    url.Values
	listeners []func(query string)
}

// NewLocation parses rawQuery, with or without the leading "?".
func NewLocation(rawQuery string) (*Location, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return &Location{values: url.Values{}}, err
	}
	return &Location{values: values}, nil
}

func (l *Location) Get(key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.values.Get(key)
}

// Values returns a copy of the current query.
func (l *Location) Values() url.Values {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(url.Values, len(l.values))
	for k, v := range l.values {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func (l *Location) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.values.Encode()
}

// OnChange registers fn to receive the encoded query after every Replace.
func (l *Location) OnChange(fn func(query string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

// Replace rewrites the owned keys: each one is set from values or removed
// when values has no entry for it. Keys in values that are not owned are
// ignored, and keys owned by nobody in this call are left alone.
func (l *Location) Replace(owned []string, values url.Values) {
	l.mu.Lock()
	for _, key := range owned {
		if v, ok := values[key]; ok && len(v) > 0 {
			l.values[key] = append([]string(nil), v...)
		} else {
			delete(l.values, key)
		}
	}
	query := l.values.Encode()
	listeners := append([]func(string){}, l.listeners...)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(query)
	}
}
