package urlstate

import (
	"net/url"
	"strconv"

	"github.com/matst80/slask-jewelry/pkg/types"
)

// Binding projects one browser's request onto a Location. Prefix namespaces
// the keys when several browsers share a page.
type Binding struct {
	Location        *Location
	Prefix          string
	Registry        types.Registry
	DefaultLimit    int
	DefaultCategory types.Category
}

var scalarKeys = []string{"page", "limit", "sort", "search", "category"}

// Owned lists every key the binding may write, prefixed.
func (b *Binding) Owned() []string {
	keys := append([]string{}, scalarKeys...)
	keys = append(keys, types.FilterParams(b.Registry)...)
	for i, k := range keys {
		keys[i] = b.Prefix + k
	}
	return keys
}

// Read seeds a request from the location. Only meant to run once, when the
// browser starts; afterwards the browser state is authoritative.
func (b *Binding) Read() (*types.SearchRequest, error) {
	all := b.Location.Values()
	own := url.Values{}
	for _, key := range b.Owned() {
		if v, ok := all[key]; ok {
			own[key[len(b.Prefix):]] = v
		}
	}
	sr, err := types.ParseSearchRequest(own, b.Registry, b.DefaultLimit)
	if sr.Category == "" {
		sr.Category = b.DefaultCategory
	}
	return sr, err
}

// Write rewrites the owned keys from sr. page is always written; the other
// keys only when they differ from the defaults.
func (b *Binding) Write(sr types.SearchRequest) {
	values := sr.Values(b.Registry)
	if sr.Limit == b.DefaultLimit {
		values.Del("limit")
	}
	if sr.Category != "" && sr.Category != b.DefaultCategory {
		values.Set("category", string(sr.Category))
	}
	values.Set("page", strconv.Itoa(max(sr.Page, 1)))
	b.Location.Replace(b.Owned(), b.prefixed(values))
}

// Reset removes every owned key except page, which goes back to 1.
func (b *Binding) Reset() {
	b.Location.Replace(b.Owned(), url.Values{b.Prefix + "page": {"1"}})
}

func (b *Binding) prefixed(values url.Values) url.Values {
	if b.Prefix == "" {
		return values
	}
	out := make(url.Values, len(values))
	for k, v := range values {
		out[b.Prefix+k] = v
	}
	return out
}
