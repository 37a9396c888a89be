package types

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/gorilla/schema"
)

const (
	DefaultLimit = 12
	MaxLimit     = 100
)

// SearchRequest is everything one list fetch sends to the server.
type SearchRequest struct {
	Page     int
	Limit    int
	Sort     SortOption
	Category Category
	Filters  FilterSet
}

// scalarParams are the fixed query parameters; facet parameters are
// derived from the registry.
type scalarParams struct {
	Page     int    `schema:"page"`
	Limit    int    `schema:"limit"`
	Sort     string `schema:"sort,omitempty"`
	Search   string `schema:"search,omitempty"`
	Category string `schema:"category,omitempty"`
}

var (
	decoder = schema.NewDecoder()
	encoder = schema.NewEncoder()
)

func init() {
	decoder.IgnoreUnknownKeys(true)
	// scalarParams holds only ints and strings; checking once here is what
	// lets Values ignore the encoder error.
	if err := encoder.Encode(&scalarParams{}, url.Values{}); err != nil {
		panic("types: scalar params not encodable: " + err.Error())
	}
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Sanitize coerces page and limit to at least 1. It does not cap limit,
// the server owns that decision.
func (s *SearchRequest) Sanitize(defaultLimit int) {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Limit < 1 {
		s.Limit = max(defaultLimit, 1)
	}
	if s.Filters == nil {
		s.Filters = FilterSet{}
	}
}

// ClampLimit caps the limit the way the API does.
func (s *SearchRequest) ClampLimit() {
	s.Limit = clamp(s.Limit, 1, MaxLimit)
}

func (s *SearchRequest) scalars(withCategory bool) scalarParams {
	p := scalarParams{
		Page:   s.Page,
		Limit:  s.Limit,
		Sort:   string(s.Sort),
		Search: strings.TrimSpace(s.Filters.SearchTerm()),
	}
	if withCategory {
		p.Category = string(s.Category)
	}
	return p
}

// Values is the API query string: page, limit, sort, search, and one
// entry per active facet (comma joined values, min/max pairs for ranges).
func (s *SearchRequest) Values(reg Registry) url.Values {
	values := url.Values{}
	p := s.scalars(false)
	_ = encoder.Encode(&p, values) // field types checked in init
	EncodeFilters(s.Filters, reg, values)
	return values
}

// EncodeFilters writes the facet parameters of fs into values. The search
// term is not written here; it travels as the scalar "search" parameter.
func EncodeFilters(fs FilterSet, reg Registry, values url.Values) {
	for _, key := range fs.Keys() {
		f := fs[key]
		spec := reg.Spec(key)
		switch f.Kind {
		case ValuesFilter:
			values.Set(key, strings.Join(f.Values, ","))
			if spec.CaseInsensitive {
				values.Set(key+"CaseInsensitive", "true")
			}
		case RangeFilter:
			if f.Range.Min != nil {
				values.Set(MinParam(key), formatFloat(*f.Range.Min))
			}
			if f.Range.Max != nil {
				values.Set(MaxParam(key), formatFloat(*f.Range.Max))
			}
		}
	}
}

// FilterParams lists every query parameter the registry may write.
func FilterParams(reg Registry) []string {
	params := make([]string, 0, len(reg)*2)
	for key, spec := range reg {
		switch spec.Kind {
		case ValuesFilter:
			params = append(params, key)
			if spec.CaseInsensitive {
				params = append(params, key+"CaseInsensitive")
			}
		case RangeFilter:
			params = append(params, MinParam(key), MaxParam(key))
		}
	}
	return params
}

func MinParam(key string) string { return "min" + upperFirst(key) }
func MaxParam(key string) string { return "max" + upperFirst(key) }

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseSearchRequest is the inverse of Values. Unparsable scalars are
// reported but the returned request is always sanitized and usable.
func ParseSearchRequest(query url.Values, reg Registry, defaultLimit int) (*SearchRequest, error) {
	var p scalarParams
	err := decoder.Decode(&p, query)
	sr := &SearchRequest{
		Page:     p.Page,
		Limit:    p.Limit,
		Sort:     SortOption(p.Sort),
		Category: Category(p.Category),
		Filters:  DecodeFilters(query, reg),
	}
	if term := strings.TrimSpace(p.Search); term != "" {
		sr.Filters.Set(SearchTermKey, Text(term), reg)
	}
	sr.Sanitize(defaultLimit)
	return sr, err
}

// DecodeFilters reads the facet parameters known to reg. Malformed numbers
// are skipped.
func DecodeFilters(query url.Values, reg Registry) FilterSet {
	fs := FilterSet{}
	for key, spec := range reg {
		switch spec.Kind {
		case ValuesFilter:
			raw := query.Get(key)
			if raw == "" {
				continue
			}
			parts := strings.Split(raw, ",")
			values := make([]string, 0, len(parts))
			for _, v := range parts {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
			fs.Set(key, Values(values...), reg)
		case RangeFilter:
			r := Range{}
			if n := ParseNumber(query.Get(MinParam(key))); n.Valid {
				r.Min = &n.Value
			}
			if n := ParseNumber(query.Get(MaxParam(key))); n.Valid {
				r.Max = &n.Value
			}
			fs.Set(key, InRange(r), reg)
		}
	}
	return fs
}
