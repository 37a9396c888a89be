package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/matst80/slask-jewelry/pkg/types"
	"github.com/spf13/pflag"
)

// queryFlags are the listing flags shared by the browse commands. They are
// folded into one query string, the same thing a deep link carries.
type queryFlags struct {
	query   string
	filters []string
	ranges  []string
	search  string
	sort    string
	page    int
	limit   int
}

func (q *queryFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&q.query, "query", "q", "", "Start from a storefront query string, e.g. '?page=2&color=D'")
	flags.StringArrayVarP(&q.filters, "filter", "f", nil, "Facet selection key=v1,v2 (repeatable)")
	flags.StringArrayVarP(&q.ranges, "range", "r", nil, "Range key=min:max, either side may be empty (repeatable)")
	flags.StringVar(&q.search, "search", "", "Free text search")
	flags.StringVar(&q.sort, "sort", "", "Sort: low-high, high-low or newest")
	flags.IntVar(&q.page, "page", 0, "Page number")
	flags.IntVar(&q.limit, "limit", 0, "Page size")
}

// values merges the flags over the starting query.
func (q *queryFlags) values(reg types.Registry) (url.Values, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(q.query, "?"))
	if err != nil {
		return nil, fmt.Errorf("parse --query: %w", err)
	}
	fs := types.DecodeFilters(values, reg)
	for _, raw := range q.filters {
		key, list, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("filter %q: want key=v1,v2", raw)
		}
		fs.Set(key, types.Values(strings.Split(list, ",")...), reg)
	}
	for _, raw := range q.ranges {
		key, r, err := parseRange(raw)
		if err != nil {
			return nil, err
		}
		fs.Set(key, types.InRange(r), reg)
	}
	for _, param := range types.FilterParams(reg) {
		values.Del(param)
	}
	types.EncodeFilters(fs, reg, values)

	if q.search != "" {
		values.Set("search", q.search)
	}
	if q.sort != "" {
		values.Set("sort", q.sort)
	}
	if q.page != 0 {
		values.Set("page", strconv.Itoa(q.page))
	}
	if q.limit != 0 {
		values.Set("limit", strconv.Itoa(q.limit))
	}
	return values, nil
}

func parseRange(raw string) (string, types.Range, error) {
	key, bounds, ok := strings.Cut(raw, "=")
	lo, hi, ok2 := strings.Cut(bounds, ":")
	if !ok || !ok2 || key == "" {
		return "", types.Range{}, fmt.Errorf("range %q: want key=min:max", raw)
	}
	var r types.Range
	if lo != "" {
		v, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return "", r, fmt.Errorf("range %q: %w", raw, err)
		}
		r.Min = &v
	}
	if hi != "" {
		v, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return "", r, fmt.Errorf("range %q: %w", raw, err)
		}
		r.Max = &v
	}
	return key, r, nil
}
