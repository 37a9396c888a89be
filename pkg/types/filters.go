package types

import (
	"maps"
	"slices"
	"strings"
)

type FilterKind uint8

const (
	ValuesFilter FilterKind = iota
	RangeFilter
	TextFilter
)

// Range is an inclusive numeric interval; a nil bound is unbounded.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

func Between(min, max float64) Range { return Range{Min: &min, Max: &max} }
func AtLeast(min float64) Range      { return Range{Min: &min} }
func AtMost(max float64) Range       { return Range{Max: &max} }

func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Covers reports whether r is at least as wide as bounds on both sides.
func (r Range) Covers(bounds Range) bool {
	if bounds.Min == nil || bounds.Max == nil {
		return false
	}
	lowOk := r.Min == nil || *r.Min <= *bounds.Min
	highOk := r.Max == nil || *r.Max >= *bounds.Max
	return lowOk && highOk
}

func (r Range) Equal(o Range) bool {
	return eqBound(r.Min, o.Min) && eqBound(r.Max, o.Max)
}

func (r Range) clone() Range {
	out := Range{}
	if r.Min != nil {
		v := *r.Min
		out.Min = &v
	}
	if r.Max != nil {
		v := *r.Max
		out.Max = &v
	}
	return out
}

func eqBound(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Filter is one tagged FilterSet entry.
type Filter struct {
	Kind   FilterKind `json:"kind"`
	Values []string   `json:"values,omitempty"`
	Range  Range      `json:"range,omitzero"`
	Text   string     `json:"text,omitempty"`
}

func Values(values ...string) Filter {
	return Filter{Kind: ValuesFilter, Values: values}
}

func InRange(r Range) Filter {
	return Filter{Kind: RangeFilter, Range: r}
}

func Text(s string) Filter {
	return Filter{Kind: TextFilter, Text: s}
}

func (f Filter) IsEmpty() bool {
	switch f.Kind {
	case RangeFilter:
		return f.Range.IsZero()
	case TextFilter:
		return strings.TrimSpace(f.Text) == ""
	default:
		return len(f.Values) == 0
	}
}

func (f Filter) Equal(o Filter) bool {
	return f.Kind == o.Kind &&
		slices.Equal(f.Values, o.Values) &&
		f.Range.Equal(o.Range) &&
		f.Text == o.Text
}

func (f Filter) clone() Filter {
	return Filter{
		Kind:   f.Kind,
		Values: slices.Clone(f.Values),
		Range:  f.Range.clone(),
		Text:   f.Text,
	}
}

// FilterSet maps a facet key to its selection. A key is only present while
// it constrains results, so an empty set means "no filters".
type FilterSet map[string]Filter

// Update is a partial FilterSet; an empty Filter deletes its key.
type Update map[string]Filter

func (fs FilterSet) Clone() FilterSet {
	out := make(FilterSet, len(fs))
	for k, f := range fs {
		out[k] = f.clone()
	}
	return out
}

func (fs FilterSet) Keys() []string {
	return slices.Sorted(maps.Keys(fs))
}

func (fs FilterSet) Values(key string) []string {
	if f, ok := fs[key]; ok && f.Kind == ValuesFilter {
		return slices.Clone(f.Values)
	}
	return nil
}

func (fs FilterSet) Range(key string) (Range, bool) {
	if f, ok := fs[key]; ok && f.Kind == RangeFilter {
		return f.Range.clone(), true
	}
	return Range{}, false
}

func (fs FilterSet) SearchTerm() string {
	if f, ok := fs[SearchTermKey]; ok {
		return f.Text
	}
	return ""
}

func (fs FilterSet) Equal(o FilterSet) bool {
	return maps.EqualFunc(fs, o, Filter.Equal)
}

// Set replaces key outright, pruning selections that do not constrain.
func (fs FilterSet) Set(key string, f Filter, reg Registry) {
	spec := reg.Spec(key)
	switch f.Kind {
	case ValuesFilter:
		f.Values = slices.DeleteFunc(slices.Clone(f.Values), func(v string) bool {
			return strings.TrimSpace(v) == ""
		})
	case TextFilter:
		f.Text = strings.TrimSpace(f.Text)
	}
	if f.IsEmpty() || (f.Kind == RangeFilter && spec.Bounds != nil && f.Range.Covers(*spec.Bounds)) {
		delete(fs, key)
		return
	}
	fs[key] = f.clone()
}

// Apply merges u into a copy of fs. For toggle facets a single incoming
// value toggles against the current selection; any other value replaces the
// key. A single-value bulk replace of a toggle facet is therefore not
// expressible through Apply; use Set for that.
func (fs FilterSet) Apply(u Update, reg Registry) FilterSet {
	out := fs.Clone()
	for _, key := range slices.Sorted(maps.Keys(u)) {
		f := u[key]
		spec := reg.Spec(key)
		if spec.Toggle && f.Kind == ValuesFilter && len(f.Values) == 1 {
			next := ToggleValue(f.Values[0], out.Values(key))
			out.Set(key, Values(next...), reg)
			continue
		}
		out.Set(key, f, reg)
	}
	return out
}

// ContainsFold reports whether selections holds value ignoring case.
func ContainsFold(value string, selections []string) bool {
	return slices.ContainsFunc(selections, func(s string) bool {
		return strings.EqualFold(s, value)
	})
}

// ToggleValue removes the case-insensitive match of value from selections,
// or appends value verbatim when there is none. selections is not modified.
func ToggleValue(value string, selections []string) []string {
	if ContainsFold(value, selections) {
		return slices.DeleteFunc(slices.Clone(selections), func(s string) bool {
			return strings.EqualFold(s, value)
		})
	}
	return append(slices.Clone(selections), value)
}
