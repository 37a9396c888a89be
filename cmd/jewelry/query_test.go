package main

import (
	"testing"

	"github.com/matst80/slask-jewelry/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryFlagsFoldIntoValues(t *testing.T) {
	q := queryFlags{
		query:   "?page=3&color=F&utm_source=mail",
		filters: []string{"color=D,E", "shape=Oval"},
		ranges:  []string{"carat=1:2", "price=:5000"},
		search:  "halo",
		sort:    "low-high",
	}
	values, err := q.values(types.DiamondFacets)
	require.NoError(t, err)

	assert.Equal(t, "D,E", values.Get("color"), "flags win over the starting query")
	assert.Equal(t, "Oval", values.Get("shape"))
	assert.Equal(t, "1", values.Get("minCarat"))
	assert.Equal(t, "2", values.Get("maxCarat"))
	assert.Equal(t, "5000", values.Get("maxPrice"))
	assert.Empty(t, values.Get("minPrice"))
	assert.Equal(t, "halo", values.Get("search"))
	assert.Equal(t, "low-high", values.Get("sort"))
	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "mail", values.Get("utm_source"))
}

func TestQueryFlagsRejectMalformedInput(t *testing.T) {
	for _, q := range []queryFlags{
		{filters: []string{"color"}},
		{ranges: []string{"carat=1"}},
		{ranges: []string{"carat=x:2"}},
		{query: "%zz"},
	} {
		_, err := q.values(types.DiamondFacets)
		assert.Error(t, err, "%+v", q)
	}
}

func TestParseRange(t *testing.T) {
	key, r, err := parseRange("lwRatio=1.2:")
	require.NoError(t, err)
	assert.Equal(t, "lwRatio", key)
	require.NotNil(t, r.Min)
	assert.Equal(t, 1.2, *r.Min)
	assert.Nil(t, r.Max)
}
