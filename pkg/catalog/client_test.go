package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/matst80/slask-jewelry/pkg/cache"
	"github.com/matst80/slask-jewelry/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestSearchPaginationShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want types.Pagination
	}{
		{
			name: "root level",
			body: `{"products":[{"id":"1"}],"currentPage":2,"totalPages":5,"totalProductsCount":57,"productsPerPage":12}`,
			want: types.Pagination{CurrentPage: 2, TotalPages: 5, TotalCount: 57, Limit: 12},
		},
		{
			name: "pagination object",
			body: `{"products":[{"id":"1"}],"pagination":{"currentPage":3,"totalPages":4,"totalCount":40,"limit":10}}`,
			want: types.Pagination{CurrentPage: 3, TotalPages: 4, TotalCount: 40, Limit: 10},
		},
		{
			name: "meta object",
			body: `{"products":[{"id":"1"}],"meta":{"page":1,"totalPages":2,"total":13,"limit":12}}`,
			want: types.Pagination{CurrentPage: 1, TotalPages: 2, TotalCount: 13, Limit: 12},
		},
		{
			name: "root wins over legacy objects",
			body: `{"products":[],"currentPage":1,"totalPages":1,"pagination":{"currentPage":9,"totalPages":9}}`,
			want: types.Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: 0, Limit: 12},
		},
		{
			name: "nothing present",
			body: `{"products":null}`,
			want: types.Pagination{CurrentPage: 2, TotalPages: 1, TotalCount: 0, Limit: 12},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := serve(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})
			res, err := c.Search(context.Background(), types.SearchRequest{Page: 2, Limit: 12, Category: types.CategoryDiamonds})
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Pagination)
			assert.NotNil(t, res.Products)
		})
	}
}

func TestSearchSendsQuery(t *testing.T) {
	var path, rid string
	var query map[string][]string
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.Query()
		rid = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"products":[]}`))
	})
	_, err := c.Search(context.Background(), types.SearchRequest{
		Page:     1,
		Limit:    24,
		Sort:     types.SortHighLow,
		Category: types.CategoryEarrings,
		Filters: types.FilterSet{
			"metal": types.Values("Gold", "Platinum"),
			"price": types.InRange(types.Between(100, 500)),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "/product/earrings", path)
	assert.NotEmpty(t, rid)
	assert.Equal(t, []string{"Gold,Platinum"}, query["metal"])
	assert.Equal(t, []string{"true"}, query["metalCaseInsensitive"])
	assert.Equal(t, []string{"100"}, query["minPrice"])
	assert.Equal(t, []string{"500"}, query["maxPrice"])
	assert.Equal(t, []string{"high-low"}, query["sort"])
	assert.Equal(t, []string{"24"}, query["limit"])
}

func TestSearchErrorPrefersServerMessage(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"Inventory service unavailable"}`))
	})
	_, err := c.Search(context.Background(), types.SearchRequest{Category: types.CategoryDiamonds})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Inventory service unavailable", ErrorMessage(err, "Failed to fetch products"))
	assert.Equal(t, "Failed to fetch products", ErrorMessage(errors.New("dial tcp"), "Failed to fetch products"))
}

func TestProductAcceptsWrappedAndBare(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/product/rings/1":
			_, _ = w.Write([]byte(`{"product":{"_id":"1","name":"Solitaire"}}`))
		case "/product/rings/2":
			_, _ = w.Write([]byte(`{"_id":"2","title":"Halo"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Product not found"}`))
		}
	})
	ctx := context.Background()

	p, err := c.Product(ctx, types.CategoryRings, "1")
	require.NoError(t, err)
	assert.Equal(t, "Solitaire", p.Title)

	p, err = c.Product(ctx, types.CategoryRings, "2")
	require.NoError(t, err)
	assert.Equal(t, "Halo", p.Title)

	_, err = c.Product(ctx, types.CategoryRings, "3")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Product not found", ErrorMessage(err, "x"))

	_, err = c.Product(ctx, types.CategoryRings, " ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"product":{"id":"9","title":"Tennis bracelet","price":"4200"}}`))
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, WithCache(cache.NewMemory()))

	for range 3 {
		p, err := c.Product(context.Background(), types.CategoryBracelets, "9")
		require.NoError(t, err)
		assert.Equal(t, "4200", p.Price.Decimal.String())
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "/product/diamonds", endpointLabel("/product/diamonds"))
	assert.Equal(t, "/product/rings/:id", endpointLabel("/product/rings/abc123"))
}
