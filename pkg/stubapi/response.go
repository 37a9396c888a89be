package stubapi

import (
	"github.com/gin-gonic/gin"
	"github.com/matst80/slask-jewelry/pkg/types"
)

type page struct {
	items      []types.Product
	pagination types.Pagination
}

// paginate cuts one page out of items. A page past the end is empty rather
// than an error.
func paginate(items []types.Product, current, limit int) page {
	total := len(items)
	pages := max(1, (total+limit-1)/limit)
	start := min((current-1)*limit, total)
	end := min(start+limit, total)
	out := items[start:end]
	if out == nil {
		out = []types.Product{}
	}
	return page{
		items: out,
		pagination: types.Pagination{
			CurrentPage: current,
			TotalPages:  pages,
			TotalCount:  total,
			Limit:       limit,
		},
	}
}

type responseShape func(page) gin.H

// rootShape is what the diamond endpoint sends.
func rootShape(p page) gin.H {
	return gin.H{
		"products":           p.items,
		"currentPage":        p.pagination.CurrentPage,
		"totalPages":         p.pagination.TotalPages,
		"totalProductsCount": p.pagination.TotalCount,
		"productsPerPage":    p.pagination.Limit,
	}
}

func paginationShape(p page) gin.H {
	return gin.H{
		"products": p.items,
		"pagination": gin.H{
			"currentPage": p.pagination.CurrentPage,
			"totalPages":  p.pagination.TotalPages,
			"totalCount":  p.pagination.TotalCount,
			"limit":       p.pagination.Limit,
		},
	}
}
