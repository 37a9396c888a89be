package catalog

import "github.com/matst80/slask-jewelry/pkg/types"

// pageShape accepts every spelling of the pagination fields the API has
// used over time.
type pageShape struct {
	CurrentPage        *int `json:"currentPage"`
	Page               *int `json:"page"`
	TotalPages         *int `json:"totalPages"`
	TotalCount         *int `json:"totalCount"`
	TotalProductsCount *int `json:"totalProductsCount"`
	Total              *int `json:"total"`
	Limit              *int `json:"limit"`
	ProductsPerPage    *int `json:"productsPerPage"`
}

func (s *pageShape) present() bool {
	return s != nil && (s.CurrentPage != nil || s.Page != nil || s.TotalPages != nil ||
		s.TotalCount != nil || s.TotalProductsCount != nil || s.Total != nil)
}

func (s *pageShape) applyTo(p *types.Pagination) {
	if v := first(s.CurrentPage, s.Page); v != nil {
		p.CurrentPage = *v
	}
	if s.TotalPages != nil {
		p.TotalPages = *s.TotalPages
	}
	if v := first(s.TotalCount, s.TotalProductsCount, s.Total); v != nil {
		p.TotalCount = *v
	}
	if v := first(s.Limit, s.ProductsPerPage); v != nil {
		p.Limit = *v
	}
}

func first(values ...*int) *int {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// listEnvelope is the list response. Root-level pagination fields are the
// current format; the pagination and meta objects are older formats still
// served by some endpoints.
type listEnvelope struct {
	pageShape
	Products   []types.Product `json:"products"`
	Pagination *pageShape      `json:"pagination"`
	Meta       *pageShape      `json:"meta"`
}

func (e *listEnvelope) pagination(page, limit int) types.Pagination {
	p := types.Pagination{CurrentPage: page, TotalPages: 1, TotalCount: 0, Limit: limit}
	for _, shape := range []*pageShape{&e.pageShape, e.Pagination, e.Meta} {
		if shape.present() {
			shape.applyTo(&p)
			break
		}
	}
	return p
}
