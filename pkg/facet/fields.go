package facet

import "github.com/matst80/slask-jewelry/pkg/types"

type keyAccessor func(*types.Product) string
type numberAccessor func(*types.Product) types.Number

// keyFields are the exact-match facets, by FilterSet key.
var keyFields = map[string]keyAccessor{
	"color":        func(p *types.Product) string { return p.Color },
	"clarity":      func(p *types.Product) string { return p.Clarity },
	"cut":          func(p *types.Product) string { return p.Cut },
	"polish":       func(p *types.Product) string { return p.Polish },
	"symmetry":     func(p *types.Product) string { return p.Symmetry },
	"fluorescence": func(p *types.Product) string { return p.Fluorescence },
	"lab":          func(p *types.Product) string { return p.Lab },
	"metal":        func(p *types.Product) string { return p.Metal },
	"metalColor":   func(p *types.Product) string { return p.MetalColor },
}

// numberFields are the range facets, by FilterSet key.
var numberFields = map[string]numberAccessor{
	"price":   func(p *types.Product) types.Number { return p.PriceNumber() },
	"carat":   func(p *types.Product) types.Number { return p.Carat },
	"table":   func(p *types.Product) types.Number { return p.Table },
	"depth":   func(p *types.Product) types.Number { return p.Depth },
	"length":  func(p *types.Product) types.Number { return p.Length },
	"width":   func(p *types.Product) types.Number { return p.Width },
	"lwRatio": func(p *types.Product) types.Number { return p.LWRatio() },
}
