package types

import (
	"strings"

	"github.com/matst80/slask-jewelry/pkg/common/jsoncompat"
	"github.com/shopspring/decimal"
)

// Product is the part of a catalog record the browsing core looks at. It is
// never mutated after decoding.
type Product struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	CategoryID   string              `json:"categoryId,omitempty"`
	CategoryName string              `json:"categoryName,omitempty"`
	Shape        string              `json:"shape,omitempty"`
	Color        string              `json:"color,omitempty"`
	Clarity      string              `json:"clarity,omitempty"`
	Cut          string              `json:"cut,omitempty"`
	Polish       string              `json:"polish,omitempty"`
	Symmetry     string              `json:"symmetry,omitempty"`
	Fluorescence string              `json:"fluorescence,omitempty"`
	Lab          string              `json:"lab,omitempty"`
	Metal        string              `json:"metal,omitempty"`
	MetalColor   string              `json:"metalColor,omitempty"`
	Price        decimal.NullDecimal `json:"price"`
	Carat        Number              `json:"carat"`
	Table        Number              `json:"table"`
	Depth        Number              `json:"depth"`
	Length       Number              `json:"length"`
	Width        Number              `json:"width"`
}

// LWRatio is the derived length/width ratio.
func (p *Product) LWRatio() Number {
	if !p.Length.Valid || !p.Width.Valid || p.Width.Value <= 0 {
		return Number{}
	}
	return NumberOf(p.Length.Value / p.Width.Value)
}

// PriceNumber returns the price as a float for range comparisons.
func (p *Product) PriceNumber() Number {
	if !p.Price.Valid {
		return Number{}
	}
	return NumberOf(p.Price.Decimal.InexactFloat64())
}

type categoryRef struct {
	ID   string
	Name string
}

// the backend either stores the category id or populates the whole document
func (c *categoryRef) UnmarshalJSON(data []byte) error {
	*c = categoryRef{}
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return nil
	}
	if raw[0] == '"' {
		return jsoncompat.Unmarshal(data, &c.ID)
	}
	var doc struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
		Name    string `json:"name"`
	}
	if err := jsoncompat.Unmarshal(data, &doc); err != nil {
		return nil
	}
	c.ID = firstNonEmpty(doc.MongoID, doc.ID)
	c.Name = doc.Name
	return nil
}

type looseDecimal struct {
	decimal.NullDecimal
}

func (d *looseDecimal) UnmarshalJSON(data []byte) error {
	if err := d.NullDecimal.UnmarshalJSON(data); err != nil {
		d.NullDecimal = decimal.NullDecimal{}
	}
	return nil
}

type productWire struct {
	ID           string       `json:"id"`
	MongoID      string       `json:"_id"`
	Title        string       `json:"title"`
	Name         string       `json:"name"`
	Category     categoryRef  `json:"category"`
	CategoryID   string       `json:"categoryId"`
	CategoryName string       `json:"categoryName"`
	Shape        string       `json:"shape"`
	Color        string       `json:"color"`
	Clarity      string       `json:"clarity"`
	Cut          string       `json:"cut"`
	Polish       string       `json:"polish"`
	Symmetry     string       `json:"symmetry"`
	Fluorescence string       `json:"fluorescence"`
	Lab          string       `json:"lab"`
	Metal        string       `json:"metal"`
	MetalColor   string       `json:"metalColor"`
	Price        looseDecimal `json:"price"`
	Carat        Number       `json:"carat"`
	Carats       Number       `json:"carats"`
	Table        Number       `json:"table"`
	Depth        Number       `json:"depth"`
	Length       Number       `json:"length"`
	Width        Number       `json:"width"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var w productWire
	if err := jsoncompat.Unmarshal(data, &w); err != nil {
		return err
	}
	carat := w.Carat
	if !carat.Valid {
		carat = w.Carats
	}
	*p = Product{
		ID:           firstNonEmpty(w.ID, w.MongoID),
		Title:        firstNonEmpty(w.Title, w.Name),
		CategoryID:   firstNonEmpty(w.CategoryID, w.Category.ID),
		CategoryName: firstNonEmpty(w.CategoryName, w.Category.Name),
		Shape:        w.Shape,
		Color:        w.Color,
		Clarity:      w.Clarity,
		Cut:          w.Cut,
		Polish:       w.Polish,
		Symmetry:     w.Symmetry,
		Fluorescence: w.Fluorescence,
		Lab:          w.Lab,
		Metal:        w.Metal,
		MetalColor:   w.MetalColor,
		Price:        w.Price.NullDecimal,
		Carat:        carat,
		Table:        w.Table,
		Depth:        w.Depth,
		Length:       w.Length,
		Width:        w.Width,
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
