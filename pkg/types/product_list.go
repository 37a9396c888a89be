package types

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/matst80/slask-jewelry/pkg/common/jsoncompat"
)

// DecodeProducts reads a product fixture: either a bare JSON array or an
// object with a "products" array.
func DecodeProducts(r io.Reader) ([]Product, error) {
	br := bufio.NewReader(r)
	bare, err := startsWithArray(br)
	if err != nil {
		return nil, fmt.Errorf("decode product list: %w", err)
	}
	dec := jsoncompat.NewDecoder(br)
	if bare {
		var items []Product
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("decode product list: %w", err)
		}
		return items, nil
	}
	var doc struct {
		Products []Product `json:"products"`
	}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode product list: %w", err)
	}
	return doc.Products, nil
}

// startsWithArray skips leading whitespace and peeks at the first token.
func startsWithArray(br *bufio.Reader) (bool, error) {
	for {
		r, _, err := br.ReadRune()
		if errors.Is(err, io.EOF) {
			return false, io.ErrUnexpectedEOF
		}
		if err != nil {
			return false, err
		}
		if unicode.IsSpace(r) {
			continue
		}
		if err := br.UnreadRune(); err != nil {
			return false, err
		}
		return r == '[', nil
	}
}

// InCategory reports whether p belongs to c. "all" matches every piece of
// jewelry but not loose diamonds.
func (p *Product) InCategory(c Category) bool {
	switch c {
	case CategoryAll, "":
		return !p.InCategory(CategoryDiamonds)
	default:
		return strings.EqualFold(strings.TrimSpace(p.CategoryID), string(c)) ||
			strings.EqualFold(strings.TrimSpace(p.CategoryName), string(c))
	}
}
