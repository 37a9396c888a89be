package types

import (
	"math"
	"strconv"
	"strings"

	"github.com/matst80/slask-jewelry/pkg/common/jsoncompat"
)

// Number is a numeric product attribute that may be missing. Upstream data
// stores numbers as JSON numbers, numeric strings or not at all; anything
// that does not parse to a finite float decodes as missing.
type Number struct {
	Value float64
	Valid bool
}

func NumberOf(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{Value: v, Valid: true}
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, n.Value, 'f', -1, 64), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := jsoncompat.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	*n = ParseNumber(raw)
	return nil
}

// ParseNumber never fails; unparsable input is missing.
func ParseNumber(s string) Number {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Number{}
	}
	return NumberOf(v)
}
