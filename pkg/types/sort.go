package types

type SortOption string

const (
	SortDefault SortOption = ""
	SortLowHigh SortOption = "low-high"
	SortHighLow SortOption = "high-low"
	SortNewest  SortOption = "newest"
)

func (s SortOption) IsPriceSort() bool {
	return s == SortLowHigh || s == SortHighLow
}
