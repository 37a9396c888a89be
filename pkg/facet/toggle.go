package facet

import "github.com/matst80/slask-jewelry/pkg/types"

// IsSelected reports whether selections holds value, ignoring case.
func IsSelected(value string, selections []string) bool {
	return types.ContainsFold(value, selections)
}

// Toggle removes the case-insensitive match of value or appends value as
// given, and hands the new slice to set exactly once. selections is left
// untouched.
func Toggle(value string, selections []string, set func([]string)) {
	set(Toggled(value, selections))
}

func Toggled(value string, selections []string) []string {
	return types.ToggleValue(value, selections)
}
