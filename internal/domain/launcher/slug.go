package launcher

import "strings"

// Slug converts a display name to a route segment: lowercase, spaces to hyphens.
// "Sales Hub" becomes "sales-hub".
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
