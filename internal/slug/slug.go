// Package slug generates URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// Make generates a URL-safe slug. Example: "Website Development" ->
// "website-development".
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlug.ReplaceAllString(s, "")
	s = multiDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
