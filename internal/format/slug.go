package format

import (
	"strings"
	"unicode"
)

// Slug makes a branch name safe to use as a single path segment.
func Slug(branch string) string {
	slug := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, branch)
	return strings.Trim(slug, "-")
}
