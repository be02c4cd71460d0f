package extract

import (
	"strings"
	"unicode"
)

// Segment splits text on every occurrence of delimiter and drops the
// preamble before the first one. Text without the delimiter yields nothing.
func Segment(text, delimiter string) []string {
	if delimiter == "" {
		return nil
	}
	parts := strings.Split(normalizeSpaces(text), delimiter)
	if len(parts) < 2 {
		return nil
	}
	return parts[1:]
}

// normalizeSpaces rewrites non-ASCII space separators such as U+00A0 to a
// plain space. \s in the row patterns matches ASCII whitespace only.
func normalizeSpaces(s string) string {
	if strings.IndexFunc(s, isWideSpace) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isWideSpace(r) {
			return ' '
		}
		return r
	}, s)
}

func isWideSpace(r rune) bool {
	return r > unicode.MaxASCII && unicode.Is(unicode.Zs, r)
}
