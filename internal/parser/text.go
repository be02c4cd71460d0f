package parser

import (
	"io"
	"strings"
)

// TextParser passes plain text through, normalising line endings.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return normalizeNewlines(string(b)), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
