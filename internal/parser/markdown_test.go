package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_BlocksBecomeLines(t *testing.T) {
	input := `# GOODS RECEIPT NOTE

Store Name : **NB Indiranagar**

- GRN No : 5000123
- Vendor Code : V2002

` + "```" + `
1 1234567 8900001122 18.50 10.000 10.000 0.000 EA 45.00 450.00
TBD Premium Rice 1kg 10019900
` + "```" + `
`
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader(input), "grn.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"GOODS RECEIPT NOTE",
		"Store Name : NB Indiranagar",
		"GRN No : 5000123",
		"Vendor Code : V2002",
		"1 1234567 8900001122 18.50 10.000 10.000 0.000 EA 45.00 450.00",
		"TBD Premium Rice 1kg 10019900",
	}
	lines := strings.Split(got, "\n")
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), got)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestMarkdownParser_SoftBreaksKept(t *testing.T) {
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader("line one\nline two\n"), "soft.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "line one\nline two" {
		t.Errorf("expected %q, got %q", "line one\nline two", got)
	}
}
