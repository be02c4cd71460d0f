package extract

import (
	"regexp"
	"strings"
)

// Metadata maps every registry field to its value; nil means absent.
type Metadata map[string]*string

// Get returns the field value, or "" when it is absent.
func (m Metadata) Get(name string) string {
	if v := m[name]; v != nil {
		return *v
	}
	return ""
}

// ExtractMetadata applies the registry's rules to a segment in declaration order.
func ExtractMetadata(segment string, reg *Registry) Metadata {
	segment = normalizeSpaces(segment)
	meta := make(Metadata, len(reg.Fields))
	for _, rule := range reg.Fields {
		for _, name := range rule.Fields {
			meta[name] = nil
		}
		for i, v := range applyRule(segment, rule) {
			meta[rule.Fields[i]] = &v
		}
	}
	return meta
}

// applyRule returns one value per rule field, or nil when the rule does not apply.
// Each pattern contributes only its first match; a numeric rule whose first
// match has the wrong column count or a non-numeric column is absent, later
// lines are not searched.
func applyRule(segment string, rule Rule) []string {
	for _, re := range rule.Patterns {
		m := re.FindStringSubmatch(segment)
		if len(m) < 2 {
			continue
		}
		if !rule.Numeric {
			return []string{strings.TrimSpace(m[1])}
		}
		cols := strings.Fields(m[1])
		if len(cols) != len(rule.Fields) {
			return nil
		}
		for _, c := range cols {
			if !isDecimal(c) {
				return nil
			}
		}
		return cols
	}
	return nil
}

var decimalRe = regexp.MustCompile(`^-?\d[\d,]*(\.\d+)?$`)

// isDecimal accepts plain and thousands-grouped numbers such as "1,250.00".
func isDecimal(s string) bool {
	return decimalRe.MatchString(s)
}
