package extract

import "regexp"

// Rule extracts one or more metadata fields from a segment.
//
// Patterns form an ordered fallback chain: the first pattern that matches wins
// and the rest are skipped. A single-field rule takes capture group 1. A
// Numeric rule captures one group holding whitespace-separated columns and
// fills Fields only when the column count is exact and every column is a
// number; otherwise all of its fields stay absent.
type Rule struct {
	Fields   []string
	Patterns []*regexp.Regexp
	Numeric  bool
}

// Registry is the declarative schema of one document family.
type Registry struct {
	Delimiter  string
	Fields     []Rule
	ItemFields []string
}

// FieldNames returns every metadata field in declaration order.
func (r *Registry) FieldNames() []string {
	var names []string
	for _, rule := range r.Fields {
		names = append(names, rule.Fields...)
	}
	return names
}

func field(name string, patterns ...string) Rule {
	rule := Rule{Fields: []string{name}}
	for _, p := range patterns {
		rule.Patterns = append(rule.Patterns, regexp.MustCompile(p))
	}
	return rule
}

func columns(pattern string, names ...string) Rule {
	return Rule{
		Fields:   names,
		Patterns: []*regexp.Regexp{regexp.MustCompile(pattern)},
		Numeric:  true,
	}
}

var prnRegistry = &Registry{
	Delimiter: "GOODS RETURN DELIVERY CHALLAN",
	Fields: []Rule{
		field("store", `(NB [^\n]+)`),
		field("vendor_code", `Vendor Code\s*:([^\n]+)`),
		field("vendor_name", `Vendor Name\s*:([^\n]+)`),
		field("doc_no", `Doc No\s*:([^\n]+)`),
		field("invoice_date", `Invoice Date\s*:([^\n]+)`),
		field("order_no", `Order No\s*:([^\n]+)`),
		field("order_date", `Order Date\s*:([^\n]+)`),
		field("pslip_no", `P\.Slip No\.\s*:([^\n]+)`),
	},
	ItemFields: prnItemFields,
}

var grnRegistry = &Registry{
	Delimiter: "GOODS RECEIPT NOTE",
	Fields: []Rule{
		field("store_name",
			`Store Name\s*:[ \t]*(\S[^\n]*)`,
			`(?m)^[ \t]*(NB [^\n]+)`,
			`(?i)store[^\n:]*:\s*([^\n]+)`,
		),
		field("grn_no", `GRN No\.?\s*:[ \t]*(\S[^\n]*)`),
		field("grn_date", `GRN Date\s*:[ \t]*(\S[^\n]*)`),
		field("vendor_code", `Vendor Code\s*:[ \t]*(\S[^\n]*)`),
		field("vendor_name", `Vendor Name\s*:[ \t]*(\S[^\n]*)`),
		field("po_no", `PO No\.?\s*:[ \t]*(\S[^\n]*)`),
		field("po_date", `PO Date\s*:[ \t]*(\S[^\n]*)`),
		field("invoice_no", `Invoice No\.?\s*:[ \t]*(\S[^\n]*)`),
		field("invoice_date", `Invoice Date\s*:[ \t]*(\S[^\n]*)`),
		// Only the first TOTAL line is considered; if its columns do not
		// fit, the totals are absent.
		columns(`(?m)^[ \t]*TOTAL[ \t]+([^\n]+)`,
			"total_received",
			"total_accepted",
			"total_rejected",
			"total_gst",
			"total_cost",
		),
		field("gross_value", `Gross Value\s*:?[ \t]*([\d,]+\.\d+)`),
	},
	ItemFields: grnItemFields,
}
