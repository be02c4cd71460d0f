package extract

import (
	"regexp"
	"strings"
)

// Item is one extracted line item keyed by the family's item field names.
type Item map[string]string

var prnItemFields = []string{
	"sno", "article_code", "ean_code", "ref_po", "qty", "uom", "mrp", "cost",
	"value", "reason", "sgst", "cgst", "netval", "desc", "hsn",
}

// prnRowRe matches one complete challan row. The description may wrap across
// lines, so the pattern runs with (?s) and a lazy description capture.
var prnRowRe = regexp.MustCompile(`(?s)` +
	`(?P<sno>\d+)\s+(?P<article_code>\d+)\s+(?P<ean_code>\d+)\s+(?P<ref_po>\d+)\s+` +
	`(?P<qty>\d+\.\d+)\s+(?P<uom>\w+)\s+(?P<mrp>\d+\.\d+)\s+(?P<cost>\d+\.\d+)\s+` +
	`(?P<value>\d+\.\d+)\s+(?P<reason>\d+)\s+(?P<sgst>\d+\.\d+)\s+(?P<cgst>\d+\.\d+)\s+(?P<netval>\d+\.\d+)\s+` +
	`TBD (?P<desc>.+?)\s+(?P<hsn>\d{8})\s+Date expired`)

// ExtractPRNItems returns every row of the segment that matches the full
// structural pattern, in document order. Partial rows are skipped.
func ExtractPRNItems(segment string) []Item {
	segment = normalizeSpaces(segment)
	names := prnRowRe.SubexpNames()
	var items []Item
	for _, m := range prnRowRe.FindAllStringSubmatch(segment, -1) {
		item := make(Item, len(prnItemFields))
		for i, name := range names {
			if name != "" {
				item[name] = strings.TrimSpace(m[i])
			}
		}
		items = append(items, item)
	}
	return items
}
