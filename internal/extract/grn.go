package extract

import (
	"regexp"
	"strings"
)

var grnItemFields = []string{
	"serial_no", "article_code", "ean_code", "gst_value", "received_qty",
	"accepted_qty", "rejected_qty", "uom", "mrp", "total_cost_value",
	"description", "hsn_code",
}

const (
	descMarker     = "TBD"
	minItemTokens  = 9
	minHSNCodeSize = 6
)

// grnStartRe: a serial number followed by a 7-digit article code.
var grnStartRe = regexp.MustCompile(`^\s*\d+\s+\d{7}\b`)

var digitsRe = regexp.MustCompile(`^\d+$`)

// positions of item-line tokens that must be numbers
var grnNumericTokens = []int{3, 4, 5, 6, 8}

// ExtractGRNItems scans a segment line by line. Each item-start line is
// tokenized positionally and the following line, when it starts with the
// TBD marker, supplies the description and HSN code. Lines that cannot be
// tokenized are skipped without error.
//
// The cursor always advances by a single line, so a description line is
// still considered as an item-start candidate on the next iteration.
func ExtractGRNItems(segment string) []Item {
	lines := strings.Split(normalizeSpaces(segment), "\n")
	var items []Item
	for i := 0; i < len(lines); i++ {
		if !grnStartRe.MatchString(lines[i]) {
			continue
		}
		item, ok := parseGRNItemLine(lines[i])
		if !ok {
			continue
		}
		if i+1 < len(lines) {
			item["description"], item["hsn_code"] = parseGRNDescription(lines[i+1])
		}
		items = append(items, item)
	}
	return items
}

func parseGRNItemLine(line string) (Item, bool) {
	tok := strings.Fields(line)
	if len(tok) < minItemTokens {
		return nil, false
	}
	total := ""
	if len(tok) > minItemTokens {
		total = tok[9]
		if !isDecimal(total) {
			return nil, false
		}
	}
	for _, idx := range grnNumericTokens {
		if !isDecimal(tok[idx]) {
			return nil, false
		}
	}
	return Item{
		"serial_no":        tok[0],
		"article_code":     tok[1],
		"ean_code":         tok[2],
		"gst_value":        tok[3],
		"received_qty":     tok[4],
		"accepted_qty":     tok[5],
		"rejected_qty":     tok[6],
		"uom":              tok[7],
		"mrp":              tok[8],
		"total_cost_value": total,
		"description":      "",
		"hsn_code":         "",
	}, true
}

// parseGRNDescription reads a "TBD <description> [hsn]" line. The marker
// must be a whole token; anything else yields two empty strings.
func parseGRNDescription(line string) (desc, hsn string) {
	tok := strings.Fields(line)
	if len(tok) == 0 || tok[0] != descMarker {
		return "", ""
	}
	tok = tok[1:]
	if n := len(tok); n > 0 && len(tok[n-1]) >= minHSNCodeSize && digitsRe.MatchString(tok[n-1]) {
		return strings.Join(tok[:n-1], " "), tok[n-1]
	}
	return strings.Join(tok, " "), ""
}
