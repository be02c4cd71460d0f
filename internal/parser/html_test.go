package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_TableRowsAndBlocks(t *testing.T) {
	input := `<html><head><title>ignored</title><style>td{}</style></head><body>
<h2>GOODS RECEIPT NOTE</h2>
<p>Store Name :   NB Indiranagar</p>
<table>
<tr><th>Sr</th><th>Article</th></tr>
<tr><td>1</td><td>1234567</td><td>8900001122</td></tr>
<tr><td>TBD</td><td>Premium<br>Rice</td><td>10019900</td></tr>
</table>
<div>Gross Value : 1,250.75</div>
</body></html>`
	p := &HTMLParser{}
	got, err := p.Parse(strings.NewReader(input), "grn.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "GOODS RECEIPT NOTE\n" +
		"Store Name : NB Indiranagar\n" +
		"Sr Article\n" +
		"1 1234567 8900001122\n" +
		"TBD Premium\nRice 10019900\n" +
		"Gross Value : 1,250.75"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHTMLParser_PreKeepsLines(t *testing.T) {
	p := &HTMLParser{}
	got, err := p.Parse(strings.NewReader("<pre>TOTAL 1 2 3 4 5\n\nGross Value : 9.00</pre>"), "dump.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "TOTAL 1 2 3 4 5\nGross Value : 9.00" {
		t.Errorf("unexpected text %q", got)
	}
}
