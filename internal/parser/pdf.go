package parser

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser reads the text layer of a PDF export. When the Go reader fails
// or finds no text, pdftotext is tried if FallbackPdftotext is set.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	text, err := pdfPlainText(data)
	if p.FallbackPdftotext && (err != nil || strings.TrimSpace(text) == "") {
		alt, altErr := pdftotext(data)
		switch {
		case altErr == nil:
			return alt, nil
		case err == nil:
			err = altErr
		}
	}
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return text, nil
}

// pdfPlainText concatenates the plain text of every page, each followed by
// a newline so document delimiters never fuse across page breaks.
func pdfPlainText(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pt, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		buf.WriteString(pt)
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}

// pdftotext pipes the document through poppler's pdftotext.
func pdftotext(data []byte) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", "-enc", "UTF-8", "-eol", "unix", "-", "-")
	cmd.Stdin = bytes.NewReader(data)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("pdftotext: %w: %s", err, msg)
		}
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
