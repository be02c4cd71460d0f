package parser

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	cases := map[string]any{
		"a.PDF":      &PDFParser{},
		"b.docx":     &DOCXParser{},
		"c.txt":      &TextParser{},
		"d.md":       &MarkdownParser{},
		"e.markdown": &MarkdownParser{},
		"f.csv":      &CSVParser{},
		"g.htm":      &HTMLParser{},
	}
	for name, want := range cases {
		p, err := ForFile(name, Options{})
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if gotType, wantType := typeName(p), typeName(want); gotType != wantType {
			t.Errorf("%s: expected %s, got %s", name, wantType, gotType)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *PDFParser:
		return "pdf"
	case *DOCXParser:
		return "docx"
	case *TextParser:
		return "text"
	case *MarkdownParser:
		return "markdown"
	case *CSVParser:
		return "csv"
	case *HTMLParser:
		return "html"
	}
	return "unknown"
}

func TestForFile_PDFOptions(t *testing.T) {
	p, err := ForFile("x.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.(*PDFParser).FallbackPdftotext {
		t.Error("expected pdftotext fallback to be enabled")
	}
}

func TestForFile_Unsupported(t *testing.T) {
	_, err := ForFile("scan.tiff", Options{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if IsSupportedExtension("scan.tiff") {
		t.Error("expected .tiff to be unsupported")
	}
	if !IsSupportedExtension("Scan.PDF") {
		t.Error("expected .PDF to be supported")
	}
}

func TestExtractor_EmptyText(t *testing.T) {
	e := NewExtractor(Options{})
	_, err := e.ExtractText(context.Background(), "blank.txt", strings.NewReader(" \n\t"))
	if !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestExtractor_Text(t *testing.T) {
	e := NewExtractor(Options{})
	got, err := e.ExtractText(context.Background(), "dump.txt", strings.NewReader("GOODS RECEIPT NOTE"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "GOODS RECEIPT NOTE" {
		t.Errorf("expected %q, got %q", "GOODS RECEIPT NOTE", got)
	}
}

func TestExtractor_InvalidPDF(t *testing.T) {
	e := NewExtractor(Options{})
	if _, err := e.ExtractText(context.Background(), "broken.pdf", strings.NewReader("not a pdf")); err == nil {
		t.Error("expected error for invalid pdf")
	}
}

func TestExtractor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewExtractor(Options{})
	if _, err := e.ExtractText(ctx, "dump.txt", strings.NewReader("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
