// Package extract turns the text of PRN and GRN document exports into flat,
// fully keyed records. Everything here is a pure function of its input.
package extract

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFamily is returned by ParseFamily for an unrecognised selector.
var ErrUnknownFamily = errors.New("unknown document family")

// Family selects the pattern registry and item extractor for a batch.
type Family string

const (
	// FamilyPRN is the "Goods Return Delivery Challan" export.
	FamilyPRN Family = "prn"
	// FamilyGRN is the "Goods Receipt Note" export.
	FamilyGRN Family = "grn"
)

// Families lists every supported family.
var Families = []Family{FamilyPRN, FamilyGRN}

// FilenameField is the key added to every record naming its source file.
const FilenameField = "filename"

// ParseFamily resolves a selector such as "PRN" or "grn".
func ParseFamily(s string) (Family, error) {
	switch Family(strings.ToLower(strings.TrimSpace(s))) {
	case FamilyPRN:
		return FamilyPRN, nil
	case FamilyGRN:
		return FamilyGRN, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// Registry returns the family's pattern registry.
func (f Family) Registry() *Registry {
	if f == FamilyGRN {
		return grnRegistry
	}
	return prnRegistry
}

// Delimiter is the literal that starts each document within a text dump.
func (f Family) Delimiter() string {
	return f.Registry().Delimiter
}

// Title is the human-readable document name.
func (f Family) Title() string {
	if f == FamilyGRN {
		return "Goods Receipt Note"
	}
	return "Goods Return Delivery Challan"
}

// Columns is the stable output shape: metadata fields, item fields, filename.
func (f Family) Columns() []string {
	reg := f.Registry()
	cols := reg.FieldNames()
	cols = append(cols, reg.ItemFields...)
	return append(cols, FilenameField)
}

// ExtractItems runs the family's item extractor over one segment.
func (f Family) ExtractItems(segment string) []Item {
	if f == FamilyGRN {
		return ExtractGRNItems(segment)
	}
	return ExtractPRNItems(segment)
}
