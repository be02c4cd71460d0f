package export

import (
	"strings"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/extract"
)

// ErrorLogName is the default download name for the error log.
const ErrorLogName = "error_log.txt"

// ErrorLog joins error lines with newlines.
func ErrorLog(errors []string) string {
	return strings.Join(errors, "\n")
}

// WorkbookName is the default download name for a family's workbook.
func WorkbookName(family extract.Family) string {
	switch family {
	case extract.FamilyPRN:
		return "goods_return_delivery_challans.xlsx"
	case extract.FamilyGRN:
		return "goods_receipt_notes.xlsx"
	default:
		return string(family) + ".xlsx"
	}
}

// TableName is the default SQLite table for a family.
func TableName(family extract.Family) string {
	switch family {
	case extract.FamilyPRN:
		return "goods_return_delivery_challans"
	case extract.FamilyGRN:
		return "goods_receipt_notes"
	default:
		return string(family)
	}
}
