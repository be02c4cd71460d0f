package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/extract"
)

var testColumns = []string{"grn_no", "article", "mrp", "filename"}

func testRecords() []extract.Record {
	return []extract.Record{
		{"grn_no": "5000123", "article": "1234567", "mrp": "45.00", "filename": "a.pdf"},
		{"grn_no": "5000123", "article": "7654321", "filename": "a.pdf"},
	}
}

func TestXLSX(t *testing.T) {
	data, err := XLSX(testRecords(), testColumns, "Goods Receipt Note")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Goods Receipt Note"}, f.GetSheetList())
	rows, err := f.GetRows("Goods Receipt Note")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, testColumns, rows[0])
	assert.Equal(t, []string{"5000123", "1234567", "45.00", "a.pdf"}, rows[1])
	// GetRows trims trailing empty cells only; the missing mrp sits mid-row.
	assert.Equal(t, []string{"5000123", "7654321", "", "a.pdf"}, rows[2])
}

func TestXLSX_NoRecords(t *testing.T) {
	data, err := XLSX(nil, testColumns, "")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, testColumns, rows[0])
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, testRecords(), testColumns))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, testColumns, rows[0])
	assert.Equal(t, []string{"5000123", "7654321", "", "a.pdf"}, rows[2])
}

func TestSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "challans.db")

	require.NoError(t, SQLite(ctx, path, "goods_receipt_notes", testRecords(), testColumns))
	// A second run appends to the existing table.
	require.NoError(t, SQLite(ctx, path, "goods_receipt_notes", testRecords()[:1], testColumns))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "goods_receipt_notes"`).Scan(&n))
	assert.Equal(t, 3, n)

	var mrp string
	require.NoError(t, db.QueryRow(`SELECT "mrp" FROM "goods_receipt_notes" WHERE "article" = ?`, "7654321").Scan(&mrp))
	assert.Equal(t, "", mrp)
}

func TestSQLite_QuotedIdentifiers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.db")
	cols := []string{`odd "name"`, "select"}
	recs := []extract.Record{{`odd "name"`: "x", "select": "y"}}
	require.NoError(t, SQLite(context.Background(), path, `my table`, recs, cols))
}

func TestSQLite_Validation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.db")
	assert.Error(t, SQLite(context.Background(), path, "", nil, testColumns))
	assert.Error(t, SQLite(context.Background(), path, "t", nil, nil))
}

func TestErrorLog(t *testing.T) {
	assert.Equal(t, "", ErrorLog(nil))
	assert.Equal(t, "Error processing a.pdf: boom\nError processing b.pdf: bad",
		ErrorLog([]string{"Error processing a.pdf: boom", "Error processing b.pdf: bad"}))
}

func TestDefaultNames(t *testing.T) {
	assert.Equal(t, "goods_return_delivery_challans.xlsx", WorkbookName(extract.FamilyPRN))
	assert.Equal(t, "goods_receipt_notes.xlsx", WorkbookName(extract.FamilyGRN))
	assert.Equal(t, "goods_receipt_notes", TableName(extract.FamilyGRN))
	assert.Equal(t, "error_log.txt", ErrorLogName)
}
