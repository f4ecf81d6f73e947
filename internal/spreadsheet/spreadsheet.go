// Package spreadsheet stores one Excel workbook per collection: a header row
// of column names followed by one row per record.
package spreadsheet

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"shop_pos/internal/common"
	"shop_pos/internal/models"
	"shop_pos/internal/utility"
)

// Table is the content of a workbook: its columns in order and its rows
type Table struct {
	Columns []string
	Rows    []models.Record
}

// Workbooks reads and writes <dir>/<kind>.xlsx
type Workbooks struct {
	dir string
}

// New returns the workbook store rooted at dir
func New(dir string) *Workbooks {
	return &Workbooks{dir: dir}
}

// Dir returns the workbook directory
func (w *Workbooks) Dir() string {
	return w.dir
}

// Path returns the workbook of kind
func (w *Workbooks) Path(kind models.Kind) string {
	return filepath.Join(w.dir, string(kind)+".xlsx")
}

// Exists reports whether the workbook of kind exists
func (w *Workbooks) Exists(kind models.Kind) bool {
	info, err := os.Stat(w.Path(kind))
	return err == nil && !info.IsDir()
}

// Columns returns the header of the workbook that holds records: id first, then
// the column contract of kind, then every other field in name order.
func Columns(kind models.Kind, records []models.Record) []string {
	seen := make(map[string]bool)
	var columns []string
	add := func(col string) {
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}

	present := make(map[string]bool)
	for _, r := range records {
		for k := range r {
			present[k] = true
		}
	}
	if present[models.FieldID] {
		add(models.FieldID)
	}
	for _, col := range models.RequiredColumns(kind) {
		add(col)
	}

	rest := make([]string, 0, len(present))
	for k := range present {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, col := range rest {
		add(col)
	}
	return columns
}

// Write replaces the workbook of kind with records
func (w *Workbooks) Write(kind models.Kind, records []models.Record) error {
	return w.WriteTable(kind, &Table{Columns: Columns(kind, records), Rows: records})
}

// WriteTable replaces the workbook of kind with t, keeping its column order
func (w *Workbooks) WriteTable(kind models.Kind, t *Table) error {
	path := w.Path(kind)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return common.NewFileError(common.ErrCodeFileWrite, path, err)
	}

	for i, r := range t.Rows {
		for j, col := range t.Columns {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return common.NewFileError(common.ErrCodeFileWrite, path, err)
			}
			if err := setCell(f, sheet, cell, cellValue(r[col])); err != nil {
				return common.NewFileError(common.ErrCodeFileWrite, path, err)
			}
		}
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return common.NewFileError(common.ErrCodeFileWrite, path, err)
	}
	tmp, err := os.CreateTemp(w.dir, string(kind)+".*.tmp")
	if err != nil {
		return common.NewFileError(common.ErrCodeFileWrite, path, err)
	}
	tmpName := tmp.Name()
	_, werr := f.WriteTo(tmp)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmpName)
		return common.NewFileError(common.ErrCodeFileWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return common.NewFileError(common.ErrCodeFileWrite, path, err)
	}
	return nil
}

// Read returns the records of the workbook of kind
func (w *Workbooks) Read(kind models.Kind) ([]models.Record, error) {
	t, err := w.ReadTable(kind)
	if err != nil {
		return nil, err
	}
	return t.Rows, nil
}

// ReadTable reads the first sheet of the workbook of kind. Empty cells are left
// out of their record; text cells stay strings, other cells become numbers when
// they parse as one.
func (w *Workbooks) ReadTable(kind models.Kind) (*Table, error) {
	path := w.Path(kind)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, common.NewFileError(common.ErrCodeFileRead, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{Rows: []models.Record{}}, nil
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, common.NewFileError(common.ErrCodeFileRead, path, err)
	}
	t := &Table{Rows: []models.Record{}}
	if len(rows) == 0 {
		return t, nil
	}
	for _, col := range rows[0] {
		t.Columns = append(t.Columns, strings.TrimSpace(col))
	}

	for i, row := range rows[1:] {
		r := make(models.Record, len(t.Columns))
		for j, raw := range row {
			if j >= len(t.Columns) || t.Columns[j] == "" || raw == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, common.NewFileError(common.ErrCodeFileRead, path, err)
			}
			cellType, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, common.NewFileError(common.ErrCodeFileRead, path, err)
			}
			r[t.Columns[j]] = parseCell(t.Columns[j], raw, cellType)
		}
		if len(r) > 0 {
			t.Rows = append(t.Rows, r)
		}
	}
	return t, nil
}

// EnsureColumns adds the columns of kind's contract missing from t, filling every
// row with the column default. It returns the added columns.
func EnsureColumns(kind models.Kind, t *Table) []string {
	present := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		present[col] = true
	}
	var added []string
	for _, col := range models.RequiredColumns(kind) {
		if present[col] {
			continue
		}
		t.Columns = append(t.Columns, col)
		added = append(added, col)
		for _, r := range t.Rows {
			r[col] = models.ColumnDefault(col)
		}
	}
	return added
}

// cellValue converts a record value into something excelize writes natively;
// nested documents and arrays are stored as JSON text
func cellValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case string, bool, int64, float64, int:
		return t
	case map[string]interface{}, models.Record, []interface{}:
		data, err := json.Marshal(t)
		if err != nil {
			return utility.ToString(t)
		}
		return string(data)
	default:
		if f, ok := utility.ToFloat64(t); ok && utility.IsNumber(t) {
			return f
		}
		return utility.ToString(t)
	}
}

// setCell writes v; whole floats are stored as "2.0" so they read back as floats
func setCell(f *excelize.File, sheet, cell string, v interface{}) error {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		precision := -1
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			precision = 1
		}
		return f.SetCellFloat(sheet, cell, t, precision, 64)
	}
	return f.SetCellValue(sheet, cell, v)
}

// parseCell converts the raw text of a cell of column back into a record value.
// Only nested columns are decoded from JSON; other text stays text.
func parseCell(column, raw string, cellType excelize.CellType) interface{} {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		if models.IsNestedColumn(column) {
			if v, ok := decodeNested(raw); ok {
				return v
			}
		}
		return raw
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	}
	return utility.ParseScalar(raw)
}

func decodeNested(raw string) (interface{}, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return nil, false
	}
	var v interface{}
	if err := utility.DecodeJSON([]byte(trimmed), &v); err != nil {
		return nil, false
	}
	return models.NormalizeValue(v), true
}
