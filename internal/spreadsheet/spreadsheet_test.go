package spreadsheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shop_pos/internal/common"
	"shop_pos/internal/models"
)

func TestColumns(t *testing.T) {
	records := []models.Record{
		{"id": int64(1), "zeta": "z", "name": "Cola"},
		{"alpha": "a"},
	}
	cols := Columns(models.KindSuppliers, records)
	assert.Equal(t, []string{"id", "alpha", "name", "zeta"}, cols)

	cols = Columns(models.KindProducts, []models.Record{{"id": int64(1), "extra": true}})
	assert.Equal(t, append(append([]string{"id"}, models.ProductColumns...), "extra"), cols)
}

func TestWorkbooks_WriteRead(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "excel"))
	assert.False(t, w.Exists(models.KindSales))

	records := []models.Record{
		{
			"id":    int64(1),
			"total": 25.5,
			"date":  "2024-05-01 09:30:00",
			"items": []interface{}{
				map[string]interface{}{"product": map[string]interface{}{"id": int64(7), "price": 10.5}, "quantity": int64(1)},
			},
		},
		{"id": int64(2), "total": int64(0), "date": "2024-05-02 10:00:00", "code": "0042", "paid": true},
	}
	require.NoError(t, w.Write(models.KindSales, records))
	assert.True(t, w.Exists(models.KindSales))

	got, err := w.Read(models.KindSales)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, records[0], got[0])
	assert.Equal(t, "0042", got[1]["code"])
	assert.Equal(t, true, got[1]["paid"])
	assert.Equal(t, int64(0), got[1]["total"])
	_, has := got[0]["code"]
	assert.False(t, has, "empty cells are left out")

	entries, err := os.ReadDir(w.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWorkbooks_ReadMissing(t *testing.T) {
	w := New(t.TempDir())
	_, err := w.Read(models.KindInventory)
	require.Error(t, err)
	assert.True(t, common.IsFile(err))
}

func TestEnsureColumns(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)

	// a hand made workbook that lacks most product columns
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"id", "name"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{1, "Cola"}))
	require.NoError(t, f.SaveAs(w.Path(models.KindProducts)))
	require.NoError(t, f.Close())

	table, err := w.ReadTable(models.KindProducts)
	require.NoError(t, err)
	added := EnsureColumns(models.KindProducts, table)
	assert.Contains(t, added, "price")
	assert.Contains(t, added, "barcode")
	assert.NotContains(t, added, "name")

	row := table.Rows[0]
	assert.Equal(t, int64(0), row["price"])
	assert.Equal(t, int64(0), row["quantity"])
	assert.Equal(t, "", row["status"])
	assert.Equal(t, "Cola", row["name"])

	assert.Empty(t, EnsureColumns(models.KindProducts, table))
	assert.Empty(t, EnsureColumns(models.KindSales, &Table{}))
}

func TestWorkbooks_JSONLookingTextStaysText(t *testing.T) {
	w := New(t.TempDir())
	records := []models.Record{
		{"id": int64(1), "name": "[1]", "flavor": `{"mint": true}`},
	}
	require.NoError(t, w.Write(models.KindSuppliers, records))

	got, err := w.Read(models.KindSuppliers)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "[1]", got[0]["name"])
	assert.Equal(t, `{"mint": true}`, got[0]["flavor"])
}
