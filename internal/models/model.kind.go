// Package models defines the collection types and the records stored in them.
package models

import (
	"strings"

	"shop_pos/internal/common"
)

// Kind is a logical collection type. Its value doubles as the MongoDB
// collection name and as the base name of the JSON cache and workbook files.
type Kind string

// Collection types
const (
	KindProducts  Kind = "products"
	KindSuppliers Kind = "suppliers"
	KindEmployees Kind = "employees"
	KindSales     Kind = "sales"
	KindInventory Kind = "inventory"
)

var allKinds = []Kind{KindProducts, KindSuppliers, KindEmployees, KindSales, KindInventory}

// AllKinds returns every known collection type
func AllKinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// Collection returns the MongoDB collection name
func (k Kind) Collection() string {
	return string(k)
}

// Valid reports whether k is a known collection type
func (k Kind) Valid() bool {
	for _, known := range allKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind converts a data type name into a Kind
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if !k.Valid() {
		return "", common.NewError(common.ErrCodeUnknownKind, "Unknown data type: "+name, name, nil)
	}
	return k, nil
}

// requiredFields lists the fields a record must carry before it is saved
var requiredFields = map[Kind][]string{
	KindProducts:  {"name", "category", "price", "quantity", "status"},
	KindInventory: {"name", "category", "quantity", "min_quantity", "location"},
	KindSuppliers: {"name", "contact", "email", "phone", "status"},
	KindSales:     {"items", "total", "date"},
	KindEmployees: {"name"},
}

// ProductColumns is the column contract of the products workbook
var ProductColumns = []string{"name", "type", "flavor", "quantity", "sale_type", "price", "status", "image_path", "barcode"}

// nestedColumns hold arrays or documents, stored as JSON text in workbooks
var nestedColumns = map[string]bool{"items": true}

// IsNestedColumn reports whether workbook cells of column hold JSON encoded values
func IsNestedColumn(column string) bool {
	return nestedColumns[column]
}

// numericColumns default to 0 instead of "" when a workbook column is repaired
var numericColumns = map[string]bool{"quantity": true, "price": true}

// RequiredColumns returns the workbook columns that must exist for kind
func RequiredColumns(kind Kind) []string {
	if kind == KindProducts {
		return append([]string(nil), ProductColumns...)
	}
	return nil
}

// ColumnDefault returns the value used to fill a repaired column
func ColumnDefault(column string) interface{} {
	if numericColumns[column] {
		return int64(0)
	}
	return ""
}
