package models

import (
	"shop_pos/internal/common"
	"shop_pos/internal/utility"
)

// Variant is one of the typed record views: Product, Sale, Supplier, Employee, InventoryItem
type Variant interface {
	Kind() Kind
}

// Decode returns the typed view of r for kind
func Decode(kind Kind, r Record) (Variant, error) {
	switch kind {
	case KindProducts:
		return ProductFromRecord(r), nil
	case KindSales:
		return SaleFromRecord(r), nil
	case KindSuppliers:
		return SupplierFromRecord(r), nil
	case KindEmployees:
		return EmployeeFromRecord(r), nil
	case KindInventory:
		return InventoryItemFromRecord(r), nil
	}
	return nil, common.NewError(common.ErrCodeUnknownKind, "Unknown data type: "+string(kind), string(kind), nil)
}

func leadingID(r Record) (int64, bool) {
	return utility.LeadingNumber(r.ID())
}
