package models

// Supplier is the typed view of a suppliers record
type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required,no_xss"`
	Contact string `json:"contact"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Status  string `json:"status"`
}

// SupplierFromRecord reads a suppliers record
func SupplierFromRecord(r Record) Supplier {
	return Supplier{
		ID:      r.String(FieldID),
		Name:    r.String("name"),
		Contact: r.String("contact"),
		Email:   r.String("email"),
		Phone:   r.String("phone"),
		Status:  r.String("status"),
	}
}

// Kind implements Variant
func (s Supplier) Kind() Kind { return KindSuppliers }

// Employee is the typed view of an employees record
type Employee struct {
	ID     string  `json:"id"`
	Name   string  `json:"name" validate:"required,no_xss"`
	Role   string  `json:"role"`
	Phone  string  `json:"phone"`
	Salary float64 `json:"salary" validate:"gte=0"`
}

// EmployeeFromRecord reads an employees record
func EmployeeFromRecord(r Record) Employee {
	return Employee{
		ID:     r.String(FieldID),
		Name:   r.String("name"),
		Role:   r.String("role"),
		Phone:  r.String("phone"),
		Salary: r.Float("salary"),
	}
}

// Kind implements Variant
func (e Employee) Kind() Kind { return KindEmployees }

// InventoryItem is the typed view of an inventory record
type InventoryItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" validate:"required,no_xss"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	MinQuantity float64 `json:"min_quantity" validate:"gte=0"`
	Location    string  `json:"location"`
}

// InventoryItemFromRecord reads an inventory record
func InventoryItemFromRecord(r Record) InventoryItem {
	return InventoryItem{
		ID:          r.String(FieldID),
		Name:        r.String("name"),
		Category:    r.String("category"),
		Quantity:    r.Float("quantity"),
		MinQuantity: r.Float("min_quantity"),
		Location:    r.String("location"),
	}
}

// Kind implements Variant
func (i InventoryItem) Kind() Kind { return KindInventory }

// NeedsRestock reports whether the stock is at or below its minimum
func (i InventoryItem) NeedsRestock() bool {
	return i.Quantity <= i.MinQuantity
}
