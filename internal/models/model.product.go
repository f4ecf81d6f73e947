package models

// Product statuses; only Active products are sold
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Product is the typed view of a products record.
// Missing fields default to their zero value; missing price is 0.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name" validate:"required,no_xss"`
	Category  string  `json:"category"`
	Type      string  `json:"type"`
	Flavor    string  `json:"flavor"`
	SaleType  string  `json:"sale_type"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  float64 `json:"quantity"`
	Status    string  `json:"status" validate:"product_status"`
	Barcode   string  `json:"barcode"`
	ImagePath string  `json:"image_path"`
}

// ProductFromRecord reads the typed fields of a products record.
// category falls back to type since the workbook contract only carries type.
func ProductFromRecord(r Record) Product {
	p := Product{
		ID:        r.String(FieldID),
		Name:      r.String("name"),
		Category:  r.String("category"),
		Type:      r.String("type"),
		Flavor:    r.String("flavor"),
		SaleType:  r.String("sale_type"),
		Price:     r.Float("price"),
		Quantity:  r.Float("quantity"),
		Status:    r.String("status"),
		Barcode:   r.String("barcode"),
		ImagePath: r.String("image_path"),
	}
	if p.Category == "" {
		p.Category = p.Type
	}
	return p
}

// Kind implements Variant
func (p Product) Kind() Kind { return KindProducts }

// IsActive reports whether the product can be sold; a missing status counts as Active
func (p Product) IsActive() bool {
	return p.Status == "" || p.Status == StatusActive
}

// IsActiveRecord is IsActive on an untyped record
func IsActiveRecord(r Record) bool {
	status, ok := r["status"]
	if !ok || status == nil {
		return true
	}
	return r.String("status") == StatusActive
}
