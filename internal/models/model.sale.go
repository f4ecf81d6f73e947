package models

// SaleItem is one cart line frozen into a sale
type SaleItem struct {
	Product  Record `json:"product" validate:"required"`
	Quantity int64  `json:"quantity" validate:"gt=0"`
}

// Sale is created at checkout and never modified afterwards
type Sale struct {
	ID        int64      `json:"id" validate:"gt=0"`
	Items     []SaleItem `json:"items" validate:"min=1,dive"`
	Total     float64    `json:"total" validate:"gte=0"`
	Date      string     `json:"date" validate:"required"`
	Reference string     `json:"reference"`
}

// Kind implements Variant
func (s Sale) Kind() Kind { return KindSales }

// ToRecord converts the sale into its stored form
func (s Sale) ToRecord() Record {
	items := make([]interface{}, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, map[string]interface{}{
			"product":  NormalizeValue(it.Product),
			"quantity": it.Quantity,
		})
	}
	r := Record{
		FieldID: s.ID,
		"items": items,
		"total": s.Total,
		"date":  s.Date,
	}
	if s.Reference != "" {
		r["reference"] = s.Reference
	}
	return r
}

// SaleFromRecord reads a sales record; malformed items are skipped
func SaleFromRecord(r Record) Sale {
	s := Sale{
		Total:     r.Float("total"),
		Date:      r.String("date"),
		Reference: r.String("reference"),
	}
	if id, ok := leadingID(r); ok {
		s.ID = id
	}
	raw, _ := r["items"].([]interface{})
	for _, v := range raw {
		item, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		product, _ := item["product"].(map[string]interface{})
		qty := Record(item).Float("quantity")
		s.Items = append(s.Items, SaleItem{Product: Record(product), Quantity: int64(qty)})
	}
	return s
}
