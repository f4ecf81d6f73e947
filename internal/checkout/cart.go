// Package checkout turns a cart of products into a sale and takes the sold
// quantities out of the product catalog.
package checkout

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shop_pos/internal/common"
	"shop_pos/internal/models"
	"shop_pos/internal/utility"
)

// Line is one product of the cart and how many units are bought
type Line struct {
	Product  models.Record
	Quantity int64
}

// Subtotal is price times quantity; a missing price counts as 0
func (l Line) Subtotal() decimal.Decimal {
	price := decimal.NewFromFloat(models.ProductFromRecord(l.Product).Price)
	return price.Mul(decimal.NewFromInt(l.Quantity))
}

// Cart is owned by a single session and is not safe for concurrent use
type Cart struct {
	session string
	lines   []Line
}

// NewCart returns an empty cart with a fresh session id
func NewCart() *Cart {
	return &Cart{session: uuid.NewString()}
}

// Session returns the id that tags the cart's log entries
func (c *Cart) Session() string {
	return c.session
}

// Add puts one unit of product in the cart
func (c *Cart) Add(product models.Record) {
	_ = c.AddQuantity(product, 1)
}

// AddQuantity adds qty units of product. A product already in the cart, matched
// by id, gets its quantity increased instead of a second line.
func (c *Cart) AddQuantity(product models.Record, qty int64) error {
	if qty <= 0 {
		return common.NewDataShapeError("Quantity must be positive", qty)
	}
	if product == nil {
		return common.NewDataShapeError("Product is empty", nil)
	}
	for i := range c.lines {
		if utility.SameID(c.lines[i].Product.ID(), product.ID()) {
			c.lines[i].Quantity += qty
			return nil
		}
	}
	c.lines = append(c.lines, Line{Product: product.Clone(), Quantity: qty})
	return nil
}

// Remove drops the line of productID and reports whether there was one
func (c *Cart) Remove(productID interface{}) bool {
	for i := range c.lines {
		if utility.SameID(c.lines[i].Product.ID(), productID) {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// AddByBarcode adds one unit of the active product whose barcode matches and returns it
func (c *Cart) AddByBarcode(barcode string, products []models.Record) (models.Record, error) {
	product, err := FindByBarcode(barcode, products)
	if err != nil {
		return nil, err
	}
	c.Add(product)
	return product, nil
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = Line{Product: l.Product.Clone(), Quantity: l.Quantity}
	}
	return out
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total is the sum of the line subtotals
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Clear empties the cart; the session id is kept
func (c *Cart) Clear() {
	c.lines = nil
}

// ActiveProducts keeps the products that can be sold
func ActiveProducts(records []models.Record) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if models.IsActiveRecord(r) {
			out = append(out, r)
		}
	}
	return out
}

// FindByBarcode returns the active product with the given barcode.
// Both sides are compared as trimmed strings so 42 matches "42".
func FindByBarcode(barcode string, products []models.Record) (models.Record, error) {
	want := strings.TrimSpace(barcode)
	if want != "" {
		for _, p := range ActiveProducts(products) {
			if strings.TrimSpace(p.String("barcode")) == want {
				return p, nil
			}
		}
	}
	return nil, common.NewError(common.ErrCodeProductNotFound, "Product not found for barcode: "+barcode, barcode, nil)
}
