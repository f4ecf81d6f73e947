package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shop_pos/internal/common"
	"shop_pos/internal/datahandler"
	"shop_pos/internal/global"
	"shop_pos/internal/logger"
	"shop_pos/internal/metrics"
	"shop_pos/internal/models"
	"shop_pos/internal/utility"
)

// Data is the part of the synchronized loader used at checkout
type Data interface {
	Load(ctx context.Context, kind models.Kind) ([]models.Record, error)
	Save(ctx context.Context, kind models.Kind, records []models.Record) (*datahandler.SaveResult, error)
	NextID(ctx context.Context, kind models.Kind) (int64, error)
}

// Receipt describes a completed checkout
type Receipt struct {
	Sale            models.Sale
	Total           decimal.Decimal
	ProductsUpdated int     // Products whose quantity was decremented
	LineErrors      []error // Lines whose product could not be decremented
	InventoryErr    error   // Saving the decremented products failed; the sale is recorded
}

// Service runs checkouts against a Data
type Service struct {
	data Data
	now  func() time.Time
}

// NewService creates a checkout service
func NewService(data Data) *Service {
	return &Service{data: data, now: time.Now}
}

// Checkout records the cart as a sale, decrements the sold product quantities
// and clears the cart. The cart is left untouched when the sale is not saved.
func (s *Service) Checkout(ctx context.Context, cart *Cart) (*Receipt, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, common.NewError(common.ErrCodeEmptyCart, "Cart is empty", nil, nil)
	}
	ctx = logger.WithSession(ctx, cart.Session())
	log := logger.Component(ctx, "checkout")

	sale, total, err := s.newSale(ctx, cart)
	if err != nil {
		return nil, err
	}

	sales, err := s.data.Load(ctx, models.KindSales)
	if err != nil {
		return nil, err
	}
	sales = append(sales, sale.ToRecord())
	if _, err := s.data.Save(ctx, models.KindSales, sales); err != nil {
		logger.ReportError(ctx, "checkout", err, "Failed to save sale")
		return nil, err
	}

	receipt := &Receipt{Sale: sale, Total: total}
	s.decrementStock(ctx, cart.Lines(), receipt)
	cart.Clear()

	metrics.CheckoutsTotal.Inc()
	metrics.CheckoutLineErrorsTotal.Add(float64(len(receipt.LineErrors)))
	logger.LogAction(ctx, "checkout", string(models.KindSales), fmt.Sprint(sale.ID), map[string]interface{}{
		"reference":        sale.Reference,
		"total":            total.StringFixed(2),
		"items":            len(sale.Items),
		"products_updated": receipt.ProductsUpdated,
		"line_errors":      len(receipt.LineErrors),
	})
	log.WithField("sale_id", sale.ID).Infof("Checkout completed, total %s", total.StringFixed(2))
	return receipt, nil
}

func (s *Service) newSale(ctx context.Context, cart *Cart) (models.Sale, decimal.Decimal, error) {
	id, err := s.data.NextID(ctx, models.KindSales)
	if err != nil {
		return models.Sale{}, decimal.Zero, err
	}

	lines := cart.Lines()
	items := make([]models.SaleItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.SaleItem{Product: l.Product, Quantity: l.Quantity})
	}
	total := cart.Total()

	sale := models.Sale{
		ID:        id,
		Items:     items,
		Total:     total.InexactFloat64(),
		Date:      utility.FormatDate(s.now()),
		Reference: uuid.NewString(),
	}
	if err := global.Validator().Struct(sale); err != nil {
		return models.Sale{}, decimal.Zero, common.NewError(common.ErrCodeDataValidation, "Invalid sale", nil, err)
	}
	return sale, total, nil
}

// decrementStock takes the sold quantities out of a fresh product snapshot and
// saves it when at least one product changed.
func (s *Service) decrementStock(ctx context.Context, lines []Line, receipt *Receipt) {
	log := logger.Component(ctx, "checkout")

	products, err := s.data.Load(ctx, models.KindProducts)
	if err != nil {
		receipt.InventoryErr = err
		logger.ReportError(ctx, "checkout", err, "Failed to load products for stock update")
		return
	}

	for _, l := range lines {
		product := findByID(products, l.Product.ID())
		if product == nil {
			receipt.LineErrors = append(receipt.LineErrors, common.NewError(common.ErrCodeProductNotFound,
				fmt.Sprintf("Product %v not found", l.Product.ID()), l.Product.ID(), nil))
			continue
		}
		if err := decrement(product, l.Quantity); err != nil {
			receipt.LineErrors = append(receipt.LineErrors, err)
			continue
		}
		receipt.ProductsUpdated++
	}
	for _, err := range receipt.LineErrors {
		log.WithError(err).Warn("Stock not updated")
	}

	if receipt.ProductsUpdated == 0 {
		return
	}
	if _, err := s.data.Save(ctx, models.KindProducts, products); err != nil {
		receipt.InventoryErr = err
		logger.ReportError(ctx, "checkout", err, "Failed to save product quantities")
	}
}

func findByID(products []models.Record, id interface{}) models.Record {
	for _, p := range products {
		if utility.SameID(p.ID(), id) {
			return p
		}
	}
	return nil
}

// decrement subtracts qty from the product quantity in place, keeping its number type.
// A product without a quantity field starts from 0.
func decrement(product models.Record, qty int64) error {
	current, ok := product["quantity"]
	if !ok {
		current = int64(0)
	}
	if !utility.IsNumber(current) {
		return common.NewDataShapeError(fmt.Sprintf("Product %v has a non numeric quantity", product.ID()), current)
	}
	switch v := current.(type) {
	case float64:
		product["quantity"] = v - float64(qty)
	case float32:
		product["quantity"] = float64(v) - float64(qty)
	default:
		if n, ok := utility.ToInt64(v); ok {
			product["quantity"] = n - qty
		} else {
			f, _ := utility.ToFloat64(v)
			product["quantity"] = f - float64(qty)
		}
	}
	return nil
}
