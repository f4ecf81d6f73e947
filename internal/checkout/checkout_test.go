package checkout

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_pos/internal/common"
	"shop_pos/internal/datahandler"
	"shop_pos/internal/logger"
	"shop_pos/internal/models"
	"shop_pos/internal/utility"
)

func TestMain(m *testing.M) {
	os.Setenv("LOG_OUTPUT", "stdout")
	os.Setenv("LOG_LEVEL", "error")
	code := m.Run()
	logger.Shutdown()
	os.Exit(code)
}

// memoryData keeps collections in memory
type memoryData struct {
	collections map[models.Kind][]models.Record
	saveErr     map[models.Kind]error
	saves       map[models.Kind]int
}

func newMemoryData() *memoryData {
	return &memoryData{
		collections: make(map[models.Kind][]models.Record),
		saveErr:     make(map[models.Kind]error),
		saves:       make(map[models.Kind]int),
	}
}

func (m *memoryData) Load(ctx context.Context, kind models.Kind) ([]models.Record, error) {
	return models.CloneRecords(m.collections[kind]), nil
}

func (m *memoryData) Save(ctx context.Context, kind models.Kind, records []models.Record) (*datahandler.SaveResult, error) {
	if err := m.saveErr[kind]; err != nil {
		return nil, err
	}
	m.saves[kind]++
	m.collections[kind] = models.CloneRecords(records)
	return &datahandler.SaveResult{CacheWritten: true, StoreWritten: true, Count: len(records)}, nil
}

func (m *memoryData) NextID(ctx context.Context, kind models.Kind) (int64, error) {
	var highest int64
	for _, r := range m.collections[kind] {
		if n, ok := utility.LeadingNumber(r.ID()); ok && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

func catalog() []models.Record {
	return []models.Record{
		{"id": int64(1), "name": "Hookah Mint", "price": 10.00, "quantity": int64(10), "status": "Active", "barcode": "111"},
		{"id": int64(2), "name": "Cola", "price": 5.50, "quantity": 4.0, "status": "Active", "barcode": 222},
		{"id": int64(3), "name": "Old stock", "price": 1.0, "quantity": int64(1), "status": "Inactive", "barcode": "333"},
		{"id": int64(4), "name": "Gift", "quantity": "many"},
	}
}

func TestCart_AddMergesByID(t *testing.T) {
	products := catalog()
	cart := NewCart()
	assert.NotEmpty(t, cart.Session())
	assert.True(t, cart.IsEmpty())

	cart.Add(products[0])
	cart.Add(models.Record{"id": "1", "price": 10.0})
	require.NoError(t, cart.AddQuantity(products[1], 3))

	require.Equal(t, 2, cart.Len())
	lines := cart.Lines()
	assert.Equal(t, int64(2), lines[0].Quantity)
	assert.Equal(t, int64(3), lines[1].Quantity)
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("36.5")))

	assert.Error(t, cart.AddQuantity(products[0], 0))
	assert.True(t, cart.Remove(int64(2)))
	assert.False(t, cart.Remove(int64(2)))
	assert.Equal(t, 1, cart.Len())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total().IsZero())
}

func TestCart_MissingPriceIsZero(t *testing.T) {
	cart := NewCart()
	cart.Add(catalog()[3])
	assert.True(t, cart.Total().IsZero())
}

func TestCart_AddByBarcode(t *testing.T) {
	cart := NewCart()

	p, err := cart.AddByBarcode(" 222 ", catalog())
	require.NoError(t, err)
	assert.Equal(t, "Cola", p["name"])
	assert.Equal(t, 1, cart.Len())

	_, err = cart.AddByBarcode("333", catalog())
	assert.ErrorIs(t, err, common.ErrProductMissing, "inactive products cannot be sold")

	_, err = cart.AddByBarcode("", catalog())
	assert.Equal(t, common.ErrCodeProductNotFound.Code, common.CodeOf(err))
	assert.Equal(t, 1, cart.Len())
}

func TestActiveProducts(t *testing.T) {
	active := ActiveProducts(catalog())
	require.Len(t, active, 3)
	assert.Equal(t, "Gift", active[2]["name"], "missing status counts as active")
}

func TestCheckout_TotalsAndStock(t *testing.T) {
	ctx := context.Background()
	data := newMemoryData()
	data.collections[models.KindProducts] = catalog()
	data.collections[models.KindSales] = []models.Record{{"id": int64(7)}}

	svc := NewService(data)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC) }

	products := catalog()
	cart := NewCart()
	require.NoError(t, cart.AddQuantity(products[0], 2))
	cart.Add(products[1])

	receipt, err := svc.Checkout(ctx, cart)
	require.NoError(t, err)
	assert.True(t, receipt.Total.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, 25.5, receipt.Sale.Total)
	assert.Equal(t, int64(8), receipt.Sale.ID)
	assert.Equal(t, "2024-06-01 12:30:00", receipt.Sale.Date)
	assert.NotEmpty(t, receipt.Sale.Reference)
	assert.Equal(t, 2, receipt.ProductsUpdated)
	assert.Empty(t, receipt.LineErrors)
	assert.NoError(t, receipt.InventoryErr)
	assert.True(t, cart.IsEmpty())

	sales := data.collections[models.KindSales]
	require.Len(t, sales, 2)
	assert.Equal(t, int64(8), sales[1]["id"])
	assert.Len(t, sales[1]["items"], 2)

	stock := data.collections[models.KindProducts]
	assert.Equal(t, int64(8), stock[0]["quantity"])
	assert.Equal(t, 3.0, stock[1]["quantity"])
	assert.Equal(t, int64(1), stock[2]["quantity"])
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc := NewService(newMemoryData())
	_, err := svc.Checkout(context.Background(), NewCart())
	assert.ErrorIs(t, err, common.ErrEmptyCart)
	_, err = svc.Checkout(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrEmptyCart)
}

func TestCheckout_NonNumericQuantity(t *testing.T) {
	data := newMemoryData()
	data.collections[models.KindProducts] = catalog()
	svc := NewService(data)

	cart := NewCart()
	cart.Add(catalog()[3])
	receipt, err := svc.Checkout(context.Background(), cart)
	require.NoError(t, err)

	require.Len(t, receipt.LineErrors, 1)
	assert.True(t, common.IsDataShape(receipt.LineErrors[0]))
	assert.Zero(t, receipt.ProductsUpdated)
	assert.Equal(t, 0, data.saves[models.KindProducts], "products are not saved when nothing changed")
	assert.Equal(t, int64(1), receipt.Sale.ID)
	assert.True(t, cart.IsEmpty())
}

func TestCheckout_ProductGone(t *testing.T) {
	data := newMemoryData()
	data.collections[models.KindProducts] = catalog()[:1]
	svc := NewService(data)

	cart := NewCart()
	cart.Add(catalog()[0])
	cart.Add(catalog()[1])
	receipt, err := svc.Checkout(context.Background(), cart)
	require.NoError(t, err)

	require.Len(t, receipt.LineErrors, 1)
	assert.ErrorIs(t, receipt.LineErrors[0], common.ErrProductMissing)
	assert.Equal(t, 1, receipt.ProductsUpdated)
	assert.Equal(t, int64(9), data.collections[models.KindProducts][0]["quantity"])
}

func TestCheckout_SaleNotSavedKeepsCart(t *testing.T) {
	data := newMemoryData()
	data.collections[models.KindProducts] = catalog()
	data.saveErr[models.KindSales] = common.NewConnectionError("offline", errors.New("dial tcp"))
	svc := NewService(data)

	cart := NewCart()
	cart.Add(catalog()[0])
	_, err := svc.Checkout(context.Background(), cart)
	assert.True(t, common.IsConnection(err))
	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, int64(10), data.collections[models.KindProducts][0]["quantity"])
}

func TestCheckout_InventorySaveFailure(t *testing.T) {
	data := newMemoryData()
	data.collections[models.KindProducts] = catalog()
	data.saveErr[models.KindProducts] = common.NewConnectionError("offline", nil)
	svc := NewService(data)

	cart := NewCart()
	cart.Add(catalog()[0])
	receipt, err := svc.Checkout(context.Background(), cart)
	require.NoError(t, err)
	assert.True(t, common.IsConnection(receipt.InventoryErr))
	assert.Len(t, data.collections[models.KindSales], 1)
}

func TestCheckout_MissingQuantityStartsFromZero(t *testing.T) {
	data := newMemoryData()
	data.collections[models.KindProducts] = []models.Record{
		{"id": int64(5), "name": "Lighter", "price": 2.0, "status": "Active"},
	}
	svc := NewService(data)

	cart := NewCart()
	require.NoError(t, cart.AddQuantity(data.collections[models.KindProducts][0], 3))
	receipt, err := svc.Checkout(context.Background(), cart)
	require.NoError(t, err)

	assert.Empty(t, receipt.LineErrors)
	assert.Equal(t, 1, receipt.ProductsUpdated)
	assert.Equal(t, int64(-3), data.collections[models.KindProducts][0]["quantity"])
}
