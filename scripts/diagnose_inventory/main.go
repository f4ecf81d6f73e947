// Diagnostic script: checks products and inventory for data the checkout cannot handle.
// Run from the repository root: go run ./scripts/diagnose_inventory
// Works offline too: collections are read through the JSON cache and workbooks when MongoDB is down.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"shop_pos/config"
	"shop_pos/internal/datahandler"
	"shop_pos/internal/models"
	"shop_pos/internal/store"
	"shop_pos/internal/utility"
)

func main() {
	fmt.Println("=== Inventory diagnostics ===")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to read configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	s := store.NewMongoStore(cfg)
	defer s.Close(context.Background())
	h := datahandler.New(s, datahandler.OptionsFromConfig(cfg))

	products, src, err := h.LoadWithSource(ctx, models.KindProducts)
	if err != nil {
		logrus.Fatalf("Failed to load products: %v", err)
	}
	fmt.Printf("1. Products: %d (source: %s)\n", len(products), src)

	ids := make(map[string]int)
	barcodes := make(map[string]int)
	for _, p := range products {
		ids[p.String(models.FieldID)]++
		if b := p.String("barcode"); b != "" {
			barcodes[b]++
		}
		if !utility.IsNumber(p["quantity"]) {
			fmt.Printf("   - id=%v %q: non numeric quantity %v, stock is never decremented\n", p.ID(), p.String("name"), p["quantity"])
		}
		if models.IsActiveRecord(p) && !p.Has("price") {
			fmt.Printf("   - id=%v %q: active without a price, sold for 0\n", p.ID(), p.String("name"))
		}
	}
	for id, n := range ids {
		if n > 1 {
			fmt.Printf("   - id %q used by %d products, checkout decrements the first one only\n", id, n)
		}
	}
	for b, n := range barcodes {
		if n > 1 {
			fmt.Printf("   - barcode %q shared by %d products\n", b, n)
		}
	}

	items, src, err := h.LoadWithSource(ctx, models.KindInventory)
	if err != nil {
		logrus.Fatalf("Failed to load inventory: %v", err)
	}
	fmt.Printf("2. Inventory items: %d (source: %s)\n", len(items), src)
	for _, r := range items {
		item := models.InventoryItemFromRecord(r)
		if item.NeedsRestock() {
			fmt.Printf("   - %q at %q: %v left, minimum %v\n", item.Name, item.Location, item.Quantity, item.MinQuantity)
		}
	}

	fmt.Println("3. Next ids:")
	for _, kind := range models.AllKinds() {
		id, err := h.NextID(ctx, kind)
		if err != nil {
			fmt.Printf("   - %s: %v\n", kind, err)
			continue
		}
		fmt.Printf("   - %s: %d\n", kind, id)
	}
}
