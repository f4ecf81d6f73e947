package datahandler

import (
	"context"
	"math"

	"shop_pos/internal/common"
	"shop_pos/internal/models"
	"shop_pos/internal/utility"
)

// NextID returns one more than the largest leading number found in the id
// fields of kind, or 1 when there is none. Ids are not reserved: two callers
// that run before either inserts get the same value.
func (h *Handler) NextID(ctx context.Context, kind models.Kind) (int64, error) {
	kind, err := models.ParseKind(string(kind))
	if err != nil {
		return 0, err
	}
	h.mu.Lock()
	records, _ := h.read(ctx, kind)
	h.mu.Unlock()

	return nextID(records)
}

func nextID(records []models.Record) (int64, error) {
	var highest int64
	for _, r := range records {
		if n, ok := utility.LeadingNumber(r.ID()); ok && n > highest {
			highest = n
		}
	}
	if highest == math.MaxInt64 {
		return 0, common.NewDataShapeError("Largest id leaves no room for a new one", highest)
	}
	return highest + 1, nil
}

// Search loads kind and keeps the records with a string field containing query, ignoring case
func (h *Handler) Search(ctx context.Context, kind models.Kind, query string) ([]models.Record, error) {
	records, err := h.Load(ctx, kind)
	if err != nil {
		return nil, err
	}
	return models.SearchRecords(records, query), nil
}

// Filter loads kind and keeps the records matching every criterion exactly
func (h *Handler) Filter(ctx context.Context, kind models.Kind, criteria map[string]interface{}) ([]models.Record, error) {
	records, err := h.Load(ctx, kind)
	if err != nil {
		return nil, err
	}
	return models.FilterRecords(records, criteria), nil
}
