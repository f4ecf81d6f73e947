package datahandler

import (
	"context"

	"shop_pos/internal/common"
	"shop_pos/internal/logger"
	"shop_pos/internal/models"
)

// Source is the tier a collection is read from
type Source int

// Tiers in fallback order
const (
	SourceStore Source = iota
	SourceCache
	SourceSpreadsheet
	SourceEmpty
)

func (s Source) String() string {
	switch s {
	case SourceStore:
		return "store"
	case SourceCache:
		return "cache"
	case SourceSpreadsheet:
		return "spreadsheet"
	case SourceEmpty:
		return "empty"
	}
	return "unknown"
}

// ResolveSource returns the tier Load would read kind from, without reading it:
// the store when a (re)connection succeeds, else the cache file when it exists,
// else the workbook when it exists, else empty.
func (h *Handler) ResolveSource(ctx context.Context, kind models.Kind) (Source, error) {
	kind, err := models.ParseKind(string(kind))
	if err != nil {
		return SourceEmpty, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	src := SourceStore
	for !h.available(ctx, kind, src) {
		src = src.next()
	}
	return src, nil
}

// next is the tier tried when s is unavailable
func (s Source) next() Source {
	if s >= SourceEmpty {
		return SourceEmpty
	}
	return s + 1
}

func (h *Handler) available(ctx context.Context, kind models.Kind, src Source) bool {
	switch src {
	case SourceStore:
		return h.connect(ctx)
	case SourceCache:
		return h.cache.Exists(kind)
	case SourceSpreadsheet:
		return h.workbooks.Exists(kind)
	}
	return true
}

// read walks the fallback chain and returns the first tier that can be read.
// A tier that is present but fails to read counts as unavailable.
func (h *Handler) read(ctx context.Context, kind models.Kind) ([]models.Record, Source) {
	for src := SourceStore; ; src = src.next() {
		if !h.available(ctx, kind, src) {
			continue
		}
		records, err := h.readFrom(ctx, kind, src)
		if err != nil {
			h.log(ctx, kind).WithField(logger.FieldSource, src.String()).WithError(err).
				Warn(readFailure(err))
			continue
		}
		return records, src
	}
}

func readFailure(err error) string {
	switch {
	case common.IsStore(err):
		return "Store query failed, trying next source"
	case common.IsFile(err):
		return "Local file unreadable, trying next source"
	}
	return "Failed to read collection, trying next source"
}

func (h *Handler) readFrom(ctx context.Context, kind models.Kind, src Source) ([]models.Record, error) {
	switch src {
	case SourceStore:
		opCtx, cancel := h.opContext(ctx)
		defer cancel()
		return h.store.FindAll(opCtx, kind.Collection())
	case SourceCache:
		return h.cache.Read(kind)
	case SourceSpreadsheet:
		return h.workbooks.Read(kind)
	}
	return []models.Record{}, nil
}
