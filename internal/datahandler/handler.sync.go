package datahandler

import (
	"context"
	"time"

	"shop_pos/internal/common"
	"shop_pos/internal/logger"
	"shop_pos/internal/metrics"
	"shop_pos/internal/models"
	"shop_pos/internal/spreadsheet"
)

// SaveResult reports what a successful Save wrote.
// The cache write alone decides success, so a failed store write leaves the
// store behind the cache until the next successful Save. A later Load from the
// store overwrites the cache with the older store content.
type SaveResult struct {
	CacheWritten   bool
	StoreWritten   bool
	StoreErr       error // Why the store was not replaced
	SpreadsheetErr error // Why the workbook was not regenerated
	Count          int
}

// Consistent reports whether every tier holds the saved records
func (r *SaveResult) Consistent() bool {
	return r.CacheWritten && r.StoreWritten && r.SpreadsheetErr == nil
}

func (r *SaveResult) outcome() string {
	switch {
	case !r.StoreWritten:
		return "store_failed"
	case r.SpreadsheetErr != nil:
		return "spreadsheet_failed"
	}
	return "consistent"
}

// Load returns the records of kind from the first available tier and mirrors
// them to the tiers below it.
func (h *Handler) Load(ctx context.Context, kind models.Kind) ([]models.Record, error) {
	records, _, err := h.LoadWithSource(ctx, kind)
	return records, err
}

// LoadWithSource is Load that also reports the tier the records came from
func (h *Handler) LoadWithSource(ctx context.Context, kind models.Kind) ([]models.Record, Source, error) {
	kind, err := models.ParseKind(string(kind))
	if err != nil {
		return nil, SourceEmpty, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	records, src := h.load(ctx, kind)
	return records, src, nil
}

func (h *Handler) load(ctx context.Context, kind models.Kind) ([]models.Record, Source) {
	records, src := h.read(ctx, kind)
	log := h.log(ctx, kind).WithField(logger.FieldSource, src.String())

	switch src {
	case SourceStore:
		if err := h.cache.Write(kind, records); err != nil {
			log.WithError(err).Warn("Failed to mirror collection to JSON cache")
		}
		if err := h.workbooks.Write(kind, records); err != nil {
			log.WithError(err).Warn("Failed to regenerate workbook")
		}
	case SourceCache:
		if err := h.workbooks.Write(kind, records); err != nil {
			log.WithError(err).Warn("Failed to regenerate workbook")
		}
	case SourceSpreadsheet:
		if err := h.cache.Write(kind, records); err != nil {
			log.WithError(err).Warn("Failed to persist workbook rows to JSON cache")
		}
	}

	metrics.LoadsTotal.WithLabelValues(string(kind), src.String()).Inc()
	log.WithField(logger.FieldCount, len(records)).Debug("Loaded collection")
	return records, src
}

// Save replaces the collection kind with records in every tier.
// It fails without touching any file when the store cannot be reached, and when
// the JSON cache cannot be written. Store and workbook failures after the cache
// write are reported in the SaveResult.
func (h *Handler) Save(ctx context.Context, kind models.Kind, records []models.Record) (*SaveResult, error) {
	kind, err := models.ParseKind(string(kind))
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.save(ctx, kind, records)
}

func (h *Handler) save(ctx context.Context, kind models.Kind, records []models.Record) (*SaveResult, error) {
	log := h.log(ctx, kind)
	started := time.Now()

	if !h.connect(ctx) {
		return nil, h.abortSave(ctx, kind)
	}
	opCtx, cancel := h.opContext(ctx)
	if err := h.store.EnsureCollection(opCtx, kind.Collection()); err != nil {
		log.WithError(err).Warn("Failed to ensure collection")
	}
	cancel()

	snapshot := models.CloneRecords(records)
	if snapshot == nil {
		snapshot = []models.Record{}
	}

	if err := h.cache.Write(kind, snapshot); err != nil {
		logger.ReportError(ctx, "datahandler", err, "Failed to write JSON cache")
		metrics.SavesTotal.WithLabelValues(string(kind), "aborted").Inc()
		return nil, err
	}
	result := &SaveResult{CacheWritten: true, Count: len(snapshot)}

	if err := h.replaceInStore(ctx, kind, snapshot); err != nil {
		result.StoreErr = err
		logger.ReportError(ctx, "datahandler", err, "Store write failed after the JSON cache was written")
	} else {
		result.StoreWritten = true
	}

	if err := h.workbooks.Write(kind, snapshot); err != nil {
		result.SpreadsheetErr = err
		log.WithError(err).Warn("Failed to regenerate workbook")
	}

	metrics.SavesTotal.WithLabelValues(string(kind), result.outcome()).Inc()
	metrics.SaveDuration.WithLabelValues(string(kind)).Observe(time.Since(started).Seconds())

	logger.LogAction(ctx, "save", string(kind), "", map[string]interface{}{
		"count":         result.Count,
		"store_written": result.StoreWritten,
	})
	log.WithField(logger.FieldCount, result.Count).Info("Saved collection")
	return result, nil
}

// abortSave reports a save refused because the store is unreachable
func (h *Handler) abortSave(ctx context.Context, kind models.Kind) error {
	err := common.NewConnectionError("Database connection not available, nothing was saved", nil)
	logger.ReportError(ctx, "datahandler", err, "Save aborted")
	metrics.SavesTotal.WithLabelValues(string(kind), "aborted").Inc()
	return err
}

// replaceInStore empties the collection and inserts records in batches.
// Readers between the two steps see an empty collection.
func (h *Handler) replaceInStore(ctx context.Context, kind models.Kind, records []models.Record) error {
	opCtx, cancel := h.opContext(ctx)
	deleted, err := h.store.DeleteAll(opCtx, kind.Collection())
	cancel()
	if err != nil {
		return err
	}
	h.log(ctx, kind).WithField(logger.FieldCount, deleted).Debug("Cleared collection")

	for start := 0; start < len(records); start += h.batchSize {
		end := start + h.batchSize
		if end > len(records) {
			end = len(records)
		}
		opCtx, cancel := h.opContext(ctx)
		err := h.store.InsertMany(opCtx, kind.Collection(), records[start:end])
		cancel()
		if err != nil {
			return err
		}
	}
	return nil
}

// ImportFromSpreadsheet saves the rows of the workbook of kind. A missing
// workbook is created with the column contract of kind; missing contract
// columns are added with their defaults and written back before saving.
// Nothing is read or written when the store cannot be reached.
func (h *Handler) ImportFromSpreadsheet(ctx context.Context, kind models.Kind) (*SaveResult, error) {
	kind, err := models.ParseKind(string(kind))
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.connect(ctx) {
		return nil, h.abortSave(ctx, kind)
	}
	log := h.log(ctx, kind).WithField(logger.FieldPath, h.workbooks.Path(kind))

	var table *spreadsheet.Table
	if h.workbooks.Exists(kind) {
		t, err := h.workbooks.ReadTable(kind)
		if err != nil {
			logger.ReportError(ctx, "datahandler", err, "Failed to read workbook")
			return nil, err
		}
		table = t
	} else {
		table = &spreadsheet.Table{Columns: spreadsheet.Columns(kind, nil), Rows: []models.Record{}}
		log.Info("Workbook not found, creating an empty one")
		if err := h.workbooks.WriteTable(kind, table); err != nil {
			return nil, err
		}
	}

	if added := spreadsheet.EnsureColumns(kind, table); len(added) > 0 {
		log.WithField("columns", added).Info("Added missing workbook columns")
		if err := h.workbooks.WriteTable(kind, table); err != nil {
			logger.ReportError(ctx, "datahandler", err, "Failed to write repaired workbook")
			return nil, err
		}
	}

	result, err := h.save(ctx, kind, table.Rows)
	if err != nil {
		return nil, err
	}
	logger.LogAction(ctx, "import", string(kind), "", map[string]interface{}{"count": len(table.Rows)})
	return result, nil
}

// ExportToSpreadsheet rewrites the workbook of kind from the first available tier.
// Unlike Load it does not touch the JSON cache.
func (h *Handler) ExportToSpreadsheet(ctx context.Context, kind models.Kind) error {
	kind, err := models.ParseKind(string(kind))
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	records, src := h.read(ctx, kind)
	if err := h.workbooks.Write(kind, records); err != nil {
		logger.ReportError(ctx, "datahandler", err, "Failed to export workbook")
		return err
	}
	h.log(ctx, kind).WithField(logger.FieldSource, src.String()).WithField(logger.FieldCount, len(records)).
		Info("Exported workbook")
	return nil
}

// SyncAll loads every collection once so all three tiers match.
// The returned map only holds the collections that failed.
func (h *Handler) SyncAll(ctx context.Context) map[models.Kind]error {
	failed := make(map[models.Kind]error)
	for _, kind := range models.AllKinds() {
		if err := ctx.Err(); err != nil {
			failed[kind] = err
			continue
		}
		records, src, err := h.LoadWithSource(ctx, kind)
		if err != nil {
			failed[kind] = err
			continue
		}
		h.log(ctx, kind).WithField(logger.FieldSource, src.String()).WithField(logger.FieldCount, len(records)).
			Info("Synchronized collection")
	}
	return failed
}
