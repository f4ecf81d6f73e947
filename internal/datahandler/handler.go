// Package datahandler keeps the document store, the JSON cache and the Excel
// workbooks of every collection in sync.
//
// Reads go through a fallback chain (store, cache, workbook, empty) and mirror
// what they read to the lower tiers. Saves write the cache first, then replace
// the store collection, then regenerate the workbook.
package datahandler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"shop_pos/config"
	"shop_pos/internal/cache"
	"shop_pos/internal/logger"
	"shop_pos/internal/models"
	"shop_pos/internal/spreadsheet"
	"shop_pos/internal/store"
)

const (
	defaultBatchSize        = 100
	defaultOperationTimeout = 10 * time.Second
)

// Options configures a Handler
type Options struct {
	JSONDir          string        // JSON cache directory
	ExcelDir         string        // Workbook directory
	BatchSize        int           // Documents per InsertMany call, default 100
	OperationTimeout time.Duration // Bound of every store call, default 10s
}

// OptionsFromConfig builds Options from the application configuration
func OptionsFromConfig(cfg *config.Configuration) Options {
	return Options{
		JSONDir:          cfg.DataJSONPath,
		ExcelDir:         cfg.DataExcelPath,
		BatchSize:        cfg.StoreBatchSize,
		OperationTimeout: cfg.OperationTimeout(),
	}
}

// Handler is the synchronized loader/saver. A nil store runs in file-only mode:
// loads fall back to the cache and workbooks, saves fail with a ConnectionError.
type Handler struct {
	store     store.DocumentStore
	cache     *cache.Cache
	workbooks *spreadsheet.Workbooks
	batchSize int
	timeout   time.Duration

	mu sync.Mutex
}

// New creates a Handler over s and the directories of opts
func New(s store.DocumentStore, opts Options) *Handler {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.OperationTimeout <= 0 {
		opts.OperationTimeout = defaultOperationTimeout
	}
	return &Handler{
		store:     s,
		cache:     cache.New(opts.JSONDir),
		workbooks: spreadsheet.New(opts.ExcelDir),
		batchSize: opts.BatchSize,
		timeout:   opts.OperationTimeout,
	}
}

// Cache returns the JSON cache
func (h *Handler) Cache() *cache.Cache {
	return h.cache
}

// Workbooks returns the workbook store
func (h *Handler) Workbooks() *spreadsheet.Workbooks {
	return h.workbooks
}

// opContext bounds a single store call
func (h *Handler) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.timeout)
}

// connect makes one (re)connection attempt and reports whether the store is usable
func (h *Handler) connect(ctx context.Context) bool {
	if h.store == nil {
		return false
	}
	opCtx, cancel := h.opContext(ctx)
	defer cancel()
	if err := h.store.Connect(opCtx); err != nil {
		h.log(ctx, "").WithError(err).Warn("Document store unreachable, using local files")
		return false
	}
	return true
}

func (h *Handler) log(ctx context.Context, kind models.Kind) *logrus.Entry {
	entry := logger.Component(ctx, "datahandler")
	if kind != "" {
		entry = entry.WithField(logger.FieldKind, string(kind))
	}
	return entry
}
