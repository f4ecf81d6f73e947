package datahandler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"shop_pos/internal/common"
	"shop_pos/internal/global"
	"shop_pos/internal/logger"
	"shop_pos/internal/models"
)

// Validate checks that record carries every required field of kind and that
// its typed view passes the field rules.
func (h *Handler) Validate(kind models.Kind, record models.Record) error {
	kind, err := models.ParseKind(string(kind))
	if err != nil {
		return err
	}
	if missing := record.MissingFields(kind); len(missing) > 0 {
		return common.NewError(common.ErrCodeDataShape, "Missing required fields", missing, nil)
	}

	variant, err := models.Decode(kind, record)
	if err != nil {
		return err
	}
	if err := global.Validator().Struct(variant); err != nil {
		var fields []string
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
		}
		return common.NewError(common.ErrCodeDataValidation, "Invalid field values", fields, err)
	}
	return nil
}

// requireStore connects or returns a ConnectionError
func (h *Handler) requireStore(ctx context.Context) error {
	if !h.connect(ctx) {
		return common.NewConnectionError("Database connection not available", nil)
	}
	return nil
}

// InsertDocument validates record, inserts it and refreshes the mirrors of kind.
// It returns the store id of the new document.
func (h *Handler) InsertDocument(ctx context.Context, kind models.Kind, record models.Record) (string, error) {
	kind, err := models.ParseKind(string(kind))
	if err != nil {
		return "", err
	}
	if err := h.Validate(kind, record); err != nil {
		return "", err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.requireStore(ctx); err != nil {
		return "", err
	}
	opCtx, cancel := h.opContext(ctx)
	id, err := h.store.InsertOne(opCtx, kind.Collection(), record.Clone())
	cancel()
	if err != nil {
		logger.ReportError(ctx, "datahandler", err, "Failed to insert document")
		return "", err
	}

	h.refreshMirrors(ctx, kind)
	logger.LogCRUD(ctx, "insert", string(kind), id, nil)
	return id, nil
}

// UpdateDocument sets the fields of patch on the document id.
// It reports whether the document changed; mirrors are refreshed when it did.
func (h *Handler) UpdateDocument(ctx context.Context, kind models.Kind, id string, patch models.Record) (bool, error) {
	kind, err := models.ParseKind(string(kind))
	if err != nil {
		return false, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.requireStore(ctx); err != nil {
		return false, err
	}
	opCtx, cancel := h.opContext(ctx)
	modified, err := h.store.UpdateByID(opCtx, kind.Collection(), id, patch.Clone())
	cancel()
	if err != nil {
		logger.ReportError(ctx, "datahandler", err, "Failed to update document")
		return false, err
	}
	if modified {
		h.refreshMirrors(ctx, kind)
		logger.LogCRUD(ctx, "update", string(kind), id, map[string]interface{}{"fields": patch.Keys()})
	}
	return modified, nil
}

// DeleteDocument removes the document id and, when it existed, re-propagates
// the remaining collection to the JSON cache and the workbook.
func (h *Handler) DeleteDocument(ctx context.Context, kind models.Kind, id string) (bool, error) {
	kind, err := models.ParseKind(string(kind))
	if err != nil {
		return false, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.requireStore(ctx); err != nil {
		return false, err
	}
	opCtx, cancel := h.opContext(ctx)
	deleted, err := h.store.DeleteByID(opCtx, kind.Collection(), id)
	cancel()
	if err != nil {
		logger.ReportError(ctx, "datahandler", err, "Failed to delete document")
		return false, err
	}
	if deleted {
		h.refreshMirrors(ctx, kind)
		logger.LogCRUD(ctx, "delete", string(kind), id, nil)
	}
	return deleted, nil
}

// GetDocument returns the document id from the store
func (h *Handler) GetDocument(ctx context.Context, kind models.Kind, id string) (models.Record, error) {
	kind, err := models.ParseKind(string(kind))
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.requireStore(ctx); err != nil {
		return nil, err
	}
	opCtx, cancel := h.opContext(ctx)
	defer cancel()
	return h.store.FindByID(opCtx, kind.Collection(), id)
}

// refreshMirrors rewrites the cache and the workbook of kind from the store
func (h *Handler) refreshMirrors(ctx context.Context, kind models.Kind) {
	log := h.log(ctx, kind)

	opCtx, cancel := h.opContext(ctx)
	records, err := h.store.FindAll(opCtx, kind.Collection())
	cancel()
	if err != nil {
		log.WithError(err).Warn("Failed to re-read collection, mirrors are stale")
		return
	}
	if err := h.cache.Write(kind, records); err != nil {
		log.WithError(err).Warn("Failed to mirror collection to JSON cache")
	}
	if err := h.workbooks.Write(kind, records); err != nil {
		log.WithError(err).Warn("Failed to regenerate workbook")
	}
}
