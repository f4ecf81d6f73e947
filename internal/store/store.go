// Package store is the document store adapter: a thin layer over MongoDB that
// speaks models.Record and reports failures with the common error taxonomy.
package store

import (
	"context"

	"shop_pos/internal/models"
)

// DocumentStore is the document database as seen by the synchronized loader.
// Collection names are models.Kind values; id is the hex form of the store identifier.
type DocumentStore interface {
	// Connect (re)establishes the connection; a healthy connection is kept
	Connect(ctx context.Context) error
	// EnsureCollection creates the collection when it does not exist
	EnsureCollection(ctx context.Context, collection string) error

	InsertOne(ctx context.Context, collection string, record models.Record) (string, error)
	InsertMany(ctx context.Context, collection string, records []models.Record) error
	UpdateByID(ctx context.Context, collection, id string, patch models.Record) (bool, error)
	DeleteByID(ctx context.Context, collection, id string) (bool, error)
	DeleteAll(ctx context.Context, collection string) (int64, error)
	FindByID(ctx context.Context, collection, id string) (models.Record, error)
	FindAll(ctx context.Context, collection string) ([]models.Record, error)

	Close(ctx context.Context) error
}
