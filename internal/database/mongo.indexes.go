package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shop_pos/internal/common"
)

// IndexSpec is a single field index on a collection
type IndexSpec struct {
	Collection string
	Field      string
	Sparse     bool
}

// IndexName returns the name the index is created with
func (s IndexSpec) IndexName() string {
	return s.Collection + "_" + s.Field
}

// EnsureIndexes creates the given ascending indexes; existing ones are left alone.
// Indexes are never unique: cache and workbook imports may carry duplicate ids.
func EnsureIndexes(ctx context.Context, db *mongo.Database, specs []IndexSpec) error {
	for _, spec := range specs {
		_, err := db.Collection(spec.Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: spec.Field, Value: 1}},
			Options: options.Index().SetName(spec.IndexName()).SetSparse(spec.Sparse),
		})
		if err != nil && !isExistsError(err) {
			return common.ConvertMongoError(err)
		}
	}
	return nil
}

// isExistsError reports whether the error is "index/collection already exists"
func isExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "NamespaceExists")
}
