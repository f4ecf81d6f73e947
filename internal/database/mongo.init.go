package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shop_pos/internal/common"
	"shop_pos/internal/logger"
)

// EnsureCollections creates the collections of names that do not exist yet.
// Calling it again is a no-op.
func EnsureCollections(ctx context.Context, db *mongo.Database, names []string) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	known := make(map[string]bool, len(existing))
	for _, name := range existing {
		known[name] = true
	}

	log := logger.GetAppLogger().WithField(logger.FieldComponent, "database")
	for _, name := range names {
		if known[name] {
			continue
		}
		log.Infof("Collection %s does not exist, creating it", name)
		if err := db.CreateCollection(ctx, name); err != nil {
			// another process may have created it in between
			if isExistsError(err) {
				continue
			}
			return common.ConvertMongoError(err)
		}
		known[name] = true
	}
	return nil
}
