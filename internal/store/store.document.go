package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shop_pos/internal/common"
	"shop_pos/internal/models"
)

// toDocument copies record into a BSON document. A hex string _id becomes an
// ObjectID; any other _id is dropped so the store assigns a fresh one.
func toDocument(record models.Record) bson.M {
	doc := make(bson.M, len(record))
	for k, v := range record {
		doc[k] = v
	}
	switch id := doc[models.FieldStoreID].(type) {
	case primitive.ObjectID:
	case string:
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			delete(doc, models.FieldStoreID)
		} else {
			doc[models.FieldStoreID] = oid
		}
	default:
		delete(doc, models.FieldStoreID)
	}
	return doc
}

// parseObjectID parses the hex form of a store id
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeDataShape, "Invalid document id: "+id, id, err)
	}
	return oid, nil
}
