package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"shop_pos/config"
	"shop_pos/internal/common"
	"shop_pos/internal/database"
	"shop_pos/internal/logger"
	"shop_pos/internal/models"
	"shop_pos/internal/registry"
	"shop_pos/internal/utility"
)

// MongoStore implements DocumentStore on a MongoDB database.
// The caller owns it and must Close it.
type MongoStore struct {
	opts        database.ConnectOptions
	mu          sync.RWMutex
	client      *mongo.Client
	db          *mongo.Database
	collections *registry.Registry[*mongo.Collection]
}

var _ DocumentStore = (*MongoStore)(nil)

// NewMongoStore creates a disconnected store for the configured database
func NewMongoStore(cfg *config.Configuration) *MongoStore {
	opts := database.ConnectOptions{
		URI:            cfg.MongoDB_ConnectionURI,
		Database:       cfg.MongoDB_DBName,
		ConnectTimeout: cfg.ConnectTimeout(),
	}
	if cfg.MongoDB_MaxPoolSize > 0 {
		opts.MaxPoolSize = uint64(cfg.MongoDB_MaxPoolSize)
	}
	return &MongoStore{
		opts:        opts,
		collections: registry.NewRegistry[*mongo.Collection](),
	}
}

// storeIndexes are created on every connect
var storeIndexes = func() []database.IndexSpec {
	specs := []database.IndexSpec{{Collection: models.KindProducts.Collection(), Field: "barcode", Sparse: true}}
	for _, kind := range models.AllKinds() {
		specs = append(specs, database.IndexSpec{Collection: kind.Collection(), Field: models.FieldID, Sparse: true})
	}
	return specs
}()

// Connect pings the current connection and reconnects when it is gone.
// Every known collection and its indexes are ensured on a fresh connection.
func (s *MongoStore) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		if err := s.client.Ping(ctx, readpref.Primary()); err == nil {
			return nil
		}
		s.dropLocked(ctx)
	}

	client, err := database.Connect(ctx, s.opts)
	if err != nil {
		return err
	}
	db := client.Database(s.opts.Database)

	names := make([]string, 0, len(models.AllKinds()))
	for _, kind := range models.AllKinds() {
		names = append(names, kind.Collection())
	}
	if err := database.EnsureCollections(ctx, db, names); err != nil {
		_ = database.Close(ctx, client)
		return err
	}
	log := logger.GetAppLogger().WithField(logger.FieldComponent, "store")
	if err := database.EnsureIndexes(ctx, db, storeIndexes); err != nil {
		// indexes only speed up lookups
		log.WithError(err).Warn("Failed to ensure indexes")
	}
	for _, name := range names {
		if _, err := s.collections.Register(name, db.Collection(name)); err != nil {
			_ = database.Close(ctx, client)
			return err
		}
	}
	log.WithField("collections", s.collections.Names()).Debug("Collection handles registered")

	s.client = client
	s.db = db
	return nil
}

// EnsureCollection creates collection when missing
func (s *MongoStore) EnsureCollection(ctx context.Context, collection string) error {
	s.mu.RLock()
	db := s.db
	s.mu.RUnlock()
	if db == nil {
		return common.ErrConnection
	}
	return database.EnsureCollections(ctx, db, []string{collection})
}

func (s *MongoStore) collection(name string) (*mongo.Collection, error) {
	s.mu.RLock()
	db := s.db
	s.mu.RUnlock()
	if db == nil {
		return nil, common.ErrConnection
	}
	if col, ok := s.collections.Get(name); ok {
		return col, nil
	}
	return s.collections.GetOrCreate(name, func() (*mongo.Collection, error) {
		return db.Collection(name), nil
	})
}

// InsertOne inserts record and returns the hex id assigned to it
func (s *MongoStore) InsertOne(ctx context.Context, collection string, record models.Record) (string, error) {
	col, err := s.collection(collection)
	if err != nil {
		return "", err
	}
	result, err := col.InsertOne(ctx, toDocument(record))
	if err != nil {
		return "", common.ConvertMongoError(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return utility.ToString(result.InsertedID), nil
}

// InsertMany inserts records in a single call; an empty slice is a no-op
func (s *MongoStore) InsertMany(ctx context.Context, collection string, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}
	col, err := s.collection(collection)
	if err != nil {
		return err
	}
	docs := make([]interface{}, 0, len(records))
	for _, r := range records {
		docs = append(docs, toDocument(r))
	}
	if _, err := col.InsertMany(ctx, docs); err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

// UpdateByID sets the fields of patch on the document; false when nothing was modified
func (s *MongoStore) UpdateByID(ctx context.Context, collection, id string, patch models.Record) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, err
	}
	col, err := s.collection(collection)
	if err != nil {
		return false, err
	}
	fields := toDocument(patch)
	delete(fields, models.FieldStoreID)
	if len(fields) == 0 {
		return false, nil
	}
	result, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return result.ModifiedCount > 0, nil
}

// DeleteByID removes the document; false when it did not exist
func (s *MongoStore) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, err
	}
	col, err := s.collection(collection)
	if err != nil {
		return false, err
	}
	result, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return result.DeletedCount > 0, nil
}

// DeleteAll empties the collection and returns the number of removed documents
func (s *MongoStore) DeleteAll(ctx context.Context, collection string) (int64, error) {
	col, err := s.collection(collection)
	if err != nil {
		return 0, err
	}
	result, err := col.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.DeletedCount, nil
}

// FindByID returns the document or a not found StoreError
func (s *MongoStore) FindByID(ctx context.Context, collection, id string) (models.Record, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	col, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return models.NormalizeRecord(doc), nil
}

// FindAll returns every document of the collection, normalized, in natural order
func (s *MongoStore) FindAll(ctx context.Context, collection string) ([]models.Record, error) {
	col, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	cursor, err := col.Find(ctx, bson.D{})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return models.NormalizeRecords(docs), nil
}

// Close disconnects; the store can be connected again afterwards
func (s *MongoStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropLocked(ctx)
}

func (s *MongoStore) dropLocked(ctx context.Context) error {
	client := s.client
	s.client = nil
	s.db = nil
	_, _ = s.collections.ClearAll(nil)
	return database.Close(ctx, client)
}
