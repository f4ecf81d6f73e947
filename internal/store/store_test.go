package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shop_pos/config"
	"shop_pos/internal/common"
	"shop_pos/internal/models"
)

func TestToDocument(t *testing.T) {
	oid := primitive.NewObjectID()

	doc := toDocument(models.Record{"_id": oid.Hex(), "name": "Cola"})
	assert.Equal(t, oid, doc["_id"])
	assert.Equal(t, "Cola", doc["name"])

	doc = toDocument(models.Record{"_id": "not-hex", "name": "Cola"})
	_, has := doc["_id"]
	assert.False(t, has)

	doc = toDocument(models.Record{"_id": int64(5)})
	_, has = doc["_id"]
	assert.False(t, has)

	in := models.Record{"_id": oid.Hex()}
	toDocument(in)
	assert.Equal(t, oid.Hex(), in["_id"], "input must not be mutated")
}

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, err := parseObjectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	_, err = parseObjectID("xyz")
	require.Error(t, err)
	assert.True(t, common.IsDataShape(err))
}

func TestMongoStore_NotConnected(t *testing.T) {
	s := NewMongoStore(&config.Configuration{MongoDB_DBName: "shop_pos_test"})
	assert.Empty(t, s.collections.Names())

	_, err := s.FindAll(context.Background(), "products")
	assert.True(t, common.IsConnection(err))

	_, err = s.InsertOne(context.Background(), "products", models.Record{"id": int64(1)})
	assert.ErrorIs(t, err, common.ErrConnection)

	assert.NoError(t, s.Close(context.Background()))
}

// mongoStoreForTest connects to SHOP_POS_TEST_MONGODB_URI or skips the test
func mongoStoreForTest(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("SHOP_POS_TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("SHOP_POS_TEST_MONGODB_URI not set, skipping MongoDB integration test")
	}
	cfg := &config.Configuration{
		MongoDB_ConnectionURI:  uri,
		MongoDB_DBName:         "shop_pos_test",
		MongoDB_ConnectTimeout: 5,
		MongoDB_MaxPoolSize:    5,
	}
	s := NewMongoStore(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, s.Connect(ctx))
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestMongoStore_CRUD(t *testing.T) {
	s := mongoStoreForTest(t)
	ctx := context.Background()
	col := models.KindSuppliers.Collection()

	_, err := s.DeleteAll(ctx, col)
	require.NoError(t, err)

	id, err := s.InsertOne(ctx, col, models.Record{"id": int64(1), "name": "Acme", "contact": "Bob"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.FindByID(ctx, col, id)
	require.NoError(t, err)
	assert.Equal(t, id, got[models.FieldStoreID])
	assert.Equal(t, int64(1), got["id"])

	modified, err := s.UpdateByID(ctx, col, id, models.Record{"contact": "Alice"})
	require.NoError(t, err)
	assert.True(t, modified)

	require.NoError(t, s.InsertMany(ctx, col, []models.Record{{"id": int64(2)}, {"id": int64(3)}}))
	all, err := s.FindAll(ctx, col)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	deleted, err := s.DeleteByID(ctx, col, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.FindByID(ctx, col, id)
	assert.ErrorIs(t, err, common.ErrNotFound)

	n, err := s.DeleteAll(ctx, col)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestMongoStore_ConnectIsIdempotent(t *testing.T) {
	s := mongoStoreForTest(t)
	require.NoError(t, s.Connect(context.Background()))
	for _, kind := range models.AllKinds() {
		assert.Contains(t, s.collections.Names(), kind.Collection())
	}
	require.NoError(t, s.EnsureCollection(context.Background(), models.KindSales.Collection()))
}
