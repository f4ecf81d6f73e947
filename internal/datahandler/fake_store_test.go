package datahandler

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shop_pos/internal/common"
	"shop_pos/internal/models"
	"shop_pos/internal/store"
)

// fakeStore is an in-memory DocumentStore that can play an unreachable store
// or a store whose reads or writes fail.
type fakeStore struct {
	mu          sync.Mutex
	reachable   bool
	failReads   bool
	failWrites  bool
	collections map[string][]models.Record
	insertCalls int
}

var _ store.DocumentStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{reachable: true, collections: make(map[string][]models.Record)}
}

func (f *fakeStore) set(fn func(f *fakeStore)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeStore) docs(collection string) []models.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.CloneRecords(f.collections[collection])
}

func (f *fakeStore) Connect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.reachable {
		return common.NewConnectionError("connection refused", nil)
	}
	return nil
}

func (f *fakeStore) EnsureCollection(ctx context.Context, collection string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.reachable {
		return common.ErrConnection
	}
	if _, ok := f.collections[collection]; !ok {
		f.collections[collection] = []models.Record{}
	}
	return nil
}

func (f *fakeStore) writable() error {
	if !f.reachable {
		return common.ErrConnection
	}
	if f.failWrites {
		return common.NewStoreError(common.ErrCodeStoreWrite, "simulated write failure", nil)
	}
	return nil
}

func (f *fakeStore) insertLocked(collection string, record models.Record) string {
	doc := models.NormalizeRecord(record)
	id, ok := doc[models.FieldStoreID].(string)
	if _, err := primitive.ObjectIDFromHex(id); !ok || err != nil {
		id = primitive.NewObjectID().Hex()
		doc[models.FieldStoreID] = id
	}
	f.collections[collection] = append(f.collections[collection], doc)
	return id
}

func (f *fakeStore) InsertOne(ctx context.Context, collection string, record models.Record) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writable(); err != nil {
		return "", err
	}
	return f.insertLocked(collection, record), nil
}

func (f *fakeStore) InsertMany(ctx context.Context, collection string, records []models.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writable(); err != nil {
		return err
	}
	f.insertCalls++
	for _, r := range records {
		f.insertLocked(collection, r)
	}
	return nil
}

func (f *fakeStore) indexOf(collection, id string) int {
	for i, r := range f.collections[collection] {
		if r.String(models.FieldStoreID) == id {
			return i
		}
	}
	return -1
}

func (f *fakeStore) UpdateByID(ctx context.Context, collection, id string, patch models.Record) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writable(); err != nil {
		return false, err
	}
	i := f.indexOf(collection, id)
	if i < 0 {
		return false, nil
	}
	for k, v := range models.NormalizeRecord(patch) {
		if k != models.FieldStoreID {
			f.collections[collection][i][k] = v
		}
	}
	return true, nil
}

func (f *fakeStore) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writable(); err != nil {
		return false, err
	}
	i := f.indexOf(collection, id)
	if i < 0 {
		return false, nil
	}
	docs := f.collections[collection]
	f.collections[collection] = append(docs[:i:i], docs[i+1:]...)
	return true, nil
}

func (f *fakeStore) DeleteAll(ctx context.Context, collection string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writable(); err != nil {
		return 0, err
	}
	n := int64(len(f.collections[collection]))
	f.collections[collection] = []models.Record{}
	return n, nil
}

func (f *fakeStore) FindByID(ctx context.Context, collection, id string) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.reachable {
		return nil, common.ErrConnection
	}
	i := f.indexOf(collection, id)
	if i < 0 {
		return nil, common.NewError(common.ErrCodeStoreNotFound, "Document not found", id, nil)
	}
	return f.collections[collection][i].Clone(), nil
}

func (f *fakeStore) FindAll(ctx context.Context, collection string) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.reachable {
		return nil, common.ErrConnection
	}
	if f.failReads {
		return nil, common.NewStoreError(common.ErrCodeStoreQuery, "simulated read failure", nil)
	}
	out := models.CloneRecords(f.collections[collection])
	if out == nil {
		out = []models.Record{}
	}
	return out, nil
}

func (f *fakeStore) Close(ctx context.Context) error {
	return nil
}
