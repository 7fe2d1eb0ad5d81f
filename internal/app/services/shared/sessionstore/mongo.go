package sessionstore

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Value     string     `bson:"value"`
	UpdatedAt time.Time  `bson:"updated_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

type mongoStore struct {
	collection *mongo.Collection
	now        func() time.Time
}

var (
	_ contracts.SessionStore = (*mongoStore)(nil)
	_ contracts.Taker        = (*mongoStore)(nil)
)

// NewMongoStore stores one document per key. A TTL index on expires_at lets
// MongoDB evict expired entries; reads also check expiry because the TTL
// monitor only runs once a minute.
func NewMongoStore(ctx context.Context, db *mongo.Database, collectionName string) (contracts.SessionStore, error) {
	collection := db.Collection(collectionName)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return nil, exceptions.ErrStoreSet(err, collectionName)
	}
	return &mongoStore{collection: collection, now: time.Now}, nil
}

func (m *mongoStore) Get(ctx context.Context, key string) (string, error) {
	var entry mongoEntry
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrStoreGet(err, key)
	}
	if entry.ExpiresAt != nil && !m.now().Before(*entry.ExpiresAt) {
		return "", nil
	}
	return entry.Value, nil
}

func (m *mongoStore) Set(ctx context.Context, key string, value string, exp time.Duration) error {
	now := m.now()
	entry := mongoEntry{Key: key, Value: value, UpdatedAt: now}
	if exp > 0 {
		expiresAt := now.Add(exp)
		entry.ExpiresAt = &expiresAt
	}
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, entry, options.Replace().SetUpsert(true))
	if err != nil {
		return exceptions.ErrStoreSet(err, key)
	}
	return nil
}

func (m *mongoStore) Take(ctx context.Context, key string) (string, error) {
	var entry mongoEntry
	err := m.collection.FindOneAndDelete(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrStoreDelete(err, key)
	}
	if entry.ExpiresAt != nil && !m.now().Before(*entry.ExpiresAt) {
		return "", nil
	}
	return entry.Value, nil
}

func (m *mongoStore) Delete(ctx context.Context, key string) error {
	_, err := m.collection.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return exceptions.ErrStoreDelete(err, key)
	}
	return nil
}
