package sessionstore

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Backends are the connections a store may be built on. Only the one the
// selected backend needs has to be set.
type Backends struct {
	Redis           *redis.Client
	Mongo           *mongo.Database
	MongoCollection string
	SQLite          *sql.DB
}

// New builds the store named by backend.
func New(ctx context.Context, backend string, backends Backends) (contracts.SessionStore, error) {
	switch backend {
	case constvars.StoreBackendMemory, "":
		return NewMemoryStore(), nil
	case constvars.StoreBackendRedis:
		if backends.Redis == nil {
			return nil, exceptions.ErrUnknownStoreBackend(nil, backend)
		}
		return NewRedisStore(backends.Redis), nil
	case constvars.StoreBackendMongo:
		if backends.Mongo == nil {
			return nil, exceptions.ErrUnknownStoreBackend(nil, backend)
		}
		return NewMongoStore(ctx, backends.Mongo, backends.MongoCollection)
	case constvars.StoreBackendSQLite:
		if backends.SQLite == nil {
			return nil, exceptions.ErrUnknownStoreBackend(nil, backend)
		}
		store, err := NewSQLiteStore(ctx, backends.SQLite)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, exceptions.ErrUnknownStoreBackend(nil, backend)
}
