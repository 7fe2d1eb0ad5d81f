package contracts

import (
	"context"
	"time"
)

// SessionStore is a string key-value store. Get returns an empty string and
// a nil error when the key is absent or expired. A zero exp never expires.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, exp time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Taker is implemented by stores that can read and delete a key in one
// step. Take returns an empty string when the key is absent or expired.
type Taker interface {
	Take(ctx context.Context, key string) (string, error)
}

// Sweeper is implemented by stores that must evict expired keys themselves.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

type Storage interface {
	PutObject(ctx context.Context, bucketName, objectName, contentType string, body []byte) error
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error)
}

// Locker hands out short leader leases. TryLock returns the token needed to
// release the lease.
type Locker interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, token string) error
}
