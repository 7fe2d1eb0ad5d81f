package locker

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/pkg/constvars"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrLockNotOwned = errors.New("lock not owned by this client")

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client *redis.Client
	Log    *zap.Logger
}

// NewRedisLocker shares leases between every instance using the same redis.
func NewRedisLocker(client *redis.Client, logger *zap.Logger) contracts.Locker {
	return &redisLocker{client: client, Log: logger}
}

func (s *redisLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	token := uuid.NewString()
	acquired, err := s.client.SetNX(ctx, key, token, expiration).Result()
	if err != nil {
		s.Log.Error("redisLocker.TryLock error calling SetNX",
			zap.String(constvars.LoggingStoreKey, key),
			zap.Error(err),
		)
		return false, "", err
	}
	if !acquired {
		s.Log.Debug("redisLocker.TryLock not acquired", zap.String(constvars.LoggingStoreKey, key))
		return false, "", nil
	}
	return true, token, nil
}

func (s *redisLocker) Unlock(ctx context.Context, key, token string) error {
	deleted, err := releaseScript.Run(ctx, s.client, []string{key}, token).Int()
	if err != nil {
		s.Log.Error("redisLocker.Unlock error running release script",
			zap.String(constvars.LoggingStoreKey, key),
			zap.Error(err),
		)
		return err
	}
	if deleted == 0 {
		return ErrLockNotOwned
	}
	return nil
}

type lease struct {
	token     string
	expiresAt time.Time
}

type memoryLocker struct {
	mu     sync.Mutex
	leases map[string]lease
	now    func() time.Time
}

// NewMemoryLocker is for single instance deployments and the CLI.
func NewMemoryLocker() contracts.Locker {
	return &memoryLocker{leases: make(map[string]lease), now: time.Now}
}

func (s *memoryLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if current, ok := s.leases[key]; ok && now.Before(current.expiresAt) {
		return false, "", nil
	}
	token := uuid.NewString()
	s.leases[key] = lease{token: token, expiresAt: now.Add(expiration)}
	return true, token, nil
}

func (s *memoryLocker) Unlock(ctx context.Context, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.leases[key]
	if !ok || current.token != token {
		return ErrLockNotOwned
	}
	delete(s.leases, key)
	return nil
}
