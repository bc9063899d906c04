package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrNil is returned when a key does not exist
var ErrNil = goredis.Nil

// Repository defines methods for interacting with Redis key-values
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Incr(ctx context.Context, keys ...string) error
	SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uint64, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type redis struct {
	client *goredis.Client
}

// NewRepository returns a Redis Repository backed by client
func NewRepository(client *goredis.Client) Repository {
	return &redis{client: client}
}

func SessionKey(sessionID string) string {
	return "session:" + sessionID
}

func CustomerStatsKey(userID uint64) string {
	return fmt.Sprintf("reservation:stats:customer:%d", userID)
}

func OwnerStatsKey(userID uint64) string {
	return fmt.Sprintf("reservation:stats:owner:%d", userID)
}

// StatsVersionKey holds the generation counter of a stats key. Bumping it
// orphans every value cached under the previous generation.
func StatsVersionKey(statsKey string) string {
	return statsKey + ":version"
}

func VersionedStatsKey(statsKey, version string) string {
	return statsKey + ":v" + version
}

// Get retrieves a value by key; a missing key returns ErrNil
func (r *redis) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

// SetWithTTL stores a key/value pair with time-to-live
func (r *redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Incr increments every key in one MULTI/EXEC
func (r *redis) Incr(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, k := range keys {
			pipe.Incr(ctx, k)
		}
		return nil
	})
	return err
}

// SetSession stores a session with userID and TTL
func (r *redis) SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error {
	return r.client.Set(ctx, SessionKey(sessionID), userID, ttl).Err()
}

// GetSession retrieves userID from session
func (r *redis) GetSession(ctx context.Context, sessionID string) (uint64, error) {
	return r.client.Get(ctx, SessionKey(sessionID)).Uint64()
}

func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, SessionKey(sessionID)).Err()
}
