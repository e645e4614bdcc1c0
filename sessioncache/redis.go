package sessioncache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCorruptEntry is returned by Load when the cached blob does not decode.
var ErrCorruptEntry = errors.New("corrupt session cache entry")

// Redis backs the cache with a single key holding the JSON-encoded entry,
// so SET, GET and DEL each touch principal and token together. TTL bounds
// the cache to the token's own lifetime; zero means no expiry.
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedis(client *redis.Client, key string, ttl time.Duration) *Redis {
	return &Redis{client: client, key: key, ttl: ttl}
}

func (r *Redis) Save(ctx context.Context, entry Entry) error {
	blob, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, blob, r.ttl).Err()
}

func (r *Redis) Load(ctx context.Context) (Entry, error) {
	blob, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, ErrEmpty
		}
		return Entry{}, err
	}
	var entry Entry
	if err := json.Unmarshal(blob, &entry); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	return entry, nil
}

func (r *Redis) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
