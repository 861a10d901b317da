/* redis.go
 * Contains a watched set store backed by redis. Each viewer's set is kept under watchedMatches:{viewer} as a JSON
 * array of matchup ids
 */

package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bracket-viewer/api/external"
	"bracket-viewer/api/reveal"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "watchedMatches:"
	pingTimeout = 2 * time.Second
)

// RedisWatchedStore persists watched sets in redis
type RedisWatchedStore struct {
	Client *redis.Client
}

var _ reveal.WatchedStore = (*RedisWatchedStore)(nil)

// NewRedisWatchedStore connects to the server at redisURL and checks that it is reachable
// Preconditions: Receives a context and a redis:// or rediss:// url
// Postconditions: Returns the store, or an error if the url can't be parsed or the server doesn't answer
func NewRedisWatchedStore(ctx context.Context, redisURL string) (*RedisWatchedStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisWatchedStore{Client: client}, nil
}

// LoadWatched returns the ids stored for viewerID, or an empty slice when there is no entry
func (r *RedisWatchedStore) LoadWatched(ctx context.Context, viewerID string) ([]external.ID, error) {
	val, err := r.Client.Get(ctx, Key(viewerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []external.ID{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching watched matchups from redis: %w", err)
	}
	return DecodeWatched(val)
}

// SaveWatched overwrites the entry for viewerID. Entries don't expire
func (r *RedisWatchedStore) SaveWatched(ctx context.Context, viewerID string, ids []external.ID) error {
	val, err := EncodeWatched(ids)
	if err != nil {
		return err
	}
	if err := r.Client.Set(ctx, Key(viewerID), val, 0).Err(); err != nil {
		return fmt.Errorf("failed to save watched matchups to redis: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func (r *RedisWatchedStore) Close() error {
	return r.Client.Close()
}

// Key returns the redis key for a viewer's watched set
func Key(viewerID string) string {
	return keyPrefix + viewerID
}

// EncodeWatched serialises ids as a JSON array. A nil slice encodes as []
func EncodeWatched(ids []external.ID) ([]byte, error) {
	if ids == nil {
		ids = []external.ID{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("error encoding watched matchups: %w", err)
	}
	return b, nil
}

// DecodeWatched parses a JSON array of ids. Numeric ids are accepted and canonicalised, null entries are dropped
func DecodeWatched(b []byte) ([]external.ID, error) {
	var ids []external.ID
	if err := json.Unmarshal(b, &ids); err != nil {
		return nil, fmt.Errorf("error decoding watched matchups: %w", err)
	}

	out := make([]external.ID, 0, len(ids))
	for _, id := range ids {
		if !id.IsZero() {
			out = append(out, id)
		}
	}
	return out, nil
}
