// Package cache caches normalized fantasy-feed responses in Redis so the
// HTTP proxy endpoints don't hit the upstream API on every page load.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/metrics"
)

// TTL constants. Live weeks change every few minutes; settled data barely
// moves, so it can sit for much longer.
const (
	LiveTTL    = 2 * time.Minute
	SettledTTL = 6 * time.Hour
	DraftTTL   = 24 * time.Hour
)

// RedisWriter handles reading and writing cached feed responses.
type RedisWriter struct {
	client *redis.Client
}

// NewRedisWriter creates a new proxy response cache.
func NewRedisWriter(client *redis.Client) *RedisWriter {
	return &RedisWriter{client: client}
}

// StandingsKey keys the cached standings for a season.
func StandingsKey(season string) string {
	return fmt.Sprintf("yahoo:standings:%s", season)
}

// ScoreboardKey keys the cached scoreboard for a season/week.
func ScoreboardKey(season string, week int) string {
	return fmt.Sprintf("yahoo:scoreboard:%s:%d", season, week)
}

// RosterKey keys the cached roster for a team/week.
func RosterKey(teamKey string, week int) string {
	return fmt.Sprintf("yahoo:roster:%s:%d", teamKey, week)
}

// DraftKey keys the cached draft results for a season.
func DraftKey(season string) string {
	return fmt.Sprintf("yahoo:draft:%s", season)
}

// PlayersKey keys a cached player batch by a digest of the sorted keys, so
// the same set of players hits the same entry regardless of request order.
func PlayersKey(playerKeys []string) string {
	sorted := append([]string(nil), playerKeys...)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, ",")))
	return fmt.Sprintf("yahoo:players:%s", hex.EncodeToString(sum[:8]))
}

// Get reads a cached value into out. The boolean reports a hit.
func (w *RedisWriter) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := w.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cache: %w", err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, fmt.Errorf("unmarshaling cached value: %w", err)
	}
	metrics.CacheRequests.WithLabelValues("hit").Inc()
	return true, nil
}

// Set writes a value with the given TTL.
func (w *RedisWriter) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling cache value: %w", err)
	}
	return w.client.Set(ctx, key, data, ttl).Err()
}
