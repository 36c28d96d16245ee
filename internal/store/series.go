// Package store persists per-matchup win-probability time series.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/metrics"
	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// ErrNotFound is returned when no series document exists for a key.
var ErrNotFound = errors.New("series document not found")

// maxAppendRetries bounds the optimistic-append retry loop.
const maxAppendRetries = 5

// SeriesStore reads and appends per-matchup win-probability series.
type SeriesStore interface {
	// Get returns the document for season/week/matchupID, or ErrNotFound.
	Get(ctx context.Context, season string, week int, matchupID string) (*models.SeriesDocument, error)

	// List returns every document recorded for a season/week.
	List(ctx context.Context, season string, week int) ([]*models.SeriesDocument, error)

	// Append atomically appends one point, creating the document on first
	// write. Identity fields are fixed on creation and preserved after;
	// final is monotonic and never transitions back to false.
	Append(ctx context.Context, season string, week int, matchupID string,
		identity [2]models.TeamIdentity, point models.SeriesPoint, final bool) (*models.SeriesDocument, error)
}

// RedisSeriesStore implements SeriesStore on Redis. Appends use a WATCH
// transaction so two overlapping poll cycles cannot clobber each other's
// points: the loser of the race retries against the fresh document.
type RedisSeriesStore struct {
	client *redis.Client
}

// NewRedisSeriesStore creates a Redis-backed series store.
func NewRedisSeriesStore(client *redis.Client) *RedisSeriesStore {
	return &RedisSeriesStore{client: client}
}

func seriesRedisKey(season string, week int, matchupID string) string {
	return "winprob:" + models.SeriesKey(season, week, matchupID)
}

func weekIndexKey(season string, week int) string {
	return fmt.Sprintf("winprob:index:%s_%d", season, week)
}

// Get retrieves one series document.
func (s *RedisSeriesStore) Get(ctx context.Context, season string, week int, matchupID string) (*models.SeriesDocument, error) {
	data, err := s.client.Get(ctx, seriesRedisKey(season, week, matchupID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading series: %w", err)
	}

	var doc models.SeriesDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling series: %w", err)
	}
	return &doc, nil
}

// List retrieves every series document indexed for a week.
func (s *RedisSeriesStore) List(ctx context.Context, season string, week int) ([]*models.SeriesDocument, error) {
	matchupIDs, err := s.client.SMembers(ctx, weekIndexKey(season, week)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading week index: %w", err)
	}

	docs := make([]*models.SeriesDocument, 0, len(matchupIDs))
	for _, id := range matchupIDs {
		doc, err := s.Get(ctx, season, week, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Append appends one point under optimistic concurrency.
func (s *RedisSeriesStore) Append(ctx context.Context, season string, week int, matchupID string,
	identity [2]models.TeamIdentity, point models.SeriesPoint, final bool) (*models.SeriesDocument, error) {

	key := seriesRedisKey(season, week, matchupID)
	var result *models.SeriesDocument

	txn := func(tx *redis.Tx) error {
		var doc *models.SeriesDocument
		data, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			doc = nil
		case err != nil:
			return fmt.Errorf("reading series: %w", err)
		default:
			doc = &models.SeriesDocument{}
			if err := json.Unmarshal([]byte(data), doc); err != nil {
				return fmt.Errorf("unmarshaling series: %w", err)
			}
		}

		doc = ApplyAppend(doc, season, week, matchupID, identity, point, final)

		encoded, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshaling series: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			pipe.SAdd(ctx, weekIndexKey(season, week), matchupID)
			return nil
		})
		if err != nil {
			return err
		}
		result = doc
		return nil
	}

	for attempt := 0; attempt < maxAppendRetries; attempt++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Another writer modified the document between our read and
			// write; re-read and try again.
			metrics.AppendConflicts.Inc()
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("appending to %s: gave up after %d conflicts", key, maxAppendRetries)
}

// ApplyAppend merges one new point into a prior document (nil means no
// document existed yet). Identity fields are taken from the prior document
// when present; final only ever moves from false to true.
func ApplyAppend(prior *models.SeriesDocument, season string, week int, matchupID string,
	identity [2]models.TeamIdentity, point models.SeriesPoint, final bool) *models.SeriesDocument {

	if prior == nil {
		return &models.SeriesDocument{
			MatchupID: matchupID,
			Team1:     identity[0],
			Team2:     identity[1],
			Points:    []models.SeriesPoint{point},
			Final:     final,
			Season:    season,
			Week:      week,
		}
	}

	doc := *prior
	doc.Points = append(append([]models.SeriesPoint(nil), prior.Points...), point)
	doc.Final = doc.Final || final
	if doc.Team1.Name == "" {
		doc.Team1 = identity[0]
	}
	if doc.Team2.Name == "" {
		doc.Team2 = identity[1]
	}
	return &doc
}
