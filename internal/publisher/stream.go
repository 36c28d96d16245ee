// Package publisher announces appended win-probability points on a Redis
// stream for the WebSocket broadcaster to fan out.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// StreamKey is the stream carrying win-probability updates.
const StreamKey = "winprob.updates"

// maxStreamLen caps the stream so an always-on poller can't grow it forever.
const maxStreamLen = 10_000

// StreamPublisher publishes win-probability updates to a Redis stream.
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a new stream publisher.
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{client: client}
}

// PublishUpdate publishes one appended point.
func (p *StreamPublisher) PublishUpdate(ctx context.Context, update models.WinProbUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("marshaling update: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]interface{}{
			"data":       string(data),
			"matchup_id": update.MatchupID,
			"final":      strconv.FormatBool(update.Final),
		},
	}).Err()
}
