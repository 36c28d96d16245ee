// Package consumer reads win-probability updates off the Redis stream and
// hands them to the WebSocket hub.
package consumer

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/publisher"
	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

const (
	batchSize     = 100
	blockDuration = 1 * time.Second
)

// Broadcaster receives decoded updates for fanout.
type Broadcaster interface {
	Broadcast(update models.WinProbUpdate)
}

// StreamConsumer consumes win-probability updates from the Redis stream.
type StreamConsumer struct {
	redis      *redis.Client
	sink       Broadcaster
	group      string
	consumerID string
}

// NewStreamConsumer creates a consumer-group reader over the winprob stream.
func NewStreamConsumer(redisClient *redis.Client, sink Broadcaster, group, consumerID string) *StreamConsumer {
	return &StreamConsumer{
		redis:      redisClient,
		sink:       sink,
		group:      group,
		consumerID: consumerID,
	}
}

// Start begins consuming and blocks until ctx is cancelled.
func (sc *StreamConsumer) Start(ctx context.Context) error {
	err := sc.redis.XGroupCreateMkStream(ctx, publisher.StreamKey, sc.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}

	log.Printf("[consumer] consuming stream %s as %s/%s", publisher.StreamKey, sc.group, sc.consumerID)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			streams, err := sc.redis.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    sc.group,
				Consumer: sc.consumerID,
				Streams:  []string{publisher.StreamKey, ">"},
				Count:    batchSize,
				Block:    blockDuration,
			}).Result()
			if err != nil {
				if err == redis.Nil || ctx.Err() != nil {
					continue
				}
				log.Printf("[consumer] read failed: %v", err)
				time.Sleep(blockDuration)
				continue
			}

			for _, stream := range streams {
				for _, msg := range stream.Messages {
					sc.handleMessage(ctx, msg)
				}
			}
		}
	}
}

func (sc *StreamConsumer) handleMessage(ctx context.Context, msg redis.XMessage) {
	defer sc.redis.XAck(ctx, publisher.StreamKey, sc.group, msg.ID)

	data, ok := msg.Values["data"].(string)
	if !ok {
		log.Printf("[consumer] message %s has no data field", msg.ID)
		return
	}

	var update models.WinProbUpdate
	if err := json.Unmarshal([]byte(data), &update); err != nil {
		log.Printf("[consumer] bad message %s: %v", msg.ID, err)
		return
	}

	sc.sink.Broadcast(update)
}
