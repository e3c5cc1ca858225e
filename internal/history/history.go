// Package history publishes an append-only audit trail of table actions
// to a per-game Redis list. It records what happened, not game state:
// restoring a table from it is explicitly out of scope.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Record describes one table action for the audit trail.
type Record struct {
	GameID    uuid.UUID      `json:"gameId"`
	Index     int            `json:"index"` // per-game sequence number
	ActorID   uuid.UUID      `json:"actorId,omitempty"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp int64          `json:"ts"` // unix milliseconds
}

// Publisher appends Records to Redis. A nil Publisher is valid and makes
// every Publish a no-op, so callers never have to branch on whether the
// audit trail is configured.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher connects to the given Redis address. An empty address
// returns nil (audit trail disabled).
func NewPublisher(addr string) *Publisher {
	if addr == "" {
		return nil
	}
	return &Publisher{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

// Ping verifies the Redis connection.
func (p *Publisher) Ping(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.rdb.Ping(ctx).Err()
}

// Publish appends a record to the game's action list.
func (p *Publisher) Publish(ctx context.Context, rec Record) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action record: %w", err)
	}
	key := fmt.Sprintf("game:%s:actions", rec.GameID)
	if err := p.rdb.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("push action record: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.rdb.Close()
}
