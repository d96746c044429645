package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
	"price-display-api/internal/models"
)

// eventsKey is the Redis list downstream consumers read from.
const eventsKey = "metrics:events"

// RedisSink pushes each event as a JSON document onto a Redis list.
type RedisSink struct {
	client *redis.Client
}

func NewRedisSink(client *redis.Client) *RedisSink {
	return &RedisSink{client: client}
}

func (s *RedisSink) Write(ctx context.Context, events []models.Event) error {
	if s.client == nil {
		return fmt.Errorf("redis client not available")
	}

	payloads := make([]interface{}, 0, len(events))
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			log.Printf("Dropping unmarshalable event %s: %v", ev.EventID, err)
			continue
		}
		payloads = append(payloads, data)
	}

	if len(payloads) == 0 {
		return nil
	}

	return s.client.RPush(ctx, eventsKey, payloads...).Err()
}

// MemorySink keeps events in memory. Used in tests and as the fallback
// when Redis is down.
type MemorySink struct {
	mu     sync.Mutex
	events []models.Event

	// FailNext makes the next Write return an error, for retry tests.
	FailNext bool
}

func (s *MemorySink) Write(ctx context.Context, events []models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailNext {
		s.FailNext = false
		return fmt.Errorf("sink unavailable")
	}

	s.events = append(s.events, events...)
	return nil
}

func (s *MemorySink) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}
