// Package metrics collects user interaction events posted by the site
// (pageviews, scroll depth, store clicks) and ships them to a sink in
// batches. The queue lives inside the Collector; there is no
// package-level state.
package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"price-display-api/internal/models"
)

// Sink receives flushed event batches.
type Sink interface {
	Write(ctx context.Context, events []models.Event) error
}

type Collector struct {
	mu    sync.Mutex
	queue []models.Event

	sink      Sink
	batchSize int
	interval  time.Duration

	stop chan struct{}
	done chan struct{}
}

func NewCollector(sink Sink, batchSize int, interval time.Duration) *Collector {
	if batchSize <= 0 {
		batchSize = 5
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Collector{
		sink:      sink,
		batchSize: batchSize,
		interval:  interval,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Track enqueues events, filling in missing event ids and timestamps.
// When the queue reaches the batch size it is flushed immediately.
func (c *Collector) Track(events ...models.Event) {
	now := time.Now().UTC()

	c.mu.Lock()
	for _, ev := range events {
		if ev.EventID == "" {
			ev.EventID = uuid.NewString()
		}
		if ev.Timestamp.IsZero() {
			ev.Timestamp = now
		}
		c.queue = append(c.queue, ev)
	}
	shouldFlush := len(c.queue) >= c.batchSize
	c.mu.Unlock()

	if shouldFlush {
		if err := c.Flush(context.Background()); err != nil {
			log.Printf("Metrics flush failed: %v", err)
		}
	}
}

// Flush writes the queued events to the sink. On failure the batch is
// put back at the front of the queue so nothing is dropped.
func (c *Collector) Flush(ctx context.Context) error {
	c.mu.Lock()
	if len(c.queue) == 0 {
		c.mu.Unlock()
		return nil
	}
	batch := c.queue
	c.queue = nil
	c.mu.Unlock()

	if err := c.sink.Write(ctx, batch); err != nil {
		c.mu.Lock()
		c.queue = append(batch, c.queue...)
		c.mu.Unlock()
		return err
	}

	return nil
}

// Pending is the number of queued, unflushed events.
func (c *Collector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Start launches the interval flusher. Stop drains the queue once more
// before returning.
func (c *Collector) Start() {
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := c.Flush(context.Background()); err != nil {
					log.Printf("Metrics flush failed: %v", err)
				}
			case <-c.stop:
				if err := c.Flush(context.Background()); err != nil {
					log.Printf("Metrics final flush failed: %v", err)
				}
				return
			}
		}
	}()
}

func (c *Collector) Stop() {
	close(c.stop)
	<-c.done
}
