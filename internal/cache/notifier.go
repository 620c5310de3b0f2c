package cache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/strandshq/strands-api/internal/docstore"
)

const changeChannel = "docstore:changes"

// RedisNotifier fans document change events across server instances through
// redis pub/sub. Redis delivers published messages back to the publishing
// instance's own subscription, so local watchers need no separate path.
type RedisNotifier struct {
	redis *RedisClient

	mu       sync.RWMutex
	nextID   int
	handlers map[int]func(docstore.ChangeEvent)

	stop context.CancelFunc
}

// NewRedisNotifier creates the notifier and starts its receive loop.
func NewRedisNotifier(redis *RedisClient) *RedisNotifier {
	ctx, cancel := context.WithCancel(context.Background())
	n := &RedisNotifier{
		redis:    redis,
		handlers: make(map[int]func(docstore.ChangeEvent)),
		stop:     cancel,
	}
	go n.receive(ctx)
	return n
}

// Publish broadcasts one change event.
func (n *RedisNotifier) Publish(ctx context.Context, ev docstore.ChangeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.redis.Publish(ctx, changeChannel, payload)
}

// Subscribe registers a handler for incoming change events. The returned
// cancel is idempotent.
func (n *RedisNotifier) Subscribe(fn func(docstore.ChangeEvent)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.handlers[id] = fn
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.handlers, id)
			n.mu.Unlock()
		})
	}
}

// Close stops the receive loop.
func (n *RedisNotifier) Close() {
	n.stop()
}

func (n *RedisNotifier) receive(ctx context.Context) {
	sub := n.redis.Subscribe(ctx, changeChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev docstore.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Warn().Err(err).Msg("dropping malformed change event")
				continue
			}
			n.mu.RLock()
			for _, fn := range n.handlers {
				fn(ev)
			}
			n.mu.RUnlock()
		}
	}
}
