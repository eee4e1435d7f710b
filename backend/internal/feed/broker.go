// Package feed delivers board change events to websocket subscribers.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/logger"
	"github.com/redis/go-redis/v9"
)

// DeliverFunc receives every published event for fan-out to local subscribers.
type DeliverFunc func(boardId domain.BoardId, payload []byte)

// Broker moves change events from the writers to every API instance.
type Broker interface {
	Publish(ctx context.Context, ev domain.ChangeEvent) error
	Start(ctx context.Context, deliver DeliverFunc) error
}

const channelPrefix = "board:"

// BoardChannel is the pub/sub channel carrying events of one board.
func BoardChannel(boardId domain.BoardId) string {
	return channelPrefix + boardId
}

// LocalBroker delivers in-process. It is used when no redis is configured,
// which is only correct for a single API instance.
type LocalBroker struct {
	mu      sync.RWMutex
	deliver DeliverFunc
}

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{}
}

func (b *LocalBroker) Start(_ context.Context, deliver DeliverFunc) error {
	b.mu.Lock()
	b.deliver = deliver
	b.mu.Unlock()
	return nil
}

func (b *LocalBroker) Publish(_ context.Context, ev domain.ChangeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	b.mu.RLock()
	deliver := b.deliver
	b.mu.RUnlock()
	if deliver != nil {
		deliver(ev.BoardId, payload)
	}
	return nil
}

// RedisBroker publishes on board:<id> and fans in every board channel with
// a pattern subscription. A nil client turns it into a no-op.
type RedisBroker struct {
	rdb *redis.Client
}

func NewRedisBroker(rdb *redis.Client) *RedisBroker {
	return &RedisBroker{rdb: rdb}
}

func (b *RedisBroker) Publish(ctx context.Context, ev domain.ChangeEvent) error {
	if b.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return b.rdb.Publish(ctx, BoardChannel(ev.BoardId), payload).Err()
}

// Start subscribes and returns once the subscription is confirmed. Delivery
// runs on its own goroutine until ctx is done.
func (b *RedisBroker) Start(ctx context.Context, deliver DeliverFunc) error {
	if b.rdb == nil {
		return nil
	}
	sub := b.rdb.PSubscribe(ctx, channelPrefix+"*")
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe to board channels: %w", err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				boardId, found := strings.CutPrefix(msg.Channel, channelPrefix)
				if !found || boardId == "" {
					logger.Log.Warn("invalid feed channel", "channel", msg.Channel)
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							logger.Log.Error("panic in feed subscriber", "panic", r, "stack", string(debug.Stack()))
						}
					}()
					deliver(boardId, []byte(msg.Payload))
				}()
			}
		}
	}()

	return nil
}
