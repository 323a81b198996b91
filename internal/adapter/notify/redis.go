package notify

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"edfund-backend/internal/domain/watch"
)

// Channel every table change is published on. Single channel for the whole
// table; subscribers re-query their own scope.
const changeChannel = "loan_requests:changes"

// RedisBroker carries table-change signals over Redis Pub/Sub so that every
// live viewer sees every write, including writes from other processes.
type RedisBroker struct {
	rdb     *redis.Client
	channel string
}

func NewRedisBroker(rdb *redis.Client) *RedisBroker {
	return &RedisBroker{rdb: rdb, channel: changeChannel}
}

func (b *RedisBroker) Publish(ctx context.Context) error {
	return b.rdb.Publish(ctx, b.channel, "1").Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context) (watch.Subscription, error) {
	ps := b.rdb.Subscribe(ctx, b.channel)
	// Force the SUBSCRIBE round trip so a broken connection fails here,
	// not silently inside the pump goroutine.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}
	s := &redisSub{ps: ps, ch: make(chan struct{}, 1)}
	go s.pump()
	return s, nil
}

type redisSub struct {
	ps   *redis.PubSub
	ch   chan struct{}
	once sync.Once
}

func (s *redisSub) pump() {
	for range s.ps.Channel() {
		// Coalesce bursts: one pending signal is enough, the consumer
		// re-queries the full scope anyway.
		select {
		case s.ch <- struct{}{}:
		default:
		}
	}
}

func (s *redisSub) Changes() <-chan struct{} { return s.ch }

func (s *redisSub) Release() {
	s.once.Do(func() { _ = s.ps.Close() })
}
