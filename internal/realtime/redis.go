package realtime

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisChannelPrefix = "realtime:"

// RedisFeed broadcasts change events over Redis pub/sub, one channel per
// table, so every service instance sees every other instance's writes.
type RedisFeed struct {
	client *redis.Client
	pubsub *redis.PubSub
	hub    *hub
	logger *zap.Logger
	done   chan struct{}
}

func NewRedisFeed(ctx context.Context, client *redis.Client, logger *zap.Logger) (*RedisFeed, error) {
	pubsub := client.PSubscribe(ctx, redisChannelPrefix+"*")
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("redis psubscribe: %w", err)
	}

	f := &RedisFeed{
		client: client,
		pubsub: pubsub,
		hub:    newHub(),
		logger: logger,
		done:   make(chan struct{}),
	}
	go f.run()
	return f, nil
}

func (f *RedisFeed) run() {
	defer close(f.done)
	for msg := range f.pubsub.Channel() {
		ev, err := decode([]byte(msg.Payload))
		if err != nil {
			f.logger.Warn("discarding malformed change event",
				zap.String("channel", msg.Channel),
				zap.Error(err),
			)
			continue
		}
		f.hub.deliver(ev)
	}
}

func (f *RedisFeed) Publish(ctx context.Context, ev ChangeEvent) error {
	b, err := encode(ev)
	if err != nil {
		return err
	}
	if err := f.client.Publish(ctx, redisChannelPrefix+ev.Table, b).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", ev.Table, err)
	}
	return nil
}

func (f *RedisFeed) Subscribe(_ context.Context, tables ...string) (Subscription, error) {
	return f.hub.subscribe(tables)
}

func (f *RedisFeed) Close() error {
	err := f.pubsub.Close()
	<-f.done
	f.hub.close()
	return err
}
