package mq

import (
	"context"
	"time"

	"VidTube.com/pkg/metrics"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerConfig 熔断参数
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "mq-publisher",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerProducer broker 连续失败后短路发布，避免每个请求都等待超时
type BreakerProducer struct {
	next MessageProducer
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerProducer(next MessageProducer, cfg BreakerConfig) *BreakerProducer {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			hlog.Warnf("circuit breaker %s: %s -> %s", name, from, to)
		},
	}
	return &BreakerProducer{next: next, cb: gobreaker.NewCircuitBreaker[struct{}](settings)}
}

func (b *BreakerProducer) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerProducer) PublishLikeEvent(ctx context.Context, event *LikeEvent) error {
	return b.execute(LikeEventExchange, func() error { return b.next.PublishLikeEvent(ctx, event) })
}

func (b *BreakerProducer) PublishCommentEvent(ctx context.Context, event *CommentEvent) error {
	return b.execute(CommentEventExchange, func() error { return b.next.PublishCommentEvent(ctx, event) })
}

func (b *BreakerProducer) PublishSubscriptionEvent(ctx context.Context, event *SubscriptionEvent) error {
	return b.execute(SubscriptionEventExchange, func() error { return b.next.PublishSubscriptionEvent(ctx, event) })
}

func (b *BreakerProducer) execute(exchange string, publish func() error) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, publish()
	})
	metrics.RecordPublish(exchange, err)
	return err
}
