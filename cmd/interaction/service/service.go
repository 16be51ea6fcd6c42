package service

import (
	"context"

	"VidTube.com/cmd/interaction/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// RateLimiter 评论限流
type RateLimiter interface {
	Allow(ctx context.Context, userId int64) (bool, error)
}

// InboxReader 通知收件箱
type InboxReader interface {
	Recent(ctx context.Context, userId int64, limit int) ([]model.Notification, error)
}

// Service 互动服务的所有依赖，producer、limiter、inbox 为 nil 时对应功能关闭
type Service struct {
	store    *db.FactStore
	toggle   *ToggleEngine
	producer mq.MessageProducer
	limiter  RateLimiter
	inbox    InboxReader
}

type Option func(*Service)

func WithProducer(producer mq.MessageProducer) Option {
	return func(s *Service) {
		s.producer = producer
	}
}

func WithRateLimiter(limiter RateLimiter) Option {
	return func(s *Service) {
		s.limiter = limiter
	}
}

func WithInbox(inbox InboxReader) Option {
	return func(s *Service) {
		s.inbox = inbox
	}
}

func NewService(store *db.FactStore, toggle *ToggleEngine, opts ...Option) *Service {
	if toggle == nil {
		toggle = NewToggleEngine(store)
	}
	s := &Service{store: store, toggle: toggle}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish 事件发送失败只记录日志，不影响请求结果
func (s *Service) publish(ctx context.Context, name string, send func(mq.MessageProducer) error) {
	if s.producer == nil {
		return
	}
	if err := send(s.producer); err != nil {
		hlog.CtxWarnf(ctx, "failed to publish %s event: %v", name, err)
	}
}
