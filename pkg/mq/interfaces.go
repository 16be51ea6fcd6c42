package mq

import "context"

// MessageProducer 消息生产者接口
type MessageProducer interface {
	PublishLikeEvent(ctx context.Context, event *LikeEvent) error
	PublishCommentEvent(ctx context.Context, event *CommentEvent) error
	PublishSubscriptionEvent(ctx context.Context, event *SubscriptionEvent) error
}

type LikeEventHandler interface {
	HandleLikeEvent(ctx context.Context, event *LikeEvent) error
}

type CommentEventHandler interface {
	HandleCommentEvent(ctx context.Context, event *CommentEvent) error
}

type SubscriptionEventHandler interface {
	HandleSubscriptionEvent(ctx context.Context, event *SubscriptionEvent) error
}

// 确保Producer实现MessageProducer接口
var _ MessageProducer = (*Producer)(nil)

var _ MessageProducer = (*BreakerProducer)(nil)
