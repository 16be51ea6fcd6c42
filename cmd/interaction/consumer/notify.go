package main

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/metrics"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

const (
	NotifyVideoLike    = "video_like"
	NotifyCommentLike  = "comment_like"
	NotifyComment      = "comment"
	NotifySubscription = "subscription"
)

type ownerResolver interface {
	TargetOwner(ctx context.Context, kind model.RelationKind, target int64) (int64, error)
}

type inboxWriter interface {
	Push(ctx context.Context, userId int64, n *model.Notification) error
}

// NotificationHandler 把互动事件写入目标所有者的收件箱
type NotificationHandler struct {
	owners ownerResolver
	inbox  inboxWriter
}

func NewNotificationHandler(owners ownerResolver, inbox inboxWriter) *NotificationHandler {
	return &NotificationHandler{owners: owners, inbox: inbox}
}

var (
	_ mq.LikeEventHandler         = (*NotificationHandler)(nil)
	_ mq.CommentEventHandler      = (*NotificationHandler)(nil)
	_ mq.SubscriptionEventHandler = (*NotificationHandler)(nil)
)

func (h *NotificationHandler) HandleLikeEvent(ctx context.Context, event *mq.LikeEvent) error {
	if event.ActionType != mq.ActionLike {
		return nil
	}
	n := &model.Notification{
		ActorId:   event.UserID,
		EventId:   event.EventID,
		Timestamp: event.Timestamp,
	}
	kind := model.KindVideoLike
	switch event.EventType {
	case mq.EventVideoLike:
		n.Type, n.TargetId, n.VideoId = NotifyVideoLike, event.VideoID, event.VideoID
	case mq.EventCommentLike:
		kind = model.KindCommentLike
		n.Type, n.TargetId = NotifyCommentLike, event.CommentID
	default:
		hlog.CtxWarnf(ctx, "unknown like event type %q, dropped", event.EventType)
		return nil
	}
	return h.deliver(ctx, kind, n.TargetId, n)
}

// HandleCommentEvent 只有新评论通知视频作者
func (h *NotificationHandler) HandleCommentEvent(ctx context.Context, event *mq.CommentEvent) error {
	if event.Type != mq.CommentCreated {
		return nil
	}
	return h.deliver(ctx, model.KindVideoLike, event.VideoID, &model.Notification{
		Type:      NotifyComment,
		ActorId:   event.UserID,
		TargetId:  event.CommentID,
		VideoId:   event.VideoID,
		Content:   event.Content,
		EventId:   event.EventID,
		Timestamp: event.Timestamp,
	})
}

func (h *NotificationHandler) HandleSubscriptionEvent(ctx context.Context, event *mq.SubscriptionEvent) error {
	if event.ActionType != mq.ActionSubscribe {
		return nil
	}
	return h.deliver(ctx, model.KindSubscription, event.ChannelID, &model.Notification{
		Type:      NotifySubscription,
		ActorId:   event.SubscriberID,
		TargetId:  event.ChannelID,
		EventId:   event.EventID,
		Timestamp: event.Timestamp,
	})
}

// deliver 目标已删除或者是自己的操作时不发通知
func (h *NotificationHandler) deliver(ctx context.Context, kind model.RelationKind, target int64, n *model.Notification) error {
	owner, err := h.owners.TargetOwner(ctx, kind, target)
	if err != nil {
		if errors.Is(err, errno.NotFoundErr) {
			hlog.CtxInfof(ctx, "%s target %d no longer exists, event %s dropped", n.Type, target, n.EventId)
			return nil
		}
		return err
	}
	if owner == n.ActorId {
		return nil
	}
	if err := h.inbox.Push(ctx, owner, n); err != nil {
		return err
	}
	metrics.NotificationsDelivered.WithLabelValues(n.Type).Inc()
	return nil
}
