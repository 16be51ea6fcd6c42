package mq

import (
	"time"

	"github.com/google/uuid"
)

// 交换机与队列
const (
	LikeEventExchange         = "like_events"
	CommentEventExchange      = "comment_events"
	SubscriptionEventExchange = "subscription_events"

	LikeEventQueue         = "like_event_queue"
	CommentEventQueue      = "comment_event_queue"
	SubscriptionEventQueue = "subscription_event_queue"
)

const (
	ActionLike        = "like"
	ActionUnlike      = "unlike"
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"

	CommentCreated = "create"
	CommentUpdated = "update"
	CommentDeleted = "delete"

	EventVideoLike   = "video_like"
	EventCommentLike = "comment_like"
)

// LikeEvent 点赞事件
type LikeEvent struct {
	UserID     int64  `json:"user_id"`     // 用户ID
	VideoID    int64  `json:"video_id"`    // 视频ID
	CommentID  int64  `json:"comment_id"`  // 评论ID
	ActionType string `json:"action_type"` // "like" or "unlike"
	EventType  string `json:"event_type"`  // "video_like" or "comment_like"
	Timestamp  int64  `json:"timestamp"`   // 时间戳
	EventID    string `json:"event_id"`    // 事件ID
}

// CommentEvent 评论事件
type CommentEvent struct {
	Type      string `json:"type"` // create, update, delete
	CommentID int64  `json:"comment_id"`
	VideoID   int64  `json:"video_id"`
	UserID    int64  `json:"user_id"`
	Content   string `json:"content,omitempty"`
	Timestamp int64  `json:"timestamp"`
	EventID   string `json:"event_id"`
}

// SubscriptionEvent 订阅事件
type SubscriptionEvent struct {
	SubscriberID int64  `json:"subscriber_id"`
	ChannelID    int64  `json:"channel_id"`
	ActionType   string `json:"action_type"` // "subscribe" or "unsubscribe"
	Timestamp    int64  `json:"timestamp"`
	EventID      string `json:"event_id"`
}

func NewVideoLikeEvent(userId, videoId int64, active bool) *LikeEvent {
	return &LikeEvent{
		UserID:     userId,
		VideoID:    videoId,
		ActionType: likeAction(active),
		EventType:  EventVideoLike,
		Timestamp:  time.Now().Unix(),
		EventID:    uuid.New().String(),
	}
}

func NewCommentLikeEvent(userId, commentId int64, active bool) *LikeEvent {
	return &LikeEvent{
		UserID:     userId,
		CommentID:  commentId,
		ActionType: likeAction(active),
		EventType:  EventCommentLike,
		Timestamp:  time.Now().Unix(),
		EventID:    uuid.New().String(),
	}
}

func NewCommentEvent(typ string, commentId, videoId, userId int64, content string) *CommentEvent {
	return &CommentEvent{
		Type:      typ,
		CommentID: commentId,
		VideoID:   videoId,
		UserID:    userId,
		Content:   content,
		Timestamp: time.Now().Unix(),
		EventID:   uuid.New().String(),
	}
}

func NewSubscriptionEvent(subscriberId, channelId int64, active bool) *SubscriptionEvent {
	action := ActionUnsubscribe
	if active {
		action = ActionSubscribe
	}
	return &SubscriptionEvent{
		SubscriberID: subscriberId,
		ChannelID:    channelId,
		ActionType:   action,
		Timestamp:    time.Now().Unix(),
		EventID:      uuid.New().String(),
	}
}

func likeAction(active bool) string {
	if active {
		return ActionLike
	}
	return ActionUnlike
}
