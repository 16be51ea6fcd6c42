package redis

import (
	"context"
	"fmt"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// NotificationInbox 每个用户一个定长列表，新通知在表头
type NotificationInbox struct {
	client *redis.Client
	size   int64
}

func NewNotificationInbox(client *redis.Client, size int) *NotificationInbox {
	if size <= 0 {
		size = constants.NotificationInboxSize
	}
	return &NotificationInbox{client: client, size: int64(size)}
}

func inboxKey(userId int64) string {
	return fmt.Sprintf(constants.NotificationInboxKey, userId)
}

func (i *NotificationInbox) Push(ctx context.Context, userId int64, n *model.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	pipe := i.client.TxPipeline()
	pipe.LPush(ctx, inboxKey(userId), body)
	pipe.LTrim(ctx, inboxKey(userId), 0, i.size-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	return nil
}

// Recent 最多返回 limit 条，最新的在前
func (i *NotificationInbox) Recent(ctx context.Context, userId int64, limit int) ([]model.Notification, error) {
	if limit <= 0 || int64(limit) > i.size {
		limit = int(i.size)
	}
	raw, err := i.client.LRange(ctx, inboxKey(userId), 0, int64(limit)-1).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.Notification{}, nil
		}
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	out := make([]model.Notification, 0, len(raw))
	for _, item := range raw {
		var n model.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
