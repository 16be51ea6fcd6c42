package service

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/viewer"
	"github.com/pkg/errors"
)

// ListNotifications 最新的在前，收件箱未配置时返回空列表
func (s *Service) ListNotifications(ctx context.Context, v viewer.Viewer, limit int) ([]model.Notification, error) {
	actor, err := requireActor(v)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > constants.NotificationInboxSize {
		limit = constants.NotificationInboxSize
	}
	if s.inbox == nil {
		return []model.Notification{}, nil
	}
	items, err := s.inbox.Recent(ctx, actor, limit)
	if err != nil {
		return nil, errors.Wrapf(errno.RedisErr, "failed to read notifications: %v", err)
	}
	return items, nil
}
