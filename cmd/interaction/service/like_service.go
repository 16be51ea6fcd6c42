package service

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/paginator"
	"VidTube.com/pkg/viewer"
)

// ToggleVideoLike 返回切换后是否已点赞
func (s *Service) ToggleVideoLike(ctx context.Context, v viewer.Viewer, videoId int64) (bool, error) {
	actor, err := requireActor(v)
	if err != nil {
		return false, err
	}
	res, err := s.toggle.Toggle(ctx, actor, model.KindVideoLike, videoId)
	if err != nil {
		return false, err
	}
	s.publish(ctx, mq.LikeEventExchange, func(p mq.MessageProducer) error {
		return p.PublishLikeEvent(ctx, mq.NewVideoLikeEvent(actor, videoId, res.Active))
	})
	return res.Active, nil
}

func (s *Service) ToggleCommentLike(ctx context.Context, v viewer.Viewer, commentId int64) (bool, error) {
	actor, err := requireActor(v)
	if err != nil {
		return false, err
	}
	res, err := s.toggle.Toggle(ctx, actor, model.KindCommentLike, commentId)
	if err != nil {
		return false, err
	}
	s.publish(ctx, mq.LikeEventExchange, func(p mq.MessageProducer) error {
		return p.PublishLikeEvent(ctx, mq.NewCommentLikeEvent(actor, commentId, res.Active))
	})
	return res.Active, nil
}

// ListLikedVideos 最近点赞的在前，未指定分页时返回全部
func (s *Service) ListLikedVideos(ctx context.Context, v viewer.Viewer, req paginator.Request) (*paginator.Page[model.LikedVideoView], error) {
	actor, err := requireActor(v)
	if err != nil {
		return nil, err
	}
	return s.store.ListLikedVideos(ctx, actor, req)
}
