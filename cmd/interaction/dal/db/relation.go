package db

import (
	"context"
	"fmt"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type relationScope struct {
	model interface{}
	query string
}

func scopeOf(kind model.RelationKind) (relationScope, error) {
	switch kind {
	case model.KindVideoLike:
		return relationScope{&model.Like{}, "liked_by = ? AND video_id = ?"}, nil
	case model.KindCommentLike:
		return relationScope{&model.Like{}, "liked_by = ? AND comment_id = ?"}, nil
	case model.KindSubscription:
		return relationScope{&model.Subscription{}, "subscriber_id = ? AND channel_id = ?"}, nil
	}
	return relationScope{}, errno.RequestErr.WithMessage(fmt.Sprintf("unknown relation kind %q", kind))
}

func newRelation(kind model.RelationKind, actor, target int64) interface{} {
	switch kind {
	case model.KindVideoLike:
		return model.NewVideoLike(actor, target)
	case model.KindCommentLike:
		return model.NewCommentLike(actor, target)
	default:
		return &model.Subscription{SubscriberId: actor, ChannelId: target}
	}
}

// TargetExists 视频点赞查 videos，评论点赞查 comments，订阅查 users
func (s *FactStore) TargetExists(ctx context.Context, kind model.RelationKind, target int64) (bool, error) {
	switch kind {
	case model.KindVideoLike:
		return s.VideoExists(ctx, target)
	case model.KindCommentLike:
		return s.exists(ctx, &model.Comment{}, "comment_id = ?", target)
	case model.KindSubscription:
		return s.UserExists(ctx, target)
	}
	return false, errno.RequestErr.WithMessage(fmt.Sprintf("unknown relation kind %q", kind))
}

func (s *FactStore) FindRelation(ctx context.Context, kind model.RelationKind, actor, target int64) (bool, error) {
	scope, err := scopeOf(kind)
	if err != nil {
		return false, err
	}
	return s.exists(ctx, scope.model, scope.query, actor, target)
}

// CreateRelation 唯一索引冲突时返回 false 而不是错误
func (s *FactStore) CreateRelation(ctx context.Context, kind model.RelationKind, actor, target int64) (bool, error) {
	if _, err := scopeOf(kind); err != nil {
		return false, err
	}
	if err := s.conn(ctx).Create(newRelation(kind, actor, target)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, mysqlErr(err, fmt.Sprintf("Failed to create %s", kind))
	}
	return true, nil
}

func (s *FactStore) DeleteRelation(ctx context.Context, kind model.RelationKind, actor, target int64) (int64, error) {
	scope, err := scopeOf(kind)
	if err != nil {
		return 0, err
	}
	res := s.conn(ctx).Where(scope.query, actor, target).Delete(scope.model)
	if res.Error != nil {
		return 0, mysqlErr(res.Error, fmt.Sprintf("Failed to delete %s", kind))
	}
	return res.RowsAffected, nil
}

// TargetOwner 关系目标的所有者：视频作者、评论作者，订阅的目标就是频道本身
func (s *FactStore) TargetOwner(ctx context.Context, kind model.RelationKind, target int64) (int64, error) {
	switch kind {
	case model.KindVideoLike:
		video, err := s.GetVideo(ctx, target)
		if err != nil {
			return 0, err
		}
		return video.OwnerId, nil
	case model.KindCommentLike:
		comment, err := s.GetComment(ctx, target)
		if err != nil {
			return 0, err
		}
		return comment.OwnerId, nil
	case model.KindSubscription:
		return target, nil
	}
	return 0, errno.RequestErr.WithMessage(fmt.Sprintf("unknown relation kind %q", kind))
}
