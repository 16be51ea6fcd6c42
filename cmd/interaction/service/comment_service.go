package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/paginator"
	"VidTube.com/pkg/viewer"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// normalizeContent 去除首尾空白并校验长度
func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errno.RequestErr.WithMessage("Content is required")
	}
	if utf8.RuneCountInString(content) > constants.MaxCommentLength {
		return "", errno.RequestErr.WithMessage(fmt.Sprintf("Content must be at most %d characters", constants.MaxCommentLength))
	}
	return content, nil
}

func (s *Service) AddComment(ctx context.Context, v viewer.Viewer, videoId int64, content string) (*model.Comment, error) {
	actor, err := requireActor(v)
	if err != nil {
		return nil, err
	}
	if content, err = normalizeContent(content); err != nil {
		return nil, err
	}
	if err := validID(videoId, "videoId"); err != nil {
		return nil, err
	}

	exists, err := s.store.VideoExists(ctx, videoId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, actor)
		if err != nil {
			hlog.CtxWarnf(ctx, "comment rate limit check failed for user %d: %v", actor, err)
		} else if !allowed {
			return nil, errno.TooManyRequestErr.WithMessage("You are commenting too fast, please try again later")
		}
	}

	comment := &model.Comment{VideoId: videoId, OwnerId: actor, Content: content}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		hlog.CtxErrorf(ctx, "failed to add comment on video %d: %v", videoId, err)
		return nil, err
	}

	s.publish(ctx, mq.CommentEventExchange, func(p mq.MessageProducer) error {
		return p.PublishCommentEvent(ctx, mq.NewCommentEvent(mq.CommentCreated, comment.CommentId, videoId, actor, content))
	})
	return comment, nil
}

// loadOwnedComment 依次检查 id、存在性、所有者
func (s *Service) loadOwnedComment(ctx context.Context, v viewer.Viewer, commentId int64, deniedMsg string) (*model.Comment, error) {
	if err := validID(commentId, "commentId"); err != nil {
		return nil, err
	}
	comment, err := s.store.GetComment(ctx, commentId)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(comment, v, deniedMsg); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) UpdateComment(ctx context.Context, v viewer.Viewer, commentId int64, content string) (*model.Comment, error) {
	if _, err := requireActor(v); err != nil {
		return nil, err
	}
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	comment, err := s.loadOwnedComment(ctx, v, commentId, "Only comment owner can edit their comment")
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateCommentContent(ctx, comment.CommentId, content)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, mq.CommentEventExchange, func(p mq.MessageProducer) error {
		return p.PublishCommentEvent(ctx, mq.NewCommentEvent(mq.CommentUpdated, updated.CommentId, updated.VideoId, updated.OwnerId, content))
	})
	return updated, nil
}

// DeleteComment 返回被删除的评论 id
func (s *Service) DeleteComment(ctx context.Context, v viewer.Viewer, commentId int64) (int64, error) {
	if _, err := requireActor(v); err != nil {
		return 0, err
	}
	comment, err := s.loadOwnedComment(ctx, v, commentId, "Only comment owner can delete their comment")
	if err != nil {
		return 0, err
	}
	if err := s.store.DeleteComment(ctx, comment.CommentId); err != nil {
		return 0, err
	}
	s.publish(ctx, mq.CommentEventExchange, func(p mq.MessageProducer) error {
		return p.PublishCommentEvent(ctx, mq.NewCommentEvent(mq.CommentDeleted, comment.CommentId, comment.VideoId, comment.OwnerId, ""))
	})
	return comment.CommentId, nil
}

// ListVideoComments 视频不存在时返回空页
func (s *Service) ListVideoComments(ctx context.Context, v viewer.Viewer, videoId int64, req paginator.Request) (*paginator.Page[model.CommentView], error) {
	if err := validID(videoId, "videoId"); err != nil {
		return nil, err
	}
	return s.store.ListVideoComments(ctx, videoId, v, req.Page, req.Limit)
}
