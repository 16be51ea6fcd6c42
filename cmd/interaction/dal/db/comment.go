package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *FactStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := s.conn(ctx).Create(comment).Error; err != nil {
		return mysqlErr(err, "Failed to create comment")
	}
	return nil
}

func (s *FactStore) GetComment(ctx context.Context, commentId int64) (*model.Comment, error) {
	comment := &model.Comment{}
	if err := s.conn(ctx).Where("comment_id = ?", commentId).First(comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Comment not found")
		}
		return nil, mysqlErr(err, "Failed to get comment")
	}
	return comment, nil
}

// UpdateCommentContent 没有行被更新时返回 PersistenceErr
func (s *FactStore) UpdateCommentContent(ctx context.Context, commentId int64, content string) (*model.Comment, error) {
	res := s.conn(ctx).Model(&model.Comment{}).Where("comment_id = ?", commentId).Update("content", content)
	if res.Error != nil {
		return nil, mysqlErr(res.Error, "Failed to update comment")
	}
	if res.RowsAffected == 0 {
		return nil, errno.PersistenceErr.WithMessage("Failed to edit comment please try again")
	}
	return s.GetComment(ctx, commentId)
}

// DeleteComment 同一事务内删除评论和它收到的点赞
func (s *FactStore) DeleteComment(ctx context.Context, commentId int64) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentId).Delete(&model.Like{}).Error; err != nil {
			return mysqlErr(err, "Failed to delete comment likes")
		}
		res := tx.Where("comment_id = ?", commentId).Delete(&model.Comment{})
		if res.Error != nil {
			return mysqlErr(res.Error, "Failed to delete comment")
		}
		if res.RowsAffected == 0 {
			return errno.PersistenceErr.WithMessage("Failed to delete comment please try again")
		}
		return nil
	})
}
