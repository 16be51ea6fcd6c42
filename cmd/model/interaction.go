package model

import (
	"time"

	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"gorm.io/gorm"
)

type Comment struct {
	CommentId int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	VideoId   int64     `gorm:"index:idx_comments_video_created,priority:1;not null" json:"video"`
	OwnerId   int64     `gorm:"index;not null" json:"owner"`
	CreatedAt time.Time `gorm:"index:idx_comments_video_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.CommentId == 0 {
		c.CommentId = utils.NextID()
	}
	return nil
}

func (c *Comment) OwnerID() int64 {
	return c.OwnerId
}

// Like 视频点赞和评论点赞共用一张表，VideoId 与 CommentId 有且只有一个非空
type Like struct {
	LikeId    int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	LikedBy   int64     `gorm:"not null;uniqueIndex:idx_likes_video,priority:1;uniqueIndex:idx_likes_comment,priority:1" json:"likedBy"`
	VideoId   *int64    `gorm:"uniqueIndex:idx_likes_video,priority:2;index;check:chk_likes_target,(video_id IS NULL) <> (comment_id IS NULL)" json:"video,omitempty"`
	CommentId *int64    `gorm:"uniqueIndex:idx_likes_comment,priority:2;index" json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Like) TableName() string {
	return "likes"
}

func NewVideoLike(userId, videoId int64) *Like {
	return &Like{LikedBy: userId, VideoId: &videoId}
}

func NewCommentLike(userId, commentId int64) *Like {
	return &Like{LikedBy: userId, CommentId: &commentId}
}

// Validate 点赞必须且只能指向一个目标
func (l *Like) Validate() error {
	if l.LikedBy <= 0 {
		return errno.RequestErr.WithMessage("Like requires likedBy")
	}
	if (l.VideoId == nil) == (l.CommentId == nil) {
		return errno.RequestErr.WithMessage("Like must target exactly one of video or comment")
	}
	return nil
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if l.LikeId == 0 {
		l.LikeId = utils.NextID()
	}
	return nil
}
