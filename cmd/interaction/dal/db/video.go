package db

import (
	"context"

	"VidTube.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *FactStore) CreateVideo(ctx context.Context, video *model.Video) error {
	if err := s.conn(ctx).Create(video).Error; err != nil {
		return mysqlErr(err, "Failed to create video")
	}
	return nil
}

func (s *FactStore) GetVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	video := &model.Video{}
	if err := s.conn(ctx).Where("video_id = ?", videoId).First(video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Video not found")
		}
		return nil, mysqlErr(err, "Failed to get video")
	}
	return video, nil
}

func (s *FactStore) VideoExists(ctx context.Context, videoId int64) (bool, error) {
	return s.exists(ctx, &model.Video{}, "video_id = ?", videoId)
}

func (s *FactStore) SetVideoPublished(ctx context.Context, videoId int64, published bool) error {
	if err := s.conn(ctx).Model(&model.Video{}).Where("video_id = ?", videoId).Update("is_published", published).Error; err != nil {
		return mysqlErr(err, "Failed to update video publish status")
	}
	return nil
}
