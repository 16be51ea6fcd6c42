package db

import (
	"context"
	"time"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *FactStore) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	if err := s.conn(ctx).Create(playlist).Error; err != nil {
		return mysqlErr(err, "Failed to create playlist")
	}
	return nil
}

func (s *FactStore) GetPlaylist(ctx context.Context, playlistId int64) (*model.Playlist, error) {
	playlist := &model.Playlist{}
	if err := s.conn(ctx).Where("playlist_id = ?", playlistId).First(playlist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Playlist not found")
		}
		return nil, mysqlErr(err, "Failed to get playlist")
	}
	return playlist, nil
}

// GetPlaylistWithVideos 播放列表连同成员视频 id
func (s *FactStore) GetPlaylistWithVideos(ctx context.Context, playlistId int64) (*model.Playlist, error) {
	playlist, err := s.GetPlaylist(ctx, playlistId)
	if err != nil {
		return nil, err
	}
	videos := make([]int64, 0)
	if err := s.conn(ctx).Model(&model.PlaylistVideo{}).Where("playlist_id = ?", playlistId).
		Order("created_at ASC").Order("video_id ASC").Pluck("video_id", &videos).Error; err != nil {
		return nil, mysqlErr(err, "Failed to get playlist videos")
	}
	playlist.Videos = videos
	return playlist, nil
}

func (s *FactStore) UpdatePlaylist(ctx context.Context, playlistId int64, name, description string) (*model.Playlist, error) {
	res := s.conn(ctx).Model(&model.Playlist{}).Where("playlist_id = ?", playlistId).
		Updates(map[string]interface{}{"name": name, "description": description})
	if res.Error != nil {
		return nil, mysqlErr(res.Error, "Failed to update playlist")
	}
	if res.RowsAffected == 0 {
		return nil, errno.PersistenceErr.WithMessage("Failed to update playlist please try again")
	}
	return s.GetPlaylistWithVideos(ctx, playlistId)
}

// DeletePlaylist 同一事务内删除播放列表及其成员关系
func (s *FactStore) DeletePlaylist(ctx context.Context, playlistId int64) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlistId).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return mysqlErr(err, "Failed to delete playlist videos")
		}
		res := tx.Where("playlist_id = ?", playlistId).Delete(&model.Playlist{})
		if res.Error != nil {
			return mysqlErr(res.Error, "Failed to delete playlist")
		}
		if res.RowsAffected == 0 {
			return errno.PersistenceErr.WithMessage("Failed to delete playlist please try again")
		}
		return nil
	})
}

// AddPlaylistVideo 集合语义，重复添加不报错也不产生新行
func (s *FactStore) AddPlaylistVideo(ctx context.Context, playlistId, videoId int64) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		member := &model.PlaylistVideo{PlaylistId: playlistId, VideoId: videoId}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(member).Error; err != nil {
			return mysqlErr(err, "Failed to add video to playlist")
		}
		return touchPlaylist(tx, playlistId)
	})
}

func (s *FactStore) RemovePlaylistVideo(ctx context.Context, playlistId, videoId int64) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ? AND video_id = ?", playlistId, videoId).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return mysqlErr(err, "Failed to remove video from playlist")
		}
		return touchPlaylist(tx, playlistId)
	})
}

func touchPlaylist(tx *gorm.DB, playlistId int64) error {
	if err := tx.Model(&model.Playlist{}).Where("playlist_id = ?", playlistId).Update("updated_at", time.Now()).Error; err != nil {
		return mysqlErr(err, "Failed to touch playlist")
	}
	return nil
}
