package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/paginator"
	"VidTube.com/pkg/viewer"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func (s *Service) CreatePlaylist(ctx context.Context, v viewer.Viewer, name, description string) (*model.Playlist, error) {
	actor, err := requireActor(v)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errno.RequestErr.WithMessage("name is required")
	}

	playlist := &model.Playlist{Name: name, Description: strings.TrimSpace(description), OwnerId: actor, Videos: make([]int64, 0)}
	if err := s.store.CreatePlaylist(ctx, playlist); err != nil {
		hlog.CtxErrorf(ctx, "failed to create playlist for user %d: %v", actor, err)
		return nil, err
	}
	return playlist, nil
}

func (s *Service) GetUserPlaylists(ctx context.Context, userId int64, req paginator.Request) (*paginator.Page[model.PlaylistSummary], error) {
	if err := validID(userId, "userId"); err != nil {
		return nil, err
	}
	return s.store.ListUserPlaylists(ctx, userId, req)
}

func (s *Service) GetPlaylistById(ctx context.Context, playlistId int64) (*model.PlaylistDetail, error) {
	if err := validID(playlistId, "PlaylistId"); err != nil {
		return nil, err
	}
	return s.store.GetPlaylistDetail(ctx, playlistId)
}

func (s *Service) loadOwnedPlaylist(ctx context.Context, v viewer.Viewer, playlistId int64, deniedMsg string) (*model.Playlist, error) {
	playlist, err := s.store.GetPlaylist(ctx, playlistId)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(playlist, v, deniedMsg); err != nil {
		return nil, err
	}
	return playlist, nil
}

func validMembership(playlistId, videoId int64) error {
	if playlistId <= 0 || videoId <= 0 {
		return errno.RequestErr.WithMessage("Invalid PlaylistId or videoId")
	}
	return nil
}

// AddVideoToPlaylist 重复添加不改变播放列表内容
func (s *Service) AddVideoToPlaylist(ctx context.Context, v viewer.Viewer, playlistId, videoId int64) (*model.Playlist, error) {
	if _, err := requireActor(v); err != nil {
		return nil, err
	}
	if err := validMembership(playlistId, videoId); err != nil {
		return nil, err
	}
	playlist, err := s.store.GetPlaylist(ctx, playlistId)
	if err != nil {
		return nil, err
	}
	exists, err := s.store.VideoExists(ctx, videoId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	if err := requireOwner(playlist, v, "only owner can add video to their playlist"); err != nil {
		return nil, err
	}

	if err := s.store.AddPlaylistVideo(ctx, playlist.PlaylistId, videoId); err != nil {
		return nil, err
	}
	return s.store.GetPlaylistWithVideos(ctx, playlist.PlaylistId)
}

func (s *Service) RemoveVideoFromPlaylist(ctx context.Context, v viewer.Viewer, playlistId, videoId int64) (*model.Playlist, error) {
	if _, err := requireActor(v); err != nil {
		return nil, err
	}
	if err := validMembership(playlistId, videoId); err != nil {
		return nil, err
	}
	playlist, err := s.loadOwnedPlaylist(ctx, v, playlistId, "only owner can remove video from their playlist")
	if err != nil {
		return nil, err
	}
	if err := s.store.RemovePlaylistVideo(ctx, playlist.PlaylistId, videoId); err != nil {
		return nil, err
	}
	return s.store.GetPlaylistWithVideos(ctx, playlist.PlaylistId)
}

func (s *Service) DeletePlaylist(ctx context.Context, v viewer.Viewer, playlistId int64) error {
	if _, err := requireActor(v); err != nil {
		return err
	}
	if err := validID(playlistId, "PlaylistId"); err != nil {
		return err
	}
	playlist, err := s.loadOwnedPlaylist(ctx, v, playlistId, "only owner can delete the playlist")
	if err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, playlist.PlaylistId)
}

// UpdatePlaylist name 和 description 都必须提供
func (s *Service) UpdatePlaylist(ctx context.Context, v viewer.Viewer, playlistId int64, name, description string) (*model.Playlist, error) {
	if _, err := requireActor(v); err != nil {
		return nil, err
	}
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, errno.RequestErr.WithMessage("name and description are required")
	}
	if err := validID(playlistId, "PlaylistId"); err != nil {
		return nil, err
	}
	playlist, err := s.loadOwnedPlaylist(ctx, v, playlistId, "only owner can edit the playlist")
	if err != nil {
		return nil, err
	}
	return s.store.UpdatePlaylist(ctx, playlist.PlaylistId, name, description)
}
