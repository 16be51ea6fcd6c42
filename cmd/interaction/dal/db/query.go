package db

import (
	"context"
	"time"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/metrics"
	"VidTube.com/pkg/paginator"
	"VidTube.com/pkg/viewer"
	"github.com/pkg/errors"
)

// ownerFields 投影到 model.OwnerSummary 的 owner_ 前缀列
func ownerFields(alias string) []string {
	return []string{
		alias + ".user_id AS owner_user_id",
		alias + ".user_name AS owner_user_name",
		alias + ".full_name AS owner_full_name",
		alias + ".avatar_url AS owner_avatar_url",
	}
}

var videoFields = []string{
	"v.video_id", "v.title", "v.description", "v.video_url", "v.thumbnail",
	"v.duration", "v.views", "v.is_published", "v.created_at",
}

// CommentFeed 视频评论：作者、点赞数，以及请求者是否点过赞
func CommentFeed(videoId int64, v viewer.Viewer) *Pipeline {
	p := NewPipeline("video_comments", "comments AS c").
		Lookup("JOIN users AS u ON u.user_id = c.owner_id").
		Match("c.video_id = ?", videoId).
		Project("c.comment_id", "c.content", "c.created_at").
		Project(ownerFields("u")...).
		AddField("(SELECT COUNT(*) FROM likes AS lc WHERE lc.comment_id = c.comment_id) AS likes_count")
	if id, ok := v.ID(); ok {
		p.AddField("EXISTS (SELECT 1 FROM likes AS lv WHERE lv.comment_id = c.comment_id AND lv.liked_by = ?) AS is_liked", id)
	} else {
		p.AddField("0 AS is_liked")
	}
	return p.Sort("c.created_at ASC").Sort("c.comment_id ASC")
}

// LikedVideos 用户点赞过的视频，最近点赞的在前
func LikedVideos(userId int64) *Pipeline {
	return NewPipeline("liked_videos", "likes AS l").
		Lookup("JOIN videos AS v ON v.video_id = l.video_id").
		Lookup("JOIN users AS u ON u.user_id = v.owner_id").
		Match("l.liked_by = ? AND l.video_id IS NOT NULL", userId).
		Project(videoFields...).
		Project(ownerFields("u")...).
		Project("l.created_at AS liked_at").
		Sort("l.created_at DESC").Sort("l.like_id DESC")
}

// UserPlaylists 每个播放列表的视频数和总播放量
func UserPlaylists(ownerId int64) *Pipeline {
	return NewPipeline("user_playlists", "playlists AS p").
		Lookup("LEFT JOIN playlist_videos AS pv ON pv.playlist_id = p.playlist_id").
		Lookup("LEFT JOIN videos AS v ON v.video_id = pv.video_id").
		Match("p.owner_id = ?", ownerId).
		Project("p.playlist_id", "p.name", "p.description", "p.updated_at").
		AddField("COUNT(v.video_id) AS total_videos").
		AddField("COALESCE(SUM(v.views), 0) AS total_views").
		Group("p.playlist_id, p.name, p.description, p.updated_at").
		Sort("p.updated_at DESC").Sort("p.playlist_id DESC")
}

// PlaylistVideos 播放列表内已发布的视频，按加入顺序
func PlaylistVideos(playlistId int64) *Pipeline {
	return NewPipeline("playlist_videos", "playlist_videos AS pv").
		Lookup("JOIN videos AS v ON v.video_id = pv.video_id").
		Lookup("JOIN users AS u ON u.user_id = v.owner_id").
		Match("pv.playlist_id = ? AND v.is_published = ?", playlistId, true).
		Project(videoFields...).
		Project(ownerFields("u")...).
		Sort("pv.created_at ASC").Sort("pv.video_id ASC")
}

// ChannelSubscribers 频道的订阅者。subscribed_to_subscriber 表示频道是否回订了该订阅者，
// 没有请求者时固定为 false
func ChannelSubscribers(channelId int64, v viewer.Viewer) *Pipeline {
	p := NewPipeline("channel_subscribers", "subscriptions AS s").
		Lookup("JOIN users AS u ON u.user_id = s.subscriber_id").
		Match("s.channel_id = ?", channelId).
		Project("u.user_id", "u.user_name", "u.full_name", "u.avatar_url").
		AddField("(SELECT COUNT(*) FROM subscriptions AS sc WHERE sc.channel_id = s.subscriber_id) AS subscribers_count")
	if v.IsAnonymous() {
		p.AddField("0 AS subscribed_to_subscriber")
	} else {
		p.AddField("EXISTS (SELECT 1 FROM subscriptions AS sb WHERE sb.subscriber_id = s.channel_id AND sb.channel_id = s.subscriber_id) AS subscribed_to_subscriber")
	}
	return p.Sort("s.created_at DESC").Sort("s.subscription_id DESC")
}

// SubscribedChannels 用户订阅的频道
func SubscribedChannels(subscriberId int64) *Pipeline {
	return NewPipeline("subscribed_channels", "subscriptions AS s").
		Lookup("JOIN users AS u ON u.user_id = s.channel_id").
		Match("s.subscriber_id = ?", subscriberId).
		Project("u.user_id", "u.user_name", "u.full_name", "u.avatar_url", "s.created_at AS subscribed_at").
		Sort("s.created_at DESC").Sort("s.subscription_id DESC")
}

// LatestVideos 每个作者最新创建的一个视频
func LatestVideos(ownerIds []int64) *Pipeline {
	return NewPipeline("latest_videos", "videos AS v").
		Match("v.owner_id IN ?", ownerIds).
		Match("NOT EXISTS (SELECT 1 FROM videos AS nv WHERE nv.owner_id = v.owner_id AND "+
			"(nv.created_at > v.created_at OR (nv.created_at = v.created_at AND nv.video_id > v.video_id)))").
		Project("v.video_id", "v.owner_id", "v.title", "v.thumbnail", "v.video_url", "v.duration", "v.views", "v.created_at")
}

// ListVideoComments 评论流总是分页，未指定时使用默认页码和条数
func (s *FactStore) ListVideoComments(ctx context.Context, videoId int64, v viewer.Viewer, page, limit int) (*paginator.Page[model.CommentView], error) {
	page, limit = paginator.Normalize(page, limit)
	return runPage[model.CommentView](ctx, s.db, CommentFeed(videoId, v), paginator.Request{Page: page, Limit: limit})
}

func (s *FactStore) ListLikedVideos(ctx context.Context, userId int64, req paginator.Request) (*paginator.Page[model.LikedVideoView], error) {
	return runPage[model.LikedVideoView](ctx, s.db, LikedVideos(userId), req)
}

func (s *FactStore) ListUserPlaylists(ctx context.Context, ownerId int64, req paginator.Request) (*paginator.Page[model.PlaylistSummary], error) {
	return runPage[model.PlaylistSummary](ctx, s.db, UserPlaylists(ownerId), req)
}

func (s *FactStore) ListChannelSubscribers(ctx context.Context, channelId int64, v viewer.Viewer, req paginator.Request) (*paginator.Page[model.SubscriberView], error) {
	return runPage[model.SubscriberView](ctx, s.db, ChannelSubscribers(channelId, v), req)
}

func (s *FactStore) ListSubscribedChannels(ctx context.Context, subscriberId int64, req paginator.Request) (*paginator.Page[model.SubscribedChannelView], error) {
	page, err := runPage[model.SubscribedChannelView](ctx, s.db, SubscribedChannels(subscriberId), req)
	if err != nil || len(page.Items) == 0 {
		return page, err
	}

	ownerIds := make([]int64, 0, len(page.Items))
	for _, item := range page.Items {
		ownerIds = append(ownerIds, item.UserId)
	}
	latest, err := runAll[model.VideoSummary](ctx, s.db, LatestVideos(ownerIds))
	if err != nil {
		return nil, err
	}
	byOwner := make(map[int64]*model.VideoSummary, len(latest))
	for i := range latest {
		byOwner[latest[i].OwnerId] = &latest[i]
	}
	for i := range page.Items {
		page.Items[i].LatestVideo = byOwner[page.Items[i].UserId]
	}
	return page, nil
}

// GetPlaylistDetail 播放列表不存在时返回 NotFoundErr
func (s *FactStore) GetPlaylistDetail(ctx context.Context, playlistId int64) (detail *model.PlaylistDetail, err error) {
	defer func(start time.Time) {
		if !errorsIsNotFound(err) {
			metrics.ObserveQuery("playlist_detail", start, err)
		}
	}(time.Now())

	playlist, err := s.GetPlaylist(ctx, playlistId)
	if err != nil {
		return nil, err
	}

	owner := model.OwnerSummary{UserId: playlist.OwnerId}
	if user, err := s.GetUser(ctx, playlist.OwnerId); err == nil {
		owner = model.OwnerSummary{UserId: user.UserId, UserName: user.UserName, FullName: user.FullName, AvatarUrl: user.AvatarUrl}
	} else if !errorsIsNotFound(err) {
		return nil, err
	}

	videos, err := runAll[model.VideoView](ctx, s.db, PlaylistVideos(playlistId))
	if err != nil {
		return nil, err
	}

	detail = &model.PlaylistDetail{
		PlaylistId:  playlist.PlaylistId,
		Name:        playlist.Name,
		Description: playlist.Description,
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
		Owner:       owner,
		Videos:      videos,
		TotalVideos: int64(len(videos)),
	}
	for _, video := range videos {
		detail.TotalViews += video.Views
	}
	return detail, nil
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, errno.NotFoundErr)
}
