package model

import "time"

// 以下为聚合查询的投影结构，字段都在查询时计算，不落库

// CommentView 视频评论流中的一行
type CommentView struct {
	CommentId  int64        `json:"id"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
	Owner      OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

// VideoView 带公开作者信息的视频
type VideoView struct {
	VideoId     int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	VideoUrl    string       `json:"videoFile"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	IsPublished bool         `json:"isPublished"`
	CreatedAt   time.Time    `json:"createdAt"`
	Owner       OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"ownerDetails"`
}

// LikedVideoView 点赞视频列表的一行，按 LikedAt 倒序
type LikedVideoView struct {
	VideoView
	LikedAt time.Time `json:"likedAt"`
}

// PlaylistSummary 用户播放列表概览
type PlaylistSummary struct {
	PlaylistId  int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalVideos int64     `json:"totalVideos"`
	TotalViews  int64     `json:"totalViews"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistDetail 播放列表详情，只包含已发布的视频
type PlaylistDetail struct {
	PlaylistId  int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	TotalVideos int64        `json:"totalVideos"`
	TotalViews  int64        `json:"totalViews"`
	Owner       OwnerSummary `json:"owner"`
	Videos      []VideoView  `json:"videos"`
}

// SubscriberView 频道订阅者
type SubscriberView struct {
	UserId                 int64  `json:"id"`
	UserName               string `json:"username"`
	FullName               string `json:"fullName"`
	AvatarUrl              string `json:"avatar"`
	SubscribedToSubscriber bool   `json:"subscribedToSubscriber"`
	SubscribersCount       int64  `json:"subscribersCount"`
}

// VideoSummary 频道最新视频
type VideoSummary struct {
	VideoId   int64     `json:"id"`
	OwnerId   int64     `json:"-"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	VideoUrl  string    `json:"videoFile"`
	Duration  float64   `json:"duration"`
	Views     int64     `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubscribedChannelView 已订阅的频道，没有视频时 LatestVideo 为 nil
type SubscribedChannelView struct {
	UserId       int64         `json:"id"`
	UserName     string        `json:"username"`
	FullName     string        `json:"fullName"`
	AvatarUrl    string        `json:"avatar"`
	SubscribedAt time.Time     `json:"subscribedAt"`
	LatestVideo  *VideoSummary `gorm:"-" json:"latestVideo"`
}

// Notification 写入用户通知收件箱
type Notification struct {
	Type      string `json:"type"`
	ActorId   int64  `json:"actorId"`
	TargetId  int64  `json:"targetId"`
	VideoId   int64  `json:"videoId,omitempty"`
	Content   string `json:"content,omitempty"`
	EventId   string `json:"eventId"`
	Timestamp int64  `json:"timestamp"`
}
