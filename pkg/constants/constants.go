package constants

import "time"

const (
	IdentityKey = "user_id"
	DataFormate = "2006-01-02 15:04:05"

	ApiServiceName      = "vidtube-api"
	ConsumerServiceName = "vidtube-consumer"
)

// 表名
const (
	UserTableName          = "users"
	VideoTableName         = "videos"
	CommentTableName       = "comments"
	LikeTableName          = "likes"
	SubscriptionTableName  = "subscriptions"
	PlaylistTableName      = "playlists"
	PlaylistVideoTableName = "playlist_videos"
)

// 分页
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

const (
	MaxCommentLength = 500

	// Redis key 模板
	CommentRateLimitKey  = "comment_rate_limit:%d"
	NotificationInboxKey = "notify:%d"
	ToggleLockKey        = "toggle:%s:%d:%d"

	NotificationInboxSize   = 100
	DefaultCommentRateLimit = 10
	CommentRateLimitWindow  = time.Minute
	DefaultToggleLockTTL    = 3 * time.Second

	ToggleResource = "interaction_toggle"
)
