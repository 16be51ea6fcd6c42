package redis

import (
	"context"
	"fmt"
	"time"

	"VidTube.com/pkg/constants"
	"github.com/redis/go-redis/v9"
)

// CommentRateLimiter 固定窗口计数，每个用户每个窗口最多 limit 条评论
type CommentRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewCommentRateLimiter(client *redis.Client, limit int, window time.Duration) *CommentRateLimiter {
	if limit <= 0 {
		limit = constants.DefaultCommentRateLimit
	}
	if window <= 0 {
		window = constants.CommentRateLimitWindow
	}
	return &CommentRateLimiter{client: client, limit: int64(limit), window: window}
}

// incrWithWindow 计数和设置过期在同一个脚本里执行，没有过期时间的旧 key 也会补上
var incrWithWindow = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Allow 计数后判断是否超限
func (l *CommentRateLimiter) Allow(ctx context.Context, userId int64) (bool, error) {
	key := fmt.Sprintf(constants.CommentRateLimitKey, userId)

	count, err := incrWithWindow.Run(ctx, l.client, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to increment comment rate limit: %w", err)
	}
	return count <= l.limit, nil
}
