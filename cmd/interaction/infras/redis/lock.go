package redis

import (
	"context"
	"fmt"
	"time"

	"VidTube.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// ToggleLocker 同一个 (kind, actor, target) 的切换在多实例间串行执行
type ToggleLocker struct {
	rs  *redsync.Redsync
	ttl time.Duration
}

func NewToggleLocker(client *redis.Client, ttl time.Duration) *ToggleLocker {
	if ttl <= 0 {
		ttl = constants.DefaultToggleLockTTL
	}
	return &ToggleLocker{rs: redsync.New(goredis.NewPool(client)), ttl: ttl}
}

func ToggleLockKey(kind string, actor, target int64) string {
	return fmt.Sprintf(constants.ToggleLockKey, kind, actor, target)
}

// Lock 返回的 unlock 可以重复调用
func (l *ToggleLocker) Lock(ctx context.Context, kind string, actor, target int64) (func(), error) {
	mutex := l.rs.NewMutex(ToggleLockKey(kind, actor, target),
		redsync.WithExpiry(l.ttl),
		redsync.WithTries(8),
		redsync.WithRetryDelay(25*time.Millisecond),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		if _, err := mutex.UnlockContext(context.WithoutCancel(ctx)); err != nil {
			hlog.CtxWarnf(ctx, "failed to release toggle lock %s: %v", mutex.Name(), err)
		}
	}, nil
}
