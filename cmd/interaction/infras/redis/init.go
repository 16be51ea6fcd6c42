package redis

import (
	"context"
	"time"

	"VidTube.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Load 连接失败只记录日志，依赖 redis 的功能会各自降级
func Load() {
	RDB = NewClient(config.ConfigInfo.Redis.Addr, config.ConfigInfo.Redis.Password, config.ConfigInfo.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		hlog.Warnf("redis %s unavailable: %v", config.ConfigInfo.Redis.Addr, err)
	}
}
