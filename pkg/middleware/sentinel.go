package middleware

import (
	"context"
	"sync"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"VidTube.com/pkg/errno"
)

var (
	sentinelOnce sync.Once
	sentinelErr  error
)

// InitSentinel 为 resource 加载 QPS 流控规则，qps <= 0 时不限流
func InitSentinel(resource string, qps float64) error {
	sentinelOnce.Do(func() {
		sentinelErr = sentinel.InitDefault()
	})
	if sentinelErr != nil {
		return sentinelErr
	}
	if qps <= 0 {
		_, err := flow.LoadRules(nil)
		return err
	}
	_, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               resource,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		},
	})
	return err
}

// SentinelGuard 被限流的请求返回 TooManyRequestErr
func SentinelGuard(resource string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blockErr := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if blockErr != nil {
			hlog.CtxWarnf(ctx, "request %s blocked by sentinel: %v", c.FullPath(), blockErr)
			AbortWithErr(c, errno.TooManyRequestErr)
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
