package main

import (
	"context"
	"fmt"
	"time"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/interaction/dal"
	"VidTube.com/cmd/interaction/infras/redis"
	"VidTube.com/cmd/interaction/service"
	"VidTube.com/config"
	"VidTube.com/config/jaeger"
	"VidTube.com/config/pprof"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/middleware"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
)

func Init() *service.Service {
	if err := utils.InitSnowflake(config.ConfigInfo.Server.NodeId); err != nil {
		hlog.Fatalf("Failed to init snowflake: %v", err)
	}
	dal.Init()
	redis.Load()

	cfg := config.ConfigInfo.Interaction
	toggle := service.NewToggleEngine(dal.Store,
		service.WithLocker(redis.NewToggleLocker(redis.RDB, config.Duration(cfg.ToggleLockTTL, constants.DefaultToggleLockTTL))),
		service.WithSelfSubscription(cfg.AllowSelfSubscription),
	)
	opts := []service.Option{
		service.WithRateLimiter(redis.NewCommentRateLimiter(redis.RDB, cfg.CommentRateLimit, constants.CommentRateLimitWindow)),
		service.WithInbox(redis.NewNotificationInbox(redis.RDB, constants.NotificationInboxSize)),
	}

	// 消息队列不可用时只关闭事件发送
	if producer, err := mq.NewProducer(config.RabbitMqURL()); err != nil {
		hlog.Warnf("Failed to initialize message queue producer, events disabled: %v", err)
	} else {
		opts = append(opts, service.WithProducer(mq.NewBreakerProducer(producer, mq.DefaultBreakerConfig())))
		hlog.Info("Message queue producer initialized successfully")
	}
	return service.NewService(dal.Store, toggle, opts...)
}

func main() {
	config.Init()
	hlog.SetLevel(utils.ParseLogLevel(config.ConfigInfo.Server.LogLevel))

	_, closer := jaeger.InitJaeger(constants.ApiServiceName)
	defer closer.Close()
	pprof.Load(config.ConfigInfo.Server.PprofAddr)

	handlers.Init(Init())

	if err := jwt.Init(config.ConfigInfo.Jwt.Secret, config.Duration(config.ConfigInfo.Jwt.Timeout, 24*time.Hour)); err != nil {
		hlog.Fatalf("Failed to init jwt: %v", err)
	}
	if err := middleware.InitSentinel(constants.ToggleResource, config.ConfigInfo.Sentinel.ToggleQps); err != nil {
		hlog.Fatalf("Failed to init sentinel: %v", err)
	}

	r := server.New(
		server.WithHostPorts(config.ConfigInfo.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
	)

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigInfo.Server.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 错误处理
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, middleware.Response{
				Code:    errno.ServiceErrCode,
				Message: fmt.Sprintf("[Recovery] err=%v", err),
			})
		})))

	register(r.Engine, config.ConfigInfo.Server.MetricsPath)
	r.Spin()
}
