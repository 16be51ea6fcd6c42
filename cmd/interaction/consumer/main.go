package main

import (
	"context"
	"os/signal"
	"syscall"

	"VidTube.com/cmd/interaction/dal"
	"VidTube.com/cmd/interaction/infras/redis"
	"VidTube.com/config"
	"VidTube.com/config/jaeger"
	"VidTube.com/config/pprof"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func main() {
	config.Init()
	hlog.SetLevel(utils.ParseLogLevel(config.ConfigInfo.Server.LogLevel))

	_, closer := jaeger.InitJaeger(constants.ConsumerServiceName)
	defer closer.Close()
	pprof.Load(config.ConfigInfo.Server.PprofAddr)

	if err := utils.InitSnowflake(config.ConfigInfo.Server.NodeId); err != nil {
		hlog.Fatalf("Failed to init snowflake: %v", err)
	}
	dal.Init()
	redis.Load()
	hlog.Info("Dependencies initialized successfully")

	consumer, err := mq.NewConsumer(config.RabbitMqURL())
	if err != nil {
		hlog.Fatalf("Failed to create consumer: %v", err)
	}
	defer consumer.Close()
	retry := mq.DefaultRetryPolicy
	if config.ConfigInfo.RabbitMq.MaxRetries > 0 {
		retry.MaxAttempts = config.ConfigInfo.RabbitMq.MaxRetries
	}
	consumer.WithRetryPolicy(retry)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	handler := NewNotificationHandler(dal.Store, redis.NewNotificationInbox(redis.RDB, constants.NotificationInboxSize))
	if err := consumer.ConsumeLikeEvents(ctx, handler); err != nil {
		hlog.Fatalf("Failed to start like event consumer: %v", err)
	}
	if err := consumer.ConsumeCommentEvents(ctx, handler); err != nil {
		hlog.Fatalf("Failed to start comment event consumer: %v", err)
	}
	if err := consumer.ConsumeSubscriptionEvents(ctx, handler); err != nil {
		hlog.Fatalf("Failed to start subscription event consumer: %v", err)
	}
	hlog.Info("Event consumer started successfully, waiting for messages...")

	<-ctx.Done()
	hlog.Info("Shutting down event consumer...")
}
