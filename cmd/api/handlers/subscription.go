package handlers

import (
	"context"

	"VidTube.com/pkg/jwt"
	"github.com/cloudwego/hertz/pkg/app"
)

type SubscriptionResp struct {
	Subscribed bool `json:"subscribed"`
}

func ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	subscribed, err := Svc.ToggleSubscription(ctx, jwt.ViewerFrom(c), pathID(c, "channelId"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Subscription toggled successfully"), SubscriptionResp{Subscribed: subscribed})
}

func GetChannelSubscribers(ctx context.Context, c *app.RequestContext) {
	resp, err := Svc.ListChannelSubscribers(ctx, jwt.ViewerFrom(c), pathID(c, "channelId"), bindPage(c))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Subscribers fetched successfully"), resp)
}

func GetSubscribedChannels(ctx context.Context, c *app.RequestContext) {
	resp, err := Svc.ListSubscribedChannels(ctx, pathID(c, "subscriberId"), bindPage(c))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Subscribed channels fetched successfully"), resp)
}
