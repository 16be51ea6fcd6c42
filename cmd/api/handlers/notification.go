package handlers

import (
	"context"

	"VidTube.com/pkg/jwt"
	"github.com/cloudwego/hertz/pkg/app"
)

func GetNotifications(ctx context.Context, c *app.RequestContext) {
	var param NotificationParam
	_ = c.BindQuery(&param)
	items, err := Svc.ListNotifications(ctx, jwt.ViewerFrom(c), param.Limit)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Notifications fetched successfully"), items)
}
