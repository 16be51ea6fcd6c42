package handlers

import (
	"context"

	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/jwt"
	"github.com/cloudwego/hertz/pkg/app"
)

func GetVideoComments(ctx context.Context, c *app.RequestContext) {
	resp, err := Svc.ListVideoComments(ctx, jwt.ViewerFrom(c), pathID(c, "videoId"), bindPage(c))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Comments fetched successfully"), resp)
}

func AddComment(ctx context.Context, c *app.RequestContext) {
	var param ContentParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.RequestErr.WithMessage(err.Error()), nil)
		return
	}
	comment, err := Svc.AddComment(ctx, jwt.ViewerFrom(c), pathID(c, "videoId"), param.Content)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendCreated(c, "Comment added successfully", comment)
}

func UpdateComment(ctx context.Context, c *app.RequestContext) {
	var param ContentParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.RequestErr.WithMessage(err.Error()), nil)
		return
	}
	comment, err := Svc.UpdateComment(ctx, jwt.ViewerFrom(c), pathID(c, "commentId"), param.Content)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Comment edited successfully"), comment)
}

func DeleteComment(ctx context.Context, c *app.RequestContext) {
	commentId, err := Svc.DeleteComment(ctx, jwt.ViewerFrom(c), pathID(c, "commentId"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Comment deleted successfully"), map[string]int64{"commentId": commentId})
}
