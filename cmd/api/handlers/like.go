package handlers

import (
	"context"

	"VidTube.com/pkg/jwt"
	"github.com/cloudwego/hertz/pkg/app"
)

type LikeResp struct {
	IsLiked bool `json:"isLiked"`
}

func ToggleVideoLike(ctx context.Context, c *app.RequestContext) {
	liked, err := Svc.ToggleVideoLike(ctx, jwt.ViewerFrom(c), pathID(c, "videoId"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Video like toggled successfully"), LikeResp{IsLiked: liked})
}

func ToggleCommentLike(ctx context.Context, c *app.RequestContext) {
	liked, err := Svc.ToggleCommentLike(ctx, jwt.ViewerFrom(c), pathID(c, "commentId"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Comment like toggled successfully"), LikeResp{IsLiked: liked})
}

func GetLikedVideos(ctx context.Context, c *app.RequestContext) {
	resp, err := Svc.ListLikedVideos(ctx, jwt.ViewerFrom(c), bindPage(c))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Liked videos fetched successfully"), resp)
}
