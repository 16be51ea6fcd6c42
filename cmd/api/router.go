package main

import (
	"context"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/middleware"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func register(r *route.Engine, metricsPath string) {
	r.GET("/ping", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, map[string]string{"message": "pong"})
	})
	if metricsPath != "" {
		r.GET(metricsPath, adaptor.HertzHandler(promhttp.Handler()))
	}

	auth := jwt.RequireViewer()
	opt := jwt.OptionalViewer()
	guard := middleware.SentinelGuard(constants.ToggleResource)

	v1 := r.Group("/v1")

	comments := v1.Group("/comments")
	comments.GET("/:videoId", opt, handlers.GetVideoComments)
	comments.POST("/:videoId", auth, handlers.AddComment)
	comments.PATCH("/c/:commentId", auth, handlers.UpdateComment)
	comments.DELETE("/c/:commentId", auth, handlers.DeleteComment)

	likes := v1.Group("/likes")
	likes.POST("/toggle/v/:videoId", auth, guard, handlers.ToggleVideoLike)
	likes.POST("/toggle/c/:commentId", auth, guard, handlers.ToggleCommentLike)
	likes.GET("/videos", auth, handlers.GetLikedVideos)

	subscriptions := v1.Group("/subscriptions")
	subscriptions.POST("/c/:channelId", auth, guard, handlers.ToggleSubscription)
	subscriptions.GET("/c/:channelId", opt, handlers.GetChannelSubscribers)
	subscriptions.GET("/u/:subscriberId", opt, handlers.GetSubscribedChannels)

	playlist := v1.Group("/playlist")
	playlist.POST("", auth, handlers.CreatePlaylist)
	playlist.GET("/:playlistId", handlers.GetPlaylistById)
	playlist.PATCH("/:playlistId", auth, handlers.UpdatePlaylist)
	playlist.DELETE("/:playlistId", auth, handlers.DeletePlaylist)
	playlist.PATCH("/add/:videoId/:playlistId", auth, handlers.AddVideoToPlaylist)
	playlist.PATCH("/remove/:videoId/:playlistId", auth, handlers.RemoveVideoFromPlaylist)
	playlist.GET("/user/:userId", handlers.GetUserPlaylists)

	v1.GET("/notifications", auth, handlers.GetNotifications)
}
