package handlers

import (
	"context"

	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/jwt"
	"github.com/cloudwego/hertz/pkg/app"
)

func CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	var param PlaylistParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.RequestErr.WithMessage(err.Error()), nil)
		return
	}
	playlist, err := Svc.CreatePlaylist(ctx, jwt.ViewerFrom(c), param.Name, param.Description)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Playlist created successfully"), playlist)
}

func GetUserPlaylists(ctx context.Context, c *app.RequestContext) {
	resp, err := Svc.GetUserPlaylists(ctx, pathID(c, "userId"), bindPage(c))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("User playlists fetched successfully"), resp)
}

func GetPlaylistById(ctx context.Context, c *app.RequestContext) {
	resp, err := Svc.GetPlaylistById(ctx, pathID(c, "playlistId"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Playlist fetched successfully"), resp)
}

func AddVideoToPlaylist(ctx context.Context, c *app.RequestContext) {
	playlist, err := Svc.AddVideoToPlaylist(ctx, jwt.ViewerFrom(c), pathID(c, "playlistId"), pathID(c, "videoId"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Video added to playlist successfully"), playlist)
}

func RemoveVideoFromPlaylist(ctx context.Context, c *app.RequestContext) {
	playlist, err := Svc.RemoveVideoFromPlaylist(ctx, jwt.ViewerFrom(c), pathID(c, "playlistId"), pathID(c, "videoId"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Video removed from playlist successfully"), playlist)
}

func DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	if err := Svc.DeletePlaylist(ctx, jwt.ViewerFrom(c), pathID(c, "playlistId")); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Playlist deleted successfully"), map[string]interface{}{})
}

func UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	var param PlaylistParam
	if err := c.Bind(&param); err != nil {
		SendResponse(c, errno.RequestErr.WithMessage(err.Error()), nil)
		return
	}
	playlist, err := Svc.UpdatePlaylist(ctx, jwt.ViewerFrom(c), pathID(c, "playlistId"), param.Name, param.Description)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, success("Playlist updated successfully"), playlist)
}
