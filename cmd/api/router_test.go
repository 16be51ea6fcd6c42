package main

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/interaction/dal/db/dbtest"
	"VidTube.com/cmd/interaction/service"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/jwt"
	"VidTube.com/pkg/middleware"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiFixture struct {
	r     *route.Engine
	alice *model.User
	bob   *model.User
	video *model.Video
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	_, store := dbtest.New(t)
	handlers.Init(service.NewService(store, nil))
	require.NoError(t, jwt.Init("router-test", time.Hour))
	require.NoError(t, middleware.InitSentinel(constants.ToggleResource, 0))

	r := route.NewEngine(config.NewOptions([]config.Option{}))
	register(r, "/metrics")

	alice := dbtest.User(t, store, "alice")
	bob := dbtest.User(t, store, "bob")
	return &apiFixture{r: r, alice: alice, bob: bob, video: dbtest.Video(t, store, bob.UserId, "intro", 3, true)}
}

func (f *apiFixture) do(t *testing.T, method, url string, user *model.User, body string) (int, apiResponse) {
	t.Helper()
	headers := []ut.Header{{Key: "Content-Type", Value: "application/json"}}
	if user != nil {
		token, _, err := jwt.GenerateToken(user.UserId)
		require.NoError(t, err)
		headers = append(headers, ut.Header{Key: "Authorization", Value: "Bearer " + token})
	}
	var b *ut.Body
	if body != "" {
		b = &ut.Body{Body: strings.NewReader(body), Len: len(body)}
	}
	w := ut.PerformRequest(f.r, method, url, b, headers...)
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Result().Body(), &resp))
	return w.Result().StatusCode(), resp
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func TestCommentRoutes(t *testing.T) {
	f := newAPI(t)

	status, resp := f.do(t, "POST", "/v1/comments/"+id(f.video.VideoId), f.alice, `{"content":"hello"}`)
	require.Equal(t, 201, status)
	var comment model.Comment
	require.NoError(t, json.Unmarshal(resp.Data, &comment))
	require.Equal(t, "hello", comment.Content)

	status, resp = f.do(t, "POST", "/v1/comments/"+id(f.video.VideoId), nil, `{"content":"hello"}`)
	require.Equal(t, 401, status)
	require.Equal(t, int64(errno.TokenInvailedErrCode), resp.Code)

	status, resp = f.do(t, "POST", "/v1/comments/abc", f.alice, `{"content":"hello"}`)
	require.Equal(t, 400, status)
	require.Equal(t, "Invalid videoId", resp.Message)

	status, _ = f.do(t, "POST", "/v1/likes/toggle/c/"+id(comment.CommentId), f.bob, "")
	require.Equal(t, 200, status)

	status, resp = f.do(t, "GET", "/v1/comments/"+id(f.video.VideoId)+"?page=1&limit=5", f.bob, "")
	require.Equal(t, 200, status)
	var page struct {
		Items []model.CommentView `json:"items"`
		Limit int                 `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	require.Equal(t, 5, page.Limit)
	require.Len(t, page.Items, 1)
	require.True(t, page.Items[0].IsLiked)
	require.Equal(t, int64(1), page.Items[0].LikesCount)

	status, resp = f.do(t, "PATCH", "/v1/comments/c/"+id(comment.CommentId), f.bob, `{"content":"hijack"}`)
	require.Equal(t, 403, status)
	require.Equal(t, "Only comment owner can edit their comment", resp.Message)

	status, resp = f.do(t, "DELETE", "/v1/comments/c/"+id(comment.CommentId), f.alice, "")
	require.Equal(t, 200, status)
	require.JSONEq(t, `{"commentId":`+id(comment.CommentId)+`}`, string(resp.Data))
}

func TestToggleRoutes(t *testing.T) {
	f := newAPI(t)

	status, resp := f.do(t, "POST", "/v1/likes/toggle/v/"+id(f.video.VideoId), f.alice, "")
	require.Equal(t, 200, status)
	require.JSONEq(t, `{"isLiked":true}`, string(resp.Data))

	status, resp = f.do(t, "POST", "/v1/subscriptions/c/"+id(f.bob.UserId), f.alice, "")
	require.Equal(t, 200, status)
	require.JSONEq(t, `{"subscribed":true}`, string(resp.Data))

	status, _ = f.do(t, "GET", "/v1/subscriptions/c/"+id(f.bob.UserId), nil, "")
	require.Equal(t, 200, status)

	status, resp = f.do(t, "POST", "/v1/subscriptions/c/"+id(f.bob.UserId), f.alice, "")
	require.Equal(t, 200, status)
	require.JSONEq(t, `{"subscribed":false}`, string(resp.Data))

	status, resp = f.do(t, "POST", "/v1/likes/toggle/v/987654321", f.alice, "")
	require.Equal(t, 404, status)
	require.Equal(t, "Video not found", resp.Message)
}

func TestPlaylistRoutes(t *testing.T) {
	f := newAPI(t)

	status, resp := f.do(t, "POST", "/v1/playlist", f.alice, `{"name":"mix","description":"weekend"}`)
	require.Equal(t, 200, status)
	var playlist model.Playlist
	require.NoError(t, json.Unmarshal(resp.Data, &playlist))

	require.Equal(t, f.alice.UserId, playlist.OwnerId)
	require.JSONEq(t, `[]`, videosOf(t, resp.Data))

	path := "/v1/playlist/add/" + id(f.video.VideoId) + "/" + id(playlist.PlaylistId)
	status, resp = f.do(t, "PATCH", path, f.alice, "")
	require.Equal(t, 200, status)
	require.JSONEq(t, `[`+id(f.video.VideoId)+`]`, videosOf(t, resp.Data))
	status, resp = f.do(t, "PATCH", path, f.bob, "")
	require.Equal(t, 403, status)
	require.Equal(t, "only owner can add video to their playlist", resp.Message)

	status, resp = f.do(t, "GET", "/v1/playlist/"+id(playlist.PlaylistId), nil, "")
	require.Equal(t, 200, status)
	var detail model.PlaylistDetail
	require.NoError(t, json.Unmarshal(resp.Data, &detail))
	require.Equal(t, int64(1), detail.TotalVideos)
	require.NotContains(t, string(resp.Data), "hashed")
	require.NotContains(t, string(resp.Data), "@example.com")

	status, resp = f.do(t, "PATCH", "/v1/playlist/remove/"+id(f.video.VideoId)+"/"+id(playlist.PlaylistId), f.alice, "")
	require.Equal(t, 200, status)
	require.JSONEq(t, `[]`, videosOf(t, resp.Data))

	status, resp = f.do(t, "DELETE", "/v1/playlist/"+id(playlist.PlaylistId), f.alice, "")
	require.Equal(t, 200, status)
	require.JSONEq(t, `{}`, string(resp.Data))

	status, _ = f.do(t, "GET", "/v1/playlist/"+id(playlist.PlaylistId), nil, "")
	require.Equal(t, 404, status)
}

// TestAdjacentUsers 同一毫秒内创建的两个用户拿到各自的身份
func TestAdjacentUsers(t *testing.T) {
	f := newAPI(t)
	require.NotEqual(t, f.alice.UserId, f.bob.UserId)

	status, resp := f.do(t, "POST", "/v1/playlist", f.bob, `{"name":"bobs","description":""}`)
	require.Equal(t, 200, status)
	var playlist model.Playlist
	require.NoError(t, json.Unmarshal(resp.Data, &playlist))
	require.Equal(t, f.bob.UserId, playlist.OwnerId)

	status, resp = f.do(t, "PATCH", "/v1/playlist/"+id(playlist.PlaylistId), f.alice, `{"name":"mine","description":"now"}`)
	require.Equal(t, 403, status)
	require.Equal(t, "only owner can edit the playlist", resp.Message)

	status, _ = f.do(t, "PATCH", "/v1/playlist/"+id(playlist.PlaylistId), f.bob, `{"name":"still bobs","description":"ok"}`)
	require.Equal(t, 200, status)
}

func videosOf(t *testing.T, data json.RawMessage) string {
	t.Helper()
	var body struct {
		Videos json.RawMessage `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	return string(body.Videos)
}

func TestPing(t *testing.T) {
	f := newAPI(t)
	w := ut.PerformRequest(f.r, "GET", "/ping", nil)
	require.Equal(t, 200, w.Result().StatusCode())

	w = ut.PerformRequest(f.r, "GET", "/metrics", nil)
	require.Equal(t, 200, w.Result().StatusCode())
	require.Contains(t, string(w.Result().Body()), "go_goroutines")
}
