package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"VidTube.com/cmd/interaction/dal/db"
	"VidTube.com/cmd/interaction/dal/db/dbtest"
	interredis "VidTube.com/cmd/interaction/infras/redis"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/metrics"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/paginator"
	"VidTube.com/pkg/viewer"
	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingProducer struct {
	mu            sync.Mutex
	likes         []*mq.LikeEvent
	comments      []*mq.CommentEvent
	subscriptions []*mq.SubscriptionEvent
	err           error
}

func (p *recordingProducer) PublishLikeEvent(ctx context.Context, event *mq.LikeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.likes = append(p.likes, event)
	return p.err
}

func (p *recordingProducer) PublishCommentEvent(ctx context.Context, event *mq.CommentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.comments = append(p.comments, event)
	return p.err
}

func (p *recordingProducer) PublishSubscriptionEvent(ctx context.Context, event *mq.SubscriptionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscriptions = append(p.subscriptions, event)
	return p.err
}

type fixture struct {
	gdb      *gorm.DB
	store    *db.FactStore
	svc      *Service
	producer *recordingProducer
	redis    *miniredis.Miniredis
	alice    *model.User
	bob      *model.User
	carol    *model.User
	video    *model.Video
}

func newFixture(t *testing.T, opts ...ToggleOption) *fixture {
	t.Helper()
	gdb, store := dbtest.New(t)
	mr := miniredis.RunT(t)
	client := interredis.NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })

	f := &fixture{gdb: gdb, store: store, producer: &recordingProducer{}, redis: mr}
	opts = append([]ToggleOption{WithLocker(interredis.NewToggleLocker(client, 0))}, opts...)
	f.svc = NewService(store, NewToggleEngine(store, opts...),
		WithProducer(f.producer),
		WithRateLimiter(interredis.NewCommentRateLimiter(client, 3, 0)),
		WithInbox(interredis.NewNotificationInbox(client, 0)),
	)
	f.alice = dbtest.User(t, store, "alice")
	f.bob = dbtest.User(t, store, "bob")
	f.carol = dbtest.User(t, store, "carol")
	f.video = dbtest.Video(t, store, f.bob.UserId, "intro", 42, true)
	return f
}

func msgOf(err error) string {
	return errno.ConvertErr(err).ErrMsg
}

// TestToggleSequential 两次切换依次返回 true、false，且不留下关系行
func TestToggleSequential(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	comment := dbtest.Comment(t, f.store, f.video.VideoId, f.bob.UserId, "first")

	for _, tc := range []struct {
		name   string
		kind   model.RelationKind
		target int64
		toggle func(context.Context, viewer.Viewer, int64) (bool, error)
	}{
		{"video like", model.KindVideoLike, f.video.VideoId, f.svc.ToggleVideoLike},
		{"comment like", model.KindCommentLike, comment.CommentId, f.svc.ToggleCommentLike},
		{"subscription", model.KindSubscription, f.bob.UserId, f.svc.ToggleSubscription},
	} {
		t.Run(tc.name, func(t *testing.T) {
			active, err := tc.toggle(ctx, viewer.Of(f.alice.UserId), tc.target)
			require.NoError(t, err)
			require.True(t, active)

			active, err = tc.toggle(ctx, viewer.Of(f.alice.UserId), tc.target)
			require.NoError(t, err)
			require.False(t, active)

			found, err := f.store.FindRelation(ctx, tc.kind, f.alice.UserId, tc.target)
			require.NoError(t, err)
			require.False(t, found)
		})
	}

	require.Len(t, f.producer.likes, 4)
	require.Equal(t, mq.ActionLike, f.producer.likes[0].ActionType)
	require.Equal(t, mq.ActionUnlike, f.producer.likes[1].ActionType)
	require.Equal(t, mq.EventCommentLike, f.producer.likes[2].EventType)
	require.Len(t, f.producer.subscriptions, 2)
	require.Equal(t, mq.ActionUnsubscribe, f.producer.subscriptions[1].ActionType)
}

func TestToggleValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.ToggleVideoLike(ctx, viewer.Anonymous(), f.video.VideoId)
	require.ErrorIs(t, err, errno.TokenInvailedErr)

	_, err = f.svc.ToggleVideoLike(ctx, viewer.Of(f.alice.UserId), 0)
	require.ErrorIs(t, err, errno.RequestErr)
	require.Equal(t, "Invalid videoId", msgOf(err))

	_, err = f.svc.ToggleCommentLike(ctx, viewer.Of(f.alice.UserId), 987654321)
	require.ErrorIs(t, err, errno.NotFoundErr)
	require.Equal(t, "Comment not found", msgOf(err))

	_, err = f.svc.ToggleSubscription(ctx, viewer.Of(f.alice.UserId), -1)
	require.Equal(t, "Invalid channelId", msgOf(err))

	_, err = f.svc.ToggleSubscription(ctx, viewer.Of(f.alice.UserId), 987654321)
	require.ErrorIs(t, err, errno.NotFoundErr)

	require.Empty(t, f.producer.likes)
	require.Empty(t, f.producer.subscriptions)
}

func TestSelfSubscription(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected by default", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ToggleSubscription(ctx, viewer.Of(f.alice.UserId), f.alice.UserId)
		require.ErrorIs(t, err, errno.RequestErr)
		require.Equal(t, "You cannot subscribe to your own channel", msgOf(err))
	})

	t.Run("allowed when configured", func(t *testing.T) {
		f := newFixture(t, WithSelfSubscription(true))
		active, err := f.svc.ToggleSubscription(ctx, viewer.Of(f.alice.UserId), f.alice.UserId)
		require.NoError(t, err)
		require.True(t, active)
	})
}

// racingStore 模拟另一个请求在检查和创建之间抢先创建了关系
type racingStore struct {
	*db.FactStore
	raced bool
}

func (s *racingStore) FindRelation(ctx context.Context, kind model.RelationKind, actor, target int64) (bool, error) {
	if !s.raced {
		s.raced = true
		if _, err := s.FactStore.CreateRelation(ctx, kind, actor, target); err != nil {
			return false, err
		}
		return false, nil
	}
	return s.FactStore.FindRelation(ctx, kind, actor, target)
}

// TestToggleDuplicateCreate 唯一索引冲突时转为删除，不产生重复行
func TestToggleDuplicateCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	store := &racingStore{FactStore: f.store}
	engine := NewToggleEngine(store)

	before := testutil.ToFloat64(metrics.ToggleDuplicateConversions.WithLabelValues(string(model.KindVideoLike)))
	res, err := engine.Toggle(ctx, f.alice.UserId, model.KindVideoLike, f.video.VideoId)
	require.NoError(t, err)
	require.False(t, res.Active)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.ToggleDuplicateConversions.WithLabelValues(string(model.KindVideoLike))))

	found, err := f.store.FindRelation(ctx, model.KindVideoLike, f.alice.UserId, f.video.VideoId)
	require.NoError(t, err)
	require.False(t, found)
}

// TestToggleConcurrent 并发切换后关系行最多一条
func TestToggleConcurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.ToggleVideoLike(ctx, viewer.Of(f.alice.UserId), f.video.VideoId)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var rows int64
	require.NoError(t, f.gdb.Model(&model.Like{}).
		Where("liked_by = ? AND video_id = ?", f.alice.UserId, f.video.VideoId).Count(&rows).Error)
	require.LessOrEqual(t, rows, int64(1))
}

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, kind string, actor, target int64) (func(), error) {
	return nil, errors.New("redis down")
}

func TestToggleWithoutLockBackend(t *testing.T) {
	f := newFixture(t)
	engine := NewToggleEngine(f.store, WithLocker(failingLocker{}))
	res, err := engine.Toggle(context.Background(), f.alice.UserId, model.KindVideoLike, f.video.VideoId)
	require.NoError(t, err)
	require.True(t, res.Active)
}

func TestCommentLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := viewer.Of(f.alice.UserId)

	comment, err := f.svc.AddComment(ctx, alice, f.video.VideoId, "  great video  ")
	require.NoError(t, err)
	require.Equal(t, "great video", comment.Content)
	require.Equal(t, f.alice.UserId, comment.OwnerId)

	updated, err := f.svc.UpdateComment(ctx, alice, comment.CommentId, "edited")
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Content)

	deletedId, err := f.svc.DeleteComment(ctx, alice, comment.CommentId)
	require.NoError(t, err)
	require.Equal(t, comment.CommentId, deletedId)

	_, err = f.store.GetComment(ctx, comment.CommentId)
	require.ErrorIs(t, err, errno.NotFoundErr)

	require.Len(t, f.producer.comments, 3)
	require.Equal(t, mq.CommentCreated, f.producer.comments[0].Type)
	require.Equal(t, mq.CommentUpdated, f.producer.comments[1].Type)
	require.Equal(t, mq.CommentDeleted, f.producer.comments[2].Type)
}

// TestCommentErrorOrder 参数校验、不存在、非所有者依次检查
func TestCommentErrorOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	comment := dbtest.Comment(t, f.store, f.video.VideoId, f.alice.UserId, "mine")

	_, err := f.svc.AddComment(ctx, viewer.Of(f.alice.UserId), f.video.VideoId, "   ")
	require.Equal(t, "Content is required", msgOf(err))

	_, err = f.svc.AddComment(ctx, viewer.Of(f.alice.UserId), 0, "hi")
	require.Equal(t, "Invalid videoId", msgOf(err))

	_, err = f.svc.AddComment(ctx, viewer.Of(f.alice.UserId), f.video.VideoId, strings.Repeat("字", 501))
	require.ErrorIs(t, err, errno.RequestErr)

	_, err = f.svc.AddComment(ctx, viewer.Of(f.alice.UserId), 987654321, "hi")
	require.ErrorIs(t, err, errno.NotFoundErr)

	_, err = f.svc.UpdateComment(ctx, viewer.Of(f.bob.UserId), 0, "x")
	require.Equal(t, "Invalid commentId", msgOf(err))

	_, err = f.svc.UpdateComment(ctx, viewer.Of(f.bob.UserId), 987654321, "x")
	require.Equal(t, "Comment not found", msgOf(err))

	_, err = f.svc.UpdateComment(ctx, viewer.Of(f.bob.UserId), comment.CommentId, "x")
	require.ErrorIs(t, err, errno.AuthorizationFailedErr)
	require.Equal(t, "Only comment owner can edit their comment", msgOf(err))

	_, err = f.svc.DeleteComment(ctx, viewer.Of(f.bob.UserId), comment.CommentId)
	require.Equal(t, "Only comment owner can delete their comment", msgOf(err))

	_, err = f.svc.DeleteComment(ctx, viewer.Anonymous(), comment.CommentId)
	require.ErrorIs(t, err, errno.TokenInvailedErr)

	stored, err := f.store.GetComment(ctx, comment.CommentId)
	require.NoError(t, err)
	require.Equal(t, "mine", stored.Content)
}

func TestCommentRateLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.svc.AddComment(ctx, viewer.Of(f.alice.UserId), f.video.VideoId, "spam")
		require.NoError(t, err)
	}
	_, err := f.svc.AddComment(ctx, viewer.Of(f.alice.UserId), f.video.VideoId, "spam")
	require.ErrorIs(t, err, errno.TooManyRequestErr)

	// 限流后端不可用时不阻塞评论
	f.redis.Close()
	_, err = f.svc.AddComment(ctx, viewer.Of(f.bob.UserId), f.video.VideoId, "still works")
	require.NoError(t, err)
}

// TestCommentFeedScenario 视频 3 条评论，C1 被 A、B 点赞
func TestCommentFeedScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c1, err := f.svc.AddComment(ctx, viewer.Of(f.carol.UserId), f.video.VideoId, "c1")
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, viewer.Of(f.carol.UserId), f.video.VideoId, "c2")
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, viewer.Of(f.bob.UserId), f.video.VideoId, "c3")
	require.NoError(t, err)

	for _, u := range []*model.User{f.alice, f.bob} {
		active, err := f.svc.ToggleCommentLike(ctx, viewer.Of(u.UserId), c1.CommentId)
		require.NoError(t, err)
		require.True(t, active)
	}

	rowFor := func(v viewer.Viewer) model.CommentView {
		page, err := f.svc.ListVideoComments(ctx, v, f.video.VideoId, paginator.Request{})
		require.NoError(t, err)
		require.Equal(t, int64(3), page.TotalItems)
		require.Equal(t, 10, page.Limit)
		for _, row := range page.Items {
			if row.CommentId == c1.CommentId {
				return row
			}
		}
		t.Fatalf("comment %d missing from feed", c1.CommentId)
		return model.CommentView{}
	}

	asAlice := rowFor(viewer.Of(f.alice.UserId))
	require.Equal(t, int64(2), asAlice.LikesCount)
	require.True(t, asAlice.IsLiked)
	require.Equal(t, "carol", asAlice.Owner.UserName)

	require.False(t, rowFor(viewer.Of(f.carol.UserId)).IsLiked)
	require.False(t, rowFor(viewer.Anonymous()).IsLiked)

	page, err := f.svc.ListVideoComments(ctx, viewer.Anonymous(), f.video.VideoId, paginator.Request{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.Equal(t, 2, page.TotalPages)
	require.False(t, page.HasNextPage)
}

// TestSubscriptionScenario 订阅后再次切换，频道订阅者列表中不再有该用户
func TestSubscriptionScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := viewer.Of(f.alice.UserId)

	active, err := f.svc.ToggleSubscription(ctx, alice, f.bob.UserId)
	require.NoError(t, err)
	require.True(t, active)

	subs, err := f.svc.ListChannelSubscribers(ctx, viewer.Anonymous(), f.bob.UserId, paginator.Request{})
	require.NoError(t, err)
	require.Len(t, subs.Items, 1)
	require.Equal(t, f.alice.UserId, subs.Items[0].UserId)
	require.False(t, subs.Items[0].SubscribedToSubscriber)

	channels, err := f.svc.ListSubscribedChannels(ctx, f.alice.UserId, paginator.Request{})
	require.NoError(t, err)
	require.Len(t, channels.Items, 1)
	require.NotNil(t, channels.Items[0].LatestVideo)
	require.Equal(t, f.video.VideoId, channels.Items[0].LatestVideo.VideoId)

	active, err = f.svc.ToggleSubscription(ctx, alice, f.bob.UserId)
	require.NoError(t, err)
	require.False(t, active)

	subs, err = f.svc.ListChannelSubscribers(ctx, viewer.Anonymous(), f.bob.UserId, paginator.Request{})
	require.NoError(t, err)
	require.Empty(t, subs.Items)

	_, err = f.svc.ListSubscribedChannels(ctx, 0, paginator.Request{})
	require.Equal(t, "Invalid subscriberId", msgOf(err))
}

func TestLikedVideos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	second := dbtest.Video(t, f.store, f.carol.UserId, "second", 7, true)

	for _, id := range []int64{f.video.VideoId, second.VideoId} {
		_, err := f.svc.ToggleVideoLike(ctx, viewer.Of(f.alice.UserId), id)
		require.NoError(t, err)
	}

	page, err := f.svc.ListLikedVideos(ctx, viewer.Of(f.alice.UserId), paginator.Request{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	_, err = f.svc.ListLikedVideos(ctx, viewer.Anonymous(), paginator.Request{})
	require.ErrorIs(t, err, errno.TokenInvailedErr)
}

func TestPlaylistLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := viewer.Of(f.alice.UserId)
	hidden := dbtest.Video(t, f.store, f.bob.UserId, "draft", 100, false)

	_, err := f.svc.CreatePlaylist(ctx, alice, "  ", "desc")
	require.Equal(t, "name is required", msgOf(err))

	playlist, err := f.svc.CreatePlaylist(ctx, alice, "favourites", "")
	require.NoError(t, err)
	require.Empty(t, playlist.Videos)

	added, err := f.svc.AddVideoToPlaylist(ctx, alice, playlist.PlaylistId, f.video.VideoId)
	require.NoError(t, err)
	require.Equal(t, []int64{f.video.VideoId}, added.Videos)

	added, err = f.svc.AddVideoToPlaylist(ctx, alice, playlist.PlaylistId, f.video.VideoId)
	require.NoError(t, err)
	require.Equal(t, []int64{f.video.VideoId}, added.Videos)

	added, err = f.svc.AddVideoToPlaylist(ctx, alice, playlist.PlaylistId, hidden.VideoId)
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{f.video.VideoId, hidden.VideoId}, added.Videos)

	summaries, err := f.svc.GetUserPlaylists(ctx, f.alice.UserId, paginator.Request{})
	require.NoError(t, err)
	require.Len(t, summaries.Items, 1)
	require.Equal(t, int64(2), summaries.Items[0].TotalVideos)
	require.Equal(t, int64(142), summaries.Items[0].TotalViews)

	detail, err := f.svc.GetPlaylistById(ctx, playlist.PlaylistId)
	require.NoError(t, err)
	require.Len(t, detail.Videos, 1)
	require.Equal(t, "bob", detail.Videos[0].Owner.UserName)
	require.Equal(t, "alice", detail.Owner.UserName)

	removed, err := f.svc.RemoveVideoFromPlaylist(ctx, alice, playlist.PlaylistId, hidden.VideoId)
	require.NoError(t, err)
	require.Equal(t, []int64{f.video.VideoId}, removed.Videos)
	require.Equal(t, "favourites", removed.Name)

	_, err = f.svc.UpdatePlaylist(ctx, alice, playlist.PlaylistId, "renamed", "")
	require.Equal(t, "name and description are required", msgOf(err))

	updated, err := f.svc.UpdatePlaylist(ctx, alice, playlist.PlaylistId, "renamed", "best of")
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Name)
	require.Equal(t, []int64{f.video.VideoId}, updated.Videos)

	require.NoError(t, f.svc.DeletePlaylist(ctx, alice, playlist.PlaylistId))
	_, err = f.svc.GetPlaylistById(ctx, playlist.PlaylistId)
	require.Equal(t, "Playlist not found", msgOf(err))
}

func TestPlaylistOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	playlist, err := f.svc.CreatePlaylist(ctx, viewer.Of(f.alice.UserId), "mine", "")
	require.NoError(t, err)
	bob := viewer.Of(f.bob.UserId)

	_, err = f.svc.AddVideoToPlaylist(ctx, bob, playlist.PlaylistId, f.video.VideoId)
	require.Equal(t, "only owner can add video to their playlist", msgOf(err))

	_, err = f.svc.AddVideoToPlaylist(ctx, bob, playlist.PlaylistId, 987654321)
	require.ErrorIs(t, err, errno.NotFoundErr)

	_, err = f.svc.AddVideoToPlaylist(ctx, bob, 0, f.video.VideoId)
	require.Equal(t, "Invalid PlaylistId or videoId", msgOf(err))

	_, err = f.svc.RemoveVideoFromPlaylist(ctx, bob, playlist.PlaylistId, f.video.VideoId)
	require.Equal(t, "only owner can remove video from their playlist", msgOf(err))

	_, err = f.svc.UpdatePlaylist(ctx, bob, playlist.PlaylistId, "stolen", "mine now")
	require.Equal(t, "only owner can edit the playlist", msgOf(err))

	err = f.svc.DeletePlaylist(ctx, bob, playlist.PlaylistId)
	require.ErrorIs(t, err, errno.AuthorizationFailedErr)
	require.Equal(t, "only owner can delete the playlist", msgOf(err))

	err = f.svc.DeletePlaylist(ctx, bob, 987654321)
	require.ErrorIs(t, err, errno.NotFoundErr)

	stored, err := f.store.GetPlaylist(ctx, playlist.PlaylistId)
	require.NoError(t, err)
	require.Equal(t, "mine", stored.Name)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.producer.err = errors.New("broker down")
	active, err := f.svc.ToggleVideoLike(context.Background(), viewer.Of(f.alice.UserId), f.video.VideoId)
	require.NoError(t, err)
	require.True(t, active)
}

func TestListNotifications(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	client := interredis.NewClient(f.redis.Addr(), "", 0)
	defer client.Close()
	inbox := interredis.NewNotificationInbox(client, 0)
	require.NoError(t, inbox.Push(ctx, f.bob.UserId, &model.Notification{Type: mq.EventVideoLike, ActorId: f.alice.UserId, TargetId: f.video.VideoId}))

	items, err := f.svc.ListNotifications(ctx, viewer.Of(f.bob.UserId), 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, f.alice.UserId, items[0].ActorId)

	_, err = f.svc.ListNotifications(ctx, viewer.Anonymous(), 0)
	require.ErrorIs(t, err, errno.TokenInvailedErr)

	empty, err := NewService(f.store, nil).ListNotifications(ctx, viewer.Of(f.bob.UserId), 5)
	require.NoError(t, err)
	require.Empty(t, empty)
}
