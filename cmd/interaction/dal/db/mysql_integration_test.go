//go:build integration

package db_test

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"VidTube.com/cmd/interaction/dal/db"
	"VidTube.com/cmd/interaction/dal/db/dbtest"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/viewer"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func openMysql(t *testing.T) *gorm.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("docker not available")
	}

	ctx = context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.0",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "root",
				"MYSQL_DATABASE":      "vidtube",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("ready for connections").WithOccurrence(2),
				wait.ForListeningPort("3306/tcp"),
			).WithDeadline(3 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate mysql container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("root:root@tcp(%s:%s)/vidtube?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true", host, port.Port())
	gdb, err := db.Open(mysql.Open(dsn))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// TestMysqlFactStore 在真实 MySQL 上验证唯一索引、check 约束和聚合查询
func TestMysqlFactStore(t *testing.T) {
	ctx := context.Background()
	gdb := openMysql(t)
	store := db.NewFactStore(gdb)

	alice := dbtest.User(t, store, "alice")
	bob := dbtest.User(t, store, "bob")
	video := dbtest.Video(t, store, bob.UserId, "intro", 5, true)
	comment := dbtest.Comment(t, store, video.VideoId, bob.UserId, "first")

	created, err := store.CreateRelation(ctx, model.KindCommentLike, alice.UserId, comment.CommentId)
	require.NoError(t, err)
	require.True(t, created)
	created, err = store.CreateRelation(ctx, model.KindCommentLike, alice.UserId, comment.CommentId)
	require.NoError(t, err)
	require.False(t, created)

	err = gdb.Exec("INSERT INTO likes (like_id, liked_by, video_id, comment_id, created_at, updated_at) VALUES (?, ?, NULL, NULL, NOW(), NOW())",
		int64(1), alice.UserId).Error
	require.Error(t, err)

	page, err := store.ListVideoComments(ctx, video.VideoId, viewer.Of(alice.UserId), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.True(t, page.Items[0].IsLiked)
	require.Equal(t, int64(1), page.Items[0].LikesCount)

	updated, err := store.UpdateCommentContent(ctx, comment.CommentId, "first")
	require.NoError(t, err)
	require.Equal(t, "first", updated.Content)
}
