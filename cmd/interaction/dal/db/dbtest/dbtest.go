// Package dbtest opens a migrated in-memory SQLite fact store for tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"VidTube.com/cmd/interaction/dal/db"
	"VidTube.com/cmd/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New 每个测试独立的内存库
func New(t testing.TB) (*gorm.DB, *db.FactStore) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_busy_timeout=5000", name, time.Now().UnixNano())

	gdb, err := db.Open(sqlite.Open(dsn))
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb, db.NewFactStore(gdb)
}

func User(t testing.TB, store *db.FactStore, username string) *model.User {
	t.Helper()
	u := &model.User{
		UserName:  username,
		FullName:  strings.ToUpper(username[:1]) + username[1:],
		AvatarUrl: "https://cdn.example.com/" + username + ".png",
		Email:     username + "@example.com",
		Password:  "hashed",
	}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

func Video(t testing.TB, store *db.FactStore, ownerId int64, title string, views int64, published bool) *model.Video {
	t.Helper()
	v := &model.Video{
		OwnerId:     ownerId,
		Title:       title,
		Description: title + " description",
		VideoUrl:    "https://cdn.example.com/" + title + ".mp4",
		Thumbnail:   "https://cdn.example.com/" + title + ".jpg",
		Duration:    60,
		Views:       views,
		IsPublished: published,
	}
	require.NoError(t, store.CreateVideo(context.Background(), v))
	if !published {
		// default:true 会让 gorm 忽略零值 false
		require.NoError(t, store.SetVideoPublished(context.Background(), v.VideoId, false))
	}
	return v
}

func Comment(t testing.TB, store *db.FactStore, videoId, ownerId int64, content string) *model.Comment {
	t.Helper()
	c := &model.Comment{VideoId: videoId, OwnerId: ownerId, Content: content}
	require.NoError(t, store.CreateComment(context.Background(), c))
	return c
}
