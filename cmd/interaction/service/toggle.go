package service

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/metrics"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// RelationStore 切换引擎依赖的关系存储，由 db.FactStore 实现
type RelationStore interface {
	TargetExists(ctx context.Context, kind model.RelationKind, target int64) (bool, error)
	FindRelation(ctx context.Context, kind model.RelationKind, actor, target int64) (bool, error)
	CreateRelation(ctx context.Context, kind model.RelationKind, actor, target int64) (bool, error)
	DeleteRelation(ctx context.Context, kind model.RelationKind, actor, target int64) (int64, error)
}

// Locker 对同一个 (kind, actor, target) 加分布式锁
type Locker interface {
	Lock(ctx context.Context, kind string, actor, target int64) (func(), error)
}

type ToggleResult struct {
	Active bool
}

// ToggleEngine 存在则删除，不存在则创建
type ToggleEngine struct {
	store     RelationStore
	locker    Locker
	allowSelf bool
}

type ToggleOption func(*ToggleEngine)

// WithLocker 不设置时只依赖唯一索引保证不重复
func WithLocker(locker Locker) ToggleOption {
	return func(e *ToggleEngine) {
		e.locker = locker
	}
}

func WithSelfSubscription(allow bool) ToggleOption {
	return func(e *ToggleEngine) {
		e.allowSelf = allow
	}
}

func NewToggleEngine(store RelationStore, opts ...ToggleOption) *ToggleEngine {
	e := &ToggleEngine{store: store}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func targetName(kind model.RelationKind) string {
	switch kind {
	case model.KindVideoLike:
		return "videoId"
	case model.KindCommentLike:
		return "commentId"
	default:
		return "channelId"
	}
}

func notFoundName(kind model.RelationKind) string {
	switch kind {
	case model.KindVideoLike:
		return "Video not found"
	case model.KindCommentLike:
		return "Comment not found"
	default:
		return "Channel not found"
	}
}

// Toggle 返回切换后的状态
func (e *ToggleEngine) Toggle(ctx context.Context, actor int64, kind model.RelationKind, target int64) (*ToggleResult, error) {
	if actor <= 0 {
		return nil, errno.TokenInvailedErr
	}
	if err := validID(target, targetName(kind)); err != nil {
		return nil, err
	}
	if kind == model.KindSubscription && actor == target && !e.allowSelf {
		return nil, errno.RequestErr.WithMessage("You cannot subscribe to your own channel")
	}

	exists, err := e.store.TargetExists(ctx, kind, target)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errno.NotFoundErr.WithMessage(notFoundName(kind))
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, string(kind), actor, target)
		if err != nil {
			// 锁不可用时仍由唯一索引兜底
			hlog.CtxWarnf(ctx, "toggle lock unavailable for %s %d->%d: %v", kind, actor, target, err)
		} else {
			defer unlock()
		}
	}

	active, err := e.flip(ctx, actor, kind, target)
	if err != nil {
		return nil, err
	}
	metrics.RecordToggle(string(kind), active)
	return &ToggleResult{Active: active}, nil
}

func (e *ToggleEngine) flip(ctx context.Context, actor int64, kind model.RelationKind, target int64) (bool, error) {
	found, err := e.store.FindRelation(ctx, kind, actor, target)
	if err != nil {
		return false, err
	}
	if found {
		if _, err := e.store.DeleteRelation(ctx, kind, actor, target); err != nil {
			return false, err
		}
		return false, nil
	}

	created, err := e.store.CreateRelation(ctx, kind, actor, target)
	if err != nil {
		return false, err
	}
	if created {
		return true, nil
	}

	// 并发创建输给了另一个请求，按已存在处理转为删除
	metrics.ToggleDuplicateConversions.WithLabelValues(string(kind)).Inc()
	hlog.CtxInfof(ctx, "duplicate %s %d->%d converted to delete", kind, actor, target)
	rows, err := e.store.DeleteRelation(ctx, kind, actor, target)
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, errors.Wrapf(errno.PersistenceErr, "%s %d->%d changed concurrently", kind, actor, target)
	}
	return false, nil
}
