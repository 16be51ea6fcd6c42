package service

import (
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/viewer"
)

// Owned 有所有者的实体：评论、播放列表
type Owned interface {
	OwnerID() int64
}

type Decision int

const (
	Denied Decision = iota
	Allowed
)

// Authorize 只有所有者本人可以修改，匿名请求者一律拒绝
func Authorize(entity Owned, v viewer.Viewer) Decision {
	if v.Is(entity.OwnerID()) {
		return Allowed
	}
	return Denied
}

func requireOwner(entity Owned, v viewer.Viewer, deniedMsg string) error {
	if Authorize(entity, v) == Denied {
		return errno.AuthorizationFailedErr.WithMessage(deniedMsg)
	}
	return nil
}

// requireActor 写操作必须有登录用户
func requireActor(v viewer.Viewer) (int64, error) {
	id, ok := v.ID()
	if !ok {
		return 0, errno.TokenInvailedErr
	}
	return id, nil
}

func validID(id int64, name string) error {
	if id <= 0 {
		return errno.RequestErr.WithMessage("Invalid " + name)
	}
	return nil
}
