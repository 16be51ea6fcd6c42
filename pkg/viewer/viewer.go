// Package viewer carries the optional identity of whoever issued a request.
package viewer

import "strconv"

// Viewer 请求者身份，可能为匿名
type Viewer struct {
	id int64
	ok bool
}

func Anonymous() Viewer {
	return Viewer{}
}

// Of 非正数 id 视为匿名
func Of(id int64) Viewer {
	if id <= 0 {
		return Viewer{}
	}
	return Viewer{id: id, ok: true}
}

func (v Viewer) ID() (int64, bool) {
	return v.id, v.ok
}

func (v Viewer) IsAnonymous() bool {
	return !v.ok
}

// Is 判断请求者是否就是给定用户，匿名请求者永远返回 false
func (v Viewer) Is(userId int64) bool {
	return v.ok && v.id == userId
}

func (v Viewer) String() string {
	if !v.ok {
		return "anonymous"
	}
	return strconv.FormatInt(v.id, 10)
}
