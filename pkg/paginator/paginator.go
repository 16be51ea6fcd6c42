// Package paginator windows a counted result set into numbered pages.
package paginator

import (
	"context"

	"VidTube.com/pkg/constants"
)

// Page 分页结果
type Page[T any] struct {
	Items       []T   `json:"items"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	NextPage    *int  `json:"nextPage"`
	PrevPage    *int  `json:"prevPage"`
}

// Request 页码和每页条数，都为 0 表示不分页
type Request struct {
	Page  int
	Limit int
}

func (r Request) Paged() bool {
	return r.Page > 0 || r.Limit > 0
}

// Source 可分页的数据源
type Source[T any] interface {
	Count(ctx context.Context) (int64, error)
	Fetch(ctx context.Context, offset, limit int) ([]T, error)
}

// Normalize 非正数使用默认值，limit 不超过 MaxLimit
func Normalize(page, limit int) (int, int) {
	if page <= 0 {
		page = constants.DefaultPage
	}
	if limit <= 0 {
		limit = constants.DefaultLimit
	}
	if limit > constants.MaxLimit {
		limit = constants.MaxLimit
	}
	return page, limit
}

// TotalPages ceil(total / limit)
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Paginate 统计总数后只取请求页的数据；页码越界返回空页而不是错误
func Paginate[T any](ctx context.Context, src Source[T], page, limit int) (*Page[T], error) {
	page, limit = Normalize(page, limit)

	total, err := src.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0)
	// 先比较页码再计算 offset，超大页码不会溢出
	if page <= TotalPages(total, limit) {
		rows, err := src.Fetch(ctx, (page-1)*limit, limit)
		if err != nil {
			return nil, err
		}
		items = append(items, rows...)
	}

	return build(items, page, limit, total), nil
}

// All 把未分页的完整结果包装成单页
func All[T any](items []T) *Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return build(items, constants.DefaultPage, len(items), int64(len(items)))
}

func build[T any](items []T, page, limit int, total int64) *Page[T] {
	totalPages := TotalPages(total, limit)
	p := &Page[T]{
		Items:       items,
		Page:        page,
		Limit:       limit,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	return p
}
