package db

import (
	"context"
	"strings"
	"time"

	"VidTube.com/pkg/metrics"
	"VidTube.com/pkg/paginator"
	"gorm.io/gorm"
)

// Pipeline 按阶段组合的聚合查询。
// Match 对应 WHERE，Lookup 对应 JOIN，Project/AddField 组成 SELECT 列表，
// 每次执行都在新的会话上重放全部阶段，所以同一个 Pipeline 可以先 Count 再 Fetch。
type Pipeline struct {
	name      string
	from      string
	fromArgs  []interface{}
	stages    []func(*gorm.DB) *gorm.DB
	fields    []string
	fieldArgs []interface{}
	orders    []string
}

func NewPipeline(name, from string, args ...interface{}) *Pipeline {
	return &Pipeline{name: name, from: from, fromArgs: args}
}

func (p *Pipeline) Name() string {
	return p.name
}

func (p *Pipeline) Match(query string, args ...interface{}) *Pipeline {
	p.stages = append(p.stages, func(tx *gorm.DB) *gorm.DB {
		return tx.Where(query, args...)
	})
	return p
}

func (p *Pipeline) Lookup(join string, args ...interface{}) *Pipeline {
	p.stages = append(p.stages, func(tx *gorm.DB) *gorm.DB {
		return tx.Joins(join, args...)
	})
	return p
}

func (p *Pipeline) Project(fields ...string) *Pipeline {
	p.fields = append(p.fields, fields...)
	return p
}

// AddField 计算字段，表达式需要带 AS 别名
func (p *Pipeline) AddField(expr string, args ...interface{}) *Pipeline {
	p.fields = append(p.fields, expr)
	p.fieldArgs = append(p.fieldArgs, args...)
	return p
}

func (p *Pipeline) Group(columns string) *Pipeline {
	p.stages = append(p.stages, func(tx *gorm.DB) *gorm.DB {
		return tx.Group(columns)
	})
	return p
}

func (p *Pipeline) Sort(order string) *Pipeline {
	p.orders = append(p.orders, order)
	return p
}

// Build 在 db 上重放所有阶段
func (p *Pipeline) Build(db *gorm.DB) *gorm.DB {
	tx := db.Table(p.from, p.fromArgs...)
	for _, stage := range p.stages {
		tx = stage(tx)
	}
	if len(p.fields) > 0 {
		tx = tx.Select(strings.Join(p.fields, ", "), p.fieldArgs...)
	}
	for _, order := range p.orders {
		tx = tx.Order(order)
	}
	return tx
}

func (p *Pipeline) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	sub := p.Build(db.WithContext(ctx))
	if err := db.WithContext(ctx).Table("(?) AS agg", sub).Count(&total).Error; err != nil {
		return 0, mysqlErr(err, "Failed to count "+p.name)
	}
	return total, nil
}

// Fetch limit <= 0 时返回全部结果
func (p *Pipeline) Fetch(ctx context.Context, db *gorm.DB, offset, limit int, dest interface{}) error {
	tx := p.Build(db.WithContext(ctx))
	if limit > 0 {
		tx = tx.Offset(offset).Limit(limit)
	}
	if err := tx.Scan(dest).Error; err != nil {
		return mysqlErr(err, "Failed to query "+p.name)
	}
	return nil
}

type pipelineSource[T any] struct {
	db *gorm.DB
	p  *Pipeline
}

func (s pipelineSource[T]) Count(ctx context.Context) (int64, error) {
	return s.p.Count(ctx, s.db)
}

func (s pipelineSource[T]) Fetch(ctx context.Context, offset, limit int) ([]T, error) {
	rows := make([]T, 0)
	if err := s.p.Fetch(ctx, s.db, offset, limit, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// runAll 执行不分页的查询
func runAll[T any](ctx context.Context, db *gorm.DB, p *Pipeline) (rows []T, err error) {
	defer func(start time.Time) { metrics.ObserveQuery(p.name, start, err) }(time.Now())
	return pipelineSource[T]{db: db, p: p}.Fetch(ctx, 0, 0)
}

// runPage 分页执行；req 未指定页码和条数时返回全部结果
func runPage[T any](ctx context.Context, db *gorm.DB, p *Pipeline, req paginator.Request) (page *paginator.Page[T], err error) {
	defer func(start time.Time) { metrics.ObserveQuery(p.name, start, err) }(time.Now())
	if !req.Paged() {
		rows, err := pipelineSource[T]{db: db, p: p}.Fetch(ctx, 0, 0)
		if err != nil {
			return nil, err
		}
		return paginator.All(rows), nil
	}
	return paginator.Paginate[T](ctx, pipelineSource[T]{db: db, p: p}, req.Page, req.Limit)
}
