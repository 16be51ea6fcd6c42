package db

import (
	"context"

	"VidTube.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// FactStore 六张事实表的读写入口
type FactStore struct {
	db *gorm.DB
}

func NewFactStore(db *gorm.DB) *FactStore {
	return &FactStore{db: db}
}

func (s *FactStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// mysqlErr 保留原始错误作为消息，对外只暴露 MysqlErr
func mysqlErr(err error, msg string) error {
	return errors.Wrapf(errno.MysqlErr, "%s: %v", msg, err)
}

func notFound(msg string) error {
	return errno.NotFoundErr.WithMessage(msg)
}
