package db

import (
	"context"

	"VidTube.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *FactStore) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.conn(ctx).Create(user).Error; err != nil {
		return mysqlErr(err, "Failed to create user")
	}
	return nil
}

func (s *FactStore) GetUser(ctx context.Context, userId int64) (*model.User, error) {
	user := &model.User{}
	if err := s.conn(ctx).Where("user_id = ?", userId).First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User not found")
		}
		return nil, mysqlErr(err, "Failed to get user")
	}
	return user, nil
}

func (s *FactStore) UserExists(ctx context.Context, userId int64) (bool, error) {
	return s.exists(ctx, &model.User{}, "user_id = ?", userId)
}

func (s *FactStore) exists(ctx context.Context, m interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := s.conn(ctx).Model(m).Where(query, args...).Limit(1).Count(&count).Error; err != nil {
		return false, mysqlErr(err, "Failed to check existence")
	}
	return count > 0, nil
}
