package model

import (
	"time"

	"VidTube.com/pkg/utils"
	"gorm.io/gorm"
)

// User 邮箱、密码和 refresh token 只存储，不对外投影
type User struct {
	UserId       int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserName     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	FullName     string    `gorm:"size:128" json:"fullName"`
	AvatarUrl    string    `gorm:"size:512" json:"avatar"`
	Email        string    `gorm:"size:128" json:"-"`
	Password     string    `gorm:"size:255" json:"-"`
	RefreshToken string    `gorm:"size:512" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserId == 0 {
		u.UserId = utils.NextID()
	}
	return nil
}

// OwnerSummary 对外可见的用户字段
type OwnerSummary struct {
	UserId    int64  `json:"id"`
	UserName  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarUrl string `json:"avatar"`
}
