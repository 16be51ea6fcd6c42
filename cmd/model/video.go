package model

import (
	"time"

	"VidTube.com/pkg/utils"
	"gorm.io/gorm"
)

type Video struct {
	VideoId     int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	OwnerId     int64     `gorm:"index:idx_videos_owner_created,priority:1;not null" json:"owner"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoUrl    string    `gorm:"size:512" json:"videoFile"`
	Thumbnail   string    `gorm:"size:512" json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `gorm:"not null;default:0" json:"views"`
	IsPublished bool      `gorm:"not null;default:true" json:"isPublished"`
	CreatedAt   time.Time `gorm:"index:idx_videos_owner_created,priority:2" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.VideoId == 0 {
		v.VideoId = utils.NextID()
	}
	return nil
}
