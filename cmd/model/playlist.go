package model

import (
	"time"

	"VidTube.com/pkg/utils"
	"gorm.io/gorm"
)

type Playlist struct {
	PlaylistId  int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerId     int64     `gorm:"index;not null" json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	// Videos 成员视频 id，按加入顺序，不落库
	Videos []int64 `gorm:"-" json:"videos"`
}

func (Playlist) TableName() string {
	return "playlists"
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.PlaylistId == 0 {
		p.PlaylistId = utils.NextID()
	}
	return nil
}

func (p *Playlist) OwnerID() int64 {
	return p.OwnerId
}

// PlaylistVideo 联合主键保证播放列表内视频不重复
type PlaylistVideo struct {
	PlaylistId int64 `gorm:"primaryKey;autoIncrement:false"`
	VideoId    int64 `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt  time.Time
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
