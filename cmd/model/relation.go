package model

import (
	"time"

	"VidTube.com/pkg/utils"
	"gorm.io/gorm"
)

// RelationKind 可切换的二元关系
type RelationKind string

const (
	KindVideoLike    RelationKind = "video_like"
	KindCommentLike  RelationKind = "comment_like"
	KindSubscription RelationKind = "subscription"
)

// Subscription 每对 (subscriber, channel) 至多一行
type Subscription struct {
	SubscriptionId int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	SubscriberId   int64     `gorm:"not null;uniqueIndex:idx_subscriptions_pair,priority:1" json:"subscriber"`
	ChannelId      int64     `gorm:"not null;uniqueIndex:idx_subscriptions_pair,priority:2;index" json:"channel"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.SubscriptionId == 0 {
		s.SubscriptionId = utils.NextID()
	}
	return nil
}
