package service

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/paginator"
	"VidTube.com/pkg/viewer"
)

// ToggleSubscription 返回切换后是否已订阅
func (s *Service) ToggleSubscription(ctx context.Context, v viewer.Viewer, channelId int64) (bool, error) {
	actor, err := requireActor(v)
	if err != nil {
		return false, err
	}
	res, err := s.toggle.Toggle(ctx, actor, model.KindSubscription, channelId)
	if err != nil {
		return false, err
	}
	s.publish(ctx, mq.SubscriptionEventExchange, func(p mq.MessageProducer) error {
		return p.PublishSubscriptionEvent(ctx, mq.NewSubscriptionEvent(actor, channelId, res.Active))
	})
	return res.Active, nil
}

// ListChannelSubscribers subscribedToSubscriber 表示频道是否回订了该订阅者
func (s *Service) ListChannelSubscribers(ctx context.Context, v viewer.Viewer, channelId int64, req paginator.Request) (*paginator.Page[model.SubscriberView], error) {
	if err := validID(channelId, "channelId"); err != nil {
		return nil, err
	}
	return s.store.ListChannelSubscribers(ctx, channelId, v, req)
}

func (s *Service) ListSubscribedChannels(ctx context.Context, subscriberId int64, req paginator.Request) (*paginator.Page[model.SubscribedChannelView], error) {
	if err := validID(subscriberId, "subscriberId"); err != nil {
		return nil, err
	}
	return s.store.ListSubscribedChannels(ctx, subscriberId, req)
}
