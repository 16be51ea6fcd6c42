package mq

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	retry   RetryPolicy
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	err = ch.Qos(
		10,    // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	if err := declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return &Consumer{conn: conn, channel: ch, retry: DefaultRetryPolicy}, nil
}

// WithRetryPolicy 覆盖默认的重试策略
func (c *Consumer) WithRetryPolicy(policy RetryPolicy) *Consumer {
	c.retry = policy
	return c
}

func (c *Consumer) ConsumeLikeEvents(ctx context.Context, handler LikeEventHandler) error {
	return consume(ctx, c, LikeEventQueue, handler.HandleLikeEvent)
}

func (c *Consumer) ConsumeCommentEvents(ctx context.Context, handler CommentEventHandler) error {
	return consume(ctx, c, CommentEventQueue, handler.HandleCommentEvent)
}

func (c *Consumer) ConsumeSubscriptionEvents(ctx context.Context, handler SubscriptionEventHandler) error {
	return consume(ctx, c, SubscriptionEventQueue, handler.HandleSubscriptionEvent)
}

// Delivery 处理结果
type Delivery int

const (
	Ack Delivery = iota
	Reject
	Requeue
)

// Dispatch 解析失败的消息直接丢弃，处理失败的消息重新入队
func Dispatch[T any](ctx context.Context, body []byte, handle func(context.Context, *T) error) Delivery {
	var event T
	if err := json.Unmarshal(body, &event); err != nil {
		hlog.CtxErrorf(ctx, "Failed to unmarshal event: %v", err)
		return Reject
	}
	if err := handle(ctx, &event); err != nil {
		hlog.CtxErrorf(ctx, "Failed to handle event: %v", err)
		return Requeue
	}
	return Ack
}

func consume[T any](ctx context.Context, c *Consumer, queue string, handle func(context.Context, *T) error) error {
	msgs, err := c.channel.Consume(
		queue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer on %s: %w", queue, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				hlog.Infof("%s consumer context cancelled", queue)
				return
			case d, ok := <-msgs:
				if !ok {
					hlog.Infof("%s consumer channel closed", queue)
					return
				}

				switch Dispatch(ctx, d.Body, handle) {
				case Ack:
					d.Ack(false)
				case Reject:
					d.Nack(false, false)
				case Requeue:
					c.retryLater(ctx, queue, d)
				}
			}
		}
	}()

	return nil
}

// retryLater 退避后带着递增的重试次数重新投递，超过上限转入死信队列
func (c *Consumer) retryLater(ctx context.Context, queue string, d amqp091.Delivery) {
	attempt := retryCount(d.Headers) + 1
	if c.retry.Exhausted(attempt) {
		hlog.CtxWarnf(ctx, "%s message %s failed %d times, dead-lettering", queue, d.MessageId, attempt)
		d.Nack(false, false)
		return
	}

	timer := time.NewTimer(c.retry.Backoff(attempt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		d.Nack(false, true)
		return
	case <-timer.C:
	}

	headers := amqp091.Table{}
	for k, v := range d.Headers {
		headers[k] = v
	}
	headers[RetryCountHeader] = int32(attempt)
	err := c.channel.PublishWithContext(ctx, "", queue, false, false, amqp091.Publishing{
		Headers:      headers,
		ContentType:  d.ContentType,
		DeliveryMode: amqp091.Persistent,
		MessageId:    d.MessageId,
		Timestamp:    d.Timestamp,
		Body:         d.Body,
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "Failed to republish %s message %s: %v", queue, d.MessageId, err)
		d.Nack(false, true)
		return
	}
	d.Ack(false)
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
