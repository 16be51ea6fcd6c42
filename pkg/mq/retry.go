package mq

import (
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const (
	// RetryCountHeader 重新投递次数
	RetryCountHeader = "x-retry-count"

	DeadLetterExchange = "interaction_events.dlx"
	DeadLetterQueue    = "interaction_events.dead"
)

// RetryPolicy 处理失败后的退避和最大尝试次数
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 5, BaseDelay: 500 * time.Millisecond, MaxDelay: 30 * time.Second}

// Backoff 第 attempt 次失败后的等待时间，指数增长并封顶
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	delay := p.BaseDelay
	for i := 1; i < attempt && delay < p.MaxDelay; i++ {
		delay *= 2
	}
	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

// Exhausted 已经失败 attempt 次后是否转入死信队列
func (p RetryPolicy) Exhausted(attempt int) bool {
	return attempt >= p.MaxAttempts
}

// retryCount 读取消息头里的重试次数，没有时为 0
func retryCount(headers amqp091.Table) int {
	switch v := headers[RetryCountHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}
