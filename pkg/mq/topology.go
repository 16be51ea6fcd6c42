package mq

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

var bindings = []struct {
	exchange string
	queue    string
}{
	{LikeEventExchange, LikeEventQueue},
	{CommentEventExchange, CommentEventQueue},
	{SubscriptionEventExchange, SubscriptionEventQueue},
}

// declareTopology 生产者和消费者都会声明，先启动的一方建好交换机和队列
func declareTopology(ch *amqp091.Channel) error {
	if err := declareDeadLetter(ch); err != nil {
		return err
	}
	for _, b := range bindings {
		err := ch.ExchangeDeclare(
			b.exchange,
			"direct",
			true,  // durable
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", b.exchange, err)
		}

		_, err = ch.QueueDeclare(
			b.queue,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			amqp091.Table{"x-dead-letter-exchange": DeadLetterExchange},
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", b.queue, err)
		}

		if err = ch.QueueBind(b.queue, "", b.exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s: %w", b.queue, err)
		}
	}
	return nil
}

// declareDeadLetter 重试耗尽的事件进入死信队列等待人工处理
func declareDeadLetter(ch *amqp091.Channel) error {
	if err := ch.ExchangeDeclare(DeadLetterExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", DeadLetterExchange, err)
	}
	if _, err := ch.QueueDeclare(DeadLetterQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", DeadLetterQueue, err)
	}
	if err := ch.QueueBind(DeadLetterQueue, "", DeadLetterExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", DeadLetterQueue, err)
	}
	return nil
}
