package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/unclebandit/simple-crm/internal/model"
)

type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher publishes payloads as persistent JSON messages on a durable RabbitMQ queue.
// The topic argument of Publish is ignored: everything goes to the configured queue.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel amqpChannel
	queue   string
}

// DialAMQP connects to RabbitMQ and declares the durable queue.
func DialAMQP(url, queueName string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := declareQueue(ch, queueName); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &AMQPPublisher{conn: conn, channel: ch, queue: queueName}, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("declare queue %s: %w", name, err)
	}
	return q, nil
}

func (p *AMQPPublisher) Publish(_ string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	return p.channel.Publish(
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

// EventHandler processes one decoded customer event.
type EventHandler func(ctx context.Context, ev model.CustomerEvent) error

// ConsumeCustomerEvents reads customer events from the queue until ctx is done or the channel closes.
// Undecodable messages are dropped. A failed handler requeues the message once; a second failure drops it.
func ConsumeCustomerEvents(ctx context.Context, url, queueName string, handle EventHandler, logger *zap.Logger) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	q, err := declareQueue(ch, queueName)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	logger.Info("worker consuming", zap.String("queue", q.Name))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			handleDelivery(ctx, d, handle, logger)
		}
	}
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func handleDelivery(ctx context.Context, d amqp.Delivery, handle EventHandler, logger *zap.Logger) {
	settle(ctx, &d, d.Body, d.Redelivered, d.MessageId, handle, logger)
}

func settle(ctx context.Context, ack acknowledger, body []byte, redelivered bool, messageID string, handle EventHandler, logger *zap.Logger) {
	var ev model.CustomerEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		logger.Warn("invalid customer event", zap.String("message_id", messageID), zap.Error(err))
		_ = ack.Ack(false)
		return
	}

	if err := handle(ctx, ev); err != nil {
		logger.Error("failed to process customer event",
			zap.String("message_id", messageID),
			zap.Bool("redelivered", redelivered),
			zap.Error(err),
		)
		_ = ack.Nack(false, !redelivered)
		return
	}

	_ = ack.Ack(false)
}
