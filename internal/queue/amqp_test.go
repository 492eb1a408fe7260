package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unclebandit/simple-crm/internal/model"
)

type fakeChannel struct {
	key string
	msg amqp.Publishing
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.key = key
	f.msg = msg
	return nil
}

type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAck) Ack(bool) error {
	f.acked = true
	return nil
}

func (f *fakeAck) Nack(_ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func TestAMQPPublisherPublishesPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{channel: ch, queue: "customer_events"}

	ev := model.CustomerEvent{Type: model.EventCustomerCreated, CustomerID: 1, Name: "Alice"}
	require.NoError(t, p.Publish(TopicCustomerEvents, ev))

	assert.Equal(t, "customer_events", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.NotEmpty(t, ch.msg.MessageId)

	var decoded model.CustomerEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, ev.Name, decoded.Name)
}

func TestSettleAcksProcessedEvent(t *testing.T) {
	ack := &fakeAck{}
	body := []byte(`{"type":"customer.created","customer_id":2,"name":"Bob"}`)

	var seen model.CustomerEvent
	settle(context.Background(), ack, body, false, "m1", func(_ context.Context, ev model.CustomerEvent) error {
		seen = ev
		return nil
	}, zap.NewNop())

	assert.True(t, ack.acked)
	assert.Equal(t, 2, seen.CustomerID)
}

func TestSettleDropsGarbage(t *testing.T) {
	ack := &fakeAck{}
	settle(context.Background(), ack, []byte("{"), false, "m2", func(context.Context, model.CustomerEvent) error {
		t.Fatal("handler must not run")
		return nil
	}, zap.NewNop())

	assert.True(t, ack.acked)
}

func TestSettleRequeuesOnlyOnce(t *testing.T) {
	failing := func(context.Context, model.CustomerEvent) error { return errors.New("db down") }
	body := []byte(`{"type":"customer.deleted","customer_id":3}`)

	first := &fakeAck{}
	settle(context.Background(), first, body, false, "m3", failing, zap.NewNop())
	assert.True(t, first.nacked)
	assert.True(t, first.requeue)

	second := &fakeAck{}
	settle(context.Background(), second, body, true, "m3", failing, zap.NewNop())
	assert.True(t, second.nacked)
	assert.False(t, second.requeue)
}
