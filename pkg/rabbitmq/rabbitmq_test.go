package rabbitmq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFor(t *testing.T) {
	assert.Equal(t, PaymentQueue, QueueFor(PaymentRequested))
	assert.Equal(t, OrderQueue, QueueFor(OrderCreated))
	assert.Equal(t, OrderQueue, QueueFor(OrderCancelled))
}

func TestHandleDelivery(t *testing.T) {
	var got Event
	err := HandleDelivery([]byte(`{"type":"order.created","orderId":"o-1","total":120.5}`), func(e Event) error {
		got = e
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, OrderCreated, got.Type)
	assert.Equal(t, "o-1", got.OrderID)
	assert.Equal(t, 120.5, got.Total)

	boom := errors.New("boom")
	err = HandleDelivery([]byte(`{"type":"order.created"}`), func(Event) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = HandleDelivery([]byte(`not json`), func(Event) error { return nil })
	assert.Error(t, err)
}

func TestPublishWithoutChannel(t *testing.T) {
	c := &Client{}
	assert.Error(t, c.Publish(Event{Type: OrderCreated}))
	assert.Error(t, c.Consume(OrderQueue, func(Event) error { return nil }))
	assert.NoError(t, c.Close())
}
