package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"bookstore-management/internal/usecase/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	topic   string
	qos     byte
	payload []byte
	err     error
}

func (f *fakePublisher) Publish(topic string, qos byte, _ bool, payload []byte) error {
	f.topic, f.qos, f.payload = topic, qos, payload
	return f.err
}

func TestMQTTNotifier_Publishes(t *testing.T) {
	pub := &fakePublisher{}
	n := NewMQTTNotifier(pub, "bookstore")

	event := inventory.LowStockEvent{Collection: "books", ID: 3, ISBN: "0306406152", AvailableStock: 1, MinimumStock: 2}
	require.NoError(t, n.NotifyLowStock(context.Background(), event))

	assert.Equal(t, "bookstore/low-stock", pub.topic)
	assert.Equal(t, byte(1), pub.qos)

	var got inventory.LowStockEvent
	require.NoError(t, json.Unmarshal(pub.payload, &got))
	assert.Equal(t, uint(3), got.ID)
	assert.Equal(t, "books", got.Collection)
}

func TestMQTTNotifier_NoPrefix(t *testing.T) {
	assert.Equal(t, "low-stock", NewMQTTNotifier(&fakePublisher{}, "").Topic())
}

func TestMQTTNotifier_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("not connected")}
	err := NewMQTTNotifier(pub, "bookstore").NotifyLowStock(context.Background(), inventory.LowStockEvent{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bookstore/low-stock")
}

func TestMQTTNotifier_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pub := &fakePublisher{}
	assert.ErrorIs(t, NewMQTTNotifier(pub, "x").NotifyLowStock(ctx, inventory.LowStockEvent{}), context.Canceled)
	assert.Empty(t, pub.topic)
}
