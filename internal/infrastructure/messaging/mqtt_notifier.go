// Package messaging publishes inventory events to the MQTT broker.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"bookstore-management/internal/logger"
	"bookstore-management/internal/usecase/inventory"

	"go.uber.org/zap"
)

// LowStockTopic is appended to the configured topic prefix.
const LowStockTopic = "low-stock"

// Publisher is the subset of the MQTT client the notifier needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// MQTTNotifier publishes low-stock events as JSON with QoS 1.
type MQTTNotifier struct {
	publisher Publisher
	topic     string
}

func NewMQTTNotifier(publisher Publisher, topicPrefix string) *MQTTNotifier {
	topic := LowStockTopic
	if topicPrefix != "" {
		topic = topicPrefix + "/" + LowStockTopic
	}
	return &MQTTNotifier{publisher: publisher, topic: topic}
}

func (n *MQTTNotifier) Topic() string {
	return n.topic
}

func (n *MQTTNotifier) NotifyLowStock(ctx context.Context, event inventory.LowStockEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode low stock event: %w", err)
	}

	if err := n.publisher.Publish(n.topic, 1, false, payload); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", n.topic, err)
	}

	logger.Debug("Low stock event published",
		zap.String("topic", n.topic),
		zap.Uint("item_id", event.ID),
		zap.String("event", "low_stock_published"),
	)
	return nil
}
