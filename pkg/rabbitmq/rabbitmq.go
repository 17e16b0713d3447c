// Package rabbitmq publishes and consumes order and payment events.
package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Queue names.
const (
	OrderQueue   = "order_queue"
	PaymentQueue = "payment_queue"
)

// Event types.
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	OrderCancelled     = "order.cancelled"
	PaymentRequested   = "payment.requested"
)

// Event is the JSON body of every message.
type Event struct {
	Type    string    `json:"type"`
	OrderID string    `json:"orderId"`
	UserID  string    `json:"userId,omitempty"`
	Status  string    `json:"status,omitempty"`
	Total   float64   `json:"total,omitempty"`
	Phone   string    `json:"phoneNumber,omitempty"`
	At      time.Time `json:"at"`
}

// QueueFor routes payment events to the payment queue and everything else to
// the order queue.
func QueueFor(eventType string) string {
	if strings.HasPrefix(eventType, "payment.") {
		return PaymentQueue
	}
	return OrderQueue
}

// Client holds the RabbitMQ connection and channel. amqp channels are not
// safe for concurrent publishing, so Publish serialises on mu.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
	mu      sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares both queues.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	for _, name := range []string{OrderQueue, PaymentQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare %s: %w", name, err)
		}
	}

	logger.Info("RabbitMQ client connected", zap.Strings("queues", []string{OrderQueue, PaymentQueue}))
	return &Client{conn: conn, channel: ch, logger: logger}, nil
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Publish sends a persistent JSON message to the queue the event type maps to.
func (c *Client) Publish(event Event) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish("", QueueFor(event.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		Type:         event.Type,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.At,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	c.logger.Debug("event published", zap.String("type", event.Type), zap.String("order", event.OrderID))
	return nil
}

// Consume starts delivering the events of one queue to handler. A handler
// error nacks the message without requeueing it.
func (c *Client) Consume(queue string, handler func(Event) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}
	msgs, err := c.channel.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer on %s: %w", queue, err)
	}

	go func() {
		for msg := range msgs {
			if err := HandleDelivery(msg.Body, handler); err != nil {
				c.logger.Warn("failed to process event", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
				if nackErr := msg.Nack(false, false); nackErr != nil {
					c.logger.Warn("failed to nack event", zap.Error(nackErr))
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.logger.Warn("failed to ack event", zap.Error(ackErr))
			}
		}
	}()
	return nil
}

// HandleDelivery decodes a message body and passes the event to handler.
func HandleDelivery(body []byte, handler func(Event) error) error {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode event: %w", err)
	}
	return handler(event)
}
