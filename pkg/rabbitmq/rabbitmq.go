// Package rabbitmq wraps a RabbitMQ connection for publishing and
// consuming item lifecycle events.
package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

const (
	// ExchangeName is the topic exchange carrying item events.
	ExchangeName = "items.events"

	// QueueName is the queue the consumer binds to the exchange.
	QueueName = "items.events.log"
)

// Config holds the connection settings.
type Config struct {
	URL string
}

// Client manages a connection and channel to RabbitMQ.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewClient connects to RabbitMQ and declares the items exchange.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}
	if err := channel.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring exchange: %w", err)
	}
	return &Client{conn: conn, channel: channel}, nil
}

// Publish sends a raw message to the given exchange and routing key.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	return c.channel.Publish(
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// PublishItemEvent publishes a JSON payload to the items exchange using
// the event name (item.created, item.updated, item.deleted) as the
// routing key.
func (c *Client) PublishItemEvent(event string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling %s payload: %w", event, err)
	}
	return c.Publish(ExchangeName, event, body)
}

// ConsumeItemEvents binds a queue to every item.* routing key and feeds
// deliveries to the handler. A nil return from the handler acknowledges
// the message; an error nacks it for redelivery.
func (c *Client) ConsumeItemEvents(handler func(amqp.Delivery) error) error {
	queue, err := c.channel.QueueDeclare(
		QueueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declaring queue: %w", err)
	}
	if err := c.channel.QueueBind(queue.Name, "item.*", ExchangeName, false, nil); err != nil {
		return fmt.Errorf("binding queue: %w", err)
	}
	deliveries, err := c.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("starting consumer: %w", err)
	}
	for msg := range deliveries {
		if err := handler(msg); err != nil {
			msg.Nack(false, true)
			continue
		}
		msg.Ack(false)
	}
	return nil
}

// Close shuts down the channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
