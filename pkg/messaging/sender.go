package messaging

import (
	"context"

	"github.com/matst80/slask-jewelry/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefineTopic declares the durable topic exchange and its queue.
func DefineTopic(ch *amqp.Channel, prefix string, topic Topic) error {
	name := Name(prefix, topic)
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,   // arguments
	); err != nil {
		return err
	}
	return ch.QueueBind(name, name, name, false, nil)
}

// Encode builds the publishing for data.
func Encode[V any](data V) (amqp.Publishing, error) {
	body, err := jsoncompat.Marshal(data)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	}, nil
}

// Send publishes data as JSON on a short-lived channel.
func Send[V any](ctx context.Context, c *amqp.Connection, prefix string, topic Topic, data V) error {
	msg, err := Encode(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := Name(prefix, topic)
	return ch.PublishWithContext(ctx, name, name, false, false, msg)
}
