package messaging

import (
	"github.com/matst80/slask-jewelry/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func declareBindAndConsume(ch *amqp.Channel, prefix string, topic Topic) (<-chan amqp.Delivery, error) {
	name := Name(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(q.Name, "", false, true, false, false, nil)
}

// Listen decodes every message on the topic into V and hands it to fn on a
// background goroutine. Messages that fail to decode are rejected; the
// goroutine ends when the channel closes.
func Listen[V any](ch *amqp.Channel, prefix string, topic Topic, logger *zap.Logger, fn func(V)) error {
	msgs, err := declareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}
	go func() {
		for d := range msgs {
			var v V
			if err := jsoncompat.Unmarshal(d.Body, &v); err != nil {
				logger.Warn("dropping undecodable message", zap.String("topic", string(topic)), zap.Error(err))
				_ = d.Reject(false)
				continue
			}
			fn(v)
			_ = d.Ack(false)
		}
	}()
	return nil
}
