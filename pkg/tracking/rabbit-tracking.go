package tracking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/matst80/slask-jewelry/pkg/common"
	"github.com/matst80/slask-jewelry/pkg/messaging"
	"github.com/matst80/slask-jewelry/pkg/metrics"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// RabbitTracking publishes events on the global tracking topic. Events are
// queued and sent from a background worker so a fetch never waits on the
// broker.
type RabbitTracking struct {
	country    string
	session    string
	connection *amqp.Connection
	queue      *common.QueueHandler[SearchEvent]
	logger     *zap.Logger
}

// NewRabbitTracking dials url and declares the tracking topic. Every event
// from this tracker shares one generated session id.
func NewRabbitTracking(url, country string, logger *zap.Logger) (*RabbitTracking, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := messaging.DefineTopic(ch, messaging.GlobalPrefix, messaging.Tracking); err != nil {
		conn.Close()
		return nil, err
	}
	rt := &RabbitTracking{
		country:    country,
		session:    uuid.NewString(),
		connection: conn,
		logger:     logger,
	}
	rt.queue = common.NewQueueHandler(rt.publish, 20, time.Second)
	return rt, nil
}

// Close flushes queued events and closes the connection.
func (rt *RabbitTracking) Close() error {
	rt.queue.Close()
	return rt.connection.Close()
}

func (rt *RabbitTracking) base(event uint16) *BaseEvent {
	return &BaseEvent{SessionID: rt.session, Country: rt.country, Context: "b2c", Event: event}
}

func (rt *RabbitTracking) TrackSearch(_ context.Context, e SearchEvent) error {
	e.BaseEvent = rt.base(EventSearch)
	rt.queue.Add(e)
	return nil
}

func (rt *RabbitTracking) publish(events []SearchEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, e := range events {
		if err := messaging.Send(ctx, rt.connection, messaging.GlobalPrefix, messaging.Tracking, e); err != nil {
			metrics.TrackingErrors.Inc()
			rt.logger.Warn("error sending search event", zap.Error(err))
		}
	}
}
