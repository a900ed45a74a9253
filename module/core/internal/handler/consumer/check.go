package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mt-rahman/geofencing/module/core/domain"
	"github.com/mt-rahman/geofencing/module/core/internal/metrics"
)

const DefaultQueue = "geofence.checks"

type geofenceService interface {
	Check(req *domain.CheckRequest) (bool, error)
}

type resultPublisher interface {
	PublishResult(ctx context.Context, replyTo string, res *domain.CheckResult) error
}

type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	ConsumeWithContext(ctx context.Context, queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// CheckConsumer answers check requests from a queue, RPC style: the reply
// goes to the delivery's ReplyTo queue carrying its CorrelationId.
type CheckConsumer struct {
	ch          channel
	queue       string
	geofenceSvc geofenceService
	publisher   resultPublisher
}

func NewCheckConsumer(ch channel, queue string, geofenceSvc geofenceService, pub resultPublisher) (*CheckConsumer, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	return &CheckConsumer{
		ch:          ch,
		queue:       queue,
		geofenceSvc: geofenceSvc,
		publisher:   pub,
	}, nil
}

// Run consumes until ctx is cancelled or the channel closes.
func (c *CheckConsumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.queue, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.handleDelivery(ctx, msg)
		}
	}
}

func (c *CheckConsumer) handleDelivery(ctx context.Context, msg amqp.Delivery) {
	var req domain.CheckRequest
	if err := json.Unmarshal(msg.Body, &req); err != nil {
		log.Printf("invalid check message: %v", err)
		return
	}

	if msg.ReplyTo != "" {
		req.ReplyTo = msg.ReplyTo
	}
	if msg.CorrelationId != "" {
		req.RequestID = msg.CorrelationId
	}
	if req.ReplyTo == "" {
		log.Printf("validation error: reply_to: required")
		return
	}

	res := &domain.CheckResult{RequestID: req.RequestID, Shape: req.Shape}
	within, err := c.geofenceSvc.Check(&req)
	metrics.ObserveCheck(metrics.TransportAMQP, req.Shape, within, err)
	if err != nil {
		log.Printf("geofence check error: %v", err)
		res.Error = err.Error()
	} else {
		res.Within = within
	}

	if err := c.publisher.PublishResult(ctx, req.ReplyTo, res); err != nil {
		log.Printf("publish result error: %v", err)
	}
}
