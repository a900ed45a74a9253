package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mt-rahman/geofencing/module/core/domain"
	"github.com/mt-rahman/geofencing/module/core/internal/repository/publisher"
)

var _ publisher.ResultPublisher = (*ResultPublisher)(nil)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// ResultPublisher replies through the default exchange, routing on the
// reply queue name.
type ResultPublisher struct {
	ch channel
}

func NewResultPublisher(ch channel) *ResultPublisher {
	return &ResultPublisher{ch: ch}
}

func (p *ResultPublisher) PublishResult(ctx context.Context, replyTo string, res *domain.CheckResult) error {
	if replyTo == "" {
		return fmt.Errorf("reply_to: required")
	}

	body, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	return p.ch.PublishWithContext(ctx, "", replyTo, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: res.RequestID,
		Body:          body,
	})
}
