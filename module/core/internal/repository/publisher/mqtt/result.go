package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/mt-rahman/geofencing/module/core/domain"
	"github.com/mt-rahman/geofencing/module/core/internal/repository/publisher"
)

var _ publisher.ResultPublisher = (*ResultPublisher)(nil)

const resultQoS = 1

type ResultPublisher struct {
	client pahomqtt.Client
}

func NewResultPublisher(client pahomqtt.Client) *ResultPublisher {
	return &ResultPublisher{client: client}
}

func (p *ResultPublisher) PublishResult(ctx context.Context, replyTo string, res *domain.CheckResult) error {
	if replyTo == "" {
		return fmt.Errorf("reply_to: required")
	}

	body, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	token := p.client.Publish(replyTo, resultQoS, false, body)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}
