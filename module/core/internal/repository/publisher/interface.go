package publisher

import (
	"context"

	"github.com/mt-rahman/geofencing/module/core/domain"
)

// ResultPublisher answers a check request on the destination the caller
// asked for (an MQTT topic or an AMQP reply queue).
type ResultPublisher interface {
	PublishResult(ctx context.Context, replyTo string, res *domain.CheckResult) error
}
