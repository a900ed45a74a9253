package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mt-rahman/geofencing/module/core/domain"
)

type mockGeofenceSvc struct {
	checkFn func(req *domain.CheckRequest) (bool, error)
}

func (m *mockGeofenceSvc) Check(req *domain.CheckRequest) (bool, error) {
	return m.checkFn(req)
}

type mockPublisher struct {
	publishFn func(ctx context.Context, replyTo string, res *domain.CheckResult) error
}

func (m *mockPublisher) PublishResult(ctx context.Context, replyTo string, res *domain.CheckResult) error {
	return m.publishFn(ctx, replyTo, res)
}

func body(t *testing.T, req domain.CheckRequest) []byte {
	t.Helper()
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestHandleDelivery_UsesAMQPProperties(t *testing.T) {
	var publishedTo string
	var published *domain.CheckResult

	c := &CheckConsumer{
		geofenceSvc: &mockGeofenceSvc{
			checkFn: func(req *domain.CheckRequest) (bool, error) {
				if req.ReplyTo != "amq.gen-reply" {
					t.Fatalf("expected delivery ReplyTo, got %q", req.ReplyTo)
				}
				return true, nil
			},
		},
		publisher: &mockPublisher{
			publishFn: func(_ context.Context, replyTo string, res *domain.CheckResult) error {
				publishedTo = replyTo
				published = res
				return nil
			},
		},
	}

	req := domain.CheckRequest{
		RequestID: "from-body",
		ReplyTo:   "from-body",
		Shape:     domain.ShapeCircle,
		Object:    domain.GeoPoint{Lat: 1, Lon: 1},
		Center:    &domain.GeoPoint{Lat: 1, Lon: 1},
		RadiusKm:  1,
	}
	c.handleDelivery(context.Background(), amqp.Delivery{
		ReplyTo:       "amq.gen-reply",
		CorrelationId: "corr-42",
		Body:          body(t, req),
	})

	if published == nil {
		t.Fatal("expected a result to be published")
	}
	if publishedTo != "amq.gen-reply" {
		t.Errorf("unexpected reply queue %q", publishedTo)
	}
	if published.RequestID != "corr-42" {
		t.Errorf("expected correlation id as request id, got %q", published.RequestID)
	}
	if !published.Within {
		t.Error("expected within true")
	}
}

func TestHandleDelivery_FallsBackToBodyReplyTo(t *testing.T) {
	var publishedTo string

	c := &CheckConsumer{
		geofenceSvc: &mockGeofenceSvc{
			checkFn: func(_ *domain.CheckRequest) (bool, error) { return false, nil },
		},
		publisher: &mockPublisher{
			publishFn: func(_ context.Context, replyTo string, res *domain.CheckResult) error {
				publishedTo = replyTo
				if res.RequestID != "req-7" {
					t.Errorf("unexpected request id %q", res.RequestID)
				}
				return nil
			},
		},
	}

	req := domain.CheckRequest{RequestID: "req-7", ReplyTo: "geofence.results", Shape: domain.ShapePolygon}
	c.handleDelivery(context.Background(), amqp.Delivery{Body: body(t, req)})

	if publishedTo != "geofence.results" {
		t.Errorf("unexpected reply queue %q", publishedTo)
	}
}

func TestHandleDelivery_DropsWithoutReplyTo(t *testing.T) {
	c := &CheckConsumer{
		geofenceSvc: &mockGeofenceSvc{
			checkFn: func(_ *domain.CheckRequest) (bool, error) {
				t.Fatal("Check should not be called")
				return false, nil
			},
		},
		publisher: &mockPublisher{
			publishFn: func(_ context.Context, _ string, _ *domain.CheckResult) error {
				t.Fatal("PublishResult should not be called")
				return nil
			},
		},
	}

	c.handleDelivery(context.Background(), amqp.Delivery{Body: body(t, domain.CheckRequest{Shape: domain.ShapeCircle})})
	c.handleDelivery(context.Background(), amqp.Delivery{ReplyTo: "q", Body: []byte("{broken")})
}

func TestHandleDelivery_CheckError(t *testing.T) {
	var published *domain.CheckResult

	c := &CheckConsumer{
		geofenceSvc: &mockGeofenceSvc{
			checkFn: func(_ *domain.CheckRequest) (bool, error) {
				return false, errors.New("adapter failure")
			},
		},
		publisher: &mockPublisher{
			publishFn: func(_ context.Context, _ string, res *domain.CheckResult) error {
				published = res
				return nil
			},
		},
	}

	c.handleDelivery(context.Background(), amqp.Delivery{
		ReplyTo: "amq.gen-reply",
		Body:    body(t, domain.CheckRequest{Shape: domain.ShapeCorridor}),
	})

	if published == nil {
		t.Fatal("expected a result to be published")
	}
	if published.Error != "adapter failure" {
		t.Errorf("unexpected error field %q", published.Error)
	}
}

type fakeChannel struct {
	declared   []string
	consumed   string
	deliveries chan amqp.Delivery
	declareErr error
	consumeErr error
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, f.declareErr
}

func (f *fakeChannel) ConsumeWithContext(_ context.Context, queue, _ string, _, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	f.consumed = queue
	return f.deliveries, f.consumeErr
}

func TestNewCheckConsumer_DeclaresQueue(t *testing.T) {
	ch := &fakeChannel{}
	c, err := NewCheckConsumer(ch, "", &mockGeofenceSvc{}, &mockPublisher{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.queue != DefaultQueue {
		t.Errorf("expected %q, got %q", DefaultQueue, c.queue)
	}
	if len(ch.declared) != 1 || ch.declared[0] != DefaultQueue {
		t.Errorf("unexpected declared queues %v", ch.declared)
	}

	declareErr := errors.New("access refused")
	if _, err := NewCheckConsumer(&fakeChannel{declareErr: declareErr}, "q", &mockGeofenceSvc{}, &mockPublisher{}); !errors.Is(err, declareErr) {
		t.Fatalf("expected declare error, got %v", err)
	}
}

func TestRun_HandlesDeliveriesUntilChannelCloses(t *testing.T) {
	deliveries := make(chan amqp.Delivery, 2)
	ch := &fakeChannel{deliveries: deliveries}

	var repliedTo []string
	c, err := NewCheckConsumer(ch, "geofence.checks", &mockGeofenceSvc{
		checkFn: func(_ *domain.CheckRequest) (bool, error) { return true, nil },
	}, &mockPublisher{
		publishFn: func(_ context.Context, replyTo string, _ *domain.CheckResult) error {
			repliedTo = append(repliedTo, replyTo)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := domain.CheckRequest{Shape: domain.ShapeCircle}
	deliveries <- amqp.Delivery{ReplyTo: "reply-a", CorrelationId: "1", Body: body(t, req)}
	deliveries <- amqp.Delivery{ReplyTo: "reply-b", CorrelationId: "2", Body: body(t, req)}
	close(deliveries)

	if err := c.Run(context.Background()); err == nil {
		t.Fatal("expected an error once the delivery channel closes")
	}
	if ch.consumed != "geofence.checks" {
		t.Errorf("unexpected consumed queue %q", ch.consumed)
	}
	if len(repliedTo) != 2 || repliedTo[0] != "reply-a" || repliedTo[1] != "reply-b" {
		t.Errorf("unexpected replies %v", repliedTo)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	ch := &fakeChannel{deliveries: make(chan amqp.Delivery)}
	c, err := NewCheckConsumer(ch, "", &mockGeofenceSvc{}, &mockPublisher{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Run(ctx); err != nil {
		t.Fatalf("expected nil on cancellation, got %v", err)
	}
}

func TestRun_ConsumeError(t *testing.T) {
	consumeErr := errors.New("channel closed")
	c, err := NewCheckConsumer(&fakeChannel{consumeErr: consumeErr}, "", &mockGeofenceSvc{}, &mockPublisher{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.Run(context.Background()); !errors.Is(err, consumeErr) {
		t.Fatalf("expected consume error, got %v", err)
	}
}
