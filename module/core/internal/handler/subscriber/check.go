package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/mt-rahman/geofencing/module/core/domain"
	"github.com/mt-rahman/geofencing/module/core/internal/metrics"
)

const DefaultTopic = "/geofence/check"

type geofenceService interface {
	Check(req *domain.CheckRequest) (bool, error)
}

type resultPublisher interface {
	PublishResult(ctx context.Context, replyTo string, res *domain.CheckResult) error
}

type CheckSubscriber struct {
	topic       string
	geofenceSvc geofenceService
	publisher   resultPublisher
}

func NewCheckSubscriber(topic string, geofenceSvc geofenceService, pub resultPublisher) *CheckSubscriber {
	if topic == "" {
		topic = DefaultTopic
	}
	return &CheckSubscriber{
		topic:       topic,
		geofenceSvc: geofenceSvc,
		publisher:   pub,
	}
}

// Subscribe registers the check topic on client.
func (s *CheckSubscriber) Subscribe(client mqtt.Client) error {
	token := client.Subscribe(s.topic, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

// OnConnect subscribes again on every (re)connection; a clean-session
// client loses its subscriptions whenever the broker drops it.
func (s *CheckSubscriber) OnConnect(client mqtt.Client) {
	if err := s.Subscribe(client); err != nil {
		log.Printf("subscribe %s: %v", s.topic, err)
		return
	}
	log.Printf("subscribed to mqtt topic '%s'", s.topic)
}

func (s *CheckSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var req domain.CheckRequest
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		log.Printf("invalid check message: %v", err)
		return
	}

	if err := validateCheckMessage(&req); err != nil {
		log.Printf("validation error: %v", err)
		return
	}

	res := &domain.CheckResult{RequestID: req.RequestID, Shape: req.Shape}
	within, err := s.geofenceSvc.Check(&req)
	metrics.ObserveCheck(metrics.TransportMQTT, req.Shape, within, err)
	if err != nil {
		log.Printf("geofence check error: %v", err)
		res.Error = err.Error()
	} else {
		res.Within = within
	}

	if err := s.publisher.PublishResult(context.Background(), req.ReplyTo, res); err != nil {
		log.Printf("publish result error: %v", err)
	}
}

func validateCheckMessage(req *domain.CheckRequest) error {
	if req.ReplyTo == "" {
		return fmt.Errorf("reply_to: required")
	}
	if req.Shape == "" {
		return fmt.Errorf("shape: required")
	}
	return nil
}
