package core

import (
	"context"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mt-rahman/geofencing/module/core/domain"
	"github.com/mt-rahman/geofencing/module/core/internal/geometry/flat"
	"github.com/mt-rahman/geofencing/module/core/internal/geometry/sphere"
	"github.com/mt-rahman/geofencing/module/core/internal/handler/consumer"
	handler "github.com/mt-rahman/geofencing/module/core/internal/handler/http"
	"github.com/mt-rahman/geofencing/module/core/internal/handler/subscriber"
	mqttpub "github.com/mt-rahman/geofencing/module/core/internal/repository/publisher/mqtt"
	"github.com/mt-rahman/geofencing/module/core/internal/repository/publisher/rabbitmq"
	"github.com/mt-rahman/geofencing/module/core/service"
)

type Options struct {
	QuadSegments int
	Precedence   domain.Precedence
	MQTTTopic    string
	AMQPQueue    string
}

type Module struct {
	GeofenceSvc *service.GeofenceService
	handler     *handler.GeofenceHandler
	subscriber  *subscriber.CheckSubscriber
	consumer    *consumer.CheckConsumer
}

// NewGeofenceService wires the service to the golang-geo and ctessum/geom
// adapters. An unknown precedence is rejected here so a misconfigured
// process never starts.
func NewGeofenceService(opts Options) (*service.GeofenceService, error) {
	precedence, err := domain.ParsePrecedence(string(opts.Precedence))
	if err != nil {
		return nil, fmt.Errorf("geofence service: %w", err)
	}
	return service.NewGeofenceService(
		sphere.NewGeodesy(),
		flat.NewPlanar(opts.QuadSegments),
		precedence,
	), nil
}

// Build wires the HTTP handler and, when mqttClient is non-nil, the MQTT
// check subscriber. The subscription itself is made by OnMQTTConnect.
func Build(mqttClient mqtt.Client, opts Options) (*Module, error) {
	geofenceSvc, err := NewGeofenceService(opts)
	if err != nil {
		return nil, err
	}

	m := &Module{
		GeofenceSvc: geofenceSvc,
		handler:     handler.NewGeofenceHandler(geofenceSvc),
	}
	if mqttClient != nil {
		pub := mqttpub.NewResultPublisher(mqttClient)
		m.subscriber = subscriber.NewCheckSubscriber(opts.MQTTTopic, geofenceSvc, pub)
	}
	return m, nil
}

// BuildWorker wires the AMQP check consumer.
func BuildWorker(amqpConn *amqp.Connection, opts Options) (*Module, error) {
	ch, err := amqpConn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	geofenceSvc, err := NewGeofenceService(opts)
	if err != nil {
		return nil, err
	}
	c, err := consumer.NewCheckConsumer(ch, opts.AMQPQueue, geofenceSvc, rabbitmq.NewResultPublisher(ch))
	if err != nil {
		return nil, fmt.Errorf("check consumer: %w", err)
	}

	return &Module{
		GeofenceSvc: geofenceSvc,
		consumer:    c,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	if m.handler != nil {
		m.handler.Register(r)
	}
}

// OnMQTTConnect is the client's on-connect handler. It subscribes on the
// first connection and again after every reconnect.
func (m *Module) OnMQTTConnect(client mqtt.Client) {
	if m.subscriber == nil {
		return
	}
	m.subscriber.OnConnect(client)
}

func (m *Module) RunConsumer(ctx context.Context) error {
	if m.consumer == nil {
		return fmt.Errorf("check consumer not built")
	}
	return m.consumer.Run(ctx)
}
