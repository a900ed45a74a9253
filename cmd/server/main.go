package main

import (
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"

	"github.com/mt-rahman/geofencing/config"
	"github.com/mt-rahman/geofencing/module/core"
	"github.com/mt-rahman/geofencing/module/core/domain"
)

func main() {
	cfg := config.Load()

	// coreModule is assigned before Connect, which is what fires the handler.
	var coreModule *core.Module
	mqttClient := config.NewMQTT(cfg, func(c mqtt.Client) {
		coreModule.OnMQTTConnect(c)
	})

	coreModule, err := core.Build(mqttClient, core.Options{
		QuadSegments: cfg.BufferQuadSegments,
		Precedence:   domain.Precedence(cfg.RectanglePrecedence),
		MQTTTopic:    cfg.MQTTCheckTopic,
	})
	if err != nil {
		log.Fatalf("core module: %v", err)
	}

	if err := config.ConnectMQTT(mqttClient); err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	r := gin.Default()

	health := config.NewHealthChecker(mqttClient)
	health.Register(r)
	config.RegisterMetrics(r)

	coreModule.RegisterRoutes(&r.RouterGroup)

	log.Printf("listening on :%s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
