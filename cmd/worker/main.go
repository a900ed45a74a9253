package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/mt-rahman/geofencing/config"
	"github.com/mt-rahman/geofencing/module/core"
	"github.com/mt-rahman/geofencing/module/core/domain"
)

func main() {
	cfg := config.Load()

	conn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = conn.Close() }()

	worker, err := core.BuildWorker(conn, core.Options{
		QuadSegments: cfg.BufferQuadSegments,
		Precedence:   domain.Precedence(cfg.RectanglePrecedence),
		AMQPQueue:    cfg.RabbitMQQueue,
	})
	if err != nil {
		log.Fatalf("core module: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("consuming from queue '%s', waiting for geofence checks...", cfg.RabbitMQQueue)
	if err := worker.RunConsumer(ctx); err != nil {
		log.Fatalf("consumer: %v", err)
	}

	log.Println("shutting down")
}
