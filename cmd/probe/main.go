package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/mt-rahman/geofencing/module/core/domain"
)

// Sample fence around Jakarta's Monas; about half of the probes land inside.
var (
	center = domain.GeoPoint{Lat: -6.1754, Lon: 106.8272}
	route  = []domain.GeoPoint{
		{Lat: -6.1754, Lon: 106.8272},
		{Lat: -6.2088, Lon: 106.8456},
		{Lat: -6.2297, Lon: 106.8295},
	}
	shapes = []domain.Shape{domain.ShapeCircle, domain.ShapeRectangle, domain.ShapePolygon, domain.ShapeCorridor}
)

func randomRequest(id int, replyTo string) domain.CheckRequest {
	obj := domain.GeoPoint{
		Lat: center.Lat + (rand.Float64()-0.5)*0.04, // ~4.4km spread
		Lon: center.Lon + (rand.Float64()-0.5)*0.04,
	}
	req := domain.CheckRequest{
		RequestID: strconv.Itoa(id),
		ReplyTo:   replyTo,
		Shape:     shapes[rand.Intn(len(shapes))],
		Object:    obj,
	}

	switch req.Shape {
	case domain.ShapeCircle:
		req.Center = &center
		req.RadiusKm = 1.5
	case domain.ShapeRectangle:
		height, width := 3.0, 3.0
		req.Rectangle = &domain.RectangleInput{Center: &center, HeightKm: &height, WidthKm: &width}
	case domain.ShapePolygon:
		req.Vertices = []domain.GeoPoint{
			{Lat: center.Lat - 0.01, Lon: center.Lon - 0.01},
			{Lat: center.Lat + 0.01, Lon: center.Lon - 0.01},
			{Lat: center.Lat + 0.01, Lon: center.Lon + 0.01},
			{Lat: center.Lat - 0.01, Lon: center.Lon + 0.01},
		}
	case domain.ShapeCorridor:
		req.Vertices = route
		req.PlanarRadius = 0.005
	}
	return req
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}
	topic := "/geofence/check"
	if v := os.Getenv("MQTT_CHECK_TOPIC"); v != "" {
		topic = v
	}

	clientID := fmt.Sprintf("geofence-probe-%d", os.Getpid())
	replyTo := "/geofence/result/" + clientID

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	token := client.Subscribe(replyTo, 1, func(_ mqtt.Client, msg mqtt.Message) {
		var res domain.CheckResult
		if err := json.Unmarshal(msg.Payload(), &res); err != nil {
			log.Printf("invalid result: %v", err)
			return
		}
		fmt.Printf("[%s] %s within=%t %s\n", res.RequestID, res.Shape, res.Within, res.Error)
	})
	if token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt subscribe: %v", token.Error())
	}

	log.Printf("connected to %s, probing every %ds...", broker, intervalSec)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	id := 0
	for range ticker.C {
		id++
		payload, _ := json.Marshal(randomRequest(id, replyTo))

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
