package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "MQTT_BROKER", "MQTT_CHECK_TOPIC", "RABBITMQ_QUEUE", "BUFFER_QUAD_SEGMENTS", "RECTANGLE_PRECEDENCE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected 8080, got %s", cfg.HTTPPort)
	}
	if cfg.MQTTBroker != "tcp://localhost:1883" {
		t.Errorf("unexpected broker %s", cfg.MQTTBroker)
	}
	if cfg.MQTTCheckTopic != "/geofence/check" {
		t.Errorf("unexpected topic %s", cfg.MQTTCheckTopic)
	}
	if cfg.RabbitMQQueue != "geofence.checks" {
		t.Errorf("unexpected queue %s", cfg.RabbitMQQueue)
	}
	if cfg.BufferQuadSegments != 16 {
		t.Errorf("expected 16, got %d", cfg.BufferQuadSegments)
	}
	if cfg.RectanglePrecedence != "derived" {
		t.Errorf("expected derived, got %s", cfg.RectanglePrecedence)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("BUFFER_QUAD_SEGMENTS", "32")
	t.Setenv("RECTANGLE_PRECEDENCE", "explicit")

	cfg := Load()

	if cfg.HTTPPort != "9090" {
		t.Errorf("expected 9090, got %s", cfg.HTTPPort)
	}
	if cfg.BufferQuadSegments != 32 {
		t.Errorf("expected 32, got %d", cfg.BufferQuadSegments)
	}
	if cfg.RectanglePrecedence != "explicit" {
		t.Errorf("expected explicit, got %s", cfg.RectanglePrecedence)
	}
}

func TestGetEnvInt_Invalid(t *testing.T) {
	for _, v := range []string{"abc", "0", "-4"} {
		t.Setenv("BUFFER_QUAD_SEGMENTS", v)
		if got := getEnvInt("BUFFER_QUAD_SEGMENTS", 16); got != 16 {
			t.Errorf("%q: expected fallback 16, got %d", v, got)
		}
	}
}
