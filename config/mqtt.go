package config

import (
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// NewMQTT builds an auto-reconnecting client without connecting it.
// onConnect runs after the first connection and after every reconnect, so
// subscriptions belong there. Messages are not delivered in order.
func NewMQTT(cfg *Config, onConnect mqtt.OnConnectHandler) mqtt.Client {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientID).
		SetAutoReconnect(true).
		SetOrderMatters(false).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Printf("mqtt connection lost: %v", err)
		})
	if onConnect != nil {
		opts.SetOnConnectHandler(onConnect)
	}
	return mqtt.NewClient(opts)
}

func ConnectMQTT(client mqtt.Client) error {
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return nil
}
