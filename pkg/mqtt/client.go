package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const connectTimeout = 10 * time.Second

// Options - параметры подключения к брокеру
type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

// NewClient подключается к MQTT брокеру и возвращает готовый клиент
func NewClient(opts Options) (pahomqtt.Client, error) {
	clientOpts := pahomqtt.NewClientOptions()
	clientOpts.AddBroker(opts.Broker)
	clientOpts.SetClientID(opts.ClientID)

	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
	}
	if opts.Password != "" {
		clientOpts.SetPassword(opts.Password)
	}

	clientOpts.SetAutoReconnect(true)
	clientOpts.SetCleanSession(true)
	clientOpts.SetConnectTimeout(connectTimeout)

	client := pahomqtt.NewClient(clientOpts)

	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker %s", opts.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	return client, nil
}
