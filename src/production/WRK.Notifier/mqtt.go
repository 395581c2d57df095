package notifier

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	config "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Config"
	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
	workshop_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/workshop"
)

var ErrPublishTimeout = errors.New("mqtt publish timed out")

// Publisher is the subset of mqtt.Client used for notifications
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTNotifier publishes registration events to a broker topic
type MQTTNotifier struct {
	client  Publisher
	topic   string
	timeout time.Duration
}

// NewMQTTNotifier wraps an already connected publisher
func NewMQTTNotifier(client Publisher, topic string, timeout time.Duration) *MQTTNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MQTTNotifier{client: client, topic: topic, timeout: timeout}
}

// NotifyRegistration publishes the event at QoS 1, not retained
func (n *MQTTNotifier) NotifyRegistration(ctx context.Context, registration *workshop_models.Registration) error {
	payload, err := json.Marshal(NewRegistrationEvent(registration))
	if err != nil {
		return err
	}

	token := n.client.Publish(n.topic, 1, false, payload)

	wait := n.timeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
		wait = time.Until(deadline)
	}
	if !token.WaitTimeout(wait) {
		return ErrPublishTimeout
	}
	return token.Error()
}

// Connect dials the broker described by cfg
func Connect(cfg config.MQTTConfig, log *logger.Logger) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL()).
		SetClientID(cfg.ClientID).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(10 * time.Second).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second).
		SetCleanSession(true)

	if cfg.BrokerUser != "" {
		opts.SetUsername(cfg.BrokerUser)
		opts.SetPassword(cfg.BrokerPass)
	}

	if cfg.UseTLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Logger.Error().Err(err).Msg("MQTT connection lost")
	}
	opts.OnConnect = func(_ mqtt.Client) {
		log.Logger.Info().Str("broker", cfg.BrokerURL()).Msg("MQTT connected")
	}

	client := mqtt.NewClient(opts)
	if tk := client.Connect(); tk.Wait() && tk.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", tk.Error())
	}

	return client, nil
}
