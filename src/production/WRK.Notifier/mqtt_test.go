package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	workshop_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/workshop"
)

type fakeToken struct {
	done bool
	err  error
}

func (t *fakeToken) Wait() bool { return t.done }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.done }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if t.done {
		close(ch)
	}
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakePublisher struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
	token    *fakeToken
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.topic, p.qos, p.retained = topic, qos, retained
	p.payload, _ = payload.([]byte)
	return p.token
}

func sampleRegistration() *workshop_models.Registration {
	return &workshop_models.Registration{
		ID:           primitive.NewObjectID(),
		Name:         "Asha",
		Email:        "asha@example.com",
		ContactNo:    "9876543210",
		CollegeName:  "NIT",
		RegisteredAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMQTTNotifier_Publishes(t *testing.T) {
	pub := &fakePublisher{token: &fakeToken{done: true}}
	n := NewMQTTNotifier(pub, "workshop/registrations", time.Second)
	reg := sampleRegistration()

	require.NoError(t, n.NotifyRegistration(context.Background(), reg))

	assert.Equal(t, "workshop/registrations", pub.topic)
	assert.Equal(t, byte(1), pub.qos)
	assert.False(t, pub.retained)

	var event RegistrationEvent
	require.NoError(t, json.Unmarshal(pub.payload, &event))
	assert.Equal(t, EventRegistrationCreated, event.Event)
	assert.Equal(t, reg.ID.Hex(), event.ID)
	assert.Equal(t, "asha@example.com", event.Email)
	assert.NotContains(t, string(pub.payload), "9876543210")
}

func TestMQTTNotifier_Errors(t *testing.T) {
	t.Run("Timeout", func(t *testing.T) {
		n := NewMQTTNotifier(&fakePublisher{token: &fakeToken{done: false}}, "t", time.Millisecond)
		assert.ErrorIs(t, n.NotifyRegistration(context.Background(), sampleRegistration()), ErrPublishTimeout)
	})

	t.Run("BrokerError", func(t *testing.T) {
		brokerErr := errors.New("not authorized")
		n := NewMQTTNotifier(&fakePublisher{token: &fakeToken{done: true, err: brokerErr}}, "t", time.Second)
		assert.ErrorIs(t, n.NotifyRegistration(context.Background(), sampleRegistration()), brokerErr)
	})
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.NotifyRegistration(context.Background(), sampleRegistration()))
}
