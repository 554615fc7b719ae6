package mqtt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/anicoll/taspromto/internal/pkg/config"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 0 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func newTestService(t *testing.T) *service {
	t.Helper()
	return &service{logger: zaptest.NewLogger(t)}
}

func TestWrapHandler_RecoversPanic(t *testing.T) {
	s := newTestService(t)

	wrapped := s.wrapHandler(func(string, []byte) error {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		wrapped(nil, fakeMessage{topic: "tele/plug1/STATE"})
	})
}

func TestWrapHandler_DeliversTopicAndPayload(t *testing.T) {
	s := newTestService(t)

	var gotTopic string
	var gotPayload []byte
	wrapped := s.wrapHandler(func(topic string, payload []byte) error {
		gotTopic = topic
		gotPayload = payload
		return nil
	})

	wrapped(nil, fakeMessage{topic: "tele/plug1/SENSOR", payload: []byte(`{}`)})

	assert.Equal(t, "tele/plug1/SENSOR", gotTopic)
	assert.Equal(t, []byte(`{}`), gotPayload)
}

func TestWrapHandler_HandlerErrorIsNotFatal(t *testing.T) {
	s := newTestService(t)

	wrapped := s.wrapHandler(func(string, []byte) error {
		return errors.New("malformed payload")
	})

	assert.NotPanics(t, func() {
		wrapped(nil, fakeMessage{topic: "tele/plug1/SENSOR"})
	})
}

func TestNew_ConfiguresClient(t *testing.T) {
	zap.ReplaceGlobals(zaptest.NewLogger(t))
	s := New(&config.MqttConfig{Host: "broker.local", Port: 1883})

	assert.NotNil(t, s.client)
	assert.False(t, s.IsConnected())
}
