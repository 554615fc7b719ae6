package mqtt

import (
	"fmt"

	paho_mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Subscribe registers handler for all messages matching the topic pattern.
// Handlers run on paho's delivery goroutines; panics are recovered so one
// bad message cannot take down the ingestion stream.
func (s *service) Subscribe(topic string, handler Handler) error {
	token := s.client.Subscribe(topic, 0, s.wrapHandler(handler))
	if res := token.WaitTimeout(publishTimeout); !res {
		return fmt.Errorf("timed out subscribing to %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return nil
}

func (s *service) wrapHandler(handler Handler) paho_mqtt.MessageHandler {
	return func(_ paho_mqtt.Client, msg paho_mqtt.Message) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("recovered panic in message handler",
					zap.String("topic", msg.Topic()),
					zap.Any("panic", r),
				)
			}
		}()

		if err := handler(msg.Topic(), msg.Payload()); err != nil {
			s.logger.Warn("message handler returned error",
				zap.String("topic", msg.Topic()),
				zap.Error(err),
			)
		}
	}
}
