package cmd

import (
	"github.com/anicoll/taspromto/internal/pkg/mqtt"
)

// BusService is the surface cmd.run expects from the mqtt client.
type BusService interface {
	Connect() error
	Disconnect()
	IsConnected() bool
	Subscribe(topic string, handler mqtt.Handler) error
	Publish(topic string, body string) error
}
