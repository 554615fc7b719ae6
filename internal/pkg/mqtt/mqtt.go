package mqtt

import (
	"errors"
	"fmt"
	"os"
	"time"

	paho_mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/anicoll/taspromto/internal/pkg/config"
)

const (
	connectTimeout = time.Second * 5
	publishTimeout = time.Second * 10
	keepAlive      = time.Second * 5
)

// Subscriptions are the topic patterns the exporter listens on: tasmota
// telemetry and command results, rtl_433 events and the DSMR bridge scalars.
var Subscriptions = []string{
	"tele/+/+",
	"stat/+/+",
	"rtl_433/#",
	"+/water",
	"+/gas_delivered",
	"+/energy_delivered_tariff1",
	"+/energy_delivered_tariff2",
	"+/power_delivered_l1",
}

// Handler receives each inbound message. Errors are logged, never fatal.
type Handler func(topic string, payload []byte) error

type service struct {
	client paho_mqtt.Client
	logger *zap.Logger
}

func New(cfg *config.MqttConfig) *service {
	logger := zap.L()
	opts := paho_mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)).
		SetClientID(clientID()).
		SetKeepAlive(keepAlive).
		SetAutoReconnect(true).
		SetResumeSubs(true).
		SetConnectionLostHandler(func(_ paho_mqtt.Client, err error) {
			logger.Warn("lost mqtt connection, reconnecting", zap.Error(err))
		})
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	return &service{
		client: paho_mqtt.NewClient(opts),
		logger: logger,
	}
}

// clientID is unique per host so two exporters on the same broker do not
// steal each other's session.
func clientID() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return "taspromto-" + hostname
}

func (s *service) Connect() error {
	token := s.client.Connect()
	res := token.WaitTimeout(connectTimeout)
	if res {
		return nil
	}
	if err := token.Error(); err != nil {
		return err
	}
	return errors.New("unable to connect in time")
}

func (s *service) Disconnect() {
	s.client.Disconnect(250)
}

func (s *service) IsConnected() bool {
	return s.client.IsConnected()
}
