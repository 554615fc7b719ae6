// Package router dispatches inbound bus messages to the decoder family
// matching their topic and writes the results into the metric registry.
package router

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/anicoll/taspromto/internal/pkg/decoder"
	"github.com/anicoll/taspromto/internal/pkg/metrics"
	"github.com/anicoll/taspromto/internal/pkg/names"
	"github.com/anicoll/taspromto/internal/pkg/topic"
)

// commander publishes device commands back onto the bus. Optional: a nil
// commander disables the discovery queries.
type commander interface {
	Publish(topic string, body string) error
}

type Router struct {
	registry  *metrics.Registry
	resolver  *names.Resolver
	commander commander
	logger    *zap.Logger
}

func New(registry *metrics.Registry, resolver *names.Resolver, commander commander) *Router {
	return &Router{
		registry:  registry,
		resolver:  resolver,
		commander: commander,
		logger:    zap.L(),
	}
}

// Handle processes one inbound message. No payload is ever fatal: malformed
// payloads are logged and dropped, topics outside the known families are
// dropped silently, and subsequent messages are unaffected either way.
func (r *Router) Handle(rawTopic string, payload []byte) error {
	t := topic.Parse(rawTopic)

	var updates []decoder.Update
	var err error
	switch t.Kind {
	case topic.Lwt:
		updates = r.handleLwt(t, payload)
	case topic.Power:
		updates, err = decoder.PowerCommand(t.Relay, payload)
	case topic.State, topic.Result:
		updates, err = decoder.State(payload)
	case topic.Sensor:
		updates, err = decoder.Sensor(payload)
	case topic.Status:
		updates, err = decoder.Status(payload)
	case topic.RTL433:
		updates, err = decoder.RTL433(payload)
	case topic.Water:
		updates, err = decoder.DSMRScalar(metrics.KindWaterTotal, payload)
	case topic.Gas:
		updates, err = decoder.DSMRScalar(metrics.KindGasTotal, payload)
	case topic.EnergyTariff1:
		updates, err = decoder.DSMRScalar(metrics.KindEnergyTotalLow, payload)
	case topic.EnergyTariff2:
		updates, err = decoder.DSMRScalar(metrics.KindEnergyTotalHigh, payload)
	case topic.DSMRPower:
		updates, err = decoder.DSMRScalar(metrics.KindPowerWatts, payload)
	default:
		return nil
	}
	if err != nil {
		if errors.Is(err, decoder.ErrMalformed) {
			r.logger.Warn("dropping malformed payload",
				zap.String("topic", rawTopic),
				zap.Error(err),
			)
			return nil
		}
		return err
	}

	now := time.Now()
	for _, u := range updates {
		r.apply(t, u, now)
	}
	return nil
}

// apply resolves the update's identity and display name and writes it into
// the registry, replacing any previous value for the same identity.
func (r *Router) apply(t topic.Topic, u decoder.Update, now time.Time) {
	device := u.Device
	var name string
	switch {
	case t.Kind == topic.RTL433:
		name = r.resolver.Resolve(names.RF, device)
	case device != "":
		// payload-keyed identity from a tasmota bridge, i.e. a mitemp sensor
		name = r.resolver.Resolve(names.MiTemp, device)
	default:
		device = t.Device.Hostname
		name = device
	}

	r.registry.Update(
		metrics.Identity{Kind: u.Kind, Device: device, Sub: u.Sub},
		metrics.Value{Value: u.Value, Name: name, ObservedAt: now},
	)
}

// handleLwt turns the broker's last-will state into the online metric. A
// device coming online is also asked to republish its relay state and
// firmware info, the same way tasmota's own discovery works.
func (r *Router) handleLwt(t topic.Topic, payload []byte) []decoder.Update {
	online := string(payload) == "Online"
	value := 0.0
	if online {
		value = 1.0
	}

	if online && r.commander != nil {
		device := t.Device
		go func() {
			for _, command := range []struct{ topic, body string }{
				{device.CommandTopic("POWER"), ""},
				{device.CommandTopic("STATUS"), "2"},
			} {
				if err := r.commander.Publish(command.topic, command.body); err != nil {
					r.logger.Error("failed to query device",
						zap.String("topic", command.topic),
						zap.Error(err),
					)
				}
			}
		}()
	}

	return []decoder.Update{{Kind: metrics.KindOnline, Value: value}}
}
