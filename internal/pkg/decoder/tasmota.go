package decoder

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/anicoll/taspromto/internal/pkg/metrics"
	"github.com/anicoll/taspromto/internal/pkg/model"
)

// co2 readings outside this window are sensor glitches, not data.
const (
	minPlausibleCO2 = 1.0
	maxPlausibleCO2 = 40000.0
)

// State decodes the relay states out of a tele STATE or stat RESULT body.
// Relays appear as "POWER" (single relay) or "POWER<n>" keys with ON/OFF
// string values; other keys are ignored.
func State(payload []byte) ([]Update, error) {
	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var updates []Update
	for key, value := range body {
		if !strings.HasPrefix(key, "POWER") {
			continue
		}
		state, ok := value.(string)
		if !ok {
			continue
		}
		on, ok := boolState(state)
		if !ok {
			continue
		}
		updates = append(updates, Update{
			Kind:  metrics.KindSwitchState,
			Sub:   strings.TrimPrefix(key, "POWER"),
			Value: on,
		})
	}
	return updates, nil
}

// PowerCommand decodes the raw ON/OFF body of stat/<device>/POWER<relay>.
func PowerCommand(relay string, payload []byte) ([]Update, error) {
	on, ok := boolState(strings.TrimSpace(string(payload)))
	if !ok {
		return nil, fmt.Errorf("%w: unexpected power state %q", ErrMalformed, payload)
	}
	return []Update{{Kind: metrics.KindSwitchState, Sub: relay, Value: on}}, nil
}

// Sensor decodes a tele SENSOR body. Each known block contributes whatever
// fields it carries; a missing block simply yields nothing.
func Sensor(payload []byte) ([]Update, error) {
	var body model.SensorPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var updates []Update
	appendReading := func(kind metrics.Kind, value *float64) {
		if value != nil {
			updates = append(updates, Update{Kind: kind, Value: *value})
		}
	}

	if energy := body.Energy; energy != nil {
		appendReading(metrics.KindPowerWatts, energy.Power)
		appendReading(metrics.KindEnergyToday, energy.Today)
		appendReading(metrics.KindEnergyYesterday, energy.Yesterday)
		appendReading(metrics.KindEnergyTotal, energy.Total)
	}

	if co2 := body.MHZ19B; co2 != nil && co2.CarbonDioxide != nil {
		ppm := *co2.CarbonDioxide
		if ppm < minPlausibleCO2 || ppm > maxPlausibleCO2 {
			return nil, fmt.Errorf("%w: implausible co2 reading %v ppm", ErrMalformed, ppm)
		}
		updates = append(updates, Update{Kind: metrics.KindCO2, Value: ppm})
	}

	if obis := body.OBIS; obis != nil {
		appendReading(metrics.KindPowerWatts, obis.Power)
		appendReading(metrics.KindEnergyTotal, obis.Total)
		appendReading(metrics.KindEnergyTotalHigh, obis.TotalHigh)
		appendReading(metrics.KindEnergyTotalLow, obis.TotalLow)
		appendReading(metrics.KindGasTotal, obis.GasTotal)
	}

	if pms := body.PMS5003; pms != nil {
		for _, bucket := range []struct {
			name  string
			value *float64
		}{
			{"PM1", pms.PM1},
			{"PM2.5", pms.PM25},
			{"PM10", pms.PM10},
		} {
			if bucket.value == nil {
				continue
			}
			updates = append(updates, Update{
				Kind:  metrics.KindParticle,
				Sub:   bucketLabel(bucket.name),
				Value: *bucket.value,
			})
		}
	}

	for mac, reading := range body.Climate {
		updates = append(updates, climateUpdates(mac, reading)...)
	}

	return updates, nil
}

func climateUpdates(mac string, reading model.ClimateReading) []Update {
	var updates []Update
	appendReading := func(kind metrics.Kind, value *float64) {
		if value != nil {
			updates = append(updates, Update{Kind: kind, Device: mac, Value: *value})
		}
	}
	appendReading(metrics.KindTemperature, reading.Temperature)
	appendReading(metrics.KindHumidity, reading.Humidity)
	appendReading(metrics.KindDewPoint, reading.DewPoint)
	appendReading(metrics.KindBattery, reading.Battery)
	return updates
}

// Status decodes a stat STATUS2 response into the firmware info metric.
func Status(payload []byte) ([]Update, error) {
	var body model.StatusPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if body.StatusFWR == nil || body.StatusFWR.Version == "" {
		return nil, nil
	}
	return []Update{{Kind: metrics.KindFirmware, Sub: body.StatusFWR.Version, Value: 1}}, nil
}

func boolState(state string) (float64, bool) {
	switch state {
	case "ON", "1":
		return 1, true
	case "OFF", "0":
		return 0, true
	default:
		return 0, false
	}
}

// bucketLabel canonicalises a particle bucket name into a label value,
// "PM2.5" becomes "pm2_5".
func bucketLabel(name string) string {
	return strings.ReplaceAll(slug.Make(name), "-", "_")
}
