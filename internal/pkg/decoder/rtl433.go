package decoder

import (
	"encoding/json"
	"fmt"

	"github.com/anicoll/taspromto/internal/pkg/metrics"
	"github.com/anicoll/taspromto/internal/pkg/model"
)

// RTL433 decodes one rtl_433 event. Identity is derived from the payload as
// "model:id[:channel]" so the same physical sensor maps to the same series
// regardless of which topic the receiver published it on.
func RTL433(payload []byte) ([]Update, error) {
	var message model.RTL433Message
	if err := json.Unmarshal(payload, &message); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if message.Model == "" {
		return nil, fmt.Errorf("%w: rtl_433 event without model", ErrMalformed)
	}

	key := message.Key()
	var updates []Update
	appendReading := func(kind metrics.Kind, value *float64) {
		if value != nil {
			updates = append(updates, Update{Kind: kind, Device: key, Value: *value})
		}
	}
	appendReading(metrics.KindTemperature, message.TemperatureC)
	appendReading(metrics.KindHumidity, message.Humidity)
	appendReading(metrics.KindBatteryOK, message.BatteryOK)
	return updates, nil
}
