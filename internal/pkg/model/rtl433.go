package model

import (
	"strconv"
	"strings"
)

// RTL433Message is one event as published by rtl_433's mqtt output. The id
// and channel fields vary by sensor: numeric for most, a letter for some
// (acurite channels are "A".."C"), so both are decoded loosely.
type RTL433Message struct {
	Model        string   `json:"model"`
	ID           any      `json:"id"`
	Channel      any      `json:"channel"`
	TemperatureC *float64 `json:"temperature_C"`
	Humidity     *float64 `json:"humidity"`
	BatteryOK    *float64 `json:"battery_ok"`
}

// Key builds the stable sensor identity "model:id[:channel]". The channel
// part is omitted when the sensor has none, which still yields a
// collision-free key since model+id identify the device.
func (m RTL433Message) Key() string {
	parts := []string{m.Model}
	if id := looseString(m.ID); id != "" {
		parts = append(parts, id)
	}
	if channel := looseString(m.Channel); channel != "" {
		parts = append(parts, channel)
	}
	return strings.Join(parts, ":")
}

func looseString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	default:
		return ""
	}
}
