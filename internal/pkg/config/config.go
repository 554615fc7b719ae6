package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	MqttCfg      *MqttConfig
	ListenAddr   string
	MiTempNames  map[string]string
	RFNames      map[string]string
	PollInterval time.Duration
	LogLevel     string
}

type MqttConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// ParseNamePairs parses a comma separated list of key=label pairs, as passed
// via MITEMP_NAMES or RF_NAMES. An empty input yields an empty map. A pair
// without a "=" is a configuration error.
func ParseNamePairs(raw string) (map[string]string, error) {
	names := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return names, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		key, label, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid name mapping %q, expected key=label", pair)
		}
		names[key] = label
	}
	return names, nil
}
