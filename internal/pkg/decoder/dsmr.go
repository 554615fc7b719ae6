package decoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anicoll/taspromto/internal/pkg/metrics"
)

// DSMRScalar decodes the bare numeric body published on the DSMR bridge
// topics (<device>/water, <device>/gas_delivered, tariff totals,
// instantaneous power). The metric kind is fixed by the topic, so the caller
// passes it in.
func DSMRScalar(kind metrics.Kind, payload []byte) ([]Update, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(string(payload)), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return []Update{{Kind: kind, Value: value}}, nil
}
