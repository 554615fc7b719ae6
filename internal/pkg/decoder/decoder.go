// Package decoder turns raw mqtt payloads into canonical metric updates.
// Decoders are pure: no io, no logging, no shared state. A payload that does
// not match its expected schema fails with ErrMalformed and is dropped by
// the router; a payload merely missing fields yields fewer updates.
package decoder

import (
	"errors"

	"github.com/anicoll/taspromto/internal/pkg/metrics"
)

// ErrMalformed marks a payload that cannot be decoded by the selected
// family. It only ever affects the message carrying it.
var ErrMalformed = errors.New("malformed payload")

// Update is one decoded observation. Device is left empty when the identity
// comes from the topic (tasmota devices); decoders that derive identity from
// the payload (mitemp, rtl_433) set it explicitly.
type Update struct {
	Kind   metrics.Kind
	Device string
	Sub    string
	Value  float64
}
