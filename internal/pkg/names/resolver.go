// Package names maps raw device identifiers to operator-assigned labels.
package names

import "strings"

// Namespace selects which mapping a key is resolved against. The two
// namespaces are independent: mitemp sensors are keyed by a 6 hex digit mac
// suffix, rf sensors by "model:id[:channel]".
type Namespace int

const (
	MiTemp Namespace = iota
	RF
)

// Resolver is built once at startup from configuration and never mutated. A
// missing mapping is not an error; the raw key doubles as the label.
type Resolver struct {
	mitemp map[string]string
	rf     map[string]string
}

// NewResolver copies the supplied mappings. MiTemp keys are normalised to
// upper case so resolution is stable regardless of how the bridge formats
// mac suffixes.
func NewResolver(mitemp, rf map[string]string) *Resolver {
	r := &Resolver{
		mitemp: make(map[string]string, len(mitemp)),
		rf:     make(map[string]string, len(rf)),
	}
	for key, label := range mitemp {
		r.mitemp[strings.ToUpper(key)] = label
	}
	for key, label := range rf {
		r.rf[key] = label
	}
	return r
}

// Resolve returns the configured label for key, or key unchanged when no
// mapping exists.
func (r *Resolver) Resolve(ns Namespace, key string) string {
	var label string
	var ok bool
	switch ns {
	case MiTemp:
		label, ok = r.mitemp[strings.ToUpper(key)]
	case RF:
		label, ok = r.rf[key]
	}
	if !ok {
		return key
	}
	return label
}
