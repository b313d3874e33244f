// Package override maintains the two mutable customization layers that
// rank above the base theme: application branding and end-user
// preferences. Values are validated against their token's declared type
// at set-time, so resolution never has to re-check them.
package override

import (
	"fmt"
	"sort"

	"github.com/zjrosen/tint/internal/catalog"
	"github.com/zjrosen/tint/internal/log"
)

// Layer identifies one of the two override layers.
type Layer string

const (
	LayerApplication Layer = "application"
	LayerUser        Layer = "user"
)

// Valid reports whether l names a real layer.
func (l Layer) Valid() bool {
	return l == LayerApplication || l == LayerUser
}

// InvalidValueError reports a value that failed set-time validation.
// The targeted layer is left unchanged for that token.
type InvalidValueError struct {
	Token  string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for token %q: %s", e.Value, e.Token, e.Reason)
}

// Registry owns the two override layers.
type Registry struct {
	catalog *catalog.Catalog
	layers  map[Layer]map[string]string
}

// NewRegistry creates a registry with both layers empty. The catalog
// supplies declared types for validation; tokens with no declared type
// are accepted as opaque.
func NewRegistry(cat *catalog.Catalog) *Registry {
	return &Registry{
		catalog: cat,
		layers: map[Layer]map[string]string{
			LayerApplication: {},
			LayerUser:        {},
		},
	}
}

// Set stores one override. With validate true, the value is checked
// against the token's declared type and rejected atomically on failure.
func (r *Registry) Set(layer Layer, token, value string, validate bool) error {
	if !layer.Valid() {
		return fmt.Errorf("unknown override layer %q", layer)
	}
	if validate {
		if typ, ok := r.catalog.TypeOf(token); ok {
			if reason := validateForType(typ, value); reason != "" {
				log.Warn(log.CatOverride, "override rejected", "layer", layer, "token", token, "reason", reason)
				return &InvalidValueError{Token: token, Value: value, Reason: reason}
			}
		}
		// No declared type: accepted as opaque for forward compatibility.
	}
	r.layers[layer][token] = value
	log.Debug(log.CatOverride, "override set", "layer", layer, "token", token)
	return nil
}

// Get returns the value stored for token in the given layer.
func (r *Registry) Get(layer Layer, token string) (string, bool) {
	v, ok := r.layers[layer][token]
	return v, ok
}

// Clear removes one override, reporting whether it was present.
func (r *Registry) Clear(layer Layer, token string) bool {
	m, ok := r.layers[layer]
	if !ok {
		return false
	}
	if _, present := m[token]; !present {
		return false
	}
	delete(m, token)
	log.Debug(log.CatOverride, "override cleared", "layer", layer, "token", token)
	return true
}

// ClearAll empties a layer, returning how many entries were removed.
func (r *Registry) ClearAll(layer Layer) int {
	m, ok := r.layers[layer]
	if !ok {
		return 0
	}
	n := len(m)
	r.layers[layer] = make(map[string]string)
	if n > 0 {
		log.Debug(log.CatOverride, "layer cleared", "layer", layer, "count", n)
	}
	return n
}

// GetAll returns a copy of a layer's mapping, suitable for persistence
// handoff. Mutating the copy never affects the registry.
func (r *Registry) GetAll(layer Layer) map[string]string {
	m := r.layers[layer]
	out := make(map[string]string, len(m))
	for token, value := range m {
		out[token] = value
	}
	return out
}

// SetBulk stores a batch of overrides with per-token independence: one
// token's validation failure never blocks the others. Returns the number
// applied and the sorted list of rejected tokens. Notification is the
// caller's concern; a bulk set is one logical mutation.
func (r *Registry) SetBulk(layer Layer, values map[string]string) (int, []string) {
	if !layer.Valid() {
		tokens := make([]string, 0, len(values))
		for token := range values {
			tokens = append(tokens, token)
		}
		sort.Strings(tokens)
		return 0, tokens
	}

	applied := 0
	var failed []string
	for token, value := range values {
		if err := r.Set(layer, token, value, true); err != nil {
			failed = append(failed, token)
			continue
		}
		applied++
	}
	sort.Strings(failed)
	if len(failed) > 0 {
		log.Warn(log.CatOverride, "bulk set partially applied", "layer", layer, "applied", applied, "failed", len(failed))
	}
	return applied, failed
}

// Len returns the number of overrides in a layer.
func (r *Registry) Len(layer Layer) int {
	return len(r.layers[layer])
}
