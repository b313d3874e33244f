// Package theme provides the immutable theme model, a builder for
// composing themes, and the store that tracks known themes and the
// active one.
package theme

import (
	"sort"
	"strings"
)

// Theme is an immutable named bundle of token values. Construct one with
// a Builder or the YAML loader; it is never mutated in place.
type Theme struct {
	name    string
	version string
	values  map[string]string
	raw     map[string]any
	meta    map[string]string
}

// Name returns the theme's name.
func (t *Theme) Name() string { return t.name }

// Version returns the theme's version string, possibly empty.
func (t *Theme) Version() string { return t.version }

// Value looks up a token by its flat dotted key.
func (t *Theme) Value(token string) (string, bool) {
	v, ok := t.values[token]
	return v, ok
}

// LookupPath traverses the theme's raw nested mapping segment by segment.
// It tolerates themes whose source stored tokens as nested structures
// rather than flat dotted keys.
func (t *Theme) LookupPath(token string) (string, bool) {
	if t.raw == nil {
		return "", false
	}
	segments := strings.Split(token, ".")
	var node any = t.raw
	for i, seg := range segments {
		m, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		child, ok := m[seg]
		if !ok {
			return "", false
		}
		if i == len(segments)-1 {
			s, ok := scalarString(child)
			return s, ok
		}
		node = child
	}
	return "", false
}

// Tokens returns the theme's flat token names, sorted.
func (t *Theme) Tokens() []string {
	out := make([]string, 0, len(t.values))
	for token := range t.values {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of flat token entries.
func (t *Theme) Len() int { return len(t.values) }

// Meta returns a metadata value by key.
func (t *Theme) Meta(key string) (string, bool) {
	v, ok := t.meta[key]
	return v, ok
}

// Values returns a copy of the flat token mapping.
func (t *Theme) Values() map[string]string {
	out := make(map[string]string, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}
