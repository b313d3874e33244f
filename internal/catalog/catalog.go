// Package catalog defines the static registry of recognized style tokens:
// each token's declared type and its type-appropriate fallback value.
// The catalog is read-only after construction.
package catalog

import (
	"sort"
	"strings"
)

// Type classifies the values a token may hold.
type Type string

const (
	TypeColor     Type = "color"
	TypeFont      Type = "font"
	TypeSize      Type = "size"
	TypeStructure Type = "structure"
	TypeOpaque    Type = "opaque"
)

// Entry describes one recognized token.
type Entry struct {
	Token       string
	Type        Type
	Fallback    string
	Description string
}

// Catalog is the token registry. Build it once at startup; lookups are
// safe from the owner thread for the lifetime of the process.
type Catalog struct {
	entries map[string]Entry
}

// New returns a catalog seeded with the built-in token set.
func New() *Catalog {
	c := &Catalog{entries: make(map[string]Entry, len(builtinEntries))}
	for _, e := range builtinEntries {
		c.entries[e.Token] = e
	}
	return c
}

// NewEmpty returns a catalog with no entries. Used by tests and by hosts
// that supply their own token set.
func NewEmpty() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Add registers an entry. Call only during startup, before the catalog is
// shared; a later entry for the same token replaces the earlier one.
func (c *Catalog) Add(e Entry) {
	c.entries[e.Token] = e
}

// Lookup returns the entry for a token, if declared.
func (c *Catalog) Lookup(token string) (Entry, bool) {
	e, ok := c.entries[token]
	return e, ok
}

// TypeOf returns the declared type for a token, if declared.
func (c *Catalog) TypeOf(token string) (Type, bool) {
	e, ok := c.entries[token]
	return e.Type, ok
}

// Fallback returns the declared fallback value for a token, if declared.
func (c *Catalog) Fallback(token string) (string, bool) {
	e, ok := c.entries[token]
	if !ok || e.Fallback == "" {
		return "", false
	}
	return e.Fallback, true
}

// Entries returns all entries sorted by token name.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// Len returns the number of declared tokens.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// sizeHints are checked before color hints so that tokens like
// "border.width" classify as sizes rather than colors.
var sizeHints = []string{"size", "width", "height", "spacing", "radius", "padding", "margin"}

var colorHints = []string{"color", "colors", "background", "foreground", "border", "accent", "text"}

// InferType guesses a token's type from naming conventions. It is the last
// resort when the catalog has no entry; the catalog stays authoritative.
func InferType(token string) Type {
	lower := strings.ToLower(token)
	for _, hint := range sizeHints {
		if strings.Contains(lower, hint) {
			return TypeSize
		}
	}
	if strings.Contains(lower, "font") {
		return TypeFont
	}
	for _, hint := range colorHints {
		if strings.Contains(lower, hint) {
			return TypeColor
		}
	}
	return TypeOpaque
}
