package resolve

import (
	"strings"

	"github.com/zjrosen/tint/internal/catalog"
	"github.com/zjrosen/tint/internal/theme"
)

// Resolver handles one token type's theme lookup and its last-resort
// default. Implementations are stateless.
type Resolver interface {
	// Type names the token type this resolver handles.
	Type() catalog.Type
	// Overridable reports whether override layers apply to this type.
	Overridable() bool
	// FromTheme extracts the token's value from a theme.
	FromTheme(t *theme.Theme, token string) (string, bool)
	// HeuristicDefault guesses a value from the token name and the
	// background mode when every store came up empty.
	HeuristicDefault(token string, dark bool) (string, bool)
}

func defaultResolvers() []Resolver {
	return []Resolver{
		colorResolver{},
		fontResolver{},
		sizeResolver{},
		structureResolver{},
		opaqueResolver{},
	}
}

// themeValue is the shared theme extraction: flat dotted key first,
// then a nested path traversal for themes authored as trees.
func themeValue(t *theme.Theme, token string) (string, bool) {
	if v, ok := t.Value(token); ok {
		return v, true
	}
	return t.LookupPath(token)
}

type colorResolver struct{}

func (colorResolver) Type() catalog.Type { return catalog.TypeColor }

func (colorResolver) Overridable() bool { return true }

func (colorResolver) FromTheme(t *theme.Theme, token string) (string, bool) {
	return themeValue(t, token)
}

// HeuristicDefault picks a legible default from the token name: surfaces
// get the background tone, everything else the contrasting foreground.
func (colorResolver) HeuristicDefault(token string, dark bool) (string, bool) {
	lower := strings.ToLower(token)
	if strings.Contains(lower, "background") {
		if dark {
			return "#1e1e1e", true
		}
		return "#fafafa", true
	}
	if dark {
		return "#d4d4d4", true
	}
	return "#1f1f1f", true
}

type fontResolver struct{}

func (fontResolver) Type() catalog.Type { return catalog.TypeFont }

func (fontResolver) Overridable() bool { return true }

func (fontResolver) FromTheme(t *theme.Theme, token string) (string, bool) {
	return themeValue(t, token)
}

func (fontResolver) HeuristicDefault(token string, _ bool) (string, bool) {
	if strings.Contains(strings.ToLower(token), "mono") {
		return "monospace", true
	}
	return "sans-serif", true
}

type sizeResolver struct{}

func (sizeResolver) Type() catalog.Type { return catalog.TypeSize }

func (sizeResolver) Overridable() bool { return true }

func (sizeResolver) FromTheme(t *theme.Theme, token string) (string, bool) {
	return themeValue(t, token)
}

// Sizes have no safe guess; a wrong dimension breaks layout where a
// wrong color merely looks off.
func (sizeResolver) HeuristicDefault(string, bool) (string, bool) {
	return "", false
}

// structureResolver handles structural tokens like border styles and
// layout descriptors. Overrides never apply: structure comes from the
// theme author, not from per-token customization.
type structureResolver struct{}

func (structureResolver) Type() catalog.Type { return catalog.TypeStructure }

func (structureResolver) Overridable() bool { return false }

func (structureResolver) FromTheme(t *theme.Theme, token string) (string, bool) {
	return themeValue(t, token)
}

func (structureResolver) HeuristicDefault(string, bool) (string, bool) {
	return "", false
}

type opaqueResolver struct{}

func (opaqueResolver) Type() catalog.Type { return catalog.TypeOpaque }

func (opaqueResolver) Overridable() bool { return true }

func (opaqueResolver) FromTheme(t *theme.Theme, token string) (string, bool) {
	return themeValue(t, token)
}

func (opaqueResolver) HeuristicDefault(string, bool) (string, bool) {
	return "", false
}
