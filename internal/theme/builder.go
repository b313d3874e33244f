package theme

// Builder assembles a Theme in one pass. Application order, weakest to
// strongest: inherited parent, composed layers in the order given, then
// explicit Set values.
type Builder struct {
	name    string
	version string
	parent  *Theme
	layers  []*Theme
	values  map[string]string
	meta    map[string]string
}

// NewBuilder starts a builder for a theme with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:   name,
		values: make(map[string]string),
		meta:   make(map[string]string),
	}
}

// Version sets the theme version string.
func (b *Builder) Version(v string) *Builder {
	b.version = v
	return b
}

// Inherit bases the theme on a parent; the parent's tokens apply first.
func (b *Builder) Inherit(parent *Theme) *Builder {
	b.parent = parent
	return b
}

// Compose layers whole themes on top of the parent. Later layers override
// earlier ones per token.
func (b *Builder) Compose(layers ...*Theme) *Builder {
	b.layers = append(b.layers, layers...)
	return b
}

// Set assigns a single token value, overriding parent and layers.
func (b *Builder) Set(token, value string) *Builder {
	b.values[token] = value
	return b
}

// SetAll assigns a batch of token values, overriding parent and layers.
func (b *Builder) SetAll(values map[string]string) *Builder {
	for token, value := range values {
		b.values[token] = value
	}
	return b
}

// Meta attaches a metadata entry.
func (b *Builder) Meta(key, value string) *Builder {
	b.meta[key] = value
	return b
}

// Build materializes the immutable Theme. The builder may be reused but
// further changes never affect already-built themes.
func (b *Builder) Build() *Theme {
	values := make(map[string]string)
	if b.parent != nil {
		for token, value := range b.parent.values {
			values[token] = value
		}
	}
	for _, layer := range b.layers {
		for token, value := range layer.values {
			values[token] = value
		}
	}
	for token, value := range b.values {
		values[token] = value
	}

	meta := make(map[string]string, len(b.meta))
	for k, v := range b.meta {
		meta[k] = v
	}

	return &Theme{
		name:    b.name,
		version: b.version,
		values:  values,
		meta:    meta,
	}
}
