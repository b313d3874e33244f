// Package resolve implements token resolution: the fixed lookup chain
// that turns a token name into its effective value, walking user
// overrides, application overrides, the active theme, catalog fallbacks,
// and heuristic defaults in that order.
package resolve

import (
	"github.com/zjrosen/tint/internal/catalog"
	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/override"
	"github.com/zjrosen/tint/internal/theme"
)

// Origin names the chain step that produced a resolved value.
type Origin string

const (
	OriginUserOverride Origin = "user-override"
	OriginAppOverride  Origin = "application-override"
	OriginTheme        Origin = "theme"
	OriginCatalog      Origin = "catalog"
	OriginHeuristic    Origin = "heuristic"
	OriginFallback     Origin = "fallback"
	OriginNone         Origin = "none"
)

// Result carries a resolved value together with where it came from and
// the type the token resolved under.
type Result struct {
	Value  string
	Origin Origin
	Type   catalog.Type
}

// Options adjust a single resolution.
type Options struct {
	typ         catalog.Type
	hasType     bool
	fallback    string
	hasFallback bool
	noOverrides bool
}

// Option is a functional option for Resolve and Lookup.
type Option func(*Options)

// WithType forces the token to resolve under a specific type instead of
// the catalog's declared or inferred one.
func WithType(t catalog.Type) Option {
	return func(o *Options) {
		o.typ = t
		o.hasType = true
	}
}

// WithFallback supplies a caller fallback, the last step of the chain.
func WithFallback(v string) Option {
	return func(o *Options) {
		o.fallback = v
		o.hasFallback = true
	}
}

// WithoutOverrides skips both override layers, resolving the token as
// the base theme defines it.
func WithoutOverrides() Option {
	return func(o *Options) { o.noOverrides = true }
}

// Engine resolves tokens against a catalog, theme store, and override
// registry. It is owner-thread only, like the stores it reads.
type Engine struct {
	catalog   *catalog.Catalog
	store     *theme.Store
	overrides *override.Registry
	resolvers map[catalog.Type]Resolver
	dark      bool

	themeLookups int
}

// NewEngine wires an engine over the given stores. The dark flag steers
// heuristic defaults for tokens no theme or catalog entry covers.
func NewEngine(cat *catalog.Catalog, store *theme.Store, overrides *override.Registry, dark bool) *Engine {
	e := &Engine{
		catalog:   cat,
		store:     store,
		overrides: overrides,
		resolvers: make(map[catalog.Type]Resolver),
		dark:      dark,
	}
	for _, r := range defaultResolvers() {
		e.resolvers[r.Type()] = r
	}
	return e
}

// RegisterResolver installs or replaces the resolver for a type. Call
// during startup, before resolution begins.
func (e *Engine) RegisterResolver(r Resolver) {
	e.resolvers[r.Type()] = r
}

// Dark reports the background mode heuristic defaults assume.
func (e *Engine) Dark() bool { return e.dark }

// SetDark switches the background mode. The caller is responsible for
// invalidating anything resolved under the previous mode.
func (e *Engine) SetDark(dark bool) { e.dark = dark }

// ThemeLookups returns how many times resolution has consulted the
// active theme. Cached reads never reach the theme, so the counter
// doubles as a cache-effectiveness probe.
func (e *Engine) ThemeLookups() int { return e.themeLookups }

// Resolve returns the effective value for a token. The zero string is
// returned only when every chain step comes up empty and no caller
// fallback was given.
func (e *Engine) Resolve(token string, opts ...Option) string {
	return e.Lookup(token, opts...).Value
}

// Lookup resolves a token and reports which chain step supplied the
// value. The chain order is fixed: user override, application override,
// active theme (flat then nested), catalog fallback, heuristic default,
// caller fallback.
func (e *Engine) Lookup(token string, opts ...Option) Result {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	typ := e.typeOf(token, o)
	resolver := e.resolverFor(typ)

	if resolver.Overridable() && !o.noOverrides {
		if v, ok := e.overrides.Get(override.LayerUser, token); ok {
			return Result{Value: v, Origin: OriginUserOverride, Type: typ}
		}
		if v, ok := e.overrides.Get(override.LayerApplication, token); ok {
			return Result{Value: v, Origin: OriginAppOverride, Type: typ}
		}
	}

	if active := e.store.Active(); active != nil {
		e.themeLookups++
		if v, ok := resolver.FromTheme(active, token); ok {
			return Result{Value: v, Origin: OriginTheme, Type: typ}
		}
	}

	if v, ok := e.catalog.Fallback(token); ok {
		return Result{Value: v, Origin: OriginCatalog, Type: typ}
	}

	if v, ok := resolver.HeuristicDefault(token, e.dark); ok {
		// A token that only ever resolves heuristically is a candidate
		// for a catalog entry.
		log.Debug(log.CatResolve, "heuristic default used", "token", token, "type", typ)
		return Result{Value: v, Origin: OriginHeuristic, Type: typ}
	}

	if o.hasFallback {
		return Result{Value: o.fallback, Origin: OriginFallback, Type: typ}
	}
	return Result{Origin: OriginNone, Type: typ}
}

// typeOf picks the resolution type: caller option, then catalog
// declaration, then naming-convention inference.
func (e *Engine) typeOf(token string, o Options) catalog.Type {
	if o.hasType {
		return o.typ
	}
	if typ, ok := e.catalog.TypeOf(token); ok {
		return typ
	}
	return catalog.InferType(token)
}

func (e *Engine) resolverFor(typ catalog.Type) Resolver {
	if r, ok := e.resolvers[typ]; ok {
		return r
	}
	return e.resolvers[catalog.TypeOpaque]
}
