// Package manager wires the theming subsystem together: the token
// catalog, theme store, override layers, resolution engine, component
// registry, resolved-value memo, and the change broker. Hosts hold one
// Manager and drive everything through it from the owner thread.
package manager

import (
	"context"

	"github.com/zjrosen/tint/internal/cachemanager"
	"github.com/zjrosen/tint/internal/catalog"
	"github.com/zjrosen/tint/internal/component"
	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/override"
	"github.com/zjrosen/tint/internal/pubsub"
	"github.com/zjrosen/tint/internal/resolve"
	"github.com/zjrosen/tint/internal/theme"
)

// Change is the payload published after a notification pass. Tokens
// lists the mutated token names when the change was override-scoped;
// theme-level changes leave it empty because every token may differ.
type Change struct {
	Theme  string
	Layer  override.Layer
	Tokens []string
}

// Manager is the single entry point for theme state. Not safe for
// concurrent use; background producers marshal onto the owner thread
// via the broker's host bridge.
type Manager struct {
	catalog   *catalog.Catalog
	store     *theme.Store
	overrides *override.Registry
	engine    *resolve.Engine
	registry  *component.Registry
	broker    *pubsub.Broker[Change]
	memo      *cachemanager.ReadThroughCache[string, string, string]

	batchDepth int
	dirty      bool
	flushing   bool
	pending    Change
	pendingTyp pubsub.EventType
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	dark     bool
	catalog  *catalog.Catalog
	builtins bool
}

// WithDarkBackground sets the background mode heuristic defaults assume.
func WithDarkBackground(dark bool) Option {
	return func(o *options) { o.dark = dark }
}

// WithCatalog substitutes the token catalog. Defaults to the built-in
// set.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithoutBuiltinThemes skips registering the bundled themes. The host
// must register and activate its own before resolving.
func WithoutBuiltinThemes() Option {
	return func(o *options) { o.builtins = false }
}

// New assembles a manager. By default the built-in catalog and themes
// are loaded and Slate Dark is active.
func New(opts ...Option) *Manager {
	o := options{dark: true, builtins: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.catalog == nil {
		o.catalog = catalog.New()
	}

	store := theme.NewStore()
	overrides := override.NewRegistry(o.catalog)
	engine := resolve.NewEngine(o.catalog, store, overrides, o.dark)

	m := &Manager{
		catalog:   o.catalog,
		store:     store,
		overrides: overrides,
		engine:    engine,
		registry:  component.NewRegistry(),
		broker:    pubsub.NewBroker[Change](),
	}
	memoStore := cachemanager.NewInMemoryCacheManager[string, string](
		"resolved-values", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	m.memo = cachemanager.NewReadThroughCache[string, string, string](
		memoStore,
		func(_ context.Context, token string) (string, error) {
			return m.engine.Resolve(token), nil
		},
		false,
	)

	if o.builtins {
		theme.RegisterBuiltins(store)
		_ = store.SetActive("default")
	}
	return m
}

// Close shuts down the change broker. The manager is unusable for
// notification afterward.
func (m *Manager) Close() { m.broker.Close() }

// Catalog returns the token catalog.
func (m *Manager) Catalog() *catalog.Catalog { return m.catalog }

// Store returns the theme store, for registration-time wiring like
// directory loaders.
func (m *Manager) Store() *theme.Store { return m.store }

// Components returns the lifecycle registry.
func (m *Manager) Components() *component.Registry { return m.registry }

// Subscribe returns a channel of coalesced change events.
func (m *Manager) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return m.broker.Subscribe(ctx)
}

// ---------------------------------------------------------------------
// Themes
// ---------------------------------------------------------------------

// RegisterTheme adds a theme to the store. When the registration
// replaces the currently active theme, a notification pass runs so
// dependents pick up the new values.
func (m *Manager) RegisterTheme(t *theme.Theme, source theme.Source) bool {
	applied := m.store.Register(t, source)
	if applied && m.store.ActiveName() == t.Name() {
		m.markDirty(pubsub.ThemeChangedEvent, Change{Theme: t.Name()})
	}
	return applied
}

// AliasTheme maps an alternate name onto a registered theme.
func (m *Manager) AliasTheme(alias, target string) error {
	return m.store.Alias(alias, target)
}

// SetActiveTheme switches the active theme and notifies. Switching to
// the already-active theme is a no-op with no notification.
func (m *Manager) SetActiveTheme(name string) error {
	before := m.store.ActiveName()
	if err := m.store.SetActive(name); err != nil {
		return err
	}
	if m.store.ActiveName() == before {
		return nil
	}
	m.markDirty(pubsub.ThemeChangedEvent, Change{Theme: m.store.ActiveName()})
	return nil
}

// ActiveTheme returns the active theme, or nil when none is set.
func (m *Manager) ActiveTheme() *theme.Theme { return m.store.Active() }

// ActiveThemeName returns the canonical active theme name.
func (m *Manager) ActiveThemeName() string { return m.store.ActiveName() }

// ThemeNames lists registered themes, sorted.
func (m *Manager) ThemeNames() []string { return m.store.Names() }

// ---------------------------------------------------------------------
// Overrides
// ---------------------------------------------------------------------

// SetOverride stores one override and notifies. Setting a token to the
// value it already holds is a no-op: no notification pass runs. A
// validation failure returns the error and notifies nothing.
func (m *Manager) SetOverride(layer override.Layer, token, value string) error {
	if current, ok := m.overrides.Get(layer, token); ok && current == value {
		return nil
	}
	if err := m.overrides.Set(layer, token, value, true); err != nil {
		return err
	}
	m.markDirty(pubsub.OverridesChangedEvent, Change{Layer: layer, Tokens: []string{token}})
	return nil
}

// ClearOverride removes one override, notifying only when it existed.
func (m *Manager) ClearOverride(layer override.Layer, token string) bool {
	if !m.overrides.Clear(layer, token) {
		return false
	}
	m.markDirty(pubsub.OverridesChangedEvent, Change{Layer: layer, Tokens: []string{token}})
	return true
}

// ClearAllOverrides empties a layer, notifying only when it held
// anything.
func (m *Manager) ClearAllOverrides(layer override.Layer) int {
	n := m.overrides.ClearAll(layer)
	if n > 0 {
		m.markDirty(pubsub.OverridesChangedEvent, Change{Layer: layer})
	}
	return n
}

// SetOverrides applies a batch as one logical mutation: per-token
// validation independence, at most one notification pass.
func (m *Manager) SetOverrides(layer override.Layer, values map[string]string) (int, []string) {
	applied, failed := m.overrides.SetBulk(layer, values)
	if applied > 0 {
		tokens := make([]string, 0, applied)
		for token := range values {
			tokens = append(tokens, token)
		}
		m.markDirty(pubsub.OverridesChangedEvent, Change{Layer: layer, Tokens: tokens})
	}
	return applied, failed
}

// RestoreOverrides replays a persisted snapshot without re-validation,
// so a catalog change never strands values a previous session accepted.
// One notification pass runs when anything was restored.
func (m *Manager) RestoreOverrides(layer override.Layer, values map[string]string) {
	if len(values) == 0 {
		return
	}
	for token, value := range values {
		_ = m.overrides.Set(layer, token, value, false)
	}
	m.markDirty(pubsub.OverridesChangedEvent, Change{Layer: layer})
}

// OverrideSnapshot returns a copy of a layer's mapping for persistence.
func (m *Manager) OverrideSnapshot(layer override.Layer) map[string]string {
	return m.overrides.GetAll(layer)
}

// ---------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------

// Resolve returns the effective value for a token. Plain lookups are
// memoized until the next notification pass; lookups with options go
// straight to the engine.
func (m *Manager) Resolve(token string, opts ...resolve.Option) string {
	if len(opts) == 0 {
		v, _ := m.memo.Get(context.Background(), token, token, cachemanager.DefaultExpiration)
		return v
	}
	return m.engine.Resolve(token, opts...)
}

// GetEffectiveValue is Resolve under the name hosts tend to look for.
func (m *Manager) GetEffectiveValue(token string, opts ...resolve.Option) string {
	return m.Resolve(token, opts...)
}

// Lookup resolves a token with provenance, always bypassing the memo.
func (m *Manager) Lookup(token string, opts ...resolve.Option) resolve.Result {
	return m.engine.Lookup(token, opts...)
}

// ThemeLookups reports how many resolutions reached the active theme,
// exposing cache effectiveness to diagnostics and tests.
func (m *Manager) ThemeLookups() int { return m.engine.ThemeLookups() }

// SetDarkBackground switches the heuristic background mode and runs a
// full notification pass, since heuristic values may all change.
func (m *Manager) SetDarkBackground(dark bool) {
	if m.engine.Dark() == dark {
		return
	}
	m.engine.SetDark(dark)
	m.markDirty(pubsub.ThemeChangedEvent, Change{Theme: m.store.ActiveName()})
}

// ---------------------------------------------------------------------
// Components
// ---------------------------------------------------------------------

// RegisterComponent adds a component with its logical-property-to-token
// mapping.
func (m *Manager) RegisterComponent(props map[string]string, opts ...component.Option) component.Handle {
	return m.registry.Register(props, opts...)
}

// UnregisterComponent removes a component; stale handles are no-ops.
func (m *Manager) UnregisterComponent(h component.Handle) bool {
	return m.registry.Unregister(h)
}

// LiveComponents returns the number of registered live components.
func (m *Manager) LiveComponents() int { return m.registry.LiveCount() }

// ResolveProperty resolves a component's logical property through its
// per-component cache. Returns false for stale handles and unmapped
// properties.
func (m *Manager) ResolveProperty(h component.Handle, property string) (string, bool) {
	if v, ok := m.registry.Cached(h, property); ok {
		return v, true
	}
	token, ok := m.registry.TokenFor(h, property)
	if !ok {
		return "", false
	}
	v := m.Resolve(token)
	m.registry.StoreCached(h, property, v)
	return v, true
}

// ---------------------------------------------------------------------
// Coalescing
// ---------------------------------------------------------------------

// Batch runs fn with notification deferred: however many mutations fn
// makes, at most one notification pass runs when the outermost batch
// ends. Batches nest.
func (m *Manager) Batch(fn func()) {
	m.batchDepth++
	defer func() {
		m.batchDepth--
		if m.batchDepth == 0 && m.dirty {
			m.flush()
		}
	}()
	fn()
}

// markDirty merges a change into the pending notification and flushes
// immediately outside a batch.
func (m *Manager) markDirty(typ pubsub.EventType, c Change) {
	if !m.dirty {
		m.pending = c
		m.pendingTyp = typ
		m.dirty = true
	} else {
		// Theme-level changes subsume token lists.
		if typ == pubsub.ThemeChangedEvent {
			m.pendingTyp = pubsub.ThemeChangedEvent
			m.pending.Tokens = nil
		}
		if c.Theme != "" {
			m.pending.Theme = c.Theme
		}
		if c.Layer != "" {
			m.pending.Layer = c.Layer
		}
		if m.pendingTyp != pubsub.ThemeChangedEvent {
			m.pending.Tokens = append(m.pending.Tokens, c.Tokens...)
		}
	}
	if m.batchDepth == 0 && !m.flushing {
		m.flush()
	}
}

// flush runs one notification pass: drop the resolved-value memo, clear
// every component cache, invoke component callbacks, publish the
// coalesced event.
func (m *Manager) flush() {
	change := m.pending
	typ := m.pendingTyp
	m.pending = Change{}
	m.pendingTyp = ""
	m.dirty = false
	m.flushing = true

	_ = m.memo.Flush(context.Background())
	m.registry.ForEachLive(func(h component.Handle) {
		m.registry.ClearCache(h)
		m.registry.Invoke(h)
	})
	m.broker.Publish(typ, change)
	log.Debug(log.CatCache, "notification pass complete",
		"type", typ, "theme", change.Theme, "tokens", len(change.Tokens), "components", m.registry.LiveCount())

	m.flushing = false
	// Mutations made by callbacks during the pass coalesce into one
	// follow-up pass.
	if m.dirty {
		m.flush()
	}
}
