// Package component tracks live UI components without owning them.
// Components register a property-to-token mapping and get back a
// non-owning Handle; a stale handle is inert, never a crash.
package component

import (
	"github.com/google/uuid"

	"github.com/zjrosen/tint/internal/log"
)

// Handle is a non-owning reference to a registered component. The zero
// Handle is invalid. Handles stay cheap to copy and safe to hold after
// the component unregisters: every operation on a stale handle is a
// silent no-op.
type Handle struct {
	slot int
	gen  uint64
}

// Valid reports whether the handle was ever issued by a registry. It
// says nothing about whether the component is still live.
func (h Handle) Valid() bool { return h.gen != 0 }

// slotRecord holds one registration. Slots are reused after
// unregistration; the generation counter is what distinguishes the old
// tenant's handles from the new one's.
type slotRecord struct {
	gen      uint64
	alive    bool
	id       uuid.UUID
	category string
	props    map[string]string
	callback func()
	cache    map[string]string
}

// orderEntry pins a visit-order position to one tenancy of a slot. When
// a slot is reused the new tenant gets a fresh entry at the tail; the
// old entry's generation no longer matches and is skipped.
type orderEntry struct {
	slot int
	gen  uint64
}

// Registry is the component lifecycle table. Owner-thread only.
type Registry struct {
	slots   []slotRecord
	free    []int
	order   []orderEntry
	live    int
	nextGen uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nextGen: 1}
}

// Option configures a registration.
type Option func(*slotRecord)

// WithCategory tags the component for diagnostics and counting.
func WithCategory(category string) Option {
	return func(s *slotRecord) { s.category = category }
}

// WithCallback registers a function invoked after each notification
// pass, once the component's cache has been cleared.
func WithCallback(fn func()) Option {
	return func(s *slotRecord) { s.callback = fn }
}

// Register adds a component with its logical-property-to-token mapping
// and returns its handle. The mapping is copied; callers may reuse the
// map they passed in.
func (r *Registry) Register(props map[string]string, opts ...Option) Handle {
	rec := slotRecord{
		gen:   r.nextGen,
		alive: true,
		id:    uuid.New(),
		props: make(map[string]string, len(props)),
		cache: make(map[string]string),
	}
	r.nextGen++
	for prop, token := range props {
		rec.props[prop] = token
	}
	for _, opt := range opts {
		opt(&rec)
	}

	idx := r.takeSlot(rec)
	r.order = append(r.order, orderEntry{slot: idx, gen: rec.gen})
	r.live++
	r.pruneOrder()

	log.Debug(log.CatRegistry, "component registered",
		"id", rec.id, "category", rec.category, "properties", len(rec.props), "live", r.live)
	return Handle{slot: idx, gen: rec.gen}
}

func (r *Registry) takeSlot(rec slotRecord) int {
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		r.slots[idx] = rec
		return idx
	}
	r.slots = append(r.slots, rec)
	return len(r.slots) - 1
}

// pruneOrder drops dead entries from the visit order once they outnumber
// the live ones, keeping ForEachLive linear in live components.
func (r *Registry) pruneOrder() {
	if len(r.order) <= 2*(r.live+1) {
		return
	}
	kept := r.order[:0]
	for _, e := range r.order {
		s := &r.slots[e.slot]
		if s.alive && s.gen == e.gen {
			kept = append(kept, e)
		}
	}
	r.order = kept
}

// lookup returns the slot a handle points at, or nil when stale.
func (r *Registry) lookup(h Handle) *slotRecord {
	if h.slot < 0 || h.slot >= len(r.slots) {
		return nil
	}
	s := &r.slots[h.slot]
	if !s.alive || s.gen != h.gen {
		return nil
	}
	return s
}

// Unregister removes a component. Reports whether the handle was live;
// a second unregister of the same handle is a no-op.
func (r *Registry) Unregister(h Handle) bool {
	s := r.lookup(h)
	if s == nil {
		return false
	}
	log.Debug(log.CatRegistry, "component unregistered", "id", s.id, "category", s.category)
	s.alive = false
	s.props = nil
	s.callback = nil
	s.cache = nil
	r.free = append(r.free, h.slot)
	r.live--
	return true
}

// UnregisterAll removes every live component, returning how many there
// were.
func (r *Registry) UnregisterAll() int {
	n := r.live
	for idx := range r.slots {
		s := &r.slots[idx]
		if !s.alive {
			continue
		}
		s.alive = false
		s.props = nil
		s.callback = nil
		s.cache = nil
		r.free = append(r.free, idx)
	}
	r.live = 0
	r.order = r.order[:0]
	if n > 0 {
		log.Debug(log.CatRegistry, "all components unregistered", "count", n)
	}
	return n
}

// LiveCount returns the number of live components.
func (r *Registry) LiveCount() int { return r.live }

// CategoryCounts returns live component counts per category, for
// diagnostics. Uncategorized components count under "".
func (r *Registry) CategoryCounts() map[string]int {
	out := make(map[string]int)
	for idx := range r.slots {
		if r.slots[idx].alive {
			out[r.slots[idx].category]++
		}
	}
	return out
}

// ForEachLive visits live components in registration order, each
// exactly once. Liveness and generation are re-checked per visit, so a
// callback that unregisters a later component simply causes that
// component to be skipped, and a reused slot is only visited at its
// current tenant's position.
func (r *Registry) ForEachLive(fn func(Handle)) {
	for _, e := range r.order {
		s := &r.slots[e.slot]
		if !s.alive || s.gen != e.gen {
			continue
		}
		fn(Handle{slot: e.slot, gen: e.gen})
	}
}

// Invoke runs the component's change callback, if it registered one.
func (r *Registry) Invoke(h Handle) {
	s := r.lookup(h)
	if s == nil || s.callback == nil {
		return
	}
	s.callback()
}

// ID returns the component's identifier for logging and diagnostics.
func (r *Registry) ID(h Handle) (uuid.UUID, bool) {
	s := r.lookup(h)
	if s == nil {
		return uuid.UUID{}, false
	}
	return s.id, true
}

// Category returns the component's category tag.
func (r *Registry) Category(h Handle) (string, bool) {
	s := r.lookup(h)
	if s == nil {
		return "", false
	}
	return s.category, true
}

// TokenFor maps a component's logical property name to its token.
func (r *Registry) TokenFor(h Handle, property string) (string, bool) {
	s := r.lookup(h)
	if s == nil {
		return "", false
	}
	token, ok := s.props[property]
	return token, ok
}

// Properties returns a copy of the component's property mapping.
func (r *Registry) Properties(h Handle) map[string]string {
	s := r.lookup(h)
	if s == nil {
		return nil
	}
	out := make(map[string]string, len(s.props))
	for prop, token := range s.props {
		out[prop] = token
	}
	return out
}

// Cached returns the component's cached value for a logical property.
func (r *Registry) Cached(h Handle, property string) (string, bool) {
	s := r.lookup(h)
	if s == nil {
		return "", false
	}
	v, ok := s.cache[property]
	return v, ok
}

// StoreCached caches a resolved value under a logical property name.
// No-op for stale handles.
func (r *Registry) StoreCached(h Handle, property, value string) {
	s := r.lookup(h)
	if s == nil {
		return
	}
	s.cache[property] = value
}

// ClearCache empties one component's cache.
func (r *Registry) ClearCache(h Handle) {
	s := r.lookup(h)
	if s == nil {
		return
	}
	clear(s.cache)
}

// InvalidateAll empties every live component's cache.
func (r *Registry) InvalidateAll() {
	for idx := range r.slots {
		if r.slots[idx].alive {
			clear(r.slots[idx].cache)
		}
	}
	log.Debug(log.CatCache, "component caches invalidated", "live", r.live)
}
