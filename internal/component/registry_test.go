package component

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRegistry_RegisterAndLookup verifies a fresh registration exposes
// its property mapping.
func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	h := r.Register(map[string]string{"bg": "editor.background"}, WithCategory("editor"))

	require.True(t, h.Valid())
	require.Equal(t, 1, r.LiveCount())

	token, ok := r.TokenFor(h, "bg")
	require.True(t, ok)
	require.Equal(t, "editor.background", token)

	cat, ok := r.Category(h)
	require.True(t, ok)
	require.Equal(t, "editor", cat)

	_, ok = r.TokenFor(h, "missing")
	require.False(t, ok)
}

// TestRegistry_StaleHandleIsInert verifies every operation on an
// unregistered handle is a silent no-op.
func TestRegistry_StaleHandleIsInert(t *testing.T) {
	r := NewRegistry()
	h := r.Register(map[string]string{"bg": "editor.background"})

	require.True(t, r.Unregister(h))
	require.False(t, r.Unregister(h), "second unregister must be a no-op")
	require.Equal(t, 0, r.LiveCount())

	_, ok := r.TokenFor(h, "bg")
	require.False(t, ok)
	_, ok = r.Cached(h, "bg")
	require.False(t, ok)
	r.StoreCached(h, "bg", "#fff")
	r.ClearCache(h)
	r.Invoke(h)
	require.Nil(t, r.Properties(h))
}

// TestRegistry_SlotReuseKeepsOldHandlesStale verifies a reused slot
// never resurrects a previous tenant's handle.
func TestRegistry_SlotReuseKeepsOldHandlesStale(t *testing.T) {
	r := NewRegistry()
	old := r.Register(map[string]string{"bg": "editor.background"})
	require.True(t, r.Unregister(old))

	fresh := r.Register(map[string]string{"fg": "text.primary"})

	// Same slot, different generation.
	require.NotEqual(t, old, fresh)
	_, ok := r.TokenFor(old, "bg")
	require.False(t, ok, "old handle must stay stale after slot reuse")
	token, ok := r.TokenFor(fresh, "fg")
	require.True(t, ok)
	require.Equal(t, "text.primary", token)
}

// TestRegistry_ZeroHandleInvalid verifies the zero Handle never matches
// a live slot.
func TestRegistry_ZeroHandleInvalid(t *testing.T) {
	r := NewRegistry()
	r.Register(map[string]string{"bg": "editor.background"})

	var zero Handle
	require.False(t, zero.Valid())
	_, ok := r.TokenFor(zero, "bg")
	require.False(t, ok)
}

// TestRegistry_ForEachLiveRegistrationOrder verifies visit order and
// that unregistered components are skipped.
func TestRegistry_ForEachLiveRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	a := r.Register(nil, WithCategory("a"))
	b := r.Register(nil, WithCategory("b"))
	c := r.Register(nil, WithCategory("c"))
	require.True(t, r.Unregister(b))

	var visited []string
	r.ForEachLive(func(h Handle) {
		cat, _ := r.Category(h)
		visited = append(visited, cat)
	})
	require.Equal(t, []string{"a", "c"}, visited)

	_ = a
	_ = c
}

// TestRegistry_ForEachLiveToleratesMidVisitUnregister verifies a visit
// callback may unregister a later component; the walk just skips it.
func TestRegistry_ForEachLiveToleratesMidVisitUnregister(t *testing.T) {
	r := NewRegistry()
	var later Handle
	first := r.Register(nil, WithCategory("first"))
	later = r.Register(nil, WithCategory("later"))

	var visited []string
	r.ForEachLive(func(h Handle) {
		cat, _ := r.Category(h)
		visited = append(visited, cat)
		if h == first {
			r.Unregister(later)
		}
	})
	require.Equal(t, []string{"first"}, visited)
}

// TestRegistry_CallbackInvocation verifies Invoke runs the registered
// callback for live handles only.
func TestRegistry_CallbackInvocation(t *testing.T) {
	r := NewRegistry()
	calls := 0
	h := r.Register(nil, WithCallback(func() { calls++ }))

	r.Invoke(h)
	r.Invoke(h)
	require.Equal(t, 2, calls)

	r.Unregister(h)
	r.Invoke(h)
	require.Equal(t, 2, calls)
}

// TestRegistry_CacheRoundTrip verifies per-component cache semantics,
// keyed by logical property name.
func TestRegistry_CacheRoundTrip(t *testing.T) {
	r := NewRegistry()
	h := r.Register(map[string]string{"bg": "editor.background"})

	_, ok := r.Cached(h, "bg")
	require.False(t, ok)

	r.StoreCached(h, "bg", "#1a1a1a")
	v, ok := r.Cached(h, "bg")
	require.True(t, ok)
	require.Equal(t, "#1a1a1a", v)

	r.ClearCache(h)
	_, ok = r.Cached(h, "bg")
	require.False(t, ok)
}

// TestRegistry_InvalidateAllClearsEveryCache verifies the bulk cache
// wipe reaches all live components.
func TestRegistry_InvalidateAllClearsEveryCache(t *testing.T) {
	r := NewRegistry()
	a := r.Register(nil)
	b := r.Register(nil)
	r.StoreCached(a, "x", "1")
	r.StoreCached(b, "y", "2")

	r.InvalidateAll()

	_, ok := r.Cached(a, "x")
	require.False(t, ok)
	_, ok = r.Cached(b, "y")
	require.False(t, ok)
}

// TestRegistry_CategoryCounts verifies live counts per category.
func TestRegistry_CategoryCounts(t *testing.T) {
	r := NewRegistry()
	r.Register(nil, WithCategory("button"))
	r.Register(nil, WithCategory("button"))
	gone := r.Register(nil, WithCategory("panel"))
	r.Register(nil)
	r.Unregister(gone)

	counts := r.CategoryCounts()
	require.Equal(t, 2, counts["button"])
	require.Zero(t, counts["panel"])
	require.Equal(t, 1, counts[""])
}

// TestRegistry_UnregisterAll verifies the bulk teardown path.
func TestRegistry_UnregisterAll(t *testing.T) {
	r := NewRegistry()
	h1 := r.Register(nil)
	h2 := r.Register(nil)

	require.Equal(t, 2, r.UnregisterAll())
	require.Equal(t, 0, r.LiveCount())
	require.Equal(t, 0, r.UnregisterAll())
	require.False(t, r.Unregister(h1))
	require.False(t, r.Unregister(h2))
}

// TestRegistry_SlotReuseVisitsNewTenantOnce verifies a component that
// took over a freed slot is visited exactly once, at its own
// registration position, not at the dead predecessor's.
func TestRegistry_SlotReuseVisitsNewTenantOnce(t *testing.T) {
	r := NewRegistry()
	a := r.Register(map[string]string{"bg": "a.background"})
	b := r.Register(map[string]string{"bg": "b.background"})
	require.True(t, r.Unregister(a))
	c := r.Register(map[string]string{"bg": "c.background"})

	var visited []Handle
	r.ForEachLive(func(h Handle) { visited = append(visited, h) })

	require.Equal(t, []Handle{b, c}, visited)
}

// TestRegistry_ManyRegistrationsReuseSlots exercises churn: the order
// slice must not grow without bound.
func TestRegistry_ManyRegistrationsReuseSlots(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 1000; i++ {
		h := r.Register(map[string]string{"bg": "editor.background"})
		require.True(t, r.Unregister(h))
	}
	keep := r.Register(nil, WithCategory("survivor"))

	require.Equal(t, 1, r.LiveCount())
	var visited int
	r.ForEachLive(func(Handle) { visited++ })
	require.Equal(t, 1, visited)

	cat, ok := r.Category(keep)
	require.True(t, ok)
	require.Equal(t, "survivor", cat)
}
