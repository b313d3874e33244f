package manager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tint/internal/catalog"
	"github.com/zjrosen/tint/internal/component"
	"github.com/zjrosen/tint/internal/override"
	"github.com/zjrosen/tint/internal/pubsub"
	"github.com/zjrosen/tint/internal/resolve"
	"github.com/zjrosen/tint/internal/theme"
)

// drainEvents reads every event currently buffered on the channel.
func drainEvents(ch <-chan pubsub.Event[Change]) []pubsub.Event[Change] {
	var out []pubsub.Event[Change]
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

// TestManager_DefaultsToSlateDark verifies the out-of-the-box state.
func TestManager_DefaultsToSlateDark(t *testing.T) {
	m := New()
	defer m.Close()

	require.Equal(t, "slate-dark", m.ActiveThemeName())
	require.Equal(t, "#1a1a1a", m.Resolve("editor.background"))
}

// TestManager_OverridePriority layers application and user overrides on
// the base theme and checks each removal restores the layer below.
func TestManager_OverridePriority(t *testing.T) {
	m := New()
	defer m.Close()

	require.Equal(t, "#1a1a1a", m.Resolve("editor.background"))

	require.NoError(t, m.SetOverride(override.LayerApplication, "editor.background", "#1e1e2e"))
	require.Equal(t, "#1e1e2e", m.Resolve("editor.background"))

	require.NoError(t, m.SetOverride(override.LayerUser, "editor.background", "#2d1b42"))
	require.Equal(t, "#2d1b42", m.Resolve("editor.background"))

	require.True(t, m.ClearOverride(override.LayerUser, "editor.background"))
	require.Equal(t, "#1e1e2e", m.Resolve("editor.background"))

	require.True(t, m.ClearOverride(override.LayerApplication, "editor.background"))
	require.Equal(t, "#1a1a1a", m.Resolve("editor.background"))
}

// TestManager_UnknownTokenOverride verifies unknown tokens flow through
// overrides and resolution untouched.
func TestManager_UnknownTokenOverride(t *testing.T) {
	m := New()
	defer m.Close()

	require.NoError(t, m.SetOverride(override.LayerUser, "customWidget.glow", "#ff00ff"))
	require.Equal(t, "#ff00ff", m.Resolve("customWidget.glow"))

	res := m.Lookup("customWidget.glow")
	require.Equal(t, resolve.OriginUserOverride, res.Origin)
}

// TestManager_BatchCoalescesNotifications verifies many mutations in a
// batch produce exactly one callback invocation per component and one
// published event.
func TestManager_BatchCoalescesNotifications(t *testing.T) {
	m := New()
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := m.Subscribe(ctx)

	const components = 5
	calls := make([]int, components)
	for i := 0; i < components; i++ {
		i := i
		m.RegisterComponent(map[string]string{"bg": "editor.background"},
			countCalls(&calls[i]))
	}

	m.Batch(func() {
		for i := 0; i < 100; i++ {
			require.NoError(t, m.SetOverride(override.LayerUser, tokenName(i), "#101010"))
		}
		require.NoError(t, m.SetActiveTheme("nord"))
	})

	for i := 0; i < components; i++ {
		require.Equal(t, 1, calls[i], "component %d must see one callback", i)
	}
	require.Len(t, drainEvents(events), 1)
}

// TestManager_NestedBatchFlushesOnce verifies nesting batches defers the
// pass to the outermost end.
func TestManager_NestedBatchFlushesOnce(t *testing.T) {
	m := New()
	defer m.Close()

	calls := 0
	m.RegisterComponent(nil, countCalls(&calls))

	m.Batch(func() {
		require.NoError(t, m.SetOverride(override.LayerUser, "text.primary", "#eeeeee"))
		m.Batch(func() {
			require.NoError(t, m.SetOverride(override.LayerUser, "text.muted", "#888888"))
		})
		require.Zero(t, calls, "inner batch end must not flush")
	})
	require.Equal(t, 1, calls)
}

// TestManager_UnchangedSetSkipsNotification verifies writing the value a
// token already holds is not a notification.
func TestManager_UnchangedSetSkipsNotification(t *testing.T) {
	m := New()
	defer m.Close()

	calls := 0
	m.RegisterComponent(nil, countCalls(&calls))

	require.NoError(t, m.SetOverride(override.LayerUser, "editor.background", "#2d1b42"))
	require.Equal(t, 1, calls)

	require.NoError(t, m.SetOverride(override.LayerUser, "editor.background", "#2d1b42"))
	require.Equal(t, 1, calls, "identical value must not notify")
}

// TestManager_FailedSetNeverNotifies verifies a rejected mutation leaves
// dependents untouched.
func TestManager_FailedSetNeverNotifies(t *testing.T) {
	m := New()
	defer m.Close()

	calls := 0
	m.RegisterComponent(nil, countCalls(&calls))

	err := m.SetOverride(override.LayerUser, "colors.primary", "not-a-color")
	var invalid *override.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	require.Zero(t, calls)

	require.False(t, m.ClearOverride(override.LayerUser, "absent.token"))
	require.Zero(t, m.ClearAllOverrides(override.LayerApplication))
	require.Zero(t, calls)
}

// TestManager_BulkSetIsOneNotification verifies SetOverrides is a single
// logical mutation even with failures mixed in.
func TestManager_BulkSetIsOneNotification(t *testing.T) {
	m := New()
	defer m.Close()

	calls := 0
	m.RegisterComponent(nil, countCalls(&calls))

	applied, failed := m.SetOverrides(override.LayerUser, map[string]string{
		"editor.background": "#222222",
		"colors.primary":    "nope",
		"text.primary":      "#dddddd",
	})
	require.Equal(t, 2, applied)
	require.Equal(t, []string{"colors.primary"}, failed)
	require.Equal(t, 1, calls)
}

// TestManager_ResolutionIsMemoized verifies repeated plain resolves hit
// the memo, observed through the theme-lookup counter.
func TestManager_ResolutionIsMemoized(t *testing.T) {
	m := New()
	defer m.Close()

	before := m.ThemeLookups()
	for i := 0; i < 10; i++ {
		require.Equal(t, "#1a1a1a", m.Resolve("editor.background"))
	}
	require.Equal(t, before+1, m.ThemeLookups(), "nine of ten resolves must come from the memo")

	// A notification pass drops the memo; the next resolve consults the
	// theme again.
	require.NoError(t, m.SetOverride(override.LayerUser, "text.muted", "#777777"))
	m.Resolve("editor.background")
	require.Equal(t, before+2, m.ThemeLookups())
}

// TestManager_ResolvePropertyUsesComponentCache verifies the logical
// property path: resolve once, cache per component, invalidate on
// change.
func TestManager_ResolvePropertyUsesComponentCache(t *testing.T) {
	m := New()
	defer m.Close()

	h := m.RegisterComponent(map[string]string{"background": "editor.background"})

	v, ok := m.ResolveProperty(h, "background")
	require.True(t, ok)
	require.Equal(t, "#1a1a1a", v)

	cached, ok := m.Components().Cached(h, "background")
	require.True(t, ok)
	require.Equal(t, "#1a1a1a", cached)

	require.NoError(t, m.SetOverride(override.LayerUser, "editor.background", "#2d1b42"))

	_, ok = m.Components().Cached(h, "background")
	require.False(t, ok, "notification pass must clear component caches")

	v, ok = m.ResolveProperty(h, "background")
	require.True(t, ok)
	require.Equal(t, "#2d1b42", v)

	_, ok = m.ResolveProperty(h, "unmapped")
	require.False(t, ok)
}

// TestManager_ThemeSwitchNotifiesAndReResolves verifies switching themes
// changes resolved values and publishes a theme event.
func TestManager_ThemeSwitchNotifiesAndReResolves(t *testing.T) {
	m := New()
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := m.Subscribe(ctx)

	require.Equal(t, "#1a1a1a", m.Resolve("editor.background"))
	require.NoError(t, m.SetActiveTheme("dracula"))
	require.Equal(t, "#282a36", m.Resolve("editor.background"))

	got := drainEvents(events)
	require.Len(t, got, 1)
	require.Equal(t, pubsub.ThemeChangedEvent, got[0].Type)
	require.Equal(t, "dracula", got[0].Payload.Theme)

	// Switching to the already-active theme is silent.
	require.NoError(t, m.SetActiveTheme("dracula"))
	require.Empty(t, drainEvents(events))
}

// TestManager_RegisterReplacingActiveThemeNotifies verifies re-register
// of the active theme (a hot reload) triggers a pass.
func TestManager_RegisterReplacingActiveThemeNotifies(t *testing.T) {
	m := New()
	defer m.Close()

	calls := 0
	m.RegisterComponent(nil, countCalls(&calls))

	hot := theme.NewBuilder("slate-dark").
		Inherit(theme.SlateDark()).
		Set("editor.background", "#0f0f0f").
		Build()
	require.True(t, m.RegisterTheme(hot, theme.SourceUser))

	require.Equal(t, 1, calls)
	require.Equal(t, "#0f0f0f", m.Resolve("editor.background"))

	// Registering a non-active theme is silent.
	require.True(t, m.RegisterTheme(theme.NewBuilder("spare").Build(), theme.SourceUser))
	require.Equal(t, 1, calls)
}

// TestManager_UnregisteredComponentSkipsCallback verifies stale handles
// drop out of notification passes.
func TestManager_UnregisteredComponentSkipsCallback(t *testing.T) {
	m := New()
	defer m.Close()

	calls := 0
	h := m.RegisterComponent(nil, countCalls(&calls))
	require.Equal(t, 1, m.LiveComponents())

	require.True(t, m.UnregisterComponent(h))
	require.False(t, m.UnregisterComponent(h))
	require.Zero(t, m.LiveComponents())

	require.NoError(t, m.SetOverride(override.LayerUser, "text.primary", "#ffffff"))
	require.Zero(t, calls)
}

// TestManager_RecycledComponentSlotNotifiesOnce verifies a component
// registered into a freed slot gets one callback per pass, not one per
// order entry the slot ever held.
func TestManager_RecycledComponentSlotNotifiesOnce(t *testing.T) {
	m := New()
	defer m.Close()

	discarded := 0
	old := m.RegisterComponent(nil, countCalls(&discarded))
	require.True(t, m.UnregisterComponent(old))

	calls := 0
	m.RegisterComponent(nil, countCalls(&calls))

	require.NoError(t, m.SetOverride(override.LayerUser, "text.primary", "#ffffff"))

	require.Equal(t, 1, calls)
	require.Zero(t, discarded)
}

// TestManager_SetDarkBackgroundInvalidates verifies flipping background
// mode changes heuristic values and runs a pass.
func TestManager_SetDarkBackgroundInvalidates(t *testing.T) {
	m := New(WithCatalog(catalog.NewEmpty()), WithoutBuiltinThemes(), WithDarkBackground(true))
	defer m.Close()

	require.Equal(t, "#1e1e1e", m.Resolve("mystery.background"))

	m.SetDarkBackground(false)
	require.Equal(t, "#fafafa", m.Resolve("mystery.background"))

	calls := 0
	m.RegisterComponent(nil, countCalls(&calls))
	m.SetDarkBackground(false)
	require.Zero(t, calls, "same mode must not notify")
}

// TestManager_RestoreOverridesSkipsValidation verifies snapshot replay
// accepts values the current catalog would reject, in one pass.
func TestManager_RestoreOverridesSkipsValidation(t *testing.T) {
	m := New()
	defer m.Close()

	calls := 0
	m.RegisterComponent(nil, countCalls(&calls))

	m.RestoreOverrides(override.LayerUser, map[string]string{
		"colors.primary":    "legacy-ref",
		"editor.background": "#2d1b42",
	})

	require.Equal(t, 1, calls)
	require.Equal(t, "legacy-ref", m.Resolve("colors.primary"))
	require.Equal(t, "#2d1b42", m.Resolve("editor.background"))

	m.RestoreOverrides(override.LayerUser, nil)
	require.Equal(t, 1, calls, "empty restore must not notify")
}

func tokenName(i int) string {
	return "stress.token" + string(rune('a'+i%26)) + string(rune('a'+(i/26)%26))
}

// countCalls is the component option used across these tests: it bumps
// the counter on every notification callback.
func countCalls(counter *int) component.Option {
	return component.WithCallback(func() { *counter++ })
}
