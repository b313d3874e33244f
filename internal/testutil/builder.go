// Package testutil provides test utilities for assembling managers and
// override databases.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tint/internal/manager"
	"github.com/zjrosen/tint/internal/override"
	"github.com/zjrosen/tint/internal/theme"
)

// Builder accumulates theme state and applies it to a fresh Manager in
// the right order: themes, active selection, application overrides,
// user overrides.
type Builder struct {
	t            *testing.T
	themes       []themeData
	activeTheme  string
	appOverrides map[string]string
	userOverride map[string]string
	managerOpts  []manager.Option
}

type themeData struct {
	theme  *theme.Theme
	source theme.Source
}

// NewBuilder creates a builder. Call Build to get the manager.
func NewBuilder(t *testing.T, opts ...manager.Option) *Builder {
	t.Helper()
	return &Builder{
		t:            t,
		appOverrides: make(map[string]string),
		userOverride: make(map[string]string),
		managerOpts:  opts,
	}
}

// WithTheme registers an extra theme.
func (b *Builder) WithTheme(th *theme.Theme, source theme.Source) *Builder {
	b.themes = append(b.themes, themeData{theme: th, source: source})
	return b
}

// WithActiveTheme selects the active theme after registration.
func (b *Builder) WithActiveTheme(name string) *Builder {
	b.activeTheme = name
	return b
}

// WithAppOverride adds one application-layer override.
func (b *Builder) WithAppOverride(token, value string) *Builder {
	b.appOverrides[token] = value
	return b
}

// WithUserOverride adds one user-layer override.
func (b *Builder) WithUserOverride(token, value string) *Builder {
	b.userOverride[token] = value
	return b
}

// Build assembles the manager and fails the test on any invalid piece.
// The manager is closed automatically when the test ends.
func (b *Builder) Build() *manager.Manager {
	b.t.Helper()

	m := manager.New(b.managerOpts...)
	b.t.Cleanup(m.Close)

	m.Batch(func() {
		for _, td := range b.themes {
			m.RegisterTheme(td.theme, td.source)
		}
		if b.activeTheme != "" {
			require.NoError(b.t, m.SetActiveTheme(b.activeTheme))
		}
		for token, value := range b.appOverrides {
			require.NoError(b.t, m.SetOverride(override.LayerApplication, token, value))
		}
		for token, value := range b.userOverride {
			require.NoError(b.t, m.SetOverride(override.LayerUser, token, value))
		}
	})
	return m
}
