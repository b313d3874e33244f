// Package preview provides the interactive theme preview TUI: a
// scrollable token listing rendered with the active theme's own colors,
// with live updates as themes or overrides change.
package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/tint/internal/catalog"
	"github.com/zjrosen/tint/internal/component"
	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/manager"
	"github.com/zjrosen/tint/internal/pubsub"
)

// ThemeFilesChangedMsg tells the preview that theme files changed on
// disk. The reload hook runs on the update loop, keeping all manager
// access on the owner thread.
type ThemeFilesChangedMsg struct{}

// keyMap defines the preview key bindings.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextTheme key.Binding
	PrevTheme key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTheme, k.PrevTheme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTheme, k.PrevTheme},
		{k.Help, k.Quit},
	}
}

var defaultKeys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	NextTheme: key.NewBinding(key.WithKeys("tab", "l"), key.WithHelp("tab", "next theme")),
	PrevTheme: key.NewBinding(key.WithKeys("shift+tab", "h"), key.WithHelp("shift+tab", "prev theme")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the preview TUI state.
type Model struct {
	mgr      *manager.Manager
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	listener *pubsub.ContinuousListener[manager.Change]
	handle   component.Handle
	width    int
	height   int
	ready    bool
	status   string
	reload   func() error
}

// Option configures the preview model.
type Option func(*Model)

// WithReload installs the hook run when theme files change on disk.
func WithReload(fn func() error) Option {
	return func(m *Model) { m.reload = fn }
}

// New creates the preview model over a manager. The model registers
// itself as a component so notification passes reach it like any other
// widget.
func New(ctx context.Context, mgr *manager.Manager, opts ...Option) Model {
	m := Model{
		mgr:  mgr,
		keys: defaultKeys,
		help: help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.listener = pubsub.NewChannelListener(ctx, mgr.Subscribe(ctx))
	m.handle = mgr.RegisterComponent(map[string]string{
		"background": "editor.background",
		"foreground": "editor.foreground",
		"border":     "border.default",
		"accent":     "colors.primary",
	}, component.WithCategory("preview"))
	return m
}

// Init starts listening for change events.
func (m Model) Init() tea.Cmd {
	return m.listener.Listen()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 3
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(m.renderTokens())
		return m, nil

	case pubsub.Event[manager.Change]:
		m.status = changeStatus(msg)
		if m.ready {
			m.viewport.SetContent(m.renderTokens())
		}
		return m, m.listener.Listen()

	case ThemeFilesChangedMsg:
		if m.reload != nil {
			if err := m.reload(); err != nil {
				log.ErrorErr(log.CatUI, "theme reload failed", err)
				m.status = "theme reload failed: " + err.Error()
				return m, nil
			}
		}
		m.status = "themes reloaded from disk"
		if m.ready {
			m.viewport.SetContent(m.renderTokens())
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.mgr.UnregisterComponent(m.handle)
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.NextTheme):
			m.cycleTheme(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevTheme):
			m.cycleTheme(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// cycleTheme activates the next or previous registered theme.
func (m *Model) cycleTheme(step int) {
	names := m.mgr.ThemeNames()
	if len(names) == 0 {
		return
	}
	current := m.mgr.ActiveThemeName()
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	next := names[(idx+step+len(names))%len(names)]
	if err := m.mgr.SetActiveTheme(next); err != nil {
		log.ErrorErr(log.CatUI, "theme switch failed", err, "theme", next)
	}
}

func changeStatus(event pubsub.Event[manager.Change]) string {
	switch event.Type {
	case pubsub.ThemeChangedEvent:
		return fmt.Sprintf("theme changed: %s", event.Payload.Theme)
	case pubsub.OverridesChangedEvent:
		if n := len(event.Payload.Tokens); n > 0 {
			return fmt.Sprintf("%d override(s) changed on %s layer", n, event.Payload.Layer)
		}
		return fmt.Sprintf("overrides changed on %s layer", event.Payload.Layer)
	default:
		return ""
	}
}

// renderTokens builds the token listing with a color swatch per color
// token, styled by the values the tokens themselves resolve to.
func (m Model) renderTokens() string {
	nameWidth := 0
	entries := m.mgr.Catalog().Entries()
	for _, e := range entries {
		if len(e.Token) > nameWidth {
			nameWidth = len(e.Token)
		}
	}

	fg, _ := m.mgr.ResolveProperty(m.handle, "foreground")
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
	var b strings.Builder
	for _, e := range entries {
		value := m.mgr.Resolve(e.Token)
		row := fmt.Sprintf("%-*s  %-9s  %s", nameWidth, e.Token, e.Type, value)
		if e.Type == catalog.TypeColor && strings.HasPrefix(value, "#") {
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(value)).Render("      ")
			row += "  " + swatch
		}
		b.WriteString(rowStyle.Render(row))
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the preview.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	accent, _ := m.mgr.ResolveProperty(m.handle, "accent")
	border, _ := m.mgr.ResolveProperty(m.handle, "border")

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(accent)).
		PaddingLeft(1)
	title := titleStyle.Render(fmt.Sprintf("tint preview: %s", m.mgr.ActiveThemeName()))

	dividerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(border))
	divider := dividerStyle.Render(strings.Repeat("─", max(m.width, 1)))

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.status)
	}

	return title + "\n" + statusLine + "\n" + divider + "\n" +
		m.viewport.View() + "\n" +
		m.help.View(m.keys)
}
