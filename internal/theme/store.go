package theme

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zjrosen/tint/internal/log"
)

// Source identifies where a theme was discovered. Higher values outrank
// lower ones when the same name is registered more than once.
type Source int

const (
	SourceBuiltin Source = iota
	SourcePackage
	SourceUser
)

func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourcePackage:
		return "package"
	case SourceUser:
		return "user"
	default:
		return "unknown"
	}
}

// Store errors.
var (
	ErrThemeNotFound = errors.New("theme not found")
	ErrAliasCycle    = errors.New("alias cycle")
)

type record struct {
	theme  *Theme
	source Source
}

// Store holds every known theme by name plus the active one. It owns the
// themes it holds; callers receive shared immutable references.
type Store struct {
	themes  map[string]record
	aliases map[string]string
	active  string
}

// NewStore creates an empty store. Most hosts follow up with
// RegisterBuiltins and SetActive.
func NewStore() *Store {
	return &Store{
		themes:  make(map[string]record),
		aliases: make(map[string]string),
	}
}

// Register adds a theme under its name. A same-named theme is replaced
// only when the new source rank is greater than or equal to the existing
// one: user themes shadow package themes shadow built-ins, and a later
// discovery from the same source wins silently. Returns true when the
// registration took effect.
func (s *Store) Register(t *Theme, source Source) bool {
	existing, ok := s.themes[t.Name()]
	if ok && source < existing.source {
		log.Debug(log.CatTheme, "registration shadowed by higher-precedence source",
			"theme", t.Name(), "source", source, "existing", existing.source)
		return false
	}
	s.themes[t.Name()] = record{theme: t, source: source}
	log.Debug(log.CatTheme, "theme registered", "theme", t.Name(), "source", source, "tokens", t.Len())
	return true
}

// Alias maps one name onto another registered theme. Aliases resolve
// through exactly one indirection: the target must be a concrete theme,
// never another alias, and an alias may not point at itself.
func (s *Store) Alias(alias, target string) error {
	if alias == target {
		return fmt.Errorf("%w: %q points at itself", ErrAliasCycle, alias)
	}
	if _, isAlias := s.aliases[target]; isAlias {
		return fmt.Errorf("%w: %q -> %q would chain through an alias", ErrAliasCycle, alias, target)
	}
	if _, ok := s.themes[target]; !ok {
		return fmt.Errorf("%w: alias target %q", ErrThemeNotFound, target)
	}
	s.aliases[alias] = target
	return nil
}

// canonical resolves an alias through its single indirection.
func (s *Store) canonical(name string) string {
	if target, ok := s.aliases[name]; ok {
		return target
	}
	return name
}

// Lookup returns the theme registered under name, following at most one
// alias indirection.
func (s *Store) Lookup(name string) (*Theme, bool) {
	rec, ok := s.themes[s.canonical(name)]
	return rec.theme, ok
}

// SetActive switches the active theme. The active theme is unchanged when
// the name is unknown.
func (s *Store) SetActive(name string) error {
	canonical := s.canonical(name)
	if _, ok := s.themes[canonical]; !ok {
		return fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	s.active = canonical
	log.Info(log.CatTheme, "active theme changed", "theme", canonical)
	return nil
}

// Active returns the active theme, or nil when none has been set.
func (s *Store) Active() *Theme {
	rec, ok := s.themes[s.active]
	if !ok {
		return nil
	}
	return rec.theme
}

// ActiveName returns the canonical name of the active theme.
func (s *Store) ActiveName() string { return s.active }

// Names returns all registered theme names, sorted. Aliases are not
// included; see Aliases.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.themes))
	for name := range s.themes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Aliases returns the alias mapping.
func (s *Store) Aliases() map[string]string {
	out := make(map[string]string, len(s.aliases))
	for alias, target := range s.aliases {
		out[alias] = target
	}
	return out
}

// SourceOf reports the discovery source of a registered theme.
func (s *Store) SourceOf(name string) (Source, bool) {
	rec, ok := s.themes[s.canonical(name)]
	return rec.source, ok
}
