package theme

// Built-in themes. Slate Dark is the default; "default" is registered as
// an alias for it. High Contrast inherits Slate Dark and sharpens the
// tokens that matter for accessibility.

// SlateDark is the default dark theme.
func SlateDark() *Theme {
	return NewBuilder("slate-dark").
		Version("1.0.0").
		Meta("appearance", "dark").
		SetAll(map[string]string{
			"editor.background":    "#1a1a1a",
			"editor.foreground":    "#d4d4d4",
			"text.primary":         "#cccccc",
			"text.secondary":       "#bbbbbb",
			"text.muted":           "#696969",
			"border.default":       "#696969",
			"border.focus":         "#54a0ff",
			"status.success":       "#73f59f",
			"status.warning":       "#feca57",
			"status.error":         "#ff8787",
			"selection.background": "#264f78",
			"selection.foreground": "#ffffff",
			"colors.primary":       "#3498db",
			"colors.secondary":     "#636e72",
			"button.primary.bg":    "#1a5276",
			"button.primary.fg":    "#ffffff",
			"button.danger.bg":     "#922b21",
			"font.family":          "Inter, sans-serif",
			"font.family.monospace": "JetBrains Mono, monospace",
			"font.size":            "13",
			"spacing.small":        "4",
			"spacing.medium":       "8",
			"spacing.large":        "16",
			"border.width":         "1",
			"border.radius":        "4",
		}).
		Build()
}

// SlateLight is the light counterpart of Slate Dark.
func SlateLight() *Theme {
	return NewBuilder("slate-light").
		Version("1.0.0").
		Inherit(SlateDark()).
		Meta("appearance", "light").
		SetAll(map[string]string{
			"editor.background":    "#fafafa",
			"editor.foreground":    "#1f1f1f",
			"text.primary":         "#333333",
			"text.secondary":       "#555555",
			"text.muted":           "#999999",
			"border.default":       "#d9dccf",
			"selection.background": "#add6ff",
			"selection.foreground": "#1f1f1f",
		}).
		Build()
}

// Dracula is the classic vibrant dark palette.
func Dracula() *Theme {
	return NewBuilder("dracula").
		Version("1.0.0").
		Inherit(SlateDark()).
		Meta("appearance", "dark").
		SetAll(map[string]string{
			"editor.background":    "#282a36",
			"editor.foreground":    "#f8f8f2",
			"text.primary":         "#f8f8f2",
			"text.secondary":       "#bd93f9",
			"text.muted":           "#6272a4",
			"border.default":       "#44475a",
			"border.focus":         "#bd93f9",
			"status.success":       "#50fa7b",
			"status.warning":       "#f1fa8c",
			"status.error":         "#ff5555",
			"selection.background": "#44475a",
			"colors.primary":       "#bd93f9",
			"colors.secondary":     "#ff79c6",
		}).
		Build()
}

// Nord is the arctic, north-bluish palette.
func Nord() *Theme {
	return NewBuilder("nord").
		Version("1.0.0").
		Inherit(SlateDark()).
		Meta("appearance", "dark").
		SetAll(map[string]string{
			"editor.background":    "#2e3440",
			"editor.foreground":    "#d8dee9",
			"text.primary":         "#eceff4",
			"text.secondary":       "#d8dee9",
			"text.muted":           "#4c566a",
			"border.default":       "#434c5e",
			"border.focus":         "#88c0d0",
			"status.success":       "#a3be8c",
			"status.warning":       "#ebcb8b",
			"status.error":         "#bf616a",
			"selection.background": "#434c5e",
			"colors.primary":       "#88c0d0",
			"colors.secondary":     "#81a1c1",
		}).
		Build()
}

// HighContrast maximizes legibility for accessibility.
func HighContrast() *Theme {
	return NewBuilder("high-contrast").
		Version("1.0.0").
		Inherit(SlateDark()).
		Meta("appearance", "dark").
		SetAll(map[string]string{
			"editor.background": "#000000",
			"editor.foreground": "#ffffff",
			"text.primary":      "#ffffff",
			"text.secondary":    "#ffffff",
			"text.muted":        "#c0c0c0",
			"border.default":    "#ffffff",
			"border.focus":      "#ffff00",
			"status.error":      "#ff0000",
			"border.width":      "2",
		}).
		Build()
}

// Builtins returns every built-in theme.
func Builtins() []*Theme {
	return []*Theme{SlateDark(), SlateLight(), Dracula(), Nord(), HighContrast()}
}

// RegisterBuiltins registers every built-in theme plus the "default"
// alias for Slate Dark.
func RegisterBuiltins(s *Store) {
	for _, t := range Builtins() {
		s.Register(t, SourceBuiltin)
	}
	// Alias targets are all concrete themes registered above.
	_ = s.Alias("default", "slate-dark")
}
