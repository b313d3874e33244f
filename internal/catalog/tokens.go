package catalog

// Token name constants for the built-in set. Hosts may resolve tokens not
// listed here; unknown names fall back to naming-convention inference.
const (
	TokenEditorBackground = "editor.background"
	TokenEditorForeground = "editor.foreground"

	TokenTextPrimary   = "text.primary"
	TokenTextSecondary = "text.secondary"
	TokenTextMuted     = "text.muted"

	TokenBorderDefault = "border.default"
	TokenBorderFocus   = "border.focus"

	TokenStatusSuccess = "status.success"
	TokenStatusWarning = "status.warning"
	TokenStatusError   = "status.error"

	TokenSelectionBackground = "selection.background"
	TokenSelectionForeground = "selection.foreground"

	TokenColorsPrimary   = "colors.primary"
	TokenColorsSecondary = "colors.secondary"

	TokenButtonPrimaryBg = "button.primary.bg"
	TokenButtonPrimaryFg = "button.primary.fg"
	TokenButtonDangerBg  = "button.danger.bg"

	TokenFontFamily     = "font.family"
	TokenFontFamilyMono = "font.family.monospace"

	TokenFontSize      = "font.size"
	TokenSpacingSmall  = "spacing.small"
	TokenSpacingMedium = "spacing.medium"
	TokenSpacingLarge  = "spacing.large"
	TokenBorderWidth   = "border.width"
	TokenBorderRadius  = "border.radius"
)

var builtinEntries = []Entry{
	// Editor surface
	{Token: TokenEditorBackground, Type: TypeColor, Fallback: "#1e1e1e", Description: "Main editor surface"},
	{Token: TokenEditorForeground, Type: TypeColor, Fallback: "#d4d4d4", Description: "Default editor text"},

	// Text hierarchy
	{Token: TokenTextPrimary, Type: TypeColor, Fallback: "#cccccc", Description: "Primary text"},
	{Token: TokenTextSecondary, Type: TypeColor, Fallback: "#bbbbbb", Description: "Secondary text"},
	{Token: TokenTextMuted, Type: TypeColor, Fallback: "#696969", Description: "Hints and help text"},

	// Borders
	{Token: TokenBorderDefault, Type: TypeColor, Fallback: "#696969", Description: "Unfocused borders"},
	{Token: TokenBorderFocus, Type: TypeColor, Fallback: "#54a0ff", Description: "Focused borders"},

	// Status indicators
	{Token: TokenStatusSuccess, Type: TypeColor, Fallback: "#73f59f", Description: "Success states"},
	{Token: TokenStatusWarning, Type: TypeColor, Fallback: "#feca57", Description: "Warnings"},
	{Token: TokenStatusError, Type: TypeColor, Fallback: "#ff8787", Description: "Errors"},

	// Selection
	{Token: TokenSelectionBackground, Type: TypeColor, Fallback: "#264f78", Description: "Selected range background"},
	{Token: TokenSelectionForeground, Type: TypeColor, Fallback: "#ffffff", Description: "Selected range text"},

	// Brand accents
	{Token: TokenColorsPrimary, Type: TypeColor, Fallback: "#3498db", Description: "Primary brand accent"},
	{Token: TokenColorsSecondary, Type: TypeColor, Fallback: "#636e72", Description: "Secondary brand accent"},

	// Buttons
	{Token: TokenButtonPrimaryBg, Type: TypeColor, Fallback: "#1a5276", Description: "Primary button background"},
	{Token: TokenButtonPrimaryFg, Type: TypeColor, Fallback: "#ffffff", Description: "Primary button text"},
	{Token: TokenButtonDangerBg, Type: TypeColor, Fallback: "#922b21", Description: "Danger button background"},

	// Fonts
	{Token: TokenFontFamily, Type: TypeFont, Fallback: "Inter, sans-serif", Description: "Default UI font stack"},
	{Token: TokenFontFamilyMono, Type: TypeFont, Fallback: "JetBrains Mono, monospace", Description: "Monospace font stack"},

	// Metrics
	{Token: TokenFontSize, Type: TypeSize, Fallback: "13", Description: "Base font size"},
	{Token: TokenSpacingSmall, Type: TypeSize, Fallback: "4", Description: "Small spacing unit"},
	{Token: TokenSpacingMedium, Type: TypeSize, Fallback: "8", Description: "Medium spacing unit"},
	{Token: TokenSpacingLarge, Type: TypeSize, Fallback: "16", Description: "Large spacing unit"},
	{Token: TokenBorderWidth, Type: TypeSize, Fallback: "1", Description: "Border stroke width"},
	{Token: TokenBorderRadius, Type: TypeSize, Fallback: "4", Description: "Corner radius"},
}
