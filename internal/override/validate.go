package override

import (
	"strconv"
	"strings"

	"github.com/zjrosen/tint/internal/catalog"
)

// namedColors are the color keywords accepted alongside hex and
// rgb()/rgba() notation.
var namedColors = map[string]struct{}{
	"black": {}, "white": {}, "red": {}, "green": {}, "blue": {},
	"yellow": {}, "cyan": {}, "magenta": {}, "gray": {}, "grey": {},
	"orange": {}, "purple": {}, "pink": {}, "brown": {}, "transparent": {},
}

// sizeUnits are the unit suffixes a size value may carry.
// "rem" must precede "em" so the longer suffix is stripped first.
var sizeUnits = []string{"px", "pt", "rem", "em", "%"}

// validateForType checks a value against a declared token type. An empty
// return means the value is acceptable; otherwise the reason is returned
// for the InvalidValueError.
func validateForType(typ catalog.Type, value string) string {
	switch typ {
	case catalog.TypeColor:
		return validateColor(value)
	case catalog.TypeFont:
		return validateFont(value)
	case catalog.TypeSize:
		return validateSize(value)
	default:
		// Structure and opaque values are accepted as-is.
		return ""
	}
}

func validateColor(value string) string {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return "empty color value"
	}
	if _, ok := namedColors[v]; ok {
		return ""
	}
	if strings.HasPrefix(v, "#") {
		if isHexColor(v[1:]) {
			return ""
		}
		return "hex colors must have 3, 4, 6, or 8 hex digits"
	}
	if strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba(") {
		if reason := validateRGBFunc(v); reason != "" {
			return reason
		}
		return ""
	}
	return "not a recognized color (hex, rgb()/rgba(), or named constant)"
}

func isHexColor(hex string) bool {
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range hex {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}

func validateRGBFunc(v string) string {
	hasAlpha := strings.HasPrefix(v, "rgba(")
	if !strings.HasSuffix(v, ")") {
		return "unterminated rgb() value"
	}
	open := strings.Index(v, "(")
	inner := v[open+1 : len(v)-1]
	parts := strings.Split(inner, ",")

	want := 3
	if hasAlpha {
		want = 4
	}
	if len(parts) != want {
		return "rgb() takes 3 components, rgba() takes 4"
	}

	for i, part := range parts {
		part = strings.TrimSpace(part)
		if hasAlpha && i == 3 {
			alpha, err := strconv.ParseFloat(part, 64)
			if err != nil || alpha < 0 || alpha > 1 {
				return "alpha component must be a number in [0, 1]"
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 255 {
			return "rgb components must be integers in [0, 255]"
		}
	}
	return ""
}

func validateFont(value string) string {
	families := strings.Split(value, ",")
	for _, family := range families {
		if strings.TrimSpace(family) != "" {
			return ""
		}
	}
	return "font value must list at least one family"
}

func validateSize(value string) string {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return "empty size value"
	}
	for _, unit := range sizeUnits {
		if strings.HasSuffix(v, unit) {
			v = strings.TrimSpace(strings.TrimSuffix(v, unit))
			break
		}
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return "size must be numeric with an optional px/pt/em/rem/% unit"
	}
	if n < 0 {
		return "size must be non-negative"
	}
	return ""
}
