// Package palette holds the named chat colors players and teams are painted
// with.
package palette

import (
	"github.com/lefinal/flier/errors"
	"strings"
)

// Color is a named palette entry.
type Color int

// Colors in palette order.
const (
	Black Color = iota
	DarkBlue
	DarkGreen
	DarkAqua
	DarkRed
	DarkPurple
	Gold
	Gray
	DarkGray
	Blue
	Green
	Aqua
	Red
	LightPurple
	Yellow
	White
)

// codePrefix introduces a color code in rendered text.
const codePrefix = "§"

var names = [...]string{
	"BLACK",
	"DARK_BLUE",
	"DARK_GREEN",
	"DARK_AQUA",
	"DARK_RED",
	"DARK_PURPLE",
	"GOLD",
	"GRAY",
	"DARK_GRAY",
	"BLUE",
	"GREEN",
	"AQUA",
	"RED",
	"LIGHT_PURPLE",
	"YELLOW",
	"WHITE",
}

const codes = "0123456789abcdef"

// String returns the palette name of the color.
func (c Color) String() string {
	if c < Black || c > White {
		return "UNKNOWN"
	}
	return names[c]
}

// Code returns the formatting code that switches rendered text to this color.
func (c Color) Code() string {
	if c < Black || c > White {
		return codePrefix + "f"
	}
	return codePrefix + string(codes[c])
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// All returns the full palette in palette order.
func All() []Color {
	all := make([]Color, 0, len(names))
	for c := Black; c <= White; c++ {
		all = append(all, c)
	}
	return all
}

// Parse parses a color name. Names are case-insensitive and spaces may be used
// instead of underscores.
func Parse(name string) (Color, error) {
	normalized := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), " ", "_")
	for i, n := range names {
		if n == normalized {
			return Color(i), nil
		}
	}
	return White, errors.NewLoadingError(errors.KindUnknownColor, "color does not exist",
		errors.Details{"color": name})
}

// StripCodes removes all color codes from the given text.
func StripCodes(text string) string {
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if string(runes[i]) == codePrefix && i+1 < len(runes) {
			i++
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

// TranslateAlternateCodes replaces codes written with the given alternative
// prefix like '&c' with real color codes.
func TranslateAlternateCodes(alt rune, text string) string {
	runes := []rune(text)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] == alt && strings.ContainsRune(codes, runes[i+1]) {
			runes[i] = []rune(codePrefix)[0]
		}
	}
	return string(runes)
}
