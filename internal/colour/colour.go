// Package colour derives stable display colours for projects.
package colour

import "strings"

var palette = []string{
	"#1C7ED6",
	"#F59F00",
	"#E03131",
	"#7048E8",
	"#2B8A3E",
	"#0CA678",
	"#D6336C",
	"#3B5BDB",
	"#F76707",
	"#40C057",
	"#15AABF",
	"#495057",
}

// Derive picks a deterministic palette colour for a project name. The same
// name (case-insensitive) always maps to the same colour.
func Derive(name string) string {
	key := strings.ToLower(name)
	var hash int32
	for _, r := range []byte(key) {
		hash = (hash << 5) - hash + int32(r)
	}
	return palette[paletteIndex(hash)]
}

// paletteIndex maps a hash to a palette slot. The hash is reinterpreted as
// unsigned rather than negated, since negating math.MinInt32 overflows.
func paletteIndex(hash int32) int {
	return int(uint32(hash) % uint32(len(palette)))
}

// ReadableText returns a foreground colour with enough contrast against the
// given hex background.
func ReadableText(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return "#ffffff"
	}
	r := float64(nibbles(hex[0], hex[1]))
	g := float64(nibbles(hex[2], hex[3]))
	b := float64(nibbles(hex[4], hex[5]))
	luminance := (0.299*r + 0.587*g + 0.114*b) / 255
	if luminance > 0.6 {
		return "#1f1f1f"
	}
	return "#ffffff"
}

func nibbles(hi, lo byte) int {
	return hexVal(hi)<<4 | hexVal(lo)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 0
	}
}
