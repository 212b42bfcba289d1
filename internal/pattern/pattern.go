// Package pattern defines the 4-bit LED pattern model shared by the MCP
// tools, the device client, and the CLI commands.
package pattern

import (
	"fmt"
	"strings"
)

// Width is the number of LEDs the device controller drives.
const Width = 4

// Pattern is a 4-digit binary string encoding the on/off state of the
// four LEDs in fixed order: red, yellow, green, blue. Patterns are
// immutable values; translation functions return new ones.
type Pattern string

// Color identifies one of the four LEDs.
type Color string

// The closed color set, one per bit position.
const (
	Red    Color = "red"
	Yellow Color = "yellow"
	Green  Color = "green"
	Blue   Color = "blue"
)

// colorIndex maps each color to its fixed bit position.
var colorIndex = map[Color]int{
	Red:    0,
	Yellow: 1,
	Green:  2,
	Blue:   3,
}

// Colors returns the color set in bit-position order.
func Colors() []Color {
	return []Color{Red, Yellow, Green, Blue}
}

// AllOff returns the pattern with every LED off.
func AllOff() Pattern {
	return "0000"
}

// ForColor returns the pattern that lights exactly the given color and
// clears the other three. The device holds a single active pattern, so
// turning one LED on implies turning the others off.
func ForColor(color Color) (Pattern, error) {
	idx, ok := colorIndex[Color(strings.ToLower(string(color)))]
	if !ok {
		return "", fmt.Errorf("unsupported color %q (must be one of red, yellow, green, blue)", color)
	}

	bits := []byte("0000")
	bits[idx] = '1'
	return Pattern(bits), nil
}

// Parse validates a raw pattern string and returns it unchanged.
// Custom patterns pass through verbatim so callers can express
// multi-LED combinations that ForColor cannot.
func Parse(s string) (Pattern, error) {
	if len(s) != Width {
		return "", fmt.Errorf("invalid LED pattern %q: must be exactly %d digits", s, Width)
	}
	for _, c := range s {
		if c != '0' && c != '1' {
			return "", fmt.Errorf("invalid LED pattern %q: digits must be 0 or 1", s)
		}
	}
	return Pattern(s), nil
}

// Lit reports whether the LED for the given color is on.
func (p Pattern) Lit(color Color) bool {
	idx, ok := colorIndex[color]
	if !ok || len(p) != Width {
		return false
	}
	return p[idx] == '1'
}

// String implements fmt.Stringer.
func (p Pattern) String() string {
	return string(p)
}

// Describe renders the pattern as a human-readable listing of lit and
// unlit LEDs, e.g. "yellow on; red, green, blue off".
func (p Pattern) Describe() string {
	var on, off []string
	for _, c := range Colors() {
		if p.Lit(c) {
			on = append(on, string(c))
		} else {
			off = append(off, string(c))
		}
	}

	switch {
	case len(on) == 0:
		return "all off"
	case len(off) == 0:
		return "all on"
	default:
		return strings.Join(on, ", ") + " on; " + strings.Join(off, ", ") + " off"
	}
}
