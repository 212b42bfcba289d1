package pattern

import (
	"fmt"
	"sort"
	"strings"
)

// moodPatterns maps each preset mood to its pattern. The table is fixed
// at process start and read-only afterwards; the bindings are a product
// decision, not derived from the colors.
var moodPatterns = map[string]Pattern{
	"calm":  "0001", // blue
	"alert": "1111", // all
	"focus": "0010", // green
	"idle":  "0000", // off

	// Energy levels
	"energetic": "1100", // red + yellow, warm
	"relaxed":   "0011", // green + blue, cool
	"sleepy":    "0001", // blue

	// Emotional states
	"happy":    "0110", // yellow + green
	"excited":  "1010", // red + green
	"creative": "1001", // red + blue
	"warning":  "1000", // red only
	"caution":  "0100", // yellow only

	// Work modes
	"busy":     "1110", // all except blue
	"thinking": "0011", // green + blue
	"success":  "0010", // green
	"error":    "1000", // red

	// Special
	"party":   "1111",
	"night":   "0001",
	"sunrise": "1100",
	"sunset":  "1010",
}

// Moods returns the mood names in sorted order, for schema enums and
// tool descriptions.
func Moods() []string {
	names := make([]string, 0, len(moodPatterns))
	for name := range moodPatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForMood returns the fixed pattern bound to the given mood name.
// Mood names are case-insensitive; the set is closed.
func ForMood(mood string) (Pattern, error) {
	p, ok := moodPatterns[strings.ToLower(mood)]
	if !ok {
		return "", fmt.Errorf("unsupported mood %q (available: %s)", mood, strings.Join(Moods(), ", "))
	}
	return p, nil
}
