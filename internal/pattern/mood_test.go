package pattern

import "testing"

func TestForMood_ClosedSet(t *testing.T) {
	// Every mood in the closed set resolves to a valid, deterministic pattern.
	for _, mood := range Moods() {
		t.Run(mood, func(t *testing.T) {
			first, err := ForMood(mood)
			if err != nil {
				t.Fatalf("ForMood(%q) returned error: %v", mood, err)
			}
			if _, parseErr := Parse(string(first)); parseErr != nil {
				t.Errorf("ForMood(%q) = %q, not a valid pattern: %v", mood, first, parseErr)
			}

			second, err := ForMood(mood)
			if err != nil {
				t.Fatalf("ForMood(%q) second call returned error: %v", mood, err)
			}
			if first != second {
				t.Errorf("ForMood(%q) not deterministic: %q then %q", mood, first, second)
			}
		})
	}
}

func TestForMood_KnownBindings(t *testing.T) {
	tests := []struct {
		mood string
		want Pattern
	}{
		{"calm", "0001"},
		{"alert", "1111"},
		{"focus", "0010"},
		{"idle", "0000"},
		{"warning", "1000"},
		{"caution", "0100"},
		{"party", "1111"},
		{"sunrise", "1100"},
	}

	for _, tt := range tests {
		t.Run(tt.mood, func(t *testing.T) {
			got, err := ForMood(tt.mood)
			if err != nil {
				t.Fatalf("ForMood(%q) returned error: %v", tt.mood, err)
			}
			if got != tt.want {
				t.Errorf("ForMood(%q) = %q, want %q", tt.mood, got, tt.want)
			}
		})
	}
}

func TestForMood_CaseInsensitive(t *testing.T) {
	got, err := ForMood("CALM")
	if err != nil {
		t.Fatalf("ForMood(CALM) returned error: %v", err)
	}
	if got != "0001" {
		t.Errorf("ForMood(CALM) = %q, want 0001", got)
	}
}

func TestForMood_Unknown(t *testing.T) {
	for _, mood := range []string{"grumpy", "", "calm "} {
		if _, err := ForMood(mood); err == nil {
			t.Errorf("ForMood(%q) should return error", mood)
		}
	}
}

func TestMoods_SortedAndComplete(t *testing.T) {
	moods := Moods()
	if len(moods) != 20 {
		t.Errorf("Moods() len = %d, want 20", len(moods))
	}
	for i := 1; i < len(moods); i++ {
		if moods[i-1] >= moods[i] {
			t.Errorf("Moods() not sorted at index %d: %q >= %q", i, moods[i-1], moods[i])
		}
	}
}
