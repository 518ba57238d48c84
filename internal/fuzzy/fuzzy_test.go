package fuzzy

import "testing"

func TestMatchExact(t *testing.T) {
	got, ok := Match("tuesday", []string{"monday", "tuesday"})
	if !ok || got != "tuesday" {
		t.Errorf("Match(tuesday) = %q, %v; want tuesday, true", got, ok)
	}
}

func TestMatchCaseAndWhitespace(t *testing.T) {
	got, ok := Match("  Tuesday ", []string{"monday", "tuesday"})
	if !ok || got != "tuesday" {
		t.Errorf("Match(\"  Tuesday \") = %q, %v; want tuesday, true", got, ok)
	}
}

func TestMatchTypos(t *testing.T) {
	vocabulary := []string{
		"today", "tomorrow", "monday", "tuesday", "wednesday",
		"thursday", "friday", "saturday", "sunday",
	}

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"tomorow", "tomorrow", true},
		{"tuesdy", "tuesday", true},
		{"wedensday", "wednesday", true},
		{"thursdy", "thursday", true},
		{"saturady", "saturday", true},
		{"xyz", "", false},
		{"t", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Match(tt.input, vocabulary)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Match(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMatchBelowThreshold(t *testing.T) {
	// "mnday" vs "monday" is one deletion: similarity 5/6, accepted.
	// "mdy" vs "monday" is three deletions: similarity 0.5, rejected.
	if _, ok := Match("mnday", []string{"monday"}); !ok {
		t.Error("mnday should match monday")
	}
	if _, ok := Match("mdy", []string{"monday"}); ok {
		t.Error("mdy should not match monday")
	}
}

// The tie-break is vocabulary-order dependent: when two entries score the
// same, the first one in the list wins. This pins the behavior so a change
// is caught rather than slipping in silently.
func TestMatchFirstMaxTieBreak(t *testing.T) {
	// "sonday" is distance 1 from both entries either way it is ordered.
	got, ok := Match("sonday", []string{"sunday", "monday"})
	if !ok || got != "sunday" {
		t.Errorf("Match(sonday) = %q, %v; want sunday (first in vocabulary)", got, ok)
	}

	got, ok = Match("sonday", []string{"monday", "sunday"})
	if !ok || got != "monday" {
		t.Errorf("Match(sonday) = %q, %v; want monday (first in vocabulary)", got, ok)
	}
}
