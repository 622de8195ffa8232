package builder

import (
	"slices"
	"testing"
)

// TestSuggestionsCaseInsensitiveSubstring verifies matching ignores case and
// matches anywhere in the name.
func TestSuggestionsCaseInsensitiveSubstring(t *testing.T) {
	got := slices.Collect(DefaultCatalog.Suggestions("PRESS"))
	want := []string{"Bench Press", "Overhead Press", "Leg Press"}
	if !slices.Equal(got, want) {
		t.Errorf("Suggestions(PRESS) = %v, want %v", got, want)
	}
}

// TestSuggestionsCappedAtFive verifies no more than five names are produced.
func TestSuggestionsCappedAtFive(t *testing.T) {
	got := slices.Collect(DefaultCatalog.Suggestions("s"))
	if len(got) != MaxSuggestions {
		t.Fatalf("got %d suggestions, want %d: %v", len(got), MaxSuggestions, got)
	}
	if got[0] != "Bench Press" {
		t.Errorf("first suggestion = %q, want catalog order", got[0])
	}
}

// TestSuggestionsEmptyInput verifies blank input hides suggestions.
func TestSuggestionsEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   "} {
		if got := slices.Collect(DefaultCatalog.Suggestions(in)); len(got) != 0 {
			t.Errorf("Suggestions(%q) = %v, want none", in, got)
		}
	}
}

// TestSuggestionsRestartable verifies the sequence can be ranged twice with
// the same result, and stops early when the consumer does.
func TestSuggestionsRestartable(t *testing.T) {
	seq := DefaultCatalog.Suggestions("ups")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) || len(first) == 0 {
		t.Errorf("first=%v second=%v", first, second)
	}

	n := 0
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break consumed %d, want 1", n)
	}
}

// TestCatalogWith verifies merged history names are deduplicated ignoring case.
func TestCatalogWith(t *testing.T) {
	c := Catalog{"Squats", "Dips"}.With("squats", " Front Squats ", "", "Dips", "Hip Thrust")
	want := Catalog{"Squats", "Dips", "Front Squats", "Hip Thrust"}
	if !slices.Equal(c, want) {
		t.Errorf("With = %v, want %v", c, want)
	}
}
