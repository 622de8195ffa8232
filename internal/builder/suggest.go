package builder

import (
	"iter"
	"strings"
)

// MaxSuggestions caps how many names Suggestions yields.
const MaxSuggestions = 5

// Catalog is an ordered list of known exercise names.
type Catalog []string

// DefaultCatalog is the built-in list of common exercises.
var DefaultCatalog = Catalog{
	"Bench Press", "Squats", "Deadlifts", "Pull-ups", "Push-ups",
	"Overhead Press", "Barbell Rows", "Lunges", "Dips", "Bicep Curls",
	"Tricep Extensions", "Lat Pulldowns", "Leg Press", "Calf Raises",
	"Planks", "Russian Twists", "Burpees", "Mountain Climbers",
}

// With returns a new catalog with names appended, skipping blanks and
// case-insensitive duplicates.
func (c Catalog) With(names ...string) Catalog {
	seen := make(map[string]bool, len(c)+len(names))
	out := make(Catalog, 0, len(c)+len(names))
	for _, list := range [][]string{c, names} {
		for _, n := range list {
			n = strings.TrimSpace(n)
			key := strings.ToLower(n)
			if n == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, n)
		}
	}
	return out
}

// Suggestions yields up to MaxSuggestions names containing partial, ignoring
// case. Blank input yields nothing. The sequence can be ranged over any
// number of times.
func (c Catalog) Suggestions(partial string) iter.Seq[string] {
	needle := strings.ToLower(strings.TrimSpace(partial))
	return func(yield func(string) bool) {
		if needle == "" {
			return
		}
		n := 0
		for _, name := range c {
			if !strings.Contains(strings.ToLower(name), needle) {
				continue
			}
			if !yield(name) {
				return
			}
			n++
			if n == MaxSuggestions {
				return
			}
		}
	}
}
