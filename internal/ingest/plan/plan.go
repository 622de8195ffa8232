// Package plan reads workouts written by hand as YAML documents.
//
// A file may hold several documents separated by "---":
//
//	name: Upper Body Strength
//	description: Heavy day
//	exercises:
//	  - name: Bench Press
//	    notes: pause reps
//	    sets:
//	      - {reps: 10, weight: 60}
//	      - {reps: 8, weight: 65}
package plan

import (
	"errors"
	"fmt"
	"io"

	"github.com/claude/liftlog/internal/builder"
	"gopkg.in/yaml.v3"
)

// Workout is one YAML document.
type Workout struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Exercises   []Exercise `yaml:"exercises"`
}

type Exercise struct {
	Name  string `yaml:"name"`
	Notes string `yaml:"notes"`
	Sets  []Set  `yaml:"sets"`
}

// Set leaves Weight nil when the document omits it.
type Set struct {
	Reps   int      `yaml:"reps"`
	Weight *float64 `yaml:"weight"`
}

// Parse decodes every document in r. Unknown keys are rejected so typos in
// hand-written files surface instead of silently dropping data.
func Parse(r io.Reader) ([]Workout, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var out []Workout
	for i := 1; ; i++ {
		var w Workout
		err := dec.Decode(&w)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, w)
	}
}

// Draft replays the document through the draft editing operations, so the
// same rules apply as for interactive entry.
func (w Workout) Draft() (builder.Draft, error) {
	d := builder.Draft{}.WithDetails(w.Name, w.Description)
	for _, ex := range w.Exercises {
		var err error
		if d, err = d.AddExercise(ex.Name); err != nil {
			return d, err
		}
		i := len(d.Exercises) - 1
		if d, err = d.SetExerciseNotes(i, ex.Notes); err != nil {
			return d, err
		}
		for n, s := range ex.Sets {
			if d, err = d.StageSet(i, s.Reps, s.Weight); err != nil {
				return d, fmt.Errorf("%s set %d: %w", ex.Name, n+1, err)
			}
		}
	}
	return d, nil
}
