package builder

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// MinNameLength is the shortest accepted workout name, after trimming.
const MinNameLength = 3

// Upper bounds for a single set. Reps must fit a 32-bit column; weight is
// capped so volume totals stay finite.
const (
	MaxReps   = math.MaxInt32
	MaxWeight = 100000.0
)

// State is the builder lifecycle state.
type State int

const (
	Closed State = iota
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Persister stores submitted workouts.
type Persister interface {
	CreateWorkout(ctx context.Context, p models.WorkoutPayload) (*models.Workout, error)
	UpdateWorkout(ctx context.Context, id uuid.UUID, p models.WorkoutPayload) (*models.Workout, error)
}

// Builder owns a single draft from open to submission.
type Builder struct {
	mu        sync.Mutex
	state     State
	draft     Draft
	editingID uuid.UUID
	message   string

	persister Persister
	history   *History
	log       *slog.Logger
}

// New creates a closed Builder that submits through p.
func New(p Persister, log *slog.Logger) *Builder {
	return &Builder{persister: p, log: log}
}

// AttachHistory makes successful submissions update h.
func (b *Builder) AttachHistory(h *History) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = h
}

// State returns the current lifecycle state.
func (b *Builder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Draft returns the current draft. The zero Draft is returned when closed.
func (b *Builder) Draft() Draft {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draft.clone()
}

// EditingID returns the id of the workout being edited, or uuid.Nil for a new one.
func (b *Builder) EditingID() uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.editingID
}

// Message returns the last user-facing status or error text.
func (b *Builder) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message
}

// Open starts a new empty draft.
func (b *Builder) Open() error {
	return b.start(Draft{}, uuid.Nil)
}

// Edit starts a draft pre-populated from an existing workout.
func (b *Builder) Edit(w models.Workout) error {
	return b.start(FromWorkout(w), w.ID)
}

func (b *Builder) start(d Draft, id uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == Submitting {
		return ErrSubmissionPending
	}
	b.state = Editing
	b.draft = d
	b.editingID = id
	b.message = ""
	return nil
}

// Cancel discards the draft and closes the builder.
func (b *Builder) Cancel() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == Submitting {
		return ErrSubmissionPending
	}
	b.reset()
	b.message = ""
	return nil
}

func (b *Builder) reset() {
	b.state = Closed
	b.draft = Draft{}
	b.editingID = uuid.Nil
}

// Update applies one edit to the draft. If edit fails the draft is unchanged
// and the error text becomes the current message.
func (b *Builder) Update(edit func(Draft) (Draft, error)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case Closed:
		return ErrNotEditing
	case Submitting:
		return ErrSubmissionPending
	}
	next, err := edit(b.draft)
	if err != nil {
		b.message = err.Error()
		return err
	}
	b.draft = next
	b.message = ""
	return nil
}

// Submit validates the draft and hands it to the persister. On failure the
// builder goes back to Editing with the draft intact.
func (b *Builder) Submit(ctx context.Context) (*models.Workout, error) {
	b.mu.Lock()
	switch b.state {
	case Closed:
		b.mu.Unlock()
		return nil, ErrNotEditing
	case Submitting:
		b.mu.Unlock()
		return nil, ErrSubmissionPending
	}

	if len(b.draft.Exercises) == 0 {
		b.message = ErrEmptyWorkout.Error()
		b.mu.Unlock()
		return nil, ErrEmptyWorkout
	}
	name := strings.TrimSpace(b.draft.Name)
	if utf8.RuneCountInString(name) < MinNameLength {
		err := invalid("name", "must be at least %d characters", MinNameLength)
		b.message = err.Error()
		b.mu.Unlock()
		return nil, err
	}
	payload, err := ToPayload(b.draft.WithDetails(name, b.draft.Description))
	if err != nil {
		b.message = err.Error()
		b.mu.Unlock()
		return nil, err
	}

	b.state = Submitting
	id := b.editingID
	b.message = ""
	b.mu.Unlock()

	var saved *models.Workout
	op := "create"
	if id == uuid.Nil {
		saved, err = b.persister.CreateWorkout(ctx, payload)
	} else {
		op = "update"
		saved, err = b.persister.UpdateWorkout(ctx, id, payload)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.state = Editing
		perr := &PersistenceError{Op: op, Err: err}
		b.message = perr.Error()
		if b.log != nil {
			b.log.Warn("workout submission failed", "op", op, "error", err)
		}
		return nil, perr
	}

	b.reset()
	if op == "create" {
		b.message = "Workout created successfully!"
	} else {
		b.message = "Workout updated successfully!"
	}
	if b.history != nil && saved != nil {
		b.history.Put(*saved)
	}
	return saved, nil
}
