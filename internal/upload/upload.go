// Package upload bulk-imports workout files into a liftlog server.
package upload

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/liftlog/internal/builder"
	"github.com/claude/liftlog/internal/ingest/alpha"
	"github.com/claude/liftlog/internal/ingest/plan"
	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// Stats tracks import progress.
type Stats struct {
	FilesTotal    int
	FilesImported int
	FilesSkipped  int
	FilesErrored  int

	WorkoutsSent    int
	WorkoutsInvalid int
}

// Uploader walks a directory of YAML plans and Alpha Progression exports and
// submits every workout through a Builder.
type Uploader struct {
	persister builder.Persister
	state     *StateDB
	root      string
	dryRun    bool
	log       *slog.Logger
	stats     Stats
}

// New creates an Uploader. In dry-run mode p may be nil; drafts are validated
// but nothing is sent and the state DB is left alone.
func New(p builder.Persister, state *StateDB, root string, dryRun bool, log *slog.Logger) *Uploader {
	if dryRun {
		p = dryRunPersister{log: log}
	}
	return &Uploader{
		persister: p,
		state:     state,
		root:      root,
		dryRun:    dryRun,
		log:       log,
	}
}

// Run imports every supported file under the root. Per-file failures are
// counted and logged; only a cancelled context or an unreadable root stops
// the run.
func (u *Uploader) Run(ctx context.Context) (*Stats, error) {
	err := filepath.WalkDir(u.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !supported(path) {
			return nil
		}
		rel, err := filepath.Rel(u.root, path)
		if err != nil {
			return err
		}
		u.stats.FilesTotal++
		if err := u.importFile(ctx, rel); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			u.log.Warn("import failed", "file", rel, "error", err)
			u.stats.FilesErrored++
		}
		return nil
	})
	if err != nil {
		return &u.stats, fmt.Errorf("walking %s: %w", u.root, err)
	}
	return &u.stats, nil
}

func supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".csv":
		return true
	}
	return false
}

// importFile submits all workouts in one file. Every draft is checked before
// any is sent so a bad file is rejected whole instead of half-imported.
func (u *Uploader) importFile(ctx context.Context, rel string) error {
	fp, err := fingerprint(u.root, rel)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}
	if !u.dryRun {
		seen, err := u.state.Seen(ctx, fp)
		if err != nil {
			return err
		}
		if seen {
			u.stats.FilesSkipped++
			return nil
		}
	}

	drafts, err := readDrafts(filepath.Join(u.root, rel))
	if err != nil {
		u.stats.WorkoutsInvalid++
		return err
	}

	check := dryRunPersister{}
	for i, d := range drafts {
		if _, err := submit(ctx, check, d); err != nil {
			u.stats.WorkoutsInvalid++
			return fmt.Errorf("workout %d (%s): %w", i+1, d.Name, err)
		}
	}

	for i, d := range drafts {
		w, err := submit(ctx, u.persister, d)
		if err != nil {
			return fmt.Errorf("workout %d (%s), %d already sent: %w", i+1, d.Name, i, err)
		}
		u.stats.WorkoutsSent++
		u.log.Debug("workout submitted", "file", rel, "id", w.ID, "name", w.Name)
	}

	if !u.dryRun {
		if err := u.state.Record(ctx, fp, len(drafts)); err != nil {
			u.log.Warn("failed to record import", "file", rel, "error", err)
		}
	}
	u.stats.FilesImported++
	u.log.Info("imported file", "file", rel, "workouts", len(drafts))
	return nil
}

// readDrafts parses a file by extension into drafts.
func readDrafts(path string) ([]builder.Draft, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var drafts []builder.Draft
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		sessions, err := alpha.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parsing export: %w", err)
		}
		for _, s := range sessions {
			d, err := s.Draft()
			if err != nil {
				return nil, fmt.Errorf("session %q: %w", s.Name, err)
			}
			drafts = append(drafts, d)
		}
		return drafts, nil
	}

	plans, err := plan.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}
	for _, p := range plans {
		d, err := p.Draft()
		if err != nil {
			return nil, fmt.Errorf("plan %q: %w", p.Name, err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// submit runs one draft through a fresh Builder.
func submit(ctx context.Context, p builder.Persister, d builder.Draft) (*models.Workout, error) {
	b := builder.New(p, nil)
	if err := b.Open(); err != nil {
		return nil, err
	}
	if err := b.Update(func(builder.Draft) (builder.Draft, error) { return d, nil }); err != nil {
		return nil, err
	}
	return b.Submit(ctx)
}

// dryRunPersister accepts every payload without sending it.
type dryRunPersister struct {
	log *slog.Logger
}

func (p dryRunPersister) CreateWorkout(_ context.Context, payload models.WorkoutPayload) (*models.Workout, error) {
	if p.log != nil {
		sets := 0
		for _, ex := range payload.Exercises {
			sets += len(ex.Sets)
		}
		p.log.Info("dry-run: would create workout",
			"name", payload.Name,
			"exercises", len(payload.Exercises),
			"sets", sets,
		)
	}
	return &models.Workout{ID: uuid.New(), Name: payload.Name, Description: payload.Description}, nil
}

func (p dryRunPersister) UpdateWorkout(ctx context.Context, _ uuid.UUID, payload models.WorkoutPayload) (*models.Workout, error) {
	return p.CreateWorkout(ctx, payload)
}
