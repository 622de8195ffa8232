package mcp

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/builder"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/stats"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List logged workouts, newest first, with set, rep and volume totals and an estimated duration in minutes."),
	mcp.WithString("name", mcp.Description("Only include workouts whose name contains this text (case-insensitive)")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of workouts to return. Defaults to 20.")),
)

var toolGetWorkoutSummary = mcp.NewTool("get_workout_summary",
	mcp.WithDescription("Summarize one workout: per-exercise sets, reps and heaviest weight, plus workout totals and estimated duration."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout ID (UUID)")),
)

var toolSuggestExercises = mcp.NewTool("suggest_exercises",
	mcp.WithDescription("Suggest up to five exercise names containing the given text, drawn from the built-in list and the user's history."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Partial exercise name, e.g. 'press'")),
)

var toolCreateWorkout = mcp.NewTool("create_workout",
	mcp.WithDescription("Log a new workout. Exercise names must be unique within the workout, every set needs at least one rep, and weights default to 0."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Workout name, at least 3 characters")),
	mcp.WithString("description", mcp.Description("Optional description")),
	mcp.WithArray("exercises", mcp.Required(),
		mcp.Description("Exercises in order"),
		mcp.Items(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"notes": map[string]any{"type": "string"},
				"sets": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"reps":   map[string]any{"type": "integer"},
							"weight": map[string]any{"type": "number"},
						},
						"required": []string{"reps"},
					},
				},
			},
			"required": []string{"name"},
		}),
	),
)

var toolDeleteWorkout = mcp.NewTool("delete_workout",
	mcp.WithDescription("Delete a workout with its exercises and sets. This cannot be undone."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout ID (UUID)")),
	mcp.WithDestructiveHintAnnotation(true),
)

// workoutListing is the compact row returned by list_workouts.
type workoutListing struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	CreatedAt        time.Time `json:"createdAt"`
	Exercises        int       `json:"exercises"`
	TotalSets        int       `json:"totalSets"`
	TotalReps        int       `json:"totalReps"`
	TotalVolume      float64   `json:"totalVolume"`
	EstimatedMinutes int       `json:"estimatedMinutes"`
}

type createArgs struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Exercises   []struct {
		Name  string `json:"name"`
		Notes string `json:"notes"`
		Sets  []struct {
			Reps   int      `json:"reps"`
			Weight *float64 `json:"weight"`
		} `json:"sets"`
	} `json:"exercises"`
}

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := strings.ToLower(strings.TrimSpace(req.GetString("name", "")))
	limit := req.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	workouts, err := h.resolve(ctx).ListWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	listing := []workoutListing{}
	for _, w := range workouts {
		if filter != "" && !strings.Contains(strings.ToLower(w.Name), filter) {
			continue
		}
		s := stats.Summarize(w, h.policy)
		listing = append(listing, workoutListing{
			ID:               w.ID,
			Name:             w.Name,
			CreatedAt:        w.CreatedAt,
			Exercises:        len(w.Exercises),
			TotalSets:        s.TotalSets,
			TotalReps:        s.TotalReps,
			TotalVolume:      s.TotalVolume,
			EstimatedMinutes: s.EstimatedMinutes,
		})
		if len(listing) == limit {
			break
		}
	}

	result, err := mcp.NewToolResultJSON(listing)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid workout ID"), nil
	}

	w, err := h.resolve(ctx).GetWorkout(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("workout not found"), nil
	}
	if err != nil {
		h.log.Error("mcp get_workout_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"id":        w.ID,
		"name":      w.Name,
		"createdAt": w.CreatedAt,
		"summary":   stats.Summarize(*w, h.policy),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) suggestExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	names, err := h.resolve(ctx).ExerciseNames(ctx)
	if err != nil {
		h.log.Warn("mcp suggest_exercises: history lookup failed", "error", err)
	}

	suggestions := slices.Collect(h.catalog.With(names...).Suggestions(query))
	if suggestions == nil {
		suggestions = []string{}
	}
	result, err := mcp.NewToolResultJSON(suggestions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// createWorkout assembles the workout through a Builder so tool callers get
// the same validation as interactive users.
func (h *handlers) createWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args createArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}

	b := builder.New(h.resolve(ctx), h.log)
	if err := b.Open(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	err := b.Update(func(d builder.Draft) (builder.Draft, error) {
		d = d.WithDetails(args.Name, strings.TrimSpace(args.Description))
		for _, ex := range args.Exercises {
			var err error
			if d, err = d.AddExercise(ex.Name); err != nil {
				return d, err
			}
			i := len(d.Exercises) - 1
			if d, err = d.SetExerciseNotes(i, ex.Notes); err != nil {
				return d, err
			}
			for _, set := range ex.Sets {
				if d, err = d.StageSet(i, set.Reps, set.Weight); err != nil {
					return d, err
				}
			}
		}
		return d, nil
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	saved, err := b.Submit(ctx)
	if err != nil {
		var perr *builder.PersistenceError
		if errors.As(err, &perr) {
			h.log.Error("mcp create_workout", "error", err)
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(saved)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) deleteWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid workout ID"), nil
	}

	err = h.resolve(ctx).DeleteWorkout(ctx, id)
	if errors.Is(err, builder.ErrWorkoutNotFound) {
		return mcp.NewToolResultError("workout not found"), nil
	}
	if err != nil {
		h.log.Error("mcp delete_workout", "error", err)
		return mcp.NewToolResultError("delete failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText("Workout deleted successfully"), nil
}
