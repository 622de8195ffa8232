package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

const recentWorkoutLimit = 10

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	workouts, err := h.resolve(ctx).ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}
	if len(workouts) > recentWorkoutLimit {
		workouts = workouts[:recentWorkoutLimit]
	}
	return jsonResource(req.Params.URI, workouts)
}

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := h.resolve(ctx).ExerciseNames(ctx)
	if err != nil {
		h.log.Warn("exercise_catalog: history lookup failed", "error", err)
	}
	return jsonResource(req.Params.URI, h.catalog.With(names...))
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
