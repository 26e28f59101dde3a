package mcp

import (
	"context"

	"github.com/claude/gymtracker/internal/models"
	"github.com/claude/gymtracker/internal/tracker"
)

// DataSource abstracts the data layer for MCP tools. Both *tracker.Service (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Exercises(ctx context.Context) ([]models.Exercise, error)
	Exercise(ctx context.Context, id int64) (*models.Exercise, error)
	AddExercise(ctx context.Context, name string, isAssisted bool, description string) (*tracker.AddExerciseResult, error)
	History(ctx context.Context, exerciseID int64) (*tracker.History, error)
	BestSet(ctx context.Context, exerciseID int64) (*models.ExerciseSet, error)
	LogSet(ctx context.Context, exerciseID int64, in models.SetInput) (*tracker.LoggedSet, error)
}

// Compile-time check: *tracker.Service satisfies DataSource.
var _ DataSource = (*tracker.Service)(nil)
