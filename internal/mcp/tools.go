package mcp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/claude/gymtracker/internal/models"
	"github.com/claude/gymtracker/internal/report"
	"github.com/claude/gymtracker/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
)

// setInput reads weight, unit and reps arguments, each name suffixed by
// suffix, into a validated SetInput.
func setInput(req mcp.CallToolRequest, suffix string) (models.SetInput, error) {
	weight, err := req.RequireFloat("weight" + suffix)
	if err != nil {
		return models.SetInput{}, fmt.Errorf("%w: weight%s is required", models.ErrMalformedInput, suffix)
	}
	reps, err := req.RequireFloat("reps" + suffix)
	if err != nil {
		return models.SetInput{}, fmt.Errorf("%w: reps%s is required", models.ErrMalformedInput, suffix)
	}
	if reps != math.Trunc(reps) {
		return models.SetInput{}, fmt.Errorf("%w: reps%s must be a whole number", models.ErrMalformedInput, suffix)
	}
	unit, err := models.ParseWeightUnit(req.GetString("unit"+suffix, string(models.Kilograms)))
	if err != nil {
		return models.SetInput{}, err
	}

	in := models.SetInput{Weight: weight, Unit: unit, Reps: int(reps)}
	return in, in.Validate()
}

func exerciseID(req mcp.CallToolRequest) (int64, error) {
	id, err := req.RequireInt("exercise_id")
	if err != nil || id <= 0 {
		return 0, errors.New("exercise_id must be a positive integer")
	}
	return int64(id), nil
}

// toolError turns a data source failure into a tool-level error result.
func (h *handlers) toolError(tool string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, models.ErrMalformedInput):
		return mcp.NewToolResultError("invalid input: " + err.Error())
	case errors.Is(err, models.ErrUnknownExercise):
		return mcp.NewToolResultError("exercise not found")
	case errors.Is(err, tracker.ErrNoSets):
		return mcp.NewToolResultError("no sets logged for this exercise yet")
	case errors.Is(err, models.ErrInvalidComparison):
		return mcp.NewToolResultError(err.Error())
	}
	h.log.Error("mcp "+tool, "error", err)
	return mcp.NewToolResultError("query failed: " + err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List all exercises with their ids and whether they are assisted (lower weight is better)."),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Get every logged set of an exercise, newest first. best_index points at the best set, or is -1 when nothing is logged."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise id from list_exercises")),
)

var toolGetBestSet = mcp.NewTool("get_best_set",
	mcp.WithDescription("Get the best set ever logged for an exercise. Weights are compared in kg; equal weights go to more reps."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise id from list_exercises")),
)

var toolLogSet = mcp.NewTool("log_set",
	mcp.WithDescription("Record a completed set. The set is timestamped by the server. Reports whether it is a new personal record."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise id from list_exercises")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted, or assistance used for assisted exercises")),
	mcp.WithString("unit", mcp.Description("Weight unit. Defaults to kg."), mcp.Enum("kg", "lbs")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetitions, at least 1")),
)

var toolAddExercise = mcp.NewTool("add_exercise",
	mcp.WithDescription("Add an exercise to the catalog. Adding an existing name is a no-op that returns the existing exercise."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name, case-sensitive and unique")),
	mcp.WithBoolean("is_assisted", mcp.Description("True when the weight is assistance, so less is better")),
	mcp.WithString("description", mcp.Description("Optional free text")),
)

var toolCompareSets = mcp.NewTool("compare_sets",
	mcp.WithDescription("Compare two hypothetical sets of the same exercise without logging them. Explains the result in kg."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise id from list_exercises")),
	mcp.WithNumber("weight_a", mcp.Required(), mcp.Description("Set A weight")),
	mcp.WithString("unit_a", mcp.Description("Set A unit. Defaults to kg."), mcp.Enum("kg", "lbs")),
	mcp.WithNumber("reps_a", mcp.Required(), mcp.Description("Set A reps")),
	mcp.WithNumber("weight_b", mcp.Required(), mcp.Description("Set B weight")),
	mcp.WithString("unit_b", mcp.Description("Set B unit. Defaults to kg."), mcp.Enum("kg", "lbs")),
	mcp.WithNumber("reps_b", mcp.Required(), mcp.Description("Set B reps")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.Exercises(ctx)
	if err != nil {
		return h.toolError("list_exercises", err), nil
	}
	return jsonResult(exercises)
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := exerciseID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	history, err := h.ds.History(ctx, id)
	if err != nil {
		return h.toolError("get_exercise_history", err), nil
	}
	return jsonResult(history)
}

func (h *handlers) getBestSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := exerciseID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	best, err := h.ds.BestSet(ctx, id)
	if err != nil {
		return h.toolError("get_best_set", err), nil
	}
	return jsonResult(best)
}

func (h *handlers) logSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := exerciseID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in, err := setInput(req, "")
	if err != nil {
		return h.toolError("log_set", err), nil
	}

	logged, err := h.ds.LogSet(ctx, id, in)
	if err != nil {
		return h.toolError("log_set", err), nil
	}
	return jsonResult(logged)
}

func (h *handlers) addExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	result, err := h.ds.AddExercise(ctx, name, req.GetBool("is_assisted", false), req.GetString("description", ""))
	if err != nil {
		return h.toolError("add_exercise", err), nil
	}
	return jsonResult(result)
}

func (h *handlers) compareSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := exerciseID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := setInput(req, "_a")
	if err != nil {
		return h.toolError("compare_sets", err), nil
	}
	b, err := setInput(req, "_b")
	if err != nil {
		return h.toolError("compare_sets", err), nil
	}

	ex, err := h.ds.Exercise(ctx, id)
	if err != nil {
		return h.toolError("compare_sets", err), nil
	}

	cmp, err := report.Compare(
		models.ExerciseSet{Exercise: *ex, Weight: a.Weight, Unit: a.Unit, Reps: a.Reps},
		models.ExerciseSet{Exercise: *ex, Weight: b.Weight, Unit: b.Unit, Reps: b.Reps},
	)
	if err != nil {
		return h.toolError("compare_sets", err), nil
	}
	return jsonResult(cmp)
}
