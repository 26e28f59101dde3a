// Package tracker composes the exercise store with the set comparison rule.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/claude/gymtracker/internal/models"
	"github.com/claude/gymtracker/internal/storage"
)

// ErrNoSets is returned by BestSet when an exercise has no logged sets.
var ErrNoSets = errors.New("no sets logged")

// Store is the persistence the tracker needs.
type Store interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	GetExercise(ctx context.Context, id int64) (*models.Exercise, error)
	AddExercise(ctx context.Context, name string, isAssisted bool, description string) (int64, bool, error)
	AddSet(ctx context.Context, exerciseID int64, weight float64, unit models.WeightUnit, reps int) (models.SetRecord, error)
	GetHistory(ctx context.Context, exerciseID int64) ([]models.SetRecord, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Service answers the questions the UI asks: what exercises exist, what was
// logged, and which set is the best.
type Service struct {
	store Store
	log   *slog.Logger
}

// New creates a Service over store.
func New(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// History is an exercise with its sets, newest first.
type History struct {
	Exercise    models.Exercise      `json:"exercise"`
	RankingRule string               `json:"ranking_rule"`
	Sets        []models.ExerciseSet `json:"sets"`
	BestIndex   int                  `json:"best_index"`
}

// Best returns the best set, or nil when there are none.
func (h *History) Best() *models.ExerciseSet {
	if h.BestIndex < 0 || h.BestIndex >= len(h.Sets) {
		return nil
	}
	return &h.Sets[h.BestIndex]
}

// AddExerciseResult reports the exercise and whether it was newly created.
type AddExerciseResult struct {
	Exercise models.Exercise `json:"exercise"`
	Created  bool            `json:"created"`
}

// LoggedSet is a newly stored set.
type LoggedSet struct {
	Set            models.ExerciseSet `json:"set"`
	PersonalRecord bool               `json:"personal_record"`
}

// Exercises lists all exercise definitions.
func (s *Service) Exercises(ctx context.Context) ([]models.Exercise, error) {
	return s.store.ListExercises(ctx)
}

// Exercise returns a single definition or models.ErrUnknownExercise.
func (s *Service) Exercise(ctx context.Context, id int64) (*models.Exercise, error) {
	return s.store.GetExercise(ctx, id)
}

// AddExercise creates a definition. A duplicate name is not an error: the
// existing definition comes back with Created=false.
func (s *Service) AddExercise(ctx context.Context, name string, isAssisted bool, description string) (*AddExerciseResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", models.ErrMalformedInput)
	}

	id, created, err := s.store.AddExercise(ctx, name, isAssisted, strings.TrimSpace(description))
	if err != nil {
		return nil, fmt.Errorf("adding exercise: %w", err)
	}
	ex, err := s.store.GetExercise(ctx, id)
	if err != nil {
		return nil, err
	}
	if created {
		s.log.Info("exercise added", "id", id, "name", name, "assisted", isAssisted)
	} else {
		s.log.Debug("exercise already present", "id", id, "name", name)
	}
	return &AddExerciseResult{Exercise: *ex, Created: created}, nil
}

// History returns the exercise's sets newest first with the best one marked.
func (s *Service) History(ctx context.Context, exerciseID int64) (*History, error) {
	ex, err := s.store.GetExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	records, err := s.store.GetHistory(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	sets := make([]models.ExerciseSet, len(records))
	for i, r := range records {
		sets[i] = models.NewExerciseSet(*ex, r)
	}
	best, err := models.BestSet(sets)
	if err != nil {
		return nil, fmt.Errorf("ranking history: %w", err)
	}

	return &History{
		Exercise:    *ex,
		RankingRule: ex.RankingRule(),
		Sets:        sets,
		BestIndex:   best,
	}, nil
}

// BestSet returns the exercise's best set or ErrNoSets.
func (s *Service) BestSet(ctx context.Context, exerciseID int64) (*models.ExerciseSet, error) {
	h, err := s.History(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	best := h.Best()
	if best == nil {
		return nil, fmt.Errorf("%w: exercise %d", ErrNoSets, exerciseID)
	}
	return best, nil
}

// LogSet validates and stores a set. PersonalRecord is set when the new set is
// strictly better than every earlier one.
func (s *Service) LogSet(ctx context.Context, exerciseID int64, in models.SetInput) (*LoggedSet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	prior, err := s.History(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.AddSet(ctx, exerciseID, in.Weight, in.Unit, in.Reps)
	if err != nil {
		return nil, fmt.Errorf("logging set: %w", err)
	}
	set := models.NewExerciseSet(prior.Exercise, rec)

	pr := true
	if best := prior.Best(); best != nil {
		if pr, err = set.IsBetterThan(*best); err != nil {
			return nil, err
		}
	}

	s.log.Info("set logged",
		"exercise", prior.Exercise.Name,
		"weight", in.Weight,
		"unit", in.Unit,
		"reps", in.Reps,
		"personal_record", pr,
	)
	return &LoggedSet{Set: set, PersonalRecord: pr}, nil
}
