package models

import (
	"fmt"
	"strconv"
	"time"
)

// SetRecord is a set row as persisted by the store.
type SetRecord struct {
	ID         int64      `json:"id"`
	ExerciseID int64      `json:"exercise_id"`
	Weight     float64    `json:"weight"`
	Unit       WeightUnit `json:"unit"`
	Reps       int        `json:"reps"`
	Timestamp  time.Time  `json:"timestamp"`
}

// ExerciseSet is one logged performance of an exercise.
type ExerciseSet struct {
	ID       int64      `json:"id,omitempty"`
	Exercise Exercise   `json:"exercise"`
	Weight   float64    `json:"weight"`
	Unit     WeightUnit `json:"unit"`
	Reps     int        `json:"reps"`
	LoggedAt time.Time  `json:"logged_at,omitzero"`
}

// NewExerciseSet builds the domain value for a stored set of ex.
func NewExerciseSet(ex Exercise, rec SetRecord) ExerciseSet {
	return ExerciseSet{
		ID:       rec.ID,
		Exercise: ex,
		Weight:   rec.Weight,
		Unit:     rec.Unit,
		Reps:     rec.Reps,
		LoggedAt: rec.Timestamp,
	}
}

// NormalizedKg is the set's weight in kilograms.
func (s ExerciseSet) NormalizedKg() float64 {
	return s.Unit.ToKg(s.Weight)
}

// IsBetterThan reports whether s is a strictly better performance than other.
//
// For standard exercises more weight wins; for assisted exercises less weight
// (less assistance) wins. Equal normalized weight falls back to more reps.
// Fully equal sets are not better than each other. Sets of different
// exercises cannot be compared and yield ErrInvalidComparison.
func (s ExerciseSet) IsBetterThan(other ExerciseSet) (bool, error) {
	if s.Exercise.Name != other.Exercise.Name {
		return false, fmt.Errorf("%w: %q vs %q", ErrInvalidComparison, s.Exercise.Name, other.Exercise.Name)
	}

	mine, theirs := s.NormalizedKg(), other.NormalizedKg()
	if mine == theirs {
		return s.Reps > other.Reps, nil
	}
	if s.Exercise.IsAssisted {
		return mine < theirs, nil
	}
	return mine > theirs, nil
}

// BestSet returns the index of the best set, or -1 when sets is empty.
// Earlier sets win ties: a later set only takes over when it is strictly better.
func BestSet(sets []ExerciseSet) (int, error) {
	if len(sets) == 0 {
		return -1, nil
	}
	best := 0
	for i := 1; i < len(sets); i++ {
		better, err := sets[i].IsBetterThan(sets[best])
		if err != nil {
			return -1, err
		}
		if better {
			best = i
		}
	}
	return best, nil
}

// String renders e.g. "Bench Press: 200 lbs x 5 reps (Standard)".
func (s ExerciseSet) String() string {
	return fmt.Sprintf("%s: %s %s x %d reps (%s)",
		s.Exercise.Name, strconv.FormatFloat(s.Weight, 'f', -1, 64), s.Unit, s.Reps, s.Exercise.Kind())
}
