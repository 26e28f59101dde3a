package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SetInput is user-entered set data after parsing.
type SetInput struct {
	Weight float64
	Unit   WeightUnit
	Reps   int
}

// ParseSetInput turns raw weight/unit/reps text into a SetInput.
// All failures wrap ErrMalformedInput.
func ParseSetInput(weight, unit, reps string) (SetInput, error) {
	weight, unit, reps = strings.TrimSpace(weight), strings.TrimSpace(unit), strings.TrimSpace(reps)
	if weight == "" || reps == "" {
		return SetInput{}, fmt.Errorf("%w: weight and reps are required", ErrMalformedInput)
	}

	w, err := strconv.ParseFloat(weight, 64)
	if err != nil {
		return SetInput{}, fmt.Errorf("%w: weight %q is not a number", ErrMalformedInput, weight)
	}
	r, err := strconv.Atoi(reps)
	if err != nil {
		return SetInput{}, fmt.Errorf("%w: reps %q is not an integer", ErrMalformedInput, reps)
	}
	if unit == "" {
		unit = string(Kilograms)
	}
	u, err := ParseWeightUnit(unit)
	if err != nil {
		return SetInput{}, err
	}

	in := SetInput{Weight: w, Unit: u, Reps: r}
	return in, in.Validate()
}

// Validate checks already-typed input, e.g. decoded from JSON numbers.
func (in SetInput) Validate() error {
	if math.IsNaN(in.Weight) || math.IsInf(in.Weight, 0) {
		return fmt.Errorf("%w: weight must be finite", ErrMalformedInput)
	}
	if in.Weight < 0 {
		return fmt.Errorf("%w: weight must not be negative", ErrMalformedInput)
	}
	if in.Reps < 1 {
		return fmt.Errorf("%w: reps must be at least 1", ErrMalformedInput)
	}
	if !in.Unit.Valid() {
		return fmt.Errorf("%w: unknown unit %q (want kg or lbs)", ErrMalformedInput, in.Unit)
	}
	return nil
}
