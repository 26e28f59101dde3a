package models

import "fmt"

// WeightUnit is the unit a set's weight was logged in.
type WeightUnit string

const (
	Kilograms WeightUnit = "kg"
	Pounds    WeightUnit = "lbs"
)

// PoundsToKg is the fixed pounds -> kilograms conversion factor.
const PoundsToKg = 0.453592

// ToKg converts w, expressed in u, to kilograms.
func (u WeightUnit) ToKg(w float64) float64 {
	if u == Pounds {
		return w * PoundsToKg
	}
	return w
}

// Valid reports whether u is one of the known units.
func (u WeightUnit) Valid() bool {
	return u == Kilograms || u == Pounds
}

// ParseWeightUnit accepts exactly "kg" or "lbs".
func ParseWeightUnit(s string) (WeightUnit, error) {
	u := WeightUnit(s)
	if !u.Valid() {
		return "", fmt.Errorf("%w: unknown unit %q (want kg or lbs)", ErrMalformedInput, s)
	}
	return u, nil
}
