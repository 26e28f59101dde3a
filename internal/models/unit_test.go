package models

import (
	"errors"
	"testing"
)

// TestToKg verifies the fixed conversion factor for pounds and identity for kilograms.
func TestToKg(t *testing.T) {
	for _, w := range []float64{0, 1, 40, 85, 200, 137.5} {
		if got, want := Pounds.ToKg(w), w*0.453592; got != want {
			t.Errorf("Pounds.ToKg(%v) = %v, want %v", w, got, want)
		}
		if got := Kilograms.ToKg(w); got != w {
			t.Errorf("Kilograms.ToKg(%v) = %v, want %v", w, got, w)
		}
	}
}

// TestParseWeightUnit verifies only the two stored spellings are accepted.
func TestParseWeightUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    WeightUnit
		wantErr bool
	}{
		{"kg", Kilograms, false},
		{"lbs", Pounds, false},
		{"KG", "", true},
		{"lb", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseWeightUnit(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("ParseWeightUnit(%q) error = %v, want ErrMalformedInput", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWeightUnit(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseWeightUnit(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
