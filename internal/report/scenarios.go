package report

import (
	"fmt"
	"io"

	"github.com/claude/gymtracker/internal/models"
)

// Scenario is a comparison with a known expected answer.
type Scenario struct {
	Name            string
	First, Second   models.ExerciseSet
	WantFirstBetter bool
}

// DemoScenarios are the standard and assisted cases used to sanity-check the rule.
func DemoScenarios() []Scenario {
	bench := models.Exercise{Name: "Bench Press"}
	pullup := models.Exercise{Name: "Assisted Pull-up", IsAssisted: true}

	set := func(ex models.Exercise, w float64, u models.WeightUnit, reps int) models.ExerciseSet {
		return models.ExerciseSet{Exercise: ex, Weight: w, Unit: u, Reps: reps}
	}

	return []Scenario{
		{
			Name:            "200lbs > 85kg",
			First:           set(bench, 200, models.Pounds, 5),
			Second:          set(bench, 85, models.Kilograms, 5),
			WantFirstBetter: true,
		},
		{
			Name:            "10kg assist > 20kg assist",
			First:           set(pullup, 10, models.Kilograms, 8),
			Second:          set(pullup, 20, models.Kilograms, 8),
			WantFirstBetter: true,
		},
		{
			Name:            "15kg > 40lbs (18kg)",
			First:           set(pullup, 15, models.Kilograms, 5),
			Second:          set(pullup, 40, models.Pounds, 5),
			WantFirstBetter: true,
		},
	}
}

// Run compares every scenario, writes a table and a PASS/FAIL line per
// scenario, and returns the number of failures.
func Run(w io.Writer, scenarios []Scenario) (int, error) {
	failures := 0
	for _, sc := range scenarios {
		c, err := Compare(sc.First, sc.Second)
		if err != nil {
			return failures, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		if err := WriteTable(w, "Comparing "+sc.First.Exercise.Name, []Comparison{c}); err != nil {
			return failures, err
		}
		if err := WritePlain(w, c); err != nil {
			return failures, err
		}

		status := "PASS"
		if c.FirstBetter != sc.WantFirstBetter {
			status = "FAIL"
			failures++
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n\n", status, sc.Name); err != nil {
			return failures, err
		}
	}
	return failures, nil
}
