// Package report renders human-readable verdicts of the set comparison rule.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/claude/gymtracker/internal/models"
)

// Comparison is the outcome of comparing two sets of one exercise.
type Comparison struct {
	First       models.ExerciseSet `json:"first"`
	Second      models.ExerciseSet `json:"second"`
	FirstBetter bool               `json:"first_better"`
	Reason      string             `json:"reason"`
}

// Compare runs the comparison rule on a and b and explains the result.
func Compare(a, b models.ExerciseSet) (Comparison, error) {
	better, err := a.IsBetterThan(b)
	if err != nil {
		return Comparison{}, err
	}
	direction := "Higher is Better"
	if a.Exercise.IsAssisted {
		direction = "Lower is Better"
	}
	return Comparison{
		First:       a,
		Second:      b,
		FirstBetter: better,
		Reason:      fmt.Sprintf("%.2fkg VS %.2fkg (%s)", a.NormalizedKg(), b.NormalizedKg(), direction),
	}, nil
}

// Verdict is the short answer shown in the "Better?" column.
func (c Comparison) Verdict() string {
	if c.FirstBetter {
		return "Set 1"
	}
	return "Set 2 (or equal)"
}

// WriteTable prints comparisons as an aligned table.
func WriteTable(w io.Writer, title string, cs []Comparison) error {
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Set 1\tSet 2\tBetter?\tReason")
	for _, c := range cs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.First, c.Second, c.Verdict(), c.Reason)
	}
	return tw.Flush()
}

// WritePlain prints the plain-text block for one comparison.
func WritePlain(w io.Writer, c Comparison) error {
	result := "Set 2 is Better"
	if c.FirstBetter {
		result = "Set 1 is Better"
	}
	_, err := fmt.Fprintf(w, "\n[VERIFY] Comparing %s:\n  %s VS %s\n  Result: %s\n  Reason: %s\n",
		c.First.Exercise.Name, c.First, c.Second, result, c.Reason)
	return err
}
