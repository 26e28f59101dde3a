package models

// Exercise is an exercise definition. Names are unique and case-sensitive.
type Exercise struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	IsAssisted  bool    `json:"is_assisted"`
	Description *string `json:"description,omitempty"`
}

// Kind returns "Assisted" or "Standard".
func (e Exercise) Kind() string {
	if e.IsAssisted {
		return "Assisted"
	}
	return "Standard"
}

// RankingRule describes which direction of weight counts as progress.
func (e Exercise) RankingRule() string {
	if e.IsAssisted {
		return "Lower is Better (Assisted)"
	}
	return "Higher is Better"
}

// DefaultExercises are seeded into an empty store, in this order.
var DefaultExercises = []Exercise{
	{Name: "Bench Press"},
	{Name: "Assisted Pull-up", IsAssisted: true},
	{Name: "Squat"},
	{Name: "Assisted Dip", IsAssisted: true},
}
