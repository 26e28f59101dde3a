package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/gymtracker/internal/models"
	"github.com/claude/gymtracker/internal/server"
	"github.com/claude/gymtracker/internal/tracker"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by method and path.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestLogSetSendsBody verifies the client posts weight, unit and reps as JSON.
func TestLogSetSendsBody(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/exercises/2/sets": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["weight"] != 40.0 || body["unit"] != "lbs" || body["reps"] != 5.0 {
				t.Errorf("body = %v", body)
			}
			writeTestJSON(t, w, http.StatusCreated, tracker.LoggedSet{
				Set:            models.ExerciseSet{ID: 7, Weight: 40, Unit: models.Pounds, Reps: 5},
				PersonalRecord: true,
			})
		},
	})
	defer ts.Close()

	logged, err := NewHTTPClient(ts.URL+"/").LogSet(context.Background(), 2,
		models.SetInput{Weight: 40, Unit: models.Pounds, Reps: 5})
	if err != nil {
		t.Fatal(err)
	}
	if logged.Set.ID != 7 || !logged.PersonalRecord {
		t.Errorf("logged = %+v", logged)
	}
}

// TestStatusErrorsMapToDomainErrors verifies error statuses come back as the
// errors the server derived them from.
func TestStatusErrorsMapToDomainErrors(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/exercises/9/history": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		},
		"GET /api/v1/exercises/3/best": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, http.StatusNotFound, map[string]string{"error": "no sets logged for this exercise"})
		},
		"POST /api/v1/exercises/1/sets": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, http.StatusBadRequest, map[string]string{"error": "malformed input: reps must be at least 1"})
		},
		"GET /api/v1/exercises": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, http.StatusInternalServerError, map[string]string{"error": "database is locked"})
		},
	})
	defer ts.Close()

	ctx := context.Background()
	client := NewHTTPClient(ts.URL)

	if _, err := client.History(ctx, 9); !errors.Is(err, models.ErrUnknownExercise) {
		t.Errorf("History error = %v, want ErrUnknownExercise", err)
	}
	if _, err := client.BestSet(ctx, 3); !errors.Is(err, tracker.ErrNoSets) {
		t.Errorf("BestSet error = %v, want ErrNoSets", err)
	}
	if _, err := client.LogSet(ctx, 1, models.SetInput{Weight: 1, Unit: models.Kilograms}); !errors.Is(err, models.ErrMalformedInput) {
		t.Errorf("LogSet error = %v, want ErrMalformedInput", err)
	}
	_, err := client.Exercises(ctx)
	if err == nil || errors.Is(err, models.ErrUnknownExercise) {
		t.Errorf("Exercises error = %v, want a plain failure", err)
	}
}

// TestHTTPClientAgainstServer runs the client against the real REST server so
// the two sides cannot drift apart.
func TestHTTPClientAgainstServer(t *testing.T) {
	ts := httptest.NewServer(server.New(newTestService(t), discardLog))
	defer ts.Close()

	ctx := context.Background()
	client := NewHTTPClient(ts.URL)

	exercises, err := client.Exercises(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(exercises) != 4 {
		t.Fatalf("got %d exercises, want 4", len(exercises))
	}

	added, err := client.AddExercise(ctx, "Ring Dip", true, "")
	if err != nil {
		t.Fatal(err)
	}
	if !added.Created {
		t.Error("Ring Dip should be created")
	}

	ex, err := client.Exercise(ctx, added.Exercise.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ex.Name != "Ring Dip" || !ex.IsAssisted {
		t.Errorf("exercise = %+v", ex)
	}

	for _, in := range []models.SetInput{
		{Weight: 20, Unit: models.Kilograms, Reps: 6},
		{Weight: 30, Unit: models.Pounds, Reps: 6},
	} {
		if _, err := client.LogSet(ctx, ex.ID, in); err != nil {
			t.Fatal(err)
		}
	}

	best, err := client.BestSet(ctx, ex.ID)
	if err != nil {
		t.Fatal(err)
	}
	if best.Unit != models.Pounds || best.Weight != 30 {
		t.Errorf("best = %+v, want the 30 lbs set", best)
	}

	history, err := client.History(ctx, ex.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history.Sets) != 2 || history.BestIndex != 0 {
		t.Errorf("history = %d sets, best %d; want 2 sets, best 0", len(history.Sets), history.BestIndex)
	}

	if _, err := client.BestSet(ctx, 3); !errors.Is(err, tracker.ErrNoSets) {
		t.Errorf("BestSet on empty exercise = %v, want ErrNoSets", err)
	}
}
