package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/claude/gymtracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var discardLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTestDB opens and initializes a SQLite store in a temp dir.
func newTestDB(t *testing.T, opts ...Option) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gym.db")
	db, err := Open(context.Background(), DriverSQLite, path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Initialize(context.Background(), discardLog))
	return db, path
}

func countSets(t *testing.T, db *DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.sql.QueryRow(`SELECT COUNT(*) FROM sets`).Scan(&n))
	return n
}

func TestInitialize_SeedsDefaultsOnce(t *testing.T) {
	ctx := context.Background()
	db, path := newTestDB(t)

	exercises, err := db.ListExercises(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, 4)

	want := []struct {
		name     string
		assisted bool
	}{
		{"Bench Press", false},
		{"Assisted Pull-up", true},
		{"Squat", false},
		{"Assisted Dip", true},
	}
	for i, w := range want {
		assert.Equal(t, w.name, exercises[i].Name)
		assert.Equal(t, w.assisted, exercises[i].IsAssisted)
		assert.Nil(t, exercises[i].Description)
	}

	// Again on the same handle.
	require.NoError(t, db.Initialize(ctx, discardLog))

	// And on a fresh handle to the same file, as on the next startup.
	db2, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer db2.Close()
	require.NoError(t, db2.Initialize(ctx, discardLog))

	exercises, err = db2.ListExercises(ctx)
	require.NoError(t, err)
	assert.Len(t, exercises, 4)
}

func TestInitialize_DoesNotReseedPopulatedStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gym.db")

	require.NoError(t, RunMigrations(DriverSQLite, path))
	db, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	_, created, err := db.AddExercise(ctx, "Deadlift", false, "")
	require.NoError(t, err)
	require.True(t, created)

	require.NoError(t, db.Initialize(ctx, discardLog))

	exercises, err := db.ListExercises(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, "Deadlift", exercises[0].Name)
}

func TestAddExercise_Duplicate(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)

	id, created, err := db.AddExercise(ctx, "Overhead Press", false, "strict, standing")
	require.NoError(t, err)
	require.True(t, created)

	before, err := db.ListExercises(ctx)
	require.NoError(t, err)

	dupID, created, err := db.AddExercise(ctx, "Overhead Press", true, "other")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, dupID)

	after, err := db.ListExercises(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before))

	ex, err := db.GetExercise(ctx, id)
	require.NoError(t, err)
	assert.False(t, ex.IsAssisted)
	require.NotNil(t, ex.Description)
	assert.Equal(t, "strict, standing", *ex.Description)
}

func TestAddExercise_NamesAreCaseSensitive(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)

	_, created, err := db.AddExercise(ctx, "squat", false, "")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestGetExercise_NotFound(t *testing.T) {
	db, _ := newTestDB(t)

	ex, err := db.GetExercise(context.Background(), 9999)
	assert.ErrorIs(t, err, models.ErrUnknownExercise)
	assert.Nil(t, ex)
}

func TestAddSet_UnknownExercise(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)

	_, err := db.AddSet(ctx, 9999, 100, models.Kilograms, 5)
	assert.ErrorIs(t, err, models.ErrUnknownExercise)
	assert.Equal(t, 0, countSets(t, db))
}

func TestAddSet_AcceptsImplausibleValues(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)

	rec, err := db.AddSet(ctx, 1, -10, models.Kilograms, 0)
	require.NoError(t, err)
	assert.Equal(t, -10.0, rec.Weight)
	assert.Equal(t, 0, rec.Reps)
}

func TestGetHistory_Empty(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)

	hist, err := db.GetHistory(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, hist)
	assert.Empty(t, hist)

	hist, err = db.GetHistory(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestGetHistory_NewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	var tick int
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	db, _ := newTestDB(t, WithClock(clock))

	first, err := db.AddSet(ctx, 1, 100, models.Kilograms, 5)
	require.NoError(t, err)
	second, err := db.AddSet(ctx, 1, 200, models.Pounds, 3)
	require.NoError(t, err)
	_, err = db.AddSet(ctx, 3, 140, models.Kilograms, 5)
	require.NoError(t, err)
	third, err := db.AddSet(ctx, 1, 102.5, models.Kilograms, 4)
	require.NoError(t, err)

	hist, err := db.GetHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, hist, 3)

	assert.Equal(t, third.ID, hist[0].ID)
	assert.Equal(t, second.ID, hist[1].ID)
	assert.Equal(t, first.ID, hist[2].ID)

	assert.Equal(t, models.Pounds, hist[1].Unit)
	assert.Equal(t, 200.0, hist[1].Weight)
	assert.Equal(t, 3, hist[1].Reps)
	assert.Equal(t, int64(1), hist[1].ExerciseID)
	assert.True(t, hist[1].Timestamp.Equal(second.Timestamp), "timestamp %v, want %v", hist[1].Timestamp, second.Timestamp)
	assert.True(t, hist[0].Timestamp.After(hist[1].Timestamp))
}

func TestAddSet_TimestampsNeverGoBackwards(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	readings := []time.Time{base, base.Add(-time.Hour), base.Add(time.Second)}
	var i int
	clock := func() time.Time {
		r := readings[i]
		i++
		return r
	}
	db, _ := newTestDB(t, WithClock(clock))

	a, err := db.AddSet(ctx, 1, 100, models.Kilograms, 5)
	require.NoError(t, err)
	b, err := db.AddSet(ctx, 1, 100, models.Kilograms, 6)
	require.NoError(t, err)
	c, err := db.AddSet(ctx, 1, 100, models.Kilograms, 7)
	require.NoError(t, err)

	assert.True(t, a.Timestamp.Equal(b.Timestamp))
	assert.True(t, c.Timestamp.After(b.Timestamp))

	hist, err := db.GetHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, []int64{c.ID, b.ID, a.ID}, []int64{hist[0].ID, hist[1].ID, hist[2].ID})
}

func TestAddSet_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)

	const writers = 8
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < writers; i++ {
		reps := i + 1
		g.Go(func() error {
			_, err := db.AddSet(gCtx, 2, 20, models.Kilograms, reps)
			return err
		})
	}
	require.NoError(t, g.Wait())

	hist, err := db.GetHistory(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, hist, writers)
}

func TestSQLiteForeignKeysEnabled(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.sql.Exec(`INSERT INTO sets (exercise_id, weight, unit, reps) VALUES (9999, 1, 'kg', 1)`)
	assert.Error(t, err)
	assert.Equal(t, 0, countSets(t, db))
}

func TestRebind(t *testing.T) {
	pg := &DB{driver: DriverPostgres}
	assert.Equal(t, "SELECT * FROM sets WHERE exercise_id = $1 AND reps > $2",
		pg.rebind("SELECT * FROM sets WHERE exercise_id = ? AND reps > ?"))

	lite := &DB{driver: DriverSQLite}
	assert.Equal(t, "SELECT ? ", lite.rebind("SELECT ? "))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "x")
	assert.Error(t, err)
}
