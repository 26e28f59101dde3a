package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/claude/gymtracker/internal/models"
)

// AddSet appends a set for the exercise with a store-assigned timestamp.
// Unknown exercise ids yield models.ErrUnknownExercise and write nothing.
func (db *DB) AddSet(ctx context.Context, exerciseID int64, weight float64, unit models.WeightUnit, reps int) (models.SetRecord, error) {
	rec := models.SetRecord{
		ExerciseID: exerciseID,
		Weight:     weight,
		Unit:       unit,
		Reps:       reps,
	}

	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, db.rebind(
			`SELECT EXISTS (SELECT 1 FROM exercises WHERE id = ?)`), exerciseID).Scan(&exists); err != nil {
			return fmt.Errorf("checking exercise: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: id %d", models.ErrUnknownExercise, exerciseID)
		}

		rec.Timestamp = db.stamp()
		if err := tx.QueryRowContext(ctx, db.rebind(
			`INSERT INTO sets (exercise_id, weight, unit, reps, timestamp) VALUES (?, ?, ?, ?, ?)
			 RETURNING id`),
			exerciseID, weight, string(unit), reps, rec.Timestamp).Scan(&rec.ID); err != nil {
			return fmt.Errorf("inserting set: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.SetRecord{}, err
	}
	return rec, nil
}

// GetHistory returns the sets of an exercise, newest first. Unknown or empty
// exercises yield an empty slice.
func (db *DB) GetHistory(ctx context.Context, exerciseID int64) ([]models.SetRecord, error) {
	rows, err := db.sql.QueryContext(ctx, db.rebind(
		`SELECT id, exercise_id, weight, unit, reps, timestamp
		 FROM sets
		 WHERE exercise_id = ?
		 ORDER BY timestamp DESC, id DESC`), exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	result := []models.SetRecord{}
	for rows.Next() {
		var r models.SetRecord
		if err := rows.Scan(&r.ID, &r.ExerciseID, &r.Weight, &r.Unit, &r.Reps, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		r.Timestamp = r.Timestamp.UTC()
		result = append(result, r)
	}
	return result, rows.Err()
}
