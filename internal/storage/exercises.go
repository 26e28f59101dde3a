package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claude/gymtracker/internal/models"
)

// Initialize applies migrations and, when the exercises table is empty, seeds
// the default exercises. Safe to call on every startup.
func (db *DB) Initialize(ctx context.Context, log *slog.Logger) error {
	if err := RunMigrations(db.driver, db.dsn); err != nil {
		return err
	}

	var seeded int
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&count); err != nil {
			return fmt.Errorf("counting exercises: %w", err)
		}
		if count > 0 {
			return nil
		}
		for _, ex := range models.DefaultExercises {
			res, err := tx.ExecContext(ctx, db.rebind(
				`INSERT INTO exercises (name, is_assisted, description) VALUES (?, ?, ?)
				 ON CONFLICT (name) DO NOTHING`),
				ex.Name, ex.IsAssisted, ex.Description)
			if err != nil {
				return fmt.Errorf("seeding exercise %q: %w", ex.Name, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				seeded++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if seeded > 0 {
		log.Info("seeded default exercises", "count", seeded)
	}
	return nil
}

// AddExercise inserts an exercise definition. If the name already exists no
// row is written and the existing row's id is returned with created=false.
func (db *DB) AddExercise(ctx context.Context, name string, isAssisted bool, description string) (id int64, created bool, err error) {
	var desc *string
	if description != "" {
		desc = &description
	}

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, db.rebind(
			`INSERT INTO exercises (name, is_assisted, description) VALUES (?, ?, ?)
			 ON CONFLICT (name) DO NOTHING
			 RETURNING id`),
			name, isAssisted, desc).Scan(&id)
		if err == nil {
			created = true
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("inserting exercise: %w", err)
		}
		if err := tx.QueryRowContext(ctx, db.rebind(`SELECT id FROM exercises WHERE name = ?`), name).Scan(&id); err != nil {
			return fmt.Errorf("looking up existing exercise: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return id, created, nil
}

// ListExercises returns all exercise definitions in insertion order.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, name, is_assisted, description FROM exercises ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	result := []models.Exercise{}
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.IsAssisted, &e.Description); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetExercise retrieves a single exercise. A missing id yields
// models.ErrUnknownExercise.
func (db *DB) GetExercise(ctx context.Context, id int64) (*models.Exercise, error) {
	var e models.Exercise
	err := db.sql.QueryRowContext(ctx, db.rebind(
		`SELECT id, name, is_assisted, description FROM exercises WHERE id = ?`), id).
		Scan(&e.ID, &e.Name, &e.IsAssisted, &e.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", models.ErrUnknownExercise, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return &e, nil
}
