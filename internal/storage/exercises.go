package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/claude/spotme/internal/models"
	"github.com/google/uuid"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// AddExercise constructs an exercise under the given workout, computes its
// total weight, evaluates the PR rule against stored history, and persists it.
func (db *DB) AddExercise(ctx context.Context, workoutID uuid.UUID, name string, sets, reps int, weight float64) (*models.Exercise, error) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	ex, err := insertExercise(ctx, tx, workoutID, name, sets, reps, weight)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing exercise: %w", err)
	}
	return ex, nil
}

// insertExercise evaluates the PR rule and inserts one exercise row. A new
// entry is a PR only when prior entries with the same name exist and all of
// them are strictly lighter.
func insertExercise(ctx context.Context, q dbtx, workoutID uuid.UUID, name string, sets, reps int, weight float64) (*models.Exercise, error) {
	var (
		priorCount int
		maxWeight  sql.NullFloat64
	)
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*), MAX(weight) FROM exercises WHERE name = ?`,
		name).Scan(&priorCount, &maxWeight)
	if err != nil {
		return nil, fmt.Errorf("checking exercise history: %w", err)
	}

	ex := &models.Exercise{
		ID:          uuid.New(),
		WorkoutID:   workoutID,
		Name:        name,
		Sets:        sets,
		Reps:        reps,
		Weight:      weight,
		TotalWeight: models.TotalWeight(sets, reps, weight),
		IsPR:        priorCount > 0 && maxWeight.Valid && maxWeight.Float64 < weight,
		CreatedAt:   time.Now(),
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO exercises (id, workout_id, name, sets, reps, weight, total_weight, is_pr, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ex.ID.String(), ex.WorkoutID.String(), ex.Name, ex.Sets, ex.Reps,
		ex.Weight, ex.TotalWeight, ex.IsPR, encodeTime(ex.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("inserting exercise: %w", err)
	}
	return ex, nil
}

// FetchPersonalRecords retrieves all PR entries for an exercise name, heaviest
// first.
func (db *DB) FetchPersonalRecords(ctx context.Context, name string) ([]models.Exercise, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, workout_id, name, sets, reps, weight, total_weight, is_pr, created_at
		 FROM exercises WHERE name = ? AND is_pr = 1 ORDER BY weight DESC`,
		name)
	if err != nil {
		return nil, fmt.Errorf("querying personal records: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// FetchLastExercise retrieves the most recent performance of a named exercise,
// or nil when it has never been logged. Recency is the owning workout's date;
// insertion time breaks ties within a workout.
func (db *DB) FetchLastExercise(ctx context.Context, name string) (*models.Exercise, error) {
	row := db.sql.QueryRowContext(ctx,
		`SELECT e.id, e.workout_id, e.name, e.sets, e.reps, e.weight, e.total_weight, e.is_pr, e.created_at
		 FROM exercises e
		 JOIN workouts w ON w.id = e.workout_id
		 WHERE e.name = ?
		 ORDER BY w.date DESC, e.created_at DESC
		 LIMIT 1`,
		name)

	ex, err := scanExercise(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ex, nil
}
