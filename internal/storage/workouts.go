package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/claude/spotme/internal/models"
	"github.com/google/uuid"
)

// CreateWorkout inserts a new workout dated at the given time.
func (db *DB) CreateWorkout(ctx context.Context, date time.Time, dayType, notes string) (*models.Workout, error) {
	w := &models.Workout{
		ID:      uuid.New(),
		Date:    date,
		DayType: dayType,
		Notes:   notes,
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	_, err := db.sql.ExecContext(ctx,
		`INSERT INTO workouts (id, date, day_type, notes) VALUES (?, ?, ?, ?)`,
		w.ID.String(), encodeTime(w.Date), w.DayType, w.Notes)
	if err != nil {
		return nil, fmt.Errorf("inserting workout: %w", err)
	}
	return w, nil
}

// FetchRecentWorkouts retrieves workouts dated within the last N days, newest
// first, with their exercises attached. This is the context window for the
// model prompt.
func (db *DB) FetchRecentWorkouts(ctx context.Context, days int) ([]models.Workout, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	return db.queryWorkouts(ctx,
		`SELECT id, date, day_type, notes FROM workouts WHERE date >= ? ORDER BY date DESC`,
		encodeTime(cutoff))
}

// FetchAllWorkouts retrieves every workout, newest first, with exercises
// attached.
func (db *DB) FetchAllWorkouts(ctx context.Context) ([]models.Workout, error) {
	return db.queryWorkouts(ctx,
		`SELECT id, date, day_type, notes FROM workouts ORDER BY date DESC`)
}

// DeleteWorkout removes a workout; its exercises cascade.
func (db *DB) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	if _, err := db.sql.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return nil
}

// LogWorkout commits one extracted workout and its exercises in a single
// transaction, in array order. PR flags are evaluated against stored history
// inside the same transaction, so exercise N sees exercises 0..N-1 of the
// same payload.
func (db *DB) LogWorkout(ctx context.Context, data models.WorkoutData, date time.Time) (*models.Workout, error) {
	w := &models.Workout{
		ID:      uuid.New(),
		Date:    date,
		DayType: data.DayType,
		Notes:   data.Notes,
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO workouts (id, date, day_type, notes) VALUES (?, ?, ?, ?)`,
		w.ID.String(), encodeTime(w.Date), w.DayType, w.Notes)
	if err != nil {
		return nil, fmt.Errorf("inserting workout: %w", err)
	}

	for _, ed := range data.Exercises {
		ex, err := insertExercise(ctx, tx, w.ID, ed.Name, ed.Sets, ed.Reps, ed.Weight)
		if err != nil {
			return nil, err
		}
		w.Exercises = append(w.Exercises, *ex)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing workout: %w", err)
	}
	return w, nil
}

func (db *DB) queryWorkouts(ctx context.Context, query string, args ...any) ([]models.Workout, error) {
	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.Workout
	for rows.Next() {
		var (
			w       models.Workout
			id, ts  string
		)
		if err := rows.Scan(&id, &ts, &w.DayType, &w.Notes); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		if w.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing workout id: %w", err)
		}
		if w.Date, err = decodeTime(ts); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		exercises, err := db.exercisesForWorkout(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Exercises = exercises
	}
	return result, nil
}

func (db *DB) exercisesForWorkout(ctx context.Context, workoutID uuid.UUID) ([]models.Exercise, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, workout_id, name, sets, reps, weight, total_weight, is_pr, created_at
		 FROM exercises WHERE workout_id = ? ORDER BY created_at ASC`,
		workoutID.String())
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

func scanExercises(rows *sql.Rows) ([]models.Exercise, error) {
	var result []models.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *ex)
	}
	return result, rows.Err()
}

func scanExercise(scan func(dest ...any) error) (*models.Exercise, error) {
	var (
		ex             models.Exercise
		id, wid, ts    string
	)
	if err := scan(&id, &wid, &ex.Name, &ex.Sets, &ex.Reps, &ex.Weight, &ex.TotalWeight, &ex.IsPR, &ts); err != nil {
		return nil, fmt.Errorf("scanning exercise: %w", err)
	}

	var err error
	if ex.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parsing exercise id: %w", err)
	}
	if ex.WorkoutID, err = uuid.Parse(wid); err != nil {
		return nil, fmt.Errorf("parsing exercise workout id: %w", err)
	}
	if ex.CreatedAt, err = decodeTime(ts); err != nil {
		return nil, err
	}
	return &ex, nil
}
