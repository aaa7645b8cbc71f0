package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines workout data access interface
type Repository interface {
	Create(ctx context.Context, workout *Workout) error
	GetByID(ctx context.Context, id uuid.UUID) (*Workout, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Workout, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates workout repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, workout *Workout) error {
	if workout.ID == uuid.Nil {
		workout.ID = uuid.New()
	}
	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO workouts (id, user_id, name, muscle_group, duration_minutes, sets, reps, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		workout.ID, workout.UserID, workout.Name, workout.MuscleGroup,
		workout.DurationMinutes, workout.Sets, workout.Reps, workout.Description,
		workout.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Workout, error) {
	var workout Workout
	err := r.db.GetContext(ctx, &workout, `SELECT * FROM workouts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	return &workout, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Workout, error) {
	var workouts []*Workout
	query := `SELECT * FROM workouts WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &workouts, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	return workouts, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}
