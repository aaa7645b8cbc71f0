package workout

import (
	"time"

	"github.com/google/uuid"
)

// MuscleGroup is the trained muscle group of a workout
type MuscleGroup string

const (
	MuscleGroupBack  MuscleGroup = "back"
	MuscleGroupChest MuscleGroup = "chest"
	MuscleGroupLegs  MuscleGroup = "legs"
	MuscleGroupArms  MuscleGroup = "arms"
)

// Workout is a logged training session
type Workout struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	UserID          uuid.UUID   `json:"user_id" db:"user_id"`
	Name            string      `json:"name" db:"name"`
	MuscleGroup     MuscleGroup `json:"muscle_group" db:"muscle_group"`
	DurationMinutes int         `json:"duration_minutes" db:"duration_minutes"`
	Sets            int         `json:"sets" db:"sets"`
	Reps            int         `json:"reps" db:"reps"`
	Description     string      `json:"description" db:"description"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}
