package workout

import "errors"

var ErrWorkoutNotFound = errors.New("workout not found")
