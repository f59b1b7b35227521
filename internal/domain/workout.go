package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSet is a single completed set. Weight/reps/rir are stored exactly
// as submitted; no range validation is applied.
type WorkoutSet struct {
	SetNumber int     `bson:"set_number" json:"set_number"`
	WeightKg  float64 `bson:"weight_kg" json:"weight_kg"`
	Reps      int     `bson:"reps" json:"reps"`
	RIR       int     `bson:"rir" json:"rir"` // Reps in Reserve
}

// WorkoutExercise is one exercise performed in a session, with its
// ordered sets.
type WorkoutExercise struct {
	ExerciseID   primitive.ObjectID `bson:"exercise_id" json:"exercise_id"`
	ExerciseName string             `bson:"exercise_name" json:"exercise_name"`
	Sets         []WorkoutSet       `bson:"sets" json:"sets"`
}

// Workout is a completed training session logged by a client. The date is
// assigned at write time server-side and is immutable.
type Workout struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID        primitive.ObjectID `bson:"client_id" json:"client_id"`
	RoutineID       primitive.ObjectID `bson:"routine_id,omitempty" json:"routine_id,omitempty"`
	RoutineName     string             `bson:"routine_name,omitempty" json:"routine_name,omitempty"`
	Date            time.Time          `bson:"date" json:"date"`
	Exercises       []WorkoutExercise  `bson:"exercises" json:"exercises"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	DurationMinutes int                `bson:"duration_minutes,omitempty" json:"duration_minutes,omitempty"`
}
