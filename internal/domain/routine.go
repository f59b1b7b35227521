package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoutineExercise is one prescribed exercise within a routine.
type RoutineExercise struct {
	ExerciseID   primitive.ObjectID `bson:"exercise_id" json:"exercise_id"`
	ExerciseName string             `bson:"exercise_name" json:"exercise_name"`
	TargetSets   int                `bson:"target_sets" json:"target_sets"`
	TargetReps   string             `bson:"target_reps" json:"target_reps"` // Range string, e.g. "8-10"
	TargetWeight *float64           `bson:"target_weight,omitempty" json:"target_weight,omitempty"`
	RestSeconds  int                `bson:"rest_seconds" json:"rest_seconds"`

	// Tips is looked up fresh from the Exercise library when the routine
	// is returned to a client. It is never persisted on the routine.
	Tips string `bson:"-" json:"tips,omitempty"`
}

// Routine is a coach-authored exercise prescription template assignable
// to one or more of the coach's clients.
type Routine struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string               `bson:"name" json:"name"`
	CoachID         primitive.ObjectID   `bson:"coach_id" json:"coach_id"`
	Exercises       []RoutineExercise    `bson:"exercises" json:"exercises"`
	AssignedClients []primitive.ObjectID `bson:"assigned_clients" json:"assigned_clients"`
	IsActive        bool                 `bson:"is_active" json:"is_active"`
	CreatedAt       time.Time            `bson:"created_at" json:"created_at"`
}
