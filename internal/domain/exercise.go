package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise represents a single exercise definition in the shared library.
// Names are unique under case-insensitive comparison.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	MuscleGroup string             `bson:"muscle_group" json:"muscle_group"` // e.g., "Chest", "Legs", "Back"
	Tips        string             `bson:"tips,omitempty" json:"tips,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
