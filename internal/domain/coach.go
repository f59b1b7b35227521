package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish token subjects
type Role string

// Define constants for roles
const (
	RoleCoach  Role = "coach"
	RoleClient Role = "client"
)

// Coach represents a coach account. Coaches authenticate with
// username + password and own clients, routines and measurements.
type Coach struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // Unique
	PasswordHash string             `bson:"password_hash" json:"-"`   // Never expose this via JSON
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
