package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client represents a person trained by a coach. A client belongs to
// exactly one coach and logs in with their bare client id (no password).
// Clients are never hard-deleted, only deactivated.
type Client struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	CoachID   primitive.ObjectID `bson:"coach_id" json:"coach_id"` // Owning coach
	IsActive  bool               `bson:"is_active" json:"is_active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
