package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BodyMeasurement is an append-only body snapshot recorded by a coach for
// one of their clients. Numeric fields are optional; Measurements holds
// free-form named values (e.g. "chest", "waist") in centimeters.
type BodyMeasurement struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID          primitive.ObjectID `bson:"client_id" json:"client_id"`
	Date              time.Time          `bson:"date" json:"date"` // Server-assigned
	WeightKg          *float64           `bson:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	BodyFatPercentage *float64           `bson:"body_fat_percentage,omitempty" json:"body_fat_percentage,omitempty"`
	Measurements      map[string]float64 `bson:"measurements,omitempty" json:"measurements,omitempty"`
}
