package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressPhoto stores metadata about a progress photo a coach uploaded
// for a client. The actual image resides in S3; the API only ever hands
// out presigned URLs.
type ProgressPhoto struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID    primitive.ObjectID `bson:"client_id" json:"client_id"`
	CoachID     primitive.ObjectID `bson:"coach_id" json:"coach_id"` // Denormalized for ownership checks
	S3ObjectKey string             `bson:"s3_object_key" json:"-"`   // Bucket key - internal use only
	FileName    string             `bson:"file_name" json:"file_name"`
	ContentType string             `bson:"content_type" json:"content_type"` // e.g. "image/jpeg"
	Size        int64              `bson:"size" json:"size"`
	UploadedAt  time.Time          `bson:"uploaded_at" json:"uploaded_at"`
}
