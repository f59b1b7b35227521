package repository

import (
	"context"
	"time"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate entity")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// CoachRepository defines the interface for interacting with coach accounts.
type CoachRepository interface {
	Create(ctx context.Context, coach *domain.Coach) (primitive.ObjectID, error)
	GetByUsername(ctx context.Context, username string) (*domain.Coach, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coach, error)
	Count(ctx context.Context) (int64, error)
}

// ClientRepository defines the interface for interacting with client records.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Client, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
}

// ExerciseRepository defines the interface for the shared exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// GetByNameFold matches the exact name under case-insensitive comparison.
	GetByNameFold(ctx context.Context, name string) (*domain.Exercise, error)
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	// Search matches the substring anywhere in the name, case-insensitively.
	Search(ctx context.Context, query string) ([]domain.Exercise, error)
	UpdateTips(ctx context.Context, id primitive.ObjectID, tips string) error
	Count(ctx context.Context) (int64, error)
}

// RoutineRepository defines the interface for coach-authored routines.
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Routine, error)
	Update(ctx context.Context, routine *domain.Routine) error
	// GetActiveByClientID returns active routines that list the client among
	// their assigned clients, newest first.
	GetActiveByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Routine, error)
	CountActiveByCoachID(ctx context.Context, coachID primitive.ObjectID) (int64, error)
}

// WorkoutRepository defines the interface for logged workout sessions.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	// GetByClientID returns workouts ordered by date descending. A limit of
	// zero or less means no limit.
	GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.Workout, error)
	// GetByClientIDSince returns workouts dated at or after the given time,
	// date descending.
	GetByClientIDSince(ctx context.Context, clientID primitive.ObjectID, since time.Time) ([]domain.Workout, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MeasurementRepository defines the interface for body measurement snapshots.
type MeasurementRepository interface {
	Create(ctx context.Context, measurement *domain.BodyMeasurement) (primitive.ObjectID, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.BodyMeasurement, error)
	GetLatestByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.BodyMeasurement, error)
}

// PhotoRepository defines the interface for progress photo metadata.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.ProgressPhoto, error)
}
