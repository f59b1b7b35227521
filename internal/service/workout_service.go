package service

import (
	"context"
	"errors"
	"time"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
	"github.com/CHUNCHUNMARU-d/GYM/internal/repository"
	"github.com/CHUNCHUNMARU-d/GYM/internal/stats"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound = errors.New("workout not found")
)

// DefaultHistoryLimit bounds workout history listings unless the caller
// asks for more.
const DefaultHistoryLimit = 10

// WorkoutService records completed sessions and derives per-exercise
// statistics from a client's history.
type WorkoutService interface {
	LogWorkout(ctx context.Context, clientID primitive.ObjectID, workout *domain.Workout) (*domain.Workout, error)
	GetWorkoutHistory(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.Workout, error)
	DeleteWorkout(ctx context.Context, workoutID primitive.ObjectID) error
	GetWorkoutStats(ctx context.Context, clientID primitive.ObjectID, exerciseID *primitive.ObjectID) (stats.Summary, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
	}
}

// LogWorkout persists a session for the client. The id and date are
// server-assigned; exercises and sets are stored verbatim from the payload,
// including zero or negative numeric values.
func (s *workoutService) LogWorkout(ctx context.Context, clientID primitive.ObjectID, workout *domain.Workout) (*domain.Workout, error) {
	if clientID == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}
	if workout.Exercises == nil {
		workout.Exercises = []domain.WorkoutExercise{}
	}

	workout.ClientID = clientID
	workout.Date = time.Now().UTC()

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID

	return workout, nil
}

// GetWorkoutHistory returns the client's sessions, date descending,
// truncated to limit (DefaultHistoryLimit when limit <= 0).
func (s *workoutService) GetWorkoutHistory(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.Workout, error) {
	if clientID == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.workoutRepo.GetByClientID(ctx, clientID, limit)
}

// DeleteWorkout removes a session by id. Ownership is not re-checked beyond
// the id match; this mirrors the original single-tenant delete flow.
func (s *workoutService) DeleteWorkout(ctx context.Context, workoutID primitive.ObjectID) error {
	if workoutID == primitive.NilObjectID {
		return ErrValidationFailed
	}
	err := s.workoutRepo.Delete(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// GetWorkoutStats folds the client's full history into per-exercise
// statistics, optionally filtered to a single exercise.
func (s *workoutService) GetWorkoutStats(ctx context.Context, clientID primitive.ObjectID, exerciseID *primitive.ObjectID) (stats.Summary, error) {
	if clientID == primitive.NilObjectID {
		return stats.Summary{}, ErrValidationFailed
	}

	// Full history: the aggregation is not window-bounded.
	workouts, err := s.workoutRepo.GetByClientID(ctx, clientID, 0)
	if err != nil {
		return stats.Summary{}, err
	}

	return stats.Aggregate(workouts, exerciseID), nil
}
