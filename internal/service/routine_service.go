package service

import (
	"context"
	"errors"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
	"github.com/CHUNCHUNMARU-d/GYM/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrRoutineNotFound = errors.New("routine not found")
)

// RoutineService manages coach-authored routines and resolves a client's
// current routine.
type RoutineService interface {
	CreateRoutine(ctx context.Context, coachID primitive.ObjectID, name string, exercises []domain.RoutineExercise, assignedClients []primitive.ObjectID) (*domain.Routine, error)
	GetRoutinesByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Routine, error)
	UpdateRoutine(ctx context.Context, coachID, routineID primitive.ObjectID, name string, exercises []domain.RoutineExercise, assignedClients []primitive.ObjectID, isActive bool) (*domain.Routine, error)
	GetActiveRoutineForClient(ctx context.Context, clientID primitive.ObjectID) (*domain.Routine, error)
}

// routineService implements the RoutineService interface.
type routineService struct {
	routineRepo  repository.RoutineRepository
	exerciseRepo repository.ExerciseRepository
}

// NewRoutineService creates a new instance of routineService.
func NewRoutineService(routineRepo repository.RoutineRepository, exerciseRepo repository.ExerciseRepository) RoutineService {
	return &routineService{
		routineRepo:  routineRepo,
		exerciseRepo: exerciseRepo,
	}
}

// CreateRoutine persists a new routine for the calling coach. New routines
// are active by default.
func (s *routineService) CreateRoutine(ctx context.Context, coachID primitive.ObjectID, name string, exercises []domain.RoutineExercise, assignedClients []primitive.ObjectID) (*domain.Routine, error) {
	if name == "" || coachID == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}
	if exercises == nil {
		exercises = []domain.RoutineExercise{}
	}
	if assignedClients == nil {
		assignedClients = []primitive.ObjectID{}
	}

	routine := &domain.Routine{
		Name:            name,
		CoachID:         coachID,
		Exercises:       exercises,
		AssignedClients: assignedClients,
		IsActive:        true,
	}

	routineID, err := s.routineRepo.Create(ctx, routine)
	if err != nil {
		return nil, err
	}
	routine.ID = routineID

	return routine, nil
}

// GetRoutinesByCoach lists the coach's routines, newest first.
func (s *routineService) GetRoutinesByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Routine, error) {
	if coachID == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}
	return s.routineRepo.GetByCoachID(ctx, coachID)
}

// UpdateRoutine replaces name/exercises/assigned clients wholesale. A
// routine id that does not belong to the calling coach reports not found.
func (s *routineService) UpdateRoutine(ctx context.Context, coachID, routineID primitive.ObjectID, name string, exercises []domain.RoutineExercise, assignedClients []primitive.ObjectID, isActive bool) (*domain.Routine, error) {
	if name == "" || coachID == primitive.NilObjectID || routineID == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}
	if exercises == nil {
		exercises = []domain.RoutineExercise{}
	}
	if assignedClients == nil {
		assignedClients = []primitive.ObjectID{}
	}

	routine := &domain.Routine{
		ID:              routineID,
		Name:            name,
		CoachID:         coachID,
		Exercises:       exercises,
		AssignedClients: assignedClients,
		IsActive:        isActive,
	}

	err := s.routineRepo.Update(ctx, routine)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}

	// Refetch to return the persisted record with its original created_at.
	updated, err := s.routineRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return updated, nil
}

// GetActiveRoutineForClient resolves the client's current routine. When more
// than one active routine lists the client, the most recently created wins —
// a deterministic tie-break since nothing prevents overlapping assignments.
// Coaching tips are injected fresh from the exercise library on every read,
// never cached on the routine. Returns (nil, nil) when no routine is
// assigned.
func (s *routineService) GetActiveRoutineForClient(ctx context.Context, clientID primitive.ObjectID) (*domain.Routine, error) {
	if clientID == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}

	routines, err := s.routineRepo.GetActiveByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(routines) == 0 {
		return nil, nil
	}

	routine := routines[0]
	for i := range routine.Exercises {
		exercise, err := s.exerciseRepo.GetByID(ctx, routine.Exercises[i].ExerciseID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Exercise deleted from the library after assignment; the
				// prescription entry survives without tips.
				continue
			}
			return nil, err
		}
		routine.Exercises[i].Tips = exercise.Tips
	}

	return &routine, nil
}
