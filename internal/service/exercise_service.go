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
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("exercise with this name already exists")
	ErrValidationFailed = errors.New("validation failed")
)

// ExerciseService manages the shared exercise library.
type ExerciseService interface {
	CreateExercise(ctx context.Context, name, muscleGroup, tips string) (*domain.Exercise, error)
	UpdateExerciseTips(ctx context.Context, exerciseID primitive.ObjectID, tips string) (*domain.Exercise, error)
	GetAllExercises(ctx context.Context) ([]domain.Exercise, error)
	SearchExercises(ctx context.Context, query string) ([]domain.Exercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// CreateExercise adds an exercise to the library. Name uniqueness is
// enforced under case-insensitive comparison: "bench press" collides with
// an existing "Bench Press".
func (s *exerciseService) CreateExercise(ctx context.Context, name, muscleGroup, tips string) (*domain.Exercise, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}

	_, err := s.exerciseRepo.GetByNameFold(ctx, name)
	if err == nil {
		return nil, ErrExerciseExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	exercise := &domain.Exercise{
		Name:        name,
		MuscleGroup: muscleGroup,
		Tips:        tips,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID

	return exercise, nil
}

// UpdateExerciseTips replaces the coaching tips on an exercise and returns
// the updated record.
func (s *exerciseService) UpdateExerciseTips(ctx context.Context, exerciseID primitive.ObjectID, tips string) (*domain.Exercise, error) {
	if exerciseID == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}

	err := s.exerciseRepo.UpdateTips(ctx, exerciseID, tips)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// GetAllExercises lists the full library.
func (s *exerciseService) GetAllExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetAll(ctx)
}

// SearchExercises matches the query substring anywhere in the exercise
// name, case-insensitively.
func (s *exerciseService) SearchExercises(ctx context.Context, query string) ([]domain.Exercise, error) {
	return s.exerciseRepo.Search(ctx, query)
}
