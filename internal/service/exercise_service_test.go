package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateExerciseCaseInsensitiveDuplicate(t *testing.T) {
	ctx := context.Background()
	exerciseService := NewExerciseService(newMemExerciseRepo())

	exercise, err := exerciseService.CreateExercise(ctx, "Bench Press", "Chest", "Retract your shoulder blades.")
	require.NoError(t, err)
	assert.False(t, exercise.ID.IsZero())

	_, err = exerciseService.CreateExercise(ctx, "bench press", "Chest", "")
	assert.ErrorIs(t, err, ErrExerciseExists)

	_, err = exerciseService.CreateExercise(ctx, "", "Chest", "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestUpdateExerciseTips(t *testing.T) {
	ctx := context.Background()
	exerciseService := NewExerciseService(newMemExerciseRepo())

	exercise, err := exerciseService.CreateExercise(ctx, "Squat", "Legs", "")
	require.NoError(t, err)

	updated, err := exerciseService.UpdateExerciseTips(ctx, exercise.ID, "Drive your knees out.")
	require.NoError(t, err)
	assert.Equal(t, "Drive your knees out.", updated.Tips)

	_, err = exerciseService.UpdateExerciseTips(ctx, primitive.NewObjectID(), "tips")
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestSearchExercises(t *testing.T) {
	ctx := context.Background()
	exerciseService := NewExerciseService(newMemExerciseRepo())

	for _, name := range []string{"Bench Press", "Incline Bench Press", "Squat"} {
		_, err := exerciseService.CreateExercise(ctx, name, "Misc", "")
		require.NoError(t, err)
	}

	results, err := exerciseService.SearchExercises(ctx, "bench")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	all, err := exerciseService.GetAllExercises(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
