package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CHUNCHUNMARU-d/GYM/internal/config"
	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
)

func TestSeedDefaults(t *testing.T) {
	ctx := context.Background()
	coachRepo := newMemCoachRepo()
	clientRepo := newMemClientRepo()
	exerciseRepo := newMemExerciseRepo()
	authService := NewAuthService(coachRepo, clientRepo, testJWTSecret, time.Hour)
	exerciseService := NewExerciseService(exerciseRepo)

	seedCfg := config.SeedConfig{
		CoachUsername: "coach",
		CoachPassword: "coach123",
		CoachName:     "Head Coach",
	}

	require.NoError(t, SeedDefaults(ctx, coachRepo, exerciseRepo, authService, exerciseService, seedCfg))

	coach, err := coachRepo.GetByUsername(ctx, "coach")
	require.NoError(t, err)
	assert.Equal(t, "Head Coach", coach.Name)

	exerciseCount, err := exerciseRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defaultExercises)), exerciseCount)

	// The seeded coach can actually log in with the configured password.
	_, _, err = authService.LoginCoach(ctx, "coach", "coach123")
	assert.NoError(t, err)

	// A second run against a populated database writes nothing.
	require.NoError(t, SeedDefaults(ctx, coachRepo, exerciseRepo, authService, exerciseService, seedCfg))
	exerciseCount, err = exerciseRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defaultExercises)), exerciseCount)
	coachCount, err := coachRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), coachCount)
}

func TestSeedSkipsWhenCoachExists(t *testing.T) {
	ctx := context.Background()
	coachRepo := newMemCoachRepo()
	clientRepo := newMemClientRepo()
	exerciseRepo := newMemExerciseRepo()
	authService := NewAuthService(coachRepo, clientRepo, testJWTSecret, time.Hour)
	exerciseService := NewExerciseService(exerciseRepo)

	_, err := coachRepo.Create(ctx, &domain.Coach{Username: "existing", Name: "Existing"})
	require.NoError(t, err)

	require.NoError(t, SeedDefaults(ctx, coachRepo, exerciseRepo, authService, exerciseService, config.SeedConfig{
		CoachUsername: "coach",
		CoachPassword: "coach123",
	}))

	// The default account is not created alongside an existing coach, but
	// the empty exercise library is still seeded.
	_, err = coachRepo.GetByUsername(ctx, "coach")
	assert.Error(t, err)
	exerciseCount, err := exerciseRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defaultExercises)), exerciseCount)
}
