package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
)

const testJWTSecret = "test-secret"

func newTestAuthService() (AuthService, *memCoachRepo, *memClientRepo) {
	coachRepo := newMemCoachRepo()
	clientRepo := newMemClientRepo()
	return NewAuthService(coachRepo, clientRepo, testJWTSecret, time.Hour), coachRepo, clientRepo
}

func TestRegisterCoach(t *testing.T) {
	ctx := context.Background()
	authService, _, _ := newTestAuthService()

	coach, err := authService.RegisterCoach(ctx, "coach", "coach123", "Head Coach", "coach@example.com")
	require.NoError(t, err)
	assert.False(t, coach.ID.IsZero())
	assert.Equal(t, "coach", coach.Username)
	// The hash never leaves the service layer.
	assert.Empty(t, coach.PasswordHash)

	_, err = authService.RegisterCoach(ctx, "coach", "other", "Other", "")
	assert.ErrorIs(t, err, ErrCoachAlreadyExists)
}

func TestLoginCoach(t *testing.T) {
	ctx := context.Background()
	authService, _, _ := newTestAuthService()

	_, err := authService.RegisterCoach(ctx, "coach", "coach123", "Head Coach", "")
	require.NoError(t, err)

	token, coach, err := authService.LoginCoach(ctx, "coach", "coach123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, coach)
	assert.Empty(t, coach.PasswordHash)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, coach.ID.Hex(), claims.Subject)
}

func TestLoginCoachInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	authService, _, _ := newTestAuthService()

	_, err := authService.RegisterCoach(ctx, "coach", "coach123", "Head Coach", "")
	require.NoError(t, err)

	_, _, err = authService.LoginCoach(ctx, "coach", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown username is indistinguishable from a wrong password.
	_, _, err = authService.LoginCoach(ctx, "nobody", "coach123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.LoginCoach(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifySubject(t *testing.T) {
	ctx := context.Background()
	authService, _, clientRepo := newTestAuthService()

	coach, err := authService.RegisterCoach(ctx, "coach", "coach123", "Head Coach", "")
	require.NoError(t, err)

	assert.NoError(t, authService.VerifySubject(ctx, coach.ID, domain.RoleCoach))
	assert.ErrorIs(t, authService.VerifySubject(ctx, primitive.NewObjectID(), domain.RoleCoach), ErrSubjectNotFound)

	clientID, err := clientRepo.Create(ctx, &domain.Client{
		Name:     "Alice",
		CoachID:  coach.ID,
		IsActive: false,
	})
	require.NoError(t, err)

	// Deactivation revokes login, not tokens already issued.
	assert.NoError(t, authService.VerifySubject(ctx, clientID, domain.RoleClient))
	assert.ErrorIs(t, authService.VerifySubject(ctx, primitive.NewObjectID(), domain.RoleClient), ErrSubjectNotFound)

	// A coach id presented with the client role does not resolve.
	assert.ErrorIs(t, authService.VerifySubject(ctx, coach.ID, domain.RoleClient), ErrSubjectNotFound)
	assert.ErrorIs(t, authService.VerifySubject(ctx, coach.ID, domain.Role("admin")), ErrSubjectNotFound)
}

func TestLoginClient(t *testing.T) {
	ctx := context.Background()
	authService, _, clientRepo := newTestAuthService()

	clientID, err := clientRepo.Create(ctx, &domain.Client{
		Name:     "Alice",
		CoachID:  primitive.NewObjectID(),
		IsActive: true,
	})
	require.NoError(t, err)

	token, client, err := authService.LoginClient(ctx, clientID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, clientID, client.ID)
}

func TestLoginClientRejected(t *testing.T) {
	ctx := context.Background()
	authService, _, clientRepo := newTestAuthService()

	_, _, err := authService.LoginClient(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	inactiveID, err := clientRepo.Create(ctx, &domain.Client{
		Name:     "Bob",
		CoachID:  primitive.NewObjectID(),
		IsActive: false,
	})
	require.NoError(t, err)

	// A deactivated client looks exactly like an unknown one.
	_, _, err = authService.LoginClient(ctx, inactiveID)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.LoginClient(ctx, primitive.NilObjectID)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
