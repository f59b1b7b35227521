package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
)

func TestAddMeasurement(t *testing.T) {
	ctx := context.Background()
	f := newCoachFixture(t)
	measurementService := NewMeasurementService(f.measurementRepo, f.coachService)

	client, err := f.coachService.CreateClient(ctx, f.coachID, "Alice", "")
	require.NoError(t, err)

	weight := 70.5
	before := time.Now().UTC()
	measurement, err := measurementService.AddMeasurement(ctx, f.coachID, client.ID, &domain.BodyMeasurement{
		WeightKg:     &weight,
		Measurements: map[string]float64{"waist": 78.0},
	})
	require.NoError(t, err)
	assert.False(t, measurement.ID.IsZero())
	assert.Equal(t, client.ID, measurement.ClientID)
	// Date is server-assigned.
	assert.False(t, measurement.Date.Before(before))
}

func TestMeasurementOwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	f := newCoachFixture(t)
	measurementService := NewMeasurementService(f.measurementRepo, f.coachService)

	client, err := f.coachService.CreateClient(ctx, f.coachID, "Alice", "")
	require.NoError(t, err)

	otherCoach := primitive.NewObjectID()
	_, err = measurementService.AddMeasurement(ctx, otherCoach, client.ID, &domain.BodyMeasurement{})
	assert.ErrorIs(t, err, ErrClientNotFound)

	_, err = measurementService.GetMeasurements(ctx, otherCoach, client.ID)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestGetMeasurementsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newCoachFixture(t)
	measurementService := NewMeasurementService(f.measurementRepo, f.coachService)

	client, err := f.coachService.CreateClient(ctx, f.coachID, "Alice", "")
	require.NoError(t, err)

	now := time.Now().UTC()
	for _, age := range []time.Duration{48 * time.Hour, 24 * time.Hour, 0} {
		_, err := f.measurementRepo.Create(ctx, &domain.BodyMeasurement{
			ClientID: client.ID,
			Date:     now.Add(-age),
		})
		require.NoError(t, err)
	}

	measurements, err := measurementService.GetMeasurements(ctx, f.coachID, client.ID)
	require.NoError(t, err)
	require.Len(t, measurements, 3)
	assert.True(t, measurements[0].Date.After(measurements[1].Date))
	assert.True(t, measurements[1].Date.After(measurements[2].Date))
}
