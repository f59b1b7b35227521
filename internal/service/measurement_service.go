package service

import (
	"context"
	"time"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
	"github.com/CHUNCHUNMARU-d/GYM/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MeasurementService records and lists body measurement snapshots. Every
// operation is scoped to the calling coach via the ownership check.
type MeasurementService interface {
	AddMeasurement(ctx context.Context, coachID, clientID primitive.ObjectID, measurement *domain.BodyMeasurement) (*domain.BodyMeasurement, error)
	GetMeasurements(ctx context.Context, coachID, clientID primitive.ObjectID) ([]domain.BodyMeasurement, error)
}

// measurementService implements the MeasurementService interface.
type measurementService struct {
	measurementRepo repository.MeasurementRepository
	coachService    CoachService
}

// NewMeasurementService creates a new instance of measurementService.
func NewMeasurementService(measurementRepo repository.MeasurementRepository, coachService CoachService) MeasurementService {
	return &measurementService{
		measurementRepo: measurementRepo,
		coachService:    coachService,
	}
}

// AddMeasurement appends a snapshot for a client the coach owns. The id
// and date are server-assigned; numeric fields pass through unvalidated.
func (s *measurementService) AddMeasurement(ctx context.Context, coachID, clientID primitive.ObjectID, measurement *domain.BodyMeasurement) (*domain.BodyMeasurement, error) {
	if _, err := s.coachService.GetOwnedClient(ctx, coachID, clientID); err != nil {
		return nil, err
	}

	measurement.ClientID = clientID
	measurement.Date = time.Now().UTC()

	measurementID, err := s.measurementRepo.Create(ctx, measurement)
	if err != nil {
		return nil, err
	}
	measurement.ID = measurementID

	return measurement, nil
}

// GetMeasurements lists a client's snapshots, date descending and
// unbounded.
func (s *measurementService) GetMeasurements(ctx context.Context, coachID, clientID primitive.ObjectID) ([]domain.BodyMeasurement, error) {
	if _, err := s.coachService.GetOwnedClient(ctx, coachID, clientID); err != nil {
		return nil, err
	}
	return s.measurementRepo.GetByClientID(ctx, clientID)
}
