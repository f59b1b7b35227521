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
	ErrCoachNotFound  = errors.New("coach not found")
	ErrClientNotFound = errors.New("client not found")
)

// Trailing windows used by the dashboard and the progress comparison.
const (
	dashboardWeekWindow      = 7 * 24 * time.Hour
	progressComparisonWindow = 30 * 24 * time.Hour
)

// Dashboard is the coach landing summary.
type Dashboard struct {
	Coach                 *domain.Coach   `json:"coach"`
	TotalClients          int             `json:"total_clients"`
	TotalWorkoutsThisWeek int             `json:"total_workouts_this_week"`
	ActiveRoutines        int64           `json:"active_routines"`
	Clients               []domain.Client `json:"clients"`
}

// ClientProgress bundles everything a coach sees about one client.
type ClientProgress struct {
	Client        *domain.Client                  `json:"client"`
	Workouts      []domain.Workout                `json:"workouts"`
	Measurements  []domain.BodyMeasurement        `json:"measurements"`
	ExerciseStats map[string]*stats.ExerciseStats `json:"exercise_stats"`
}

// ClientComparison is one roster entry of the progress comparison. Each
// entry is computed independently; no roster-wide aggregates exist.
type ClientComparison struct {
	Client               *domain.Client          `json:"client"`
	LatestMeasurement    *domain.BodyMeasurement `json:"latest_measurement"`
	WorkoutsThisMonth    int                     `json:"workouts_this_month"`
	TotalVolumeThisMonth float64                 `json:"total_volume_this_month"`
}

// CoachService covers the coach-facing roster operations: client management,
// the dashboard, per-client progress and the roster-wide comparison.
type CoachService interface {
	CreateClient(ctx context.Context, coachID primitive.ObjectID, name, email string) (*domain.Client, error)
	GetClients(ctx context.Context, coachID primitive.ObjectID) ([]domain.Client, error)
	// GetOwnedClient resolves a client and verifies it belongs to the coach;
	// a client owned by another coach reports not found.
	GetOwnedClient(ctx context.Context, coachID, clientID primitive.ObjectID) (*domain.Client, error)
	DeactivateClient(ctx context.Context, coachID, clientID primitive.ObjectID) error
	GetDashboard(ctx context.Context, coachID primitive.ObjectID) (*Dashboard, error)
	GetClientProgress(ctx context.Context, coachID, clientID primitive.ObjectID) (*ClientProgress, error)
	GetProgressComparison(ctx context.Context, coachID primitive.ObjectID) ([]ClientComparison, error)
}

// coachService implements the CoachService interface.
type coachService struct {
	coachRepo       repository.CoachRepository
	clientRepo      repository.ClientRepository
	routineRepo     repository.RoutineRepository
	workoutRepo     repository.WorkoutRepository
	measurementRepo repository.MeasurementRepository
}

// NewCoachService creates a new instance of coachService.
func NewCoachService(
	coachRepo repository.CoachRepository,
	clientRepo repository.ClientRepository,
	routineRepo repository.RoutineRepository,
	workoutRepo repository.WorkoutRepository,
	measurementRepo repository.MeasurementRepository,
) CoachService {
	return &coachService{
		coachRepo:       coachRepo,
		clientRepo:      clientRepo,
		routineRepo:     routineRepo,
		workoutRepo:     workoutRepo,
		measurementRepo: measurementRepo,
	}
}

// CreateClient adds a client under the calling coach. New clients start
// active.
func (s *coachService) CreateClient(ctx context.Context, coachID primitive.ObjectID, name, email string) (*domain.Client, error) {
	if coachID == primitive.NilObjectID || name == "" {
		return nil, ErrValidationFailed
	}

	client := &domain.Client{
		Name:     name,
		Email:    email,
		CoachID:  coachID,
		IsActive: true,
	}

	clientID, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	client.ID = clientID

	return client, nil
}

// GetClients lists the coach's roster.
func (s *coachService) GetClients(ctx context.Context, coachID primitive.ObjectID) ([]domain.Client, error) {
	if coachID == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}
	return s.clientRepo.GetByCoachID(ctx, coachID)
}

// GetOwnedClient fetches a client and enforces coach ownership.
func (s *coachService) GetOwnedClient(ctx context.Context, coachID, clientID primitive.ObjectID) (*domain.Client, error) {
	if coachID == primitive.NilObjectID || clientID == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.CoachID != coachID {
		// Another coach's client is invisible, not forbidden.
		return nil, ErrClientNotFound
	}
	return client, nil
}

// DeactivateClient soft-deactivates a client. The record stays for history;
// the client can no longer log in.
func (s *coachService) DeactivateClient(ctx context.Context, coachID, clientID primitive.ObjectID) error {
	if _, err := s.GetOwnedClient(ctx, coachID, clientID); err != nil {
		return err
	}
	err := s.clientRepo.SetActive(ctx, clientID, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}

// GetDashboard assembles the coach landing summary: roster size, workout
// count across the roster in the trailing 7 days, and active routine count.
func (s *coachService) GetDashboard(ctx context.Context, coachID primitive.ObjectID) (*Dashboard, error) {
	coach, err := s.coachRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	coach.PasswordHash = ""

	clients, err := s.clientRepo.GetByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}

	weekStart := time.Now().UTC().Add(-dashboardWeekWindow)
	workoutsThisWeek := 0
	for _, client := range clients {
		workouts, err := s.workoutRepo.GetByClientIDSince(ctx, client.ID, weekStart)
		if err != nil {
			return nil, err
		}
		workoutsThisWeek += len(workouts)
	}

	activeRoutines, err := s.routineRepo.CountActiveByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Coach:                 coach,
		TotalClients:          len(clients),
		TotalWorkoutsThisWeek: workoutsThisWeek,
		ActiveRoutines:        activeRoutines,
		Clients:               clients,
	}, nil
}

// GetClientProgress bundles a client's workouts, measurements and folded
// exercise statistics for the owning coach.
func (s *coachService) GetClientProgress(ctx context.Context, coachID, clientID primitive.ObjectID) (*ClientProgress, error) {
	client, err := s.GetOwnedClient(ctx, coachID, clientID)
	if err != nil {
		return nil, err
	}

	workouts, err := s.workoutRepo.GetByClientID(ctx, clientID, 0)
	if err != nil {
		return nil, err
	}

	measurements, err := s.measurementRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	summary := stats.Aggregate(workouts, nil)

	return &ClientProgress{
		Client:        client,
		Workouts:      workouts,
		Measurements:  measurements,
		ExerciseStats: summary.ExerciseStats,
	}, nil
}

// GetProgressComparison emits one record per active client in the roster:
// latest measurement (nil when none recorded), workout count and summed
// volume in the trailing 30-day window.
func (s *coachService) GetProgressComparison(ctx context.Context, coachID primitive.ObjectID) ([]ClientComparison, error) {
	if coachID == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}

	clients, err := s.clientRepo.GetByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}

	windowStart := time.Now().UTC().Add(-progressComparisonWindow)
	comparisons := []ClientComparison{}

	for i := range clients {
		client := clients[i]
		if !client.IsActive {
			continue
		}

		latest, err := s.measurementRepo.GetLatestByClientID(ctx, client.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		workouts, err := s.workoutRepo.GetByClientIDSince(ctx, client.ID, windowStart)
		if err != nil {
			return nil, err
		}

		comparisons = append(comparisons, ClientComparison{
			Client:               &client,
			LatestMeasurement:    latest,
			WorkoutsThisMonth:    len(workouts),
			TotalVolumeThisMonth: stats.TotalVolume(workouts),
		})
	}

	return comparisons, nil
}
