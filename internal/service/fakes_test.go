package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
	"github.com/CHUNCHUNMARU-d/GYM/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the service tests. They mirror the
// Mongo implementations' contracts: sort orders, sentinel errors and the
// case-insensitive name matching.

type memCoachRepo struct {
	coaches map[primitive.ObjectID]domain.Coach
}

func newMemCoachRepo() *memCoachRepo {
	return &memCoachRepo{coaches: map[primitive.ObjectID]domain.Coach{}}
}

func (r *memCoachRepo) Create(_ context.Context, coach *domain.Coach) (primitive.ObjectID, error) {
	for _, existing := range r.coaches {
		if existing.Username == coach.Username {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	stored := *coach
	stored.ID = id
	stored.CreatedAt = time.Now().UTC()
	r.coaches[id] = stored
	return id, nil
}

func (r *memCoachRepo) GetByUsername(_ context.Context, username string) (*domain.Coach, error) {
	for _, coach := range r.coaches {
		if coach.Username == username {
			c := coach
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memCoachRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Coach, error) {
	coach, ok := r.coaches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := coach
	return &c, nil
}

func (r *memCoachRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.coaches)), nil
}

type memClientRepo struct {
	clients map[primitive.ObjectID]domain.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: map[primitive.ObjectID]domain.Client{}}
}

func (r *memClientRepo) Create(_ context.Context, client *domain.Client) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *client
	stored.ID = id
	stored.CreatedAt = time.Now().UTC()
	r.clients[id] = stored
	return id, nil
}

func (r *memClientRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := client
	return &c, nil
}

func (r *memClientRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.Client, error) {
	result := []domain.Client{}
	for _, client := range r.clients {
		if client.CoachID == coachID {
			result = append(result, client)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memClientRepo) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	client, ok := r.clients[id]
	if !ok {
		return repository.ErrNotFound
	}
	client.IsActive = active
	r.clients[id] = client
	return nil
}

type memExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
}

func newMemExerciseRepo() *memExerciseRepo {
	return &memExerciseRepo{exercises: map[primitive.ObjectID]domain.Exercise{}}
}

func (r *memExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *exercise
	stored.ID = id
	stored.CreatedAt = time.Now().UTC()
	r.exercises[id] = stored
	return id, nil
}

func (r *memExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e := exercise
	return &e, nil
}

func (r *memExerciseRepo) GetByNameFold(_ context.Context, name string) (*domain.Exercise, error) {
	for _, exercise := range r.exercises {
		if strings.EqualFold(exercise.Name, name) {
			e := exercise
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memExerciseRepo) GetAll(_ context.Context) ([]domain.Exercise, error) {
	result := []domain.Exercise{}
	for _, exercise := range r.exercises {
		result = append(result, exercise)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *memExerciseRepo) Search(_ context.Context, query string) ([]domain.Exercise, error) {
	result := []domain.Exercise{}
	for _, exercise := range r.exercises {
		if strings.Contains(strings.ToLower(exercise.Name), strings.ToLower(query)) {
			result = append(result, exercise)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *memExerciseRepo) UpdateTips(_ context.Context, id primitive.ObjectID, tips string) error {
	exercise, ok := r.exercises[id]
	if !ok {
		return repository.ErrNotFound
	}
	exercise.Tips = tips
	r.exercises[id] = exercise
	return nil
}

func (r *memExerciseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.exercises)), nil
}

type memRoutineRepo struct {
	routines map[primitive.ObjectID]domain.Routine
}

func newMemRoutineRepo() *memRoutineRepo {
	return &memRoutineRepo{routines: map[primitive.ObjectID]domain.Routine{}}
}

func (r *memRoutineRepo) Create(_ context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	if routine.CreatedAt.IsZero() {
		routine.CreatedAt = time.Now().UTC()
	}
	id := primitive.NewObjectID()
	stored := *routine
	stored.ID = id
	r.routines[id] = stored
	return id, nil
}

func (r *memRoutineRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	routine, ok := r.routines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rt := routine
	return &rt, nil
}

func (r *memRoutineRepo) GetByCoachID(_ context.Context, coachID primitive.ObjectID) ([]domain.Routine, error) {
	result := []domain.Routine{}
	for _, routine := range r.routines {
		if routine.CoachID == coachID {
			result = append(result, routine)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memRoutineRepo) Update(_ context.Context, routine *domain.Routine) error {
	existing, ok := r.routines[routine.ID]
	if !ok || existing.CoachID != routine.CoachID {
		return repository.ErrNotFound
	}
	existing.Name = routine.Name
	existing.Exercises = routine.Exercises
	existing.AssignedClients = routine.AssignedClients
	existing.IsActive = routine.IsActive
	r.routines[routine.ID] = existing
	return nil
}

func (r *memRoutineRepo) GetActiveByClientID(_ context.Context, clientID primitive.ObjectID) ([]domain.Routine, error) {
	result := []domain.Routine{}
	for _, routine := range r.routines {
		if !routine.IsActive {
			continue
		}
		for _, assigned := range routine.AssignedClients {
			if assigned == clientID {
				result = append(result, routine)
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memRoutineRepo) CountActiveByCoachID(_ context.Context, coachID primitive.ObjectID) (int64, error) {
	var count int64
	for _, routine := range r.routines {
		if routine.CoachID == coachID && routine.IsActive {
			count++
		}
	}
	return count, nil
}

type memWorkoutRepo struct {
	workouts map[primitive.ObjectID]domain.Workout
}

func newMemWorkoutRepo() *memWorkoutRepo {
	return &memWorkoutRepo{workouts: map[primitive.ObjectID]domain.Workout{}}
}

func (r *memWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *workout
	stored.ID = id
	r.workouts[id] = stored
	return id, nil
}

func (r *memWorkoutRepo) byClient(clientID primitive.ObjectID) []domain.Workout {
	result := []domain.Workout{}
	for _, workout := range r.workouts {
		if workout.ClientID == clientID {
			result = append(result, workout)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result
}

func (r *memWorkoutRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID, limit int64) ([]domain.Workout, error) {
	result := r.byClient(clientID)
	if limit > 0 && int64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *memWorkoutRepo) GetByClientIDSince(_ context.Context, clientID primitive.ObjectID, since time.Time) ([]domain.Workout, error) {
	result := []domain.Workout{}
	for _, workout := range r.byClient(clientID) {
		if !workout.Date.Before(since) {
			result = append(result, workout)
		}
	}
	return result, nil
}

func (r *memWorkoutRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

type memMeasurementRepo struct {
	measurements map[primitive.ObjectID]domain.BodyMeasurement
}

func newMemMeasurementRepo() *memMeasurementRepo {
	return &memMeasurementRepo{measurements: map[primitive.ObjectID]domain.BodyMeasurement{}}
}

func (r *memMeasurementRepo) Create(_ context.Context, measurement *domain.BodyMeasurement) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *measurement
	stored.ID = id
	r.measurements[id] = stored
	return id, nil
}

func (r *memMeasurementRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID) ([]domain.BodyMeasurement, error) {
	result := []domain.BodyMeasurement{}
	for _, measurement := range r.measurements {
		if measurement.ClientID == clientID {
			result = append(result, measurement)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func (r *memMeasurementRepo) GetLatestByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.BodyMeasurement, error) {
	all, err := r.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, repository.ErrNotFound
	}
	latest := all[0]
	return &latest, nil
}

type memPhotoRepo struct {
	photos map[primitive.ObjectID]domain.ProgressPhoto
}

func newMemPhotoRepo() *memPhotoRepo {
	return &memPhotoRepo{photos: map[primitive.ObjectID]domain.ProgressPhoto{}}
}

func (r *memPhotoRepo) Create(_ context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *photo
	stored.ID = id
	stored.UploadedAt = time.Now().UTC()
	r.photos[id] = stored
	return id, nil
}

func (r *memPhotoRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID) ([]domain.ProgressPhoto, error) {
	result := []domain.ProgressPhoto{}
	for _, photo := range r.photos {
		if photo.ClientID == clientID {
			result = append(result, photo)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})
	return result, nil
}

// fakeFileStorage hands out deterministic URLs instead of talking to S3.
type fakeFileStorage struct{}

func (fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (fakeFileStorage) DeleteObject(context.Context, string) error {
	return nil
}
