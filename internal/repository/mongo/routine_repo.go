package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
	"github.com/CHUNCHUNMARU-d/GYM/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const routineCollectionName = "routines"

// mongoRoutineRepository implements repository.RoutineRepository
type mongoRoutineRepository struct {
	collection *mongo.Collection
}

// NewMongoRoutineRepository creates a new routine repository backed by MongoDB.
func NewMongoRoutineRepository(db *mongo.Database) repository.RoutineRepository {
	return &mongoRoutineRepository{
		collection: db.Collection(routineCollectionName),
	}
}

// Create inserts a new routine into the database.
func (r *mongoRoutineRepository) Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	if routine.Name == "" || routine.CoachID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("routine name and coach ID are required")
	}

	routine.ID = primitive.NewObjectID()
	routine.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, routine)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a routine by its ID.
func (r *mongoRoutineRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	var routine domain.Routine
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&routine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

// GetByCoachID retrieves all routines authored by a specific coach, newest first.
func (r *mongoRoutineRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Routine, error) {
	routines := []domain.Routine{}
	filter := bson.M{"coach_id": coachID}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &routines); err != nil {
		return nil, err
	}

	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return routines, nil
}

// Update replaces the mutable routine fields wholesale. The CoachID filter
// doubles as the ownership check: a routine belonging to another coach is
// reported as not found.
func (r *mongoRoutineRepository) Update(ctx context.Context, routine *domain.Routine) error {
	if routine.ID == primitive.NilObjectID {
		return errors.New("routine ID is required for update")
	}

	filter := bson.M{"_id": routine.ID, "coach_id": routine.CoachID}
	update := bson.M{
		"$set": bson.M{
			"name":             routine.Name,
			"exercises":        routine.Exercises,
			"assigned_clients": routine.AssignedClients,
			"is_active":        routine.IsActive,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetActiveByClientID retrieves active routines that include the client in
// their assigned list, newest first. The caller treats the first element as
// the client's current routine.
func (r *mongoRoutineRepository) GetActiveByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Routine, error) {
	routines := []domain.Routine{}
	filter := bson.M{
		"assigned_clients": clientID,
		"is_active":        true,
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &routines); err != nil {
		return nil, err
	}

	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return routines, nil
}

// CountActiveByCoachID returns how many of the coach's routines are active.
func (r *mongoRoutineRepository) CountActiveByCoachID(ctx context.Context, coachID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"coach_id": coachID, "is_active": true})
}

// EnsureRoutineIndexes creates necessary indexes for the routines collection.
func EnsureRoutineIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "coach_id", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "assigned_clients", Value: 1}, {Key: "is_active", Value: 1}},
			Options: options.Index(),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
		// Non-fatal; queries fall back to collection scans.
	}
}
