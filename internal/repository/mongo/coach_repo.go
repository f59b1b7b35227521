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

const coachCollectionName = "coaches"

// mongoCoachRepository implements repository.CoachRepository using MongoDB.
type mongoCoachRepository struct {
	collection *mongo.Collection
}

// NewMongoCoachRepository creates a new coach repository backed by MongoDB.
func NewMongoCoachRepository(db *mongo.Database) repository.CoachRepository {
	return &mongoCoachRepository{
		collection: db.Collection(coachCollectionName),
	}
}

// Create inserts a new coach into the database.
func (r *mongoCoachRepository) Create(ctx context.Context, coach *domain.Coach) (primitive.ObjectID, error) {
	if coach.Username == "" || coach.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("coach username and password hash are required")
	}

	coach.ID = primitive.NewObjectID()
	coach.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, coach)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByUsername retrieves a coach by their unique username.
func (r *mongoCoachRepository) GetByUsername(ctx context.Context, username string) (*domain.Coach, error) {
	var coach domain.Coach
	filter := bson.M{"username": username}

	err := r.collection.FindOne(ctx, filter).Decode(&coach)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &coach, nil
}

// GetByID retrieves a coach by their MongoDB ObjectID.
func (r *mongoCoachRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Coach, error) {
	var coach domain.Coach
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&coach)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &coach, nil
}

// Count returns the number of coach accounts. Used to decide whether the
// default coach needs to be seeded at startup.
func (r *mongoCoachRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// EnsureCoachIndexes creates necessary indexes for the coaches collection.
// Call this once during application startup.
func EnsureCoachIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
		// Index creation failure is not fatal; unique checks still happen
		// at the service layer.
	}
}
