package mongo

import (
	"context"
	"errors"
	"log"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
	"github.com/CHUNCHUNMARU-d/GYM/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const measurementCollectionName = "measurements"

// mongoMeasurementRepository implements repository.MeasurementRepository
type mongoMeasurementRepository struct {
	collection *mongo.Collection
}

// NewMongoMeasurementRepository creates a new measurement repository backed by MongoDB.
func NewMongoMeasurementRepository(db *mongo.Database) repository.MeasurementRepository {
	return &mongoMeasurementRepository{
		collection: db.Collection(measurementCollectionName),
	}
}

// Create inserts a body measurement snapshot. The date must already be set
// by the service layer.
func (r *mongoMeasurementRepository) Create(ctx context.Context, measurement *domain.BodyMeasurement) (primitive.ObjectID, error) {
	if measurement.ClientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("measurement client ID is required")
	}

	measurement.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, measurement)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByClientID retrieves all measurement snapshots for a client, date
// descending. Unlike workout history there is no limit applied.
func (r *mongoMeasurementRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.BodyMeasurement, error) {
	measurements := []domain.BodyMeasurement{}
	filter := bson.M{"client_id": clientID}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &measurements); err != nil {
		return nil, err
	}

	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return measurements, nil
}

// GetLatestByClientID retrieves the most recent snapshot for a client.
func (r *mongoMeasurementRepository) GetLatestByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.BodyMeasurement, error) {
	var measurement domain.BodyMeasurement
	filter := bson.M{"client_id": clientID}

	findOptions := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&measurement)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &measurement, nil
}

// EnsureMeasurementIndexes creates necessary indexes for the measurements collection.
func EnsureMeasurementIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
		// Non-fatal; queries fall back to collection scans.
	}
}
