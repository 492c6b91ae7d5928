package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
)

type implStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     logger.Logger
}

// NewMongo connects to MongoDB and returns a Store over the given
// database/collection. The connection is verified with a ping so a dead
// store fails at startup, not on the first request.
func NewMongo(ctx context.Context, uri, database, collection string, log logger.Logger) (Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", ErrUnavailable, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ping: %v", ErrUnavailable, err)
	}

	return &implStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     log,
	}, nil
}

func (s *implStore) Insert(ctx context.Context, filename, transcription, summaryAndActions string) (string, error) {
	doc := Result{
		ID:                primitive.NewObjectID(),
		Filename:          filename,
		Transcription:     transcription,
		SummaryAndActions: summaryAndActions,
		Timestamp:         time.Now().UTC(),
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("%w: insert: %v", ErrUnavailable, err)
	}

	s.logger.Debug(ctx, "Inserted result %s for %s", doc.ID.Hex(), filename)
	return doc.ID.Hex(), nil
}

func (s *implStore) ListRecent(ctx context.Context) ([]Result, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find: %v", ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	results := make([]Result, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	return results, nil
}

func (s *implStore) GetByID(ctx context.Context, id string) (Result, error) {
	oid, err := ParseID(id)
	if err != nil {
		return Result{}, err
	}

	var result Result
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: find one: %v", ErrUnavailable, err)
	}

	return result, nil
}

func (s *implStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ParseID validates the store's identifier format. A syntactically invalid
// identifier is rejected before the store is ever queried.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
