package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	balesCollection    = "bales"
	expensesCollection = "expenses"
	savingsCollection  = "savings"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different owner. Callers cannot distinguish the two cases on purpose.
var ErrNotFound = errors.New("record not found")

// MongoDBRepository is the MongoDB-backed record store.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
	logger *zap.Logger
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
		logger: logger,
	}, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// Owners returns the distinct owner ids that have bale or expense records.
// Used by the digest sweep.
func (r *MongoDBRepository) Owners(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, name := range []string{balesCollection, expensesCollection} {
		values, err := r.collection(name).Distinct(ctx, "user", bson.D{})
		if err != nil {
			return nil, fmt.Errorf("distinct owners in %s: %w", name, err)
		}
		for _, v := range values {
			if oid, ok := v.(primitive.ObjectID); ok {
				seen[oid.Hex()] = struct{}{}
			}
		}
	}

	owners := make([]string, 0, len(seen))
	for id := range seen {
		owners = append(owners, id)
	}
	return owners, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// ownerScope builds the base filter every query carries. Records are never
// visible across owners.
func ownerScope(ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id %q: %w", ownerID, err)
	}
	return bson.M{"user": oid}, nil
}

func ownedRecordScope(ownerID, recordID string) (bson.M, error) {
	scope, err := ownerScope(ownerID)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return nil, fmt.Errorf("invalid record id %q: %w", recordID, ErrNotFound)
	}
	scope["_id"] = oid
	return scope, nil
}
