package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/baletrack/bizpulse/internal/domain/models"
)

// BalesByOwner returns the owner's bale transactions in insertion order,
// optionally restricted to an inclusive date window.
func (r *MongoDBRepository) BalesByOwner(ctx context.Context, ownerID string, window *models.ReportWindow) ([]models.BaleTransaction, error) {
	filter, err := ownerScope(ownerID)
	if err != nil {
		return nil, err
	}
	if window != nil {
		filter["createdAt"] = bson.M{"$gte": window.StartDate, "$lte": window.EndDate}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection(balesCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find bales: %w", err)
	}

	var bales []models.BaleTransaction
	if err := cursor.All(ctx, &bales); err != nil {
		return nil, fmt.Errorf("decode bales: %w", err)
	}
	return bales, nil
}

// InsertBale persists a new bale transaction and fills in the generated id
// and timestamps.
func (r *MongoDBRepository) InsertBale(ctx context.Context, bale *models.BaleTransaction) error {
	now := time.Now().UTC()
	bale.CreatedAt = now
	bale.UpdatedAt = now

	res, err := r.collection(balesCollection).InsertOne(ctx, bale)
	if err != nil {
		return fmt.Errorf("insert bale: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		bale.ID = oid
	}
	return nil
}

// BaleByID fetches a single bale transaction owned by the caller.
func (r *MongoDBRepository) BaleByID(ctx context.Context, ownerID, id string) (models.BaleTransaction, error) {
	filter, err := ownedRecordScope(ownerID, id)
	if err != nil {
		return models.BaleTransaction{}, err
	}

	var bale models.BaleTransaction
	err = r.collection(balesCollection).FindOne(ctx, filter).Decode(&bale)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.BaleTransaction{}, ErrNotFound
	}
	if err != nil {
		return models.BaleTransaction{}, fmt.Errorf("find bale: %w", err)
	}
	return bale, nil
}

// UpdateBale applies a partial update and returns the updated document.
func (r *MongoDBRepository) UpdateBale(ctx context.Context, ownerID, id string, update models.BaleUpdate) (models.BaleTransaction, error) {
	filter, err := ownedRecordScope(ownerID, id)
	if err != nil {
		return models.BaleTransaction{}, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.BaleType != nil {
		set["baleType"] = *update.BaleType
	}
	if update.TransactionType != nil {
		set["transactionType"] = *update.TransactionType
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.PricePerUnit != nil {
		set["pricePerUnit"] = *update.PricePerUnit
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var bale models.BaleTransaction
	err = r.collection(balesCollection).FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&bale)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.BaleTransaction{}, ErrNotFound
	}
	if err != nil {
		return models.BaleTransaction{}, fmt.Errorf("update bale: %w", err)
	}
	return bale, nil
}

// DeleteBale removes a bale transaction owned by the caller.
func (r *MongoDBRepository) DeleteBale(ctx context.Context, ownerID, id string) error {
	filter, err := ownedRecordScope(ownerID, id)
	if err != nil {
		return err
	}

	err = r.collection(balesCollection).FindOneAndDelete(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete bale: %w", err)
	}
	return nil
}
