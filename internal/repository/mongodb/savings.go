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

// SavingsByOwner returns the owner's full savings history ordered by savings
// date ascending, the order exports walk it in.
func (r *MongoDBRepository) SavingsByOwner(ctx context.Context, ownerID string) ([]models.SavingsRecord, error) {
	filter, err := ownerScope(ownerID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "savingsDate", Value: 1}})
	cursor, err := r.collection(savingsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find savings: %w", err)
	}

	var savings []models.SavingsRecord
	if err := cursor.All(ctx, &savings); err != nil {
		return nil, fmt.Errorf("decode savings: %w", err)
	}
	return savings, nil
}

// ListSavings returns the owner's savings newest first, optionally restricted
// to one savings type.
func (r *MongoDBRepository) ListSavings(ctx context.Context, ownerID string, savingsType models.SavingsType) ([]models.SavingsRecord, error) {
	filter, err := ownerScope(ownerID)
	if err != nil {
		return nil, err
	}
	if savingsType != "" {
		filter["savingsType"] = savingsType
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection(savingsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find savings: %w", err)
	}

	var savings []models.SavingsRecord
	if err := cursor.All(ctx, &savings); err != nil {
		return nil, fmt.Errorf("decode savings: %w", err)
	}
	return savings, nil
}

// InsertSavings persists a new savings record.
func (r *MongoDBRepository) InsertSavings(ctx context.Context, saving *models.SavingsRecord) error {
	now := time.Now().UTC()
	if saving.SavingsDate.IsZero() {
		saving.SavingsDate = now
	}
	saving.CreatedAt = now
	saving.UpdatedAt = now

	res, err := r.collection(savingsCollection).InsertOne(ctx, saving)
	if err != nil {
		return fmt.Errorf("insert savings: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		saving.ID = oid
	}
	return nil
}

// SavingsByID fetches a single savings record owned by the caller.
func (r *MongoDBRepository) SavingsByID(ctx context.Context, ownerID, id string) (models.SavingsRecord, error) {
	filter, err := ownedRecordScope(ownerID, id)
	if err != nil {
		return models.SavingsRecord{}, err
	}

	var saving models.SavingsRecord
	err = r.collection(savingsCollection).FindOne(ctx, filter).Decode(&saving)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SavingsRecord{}, ErrNotFound
	}
	if err != nil {
		return models.SavingsRecord{}, fmt.Errorf("find savings: %w", err)
	}
	return saving, nil
}

// UpdateSavings applies a partial update and returns the updated document.
func (r *MongoDBRepository) UpdateSavings(ctx context.Context, ownerID, id string, update models.SavingsUpdate) (models.SavingsRecord, error) {
	filter, err := ownedRecordScope(ownerID, id)
	if err != nil {
		return models.SavingsRecord{}, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.SavingsType != nil {
		set["savingsType"] = *update.SavingsType
	}
	if update.SavingsAmount != nil {
		set["savingsAmount"] = *update.SavingsAmount
	}
	if update.SavingsDate != nil {
		set["savingsDate"] = *update.SavingsDate
	}
	if update.TargetName != nil {
		set["targetName"] = *update.TargetName
	}
	if update.TargetAmount != nil {
		set["targetAmount"] = *update.TargetAmount
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var saving models.SavingsRecord
	err = r.collection(savingsCollection).FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&saving)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SavingsRecord{}, ErrNotFound
	}
	if err != nil {
		return models.SavingsRecord{}, fmt.Errorf("update savings: %w", err)
	}
	return saving, nil
}

// DeleteSavings removes a savings record owned by the caller.
func (r *MongoDBRepository) DeleteSavings(ctx context.Context, ownerID, id string) error {
	filter, err := ownedRecordScope(ownerID, id)
	if err != nil {
		return err
	}

	err = r.collection(savingsCollection).FindOneAndDelete(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete savings: %w", err)
	}
	return nil
}
