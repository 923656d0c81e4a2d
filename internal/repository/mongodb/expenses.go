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

// ExpensesByOwner returns the owner's expenses matching the period filter,
// newest first.
func (r *MongoDBRepository) ExpensesByOwner(ctx context.Context, ownerID string, period models.PeriodFilter) ([]models.ExpenseRecord, error) {
	filter, err := ownerScope(ownerID)
	if err != nil {
		return nil, err
	}
	if period.Year > 0 {
		filter["period.year"] = period.Year
	}
	if period.Month > 0 {
		filter["period.month"] = period.Month
	}
	if period.Quarter > 0 {
		filter["period.quarter"] = period.Quarter
	}

	opts := options.Find().SetSort(bson.D{{Key: "expenseDate", Value: -1}})
	cursor, err := r.collection(expensesCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}

	var expenses []models.ExpenseRecord
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	return expenses, nil
}

// InsertExpense persists a new expense. The period denormalization is derived
// from the expense date here so no write path can skip it.
func (r *MongoDBRepository) InsertExpense(ctx context.Context, expense *models.ExpenseRecord) error {
	now := time.Now().UTC()
	if expense.ExpenseDate.IsZero() {
		expense.ExpenseDate = now
	}
	expense.Period = models.PeriodOf(expense.ExpenseDate)
	expense.CreatedAt = now
	expense.UpdatedAt = now

	res, err := r.collection(expensesCollection).InsertOne(ctx, expense)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		expense.ID = oid
	}
	return nil
}

// ExpenseByID fetches a single expense owned by the caller.
func (r *MongoDBRepository) ExpenseByID(ctx context.Context, ownerID, id string) (models.ExpenseRecord, error) {
	filter, err := ownedRecordScope(ownerID, id)
	if err != nil {
		return models.ExpenseRecord{}, err
	}

	var expense models.ExpenseRecord
	err = r.collection(expensesCollection).FindOne(ctx, filter).Decode(&expense)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ExpenseRecord{}, ErrNotFound
	}
	if err != nil {
		return models.ExpenseRecord{}, fmt.Errorf("find expense: %w", err)
	}
	return expense, nil
}

// UpdateExpense applies a partial update and returns the updated document.
// A date change recomputes the stored period in the same write.
func (r *MongoDBRepository) UpdateExpense(ctx context.Context, ownerID, id string, update models.ExpenseUpdate) (models.ExpenseRecord, error) {
	filter, err := ownedRecordScope(ownerID, id)
	if err != nil {
		return models.ExpenseRecord{}, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.ExpenseType != nil {
		set["expenseType"] = *update.ExpenseType
	}
	if update.ExpenseDescription != nil {
		set["expenseDescription"] = *update.ExpenseDescription
	}
	if update.ExpenseAmount != nil {
		set["expenseAmount"] = *update.ExpenseAmount
	}
	if update.ExpenseDate != nil {
		set["expenseDate"] = *update.ExpenseDate
		set["period"] = models.PeriodOf(*update.ExpenseDate)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var expense models.ExpenseRecord
	err = r.collection(expensesCollection).FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&expense)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ExpenseRecord{}, ErrNotFound
	}
	if err != nil {
		return models.ExpenseRecord{}, fmt.Errorf("update expense: %w", err)
	}
	return expense, nil
}

// DeleteExpense removes an expense owned by the caller.
func (r *MongoDBRepository) DeleteExpense(ctx context.Context, ownerID, id string) error {
	filter, err := ownedRecordScope(ownerID, id)
	if err != nil {
		return err
	}

	err = r.collection(expensesCollection).FindOneAndDelete(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
