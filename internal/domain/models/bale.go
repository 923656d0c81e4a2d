package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaleType identifies the traded commodity.
type BaleType string

const (
	BaleCotton BaleType = "cotton"
	BaleJute   BaleType = "jute"
	BaleWool   BaleType = "wool"
)

// TransactionType distinguishes purchases from sales.
type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionSale     TransactionType = "sale"
)

// BaleTransaction is a single bale purchase or sale belonging to one owner.
type BaleTransaction struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID         primitive.ObjectID `bson:"user" json:"-"`
	BaleType        BaleType           `bson:"baleType" json:"baleType"`
	TransactionType TransactionType    `bson:"transactionType" json:"transactionType"`
	Quantity        float64            `bson:"quantity" json:"quantity"`
	PricePerUnit    float64            `bson:"pricePerUnit" json:"pricePerUnit"`
	Description     string             `bson:"description" json:"description"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalAmount is the monetary value of the transaction.
func (b BaleTransaction) TotalAmount() float64 {
	return b.Quantity * b.PricePerUnit
}

// ValidBaleType reports whether the provided value is a known commodity.
func ValidBaleType(v BaleType) bool {
	switch v {
	case BaleCotton, BaleJute, BaleWool:
		return true
	}
	return false
}

// ValidTransactionType reports whether the provided value is a known side.
func ValidTransactionType(v TransactionType) bool {
	return v == TransactionPurchase || v == TransactionSale
}
