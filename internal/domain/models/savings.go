package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavingsType classifies a savings deposit.
type SavingsType string

const (
	SavingsPersonal SavingsType = "personal"
	SavingsBusiness SavingsType = "business"
	SavingsTarget   SavingsType = "target"
)

// SavingsRecord is a savings deposit, optionally attached to a named goal.
type SavingsRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID       primitive.ObjectID `bson:"user" json:"-"`
	SavingsType   SavingsType        `bson:"savingsType" json:"savingsType"`
	SavingsAmount float64            `bson:"savingsAmount" json:"savingsAmount"`
	SavingsDate   time.Time          `bson:"savingsDate" json:"savingsDate"`
	TargetName    string             `bson:"targetName,omitempty" json:"targetName,omitempty"`
	TargetAmount  float64            `bson:"targetAmount,omitempty" json:"targetAmount,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Progress is the goal completion percentage, capped at 100. Non-target
// records and records without a target amount report 0.
func (s SavingsRecord) Progress() int {
	if s.SavingsType != SavingsTarget || s.TargetAmount <= 0 {
		return 0
	}
	p := int(math.Round(s.SavingsAmount / s.TargetAmount * 100))
	if p > 100 {
		return 100
	}
	return p
}

// ValidSavingsType reports whether the provided value is a known bucket.
func ValidSavingsType(v SavingsType) bool {
	switch v {
	case SavingsPersonal, SavingsBusiness, SavingsTarget:
		return true
	}
	return false
}
