package models

import "time"

// Partial-update payloads. Nil fields are left untouched; handlers validate
// values before they reach the repository.

// BaleUpdate carries the mutable fields of a bale transaction.
type BaleUpdate struct {
	BaleType        *BaleType
	TransactionType *TransactionType
	Quantity        *float64
	PricePerUnit    *float64
	Description     *string
}

// IsZero reports whether no field is set.
func (u BaleUpdate) IsZero() bool {
	return u.BaleType == nil && u.TransactionType == nil && u.Quantity == nil &&
		u.PricePerUnit == nil && u.Description == nil
}

// ExpenseUpdate carries the mutable fields of an expense record. When
// ExpenseDate is set the stored period denormalization is recomputed from it;
// the two can never disagree.
type ExpenseUpdate struct {
	ExpenseType        *ExpenseType
	ExpenseDescription *string
	ExpenseAmount      *float64
	ExpenseDate        *time.Time
}

// IsZero reports whether no field is set.
func (u ExpenseUpdate) IsZero() bool {
	return u.ExpenseType == nil && u.ExpenseDescription == nil &&
		u.ExpenseAmount == nil && u.ExpenseDate == nil
}

// SavingsUpdate carries the mutable fields of a savings record.
type SavingsUpdate struct {
	SavingsType   *SavingsType
	SavingsAmount *float64
	SavingsDate   *time.Time
	TargetName    *string
	TargetAmount  *float64
}

// IsZero reports whether no field is set.
func (u SavingsUpdate) IsZero() bool {
	return u.SavingsType == nil && u.SavingsAmount == nil && u.SavingsDate == nil &&
		u.TargetName == nil && u.TargetAmount == nil
}
