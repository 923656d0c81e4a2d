package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExpenseType is the spending category of an expense record.
type ExpenseType string

const (
	ExpenseTransport ExpenseType = "transport"
	ExpenseUtilities ExpenseType = "utilities"
	ExpenseSalaries  ExpenseType = "salaries"
	ExpenseSupplies  ExpenseType = "supplies"
	ExpenseOther     ExpenseType = "other"
)

// ExpensePeriod is the month/quarter/year denormalization stored alongside an
// expense so period queries hit an indexed field instead of computing on read.
// It is always derived from ExpenseDate; writes that touch the date must
// recompute it.
type ExpensePeriod struct {
	Month   int `bson:"month" json:"month"`
	Quarter int `bson:"quarter" json:"quarter"`
	Year    int `bson:"year" json:"year"`
}

// PeriodOf derives the denormalized period for a given expense date.
func PeriodOf(t time.Time) ExpensePeriod {
	t = t.UTC()
	return ExpensePeriod{
		Month:   int(t.Month()),
		Quarter: (int(t.Month())-1)/3 + 1,
		Year:    t.Year(),
	}
}

// ExpenseRecord is a single operating expense belonging to one owner.
type ExpenseRecord struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID            primitive.ObjectID `bson:"user" json:"-"`
	ExpenseType        ExpenseType        `bson:"expenseType" json:"expenseType"`
	ExpenseDescription string             `bson:"expenseDescription" json:"expenseDescription"`
	ExpenseAmount      float64            `bson:"expenseAmount" json:"expenseAmount"`
	ExpenseDate        time.Time          `bson:"expenseDate" json:"expenseDate"`
	Period             ExpensePeriod      `bson:"period" json:"period"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidExpenseType reports whether the provided value is a known category.
func ValidExpenseType(v ExpenseType) bool {
	switch v {
	case ExpenseTransport, ExpenseUtilities, ExpenseSalaries, ExpenseSupplies, ExpenseOther:
		return true
	}
	return false
}
