package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportWindow is an inclusive UTC date range resolved from a period token.
type ReportWindow struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// PeriodFilter is the month/quarter field filter used for expense queries.
// Zero fields mean "unfiltered"; an entirely zero filter matches all history.
type PeriodFilter struct {
	Year    int `json:"year,omitempty"`
	Month   int `json:"month,omitempty"`
	Quarter int `json:"quarter,omitempty"`
}

// IsZero reports whether the filter constrains nothing.
func (f PeriodFilter) IsZero() bool {
	return f.Year == 0 && f.Month == 0 && f.Quarter == 0
}

// BaleTransactionView is a bale transaction enriched with its computed value,
// as returned inside stats payloads and exports.
type BaleTransactionView struct {
	BaleTransaction
	TotalAmount float64 `json:"totalAmount"`
}

// BaleStats is the aggregate snapshot of bale trading for one owner. Computed
// on demand, never persisted.
type BaleStats struct {
	TotalPurchases         float64               `json:"totalPurchases"`
	TotalSales             float64               `json:"totalSales"`
	TotalRevenue           float64               `json:"totalRevenue"`
	PurchaseCount          int                   `json:"purchaseCount"`
	SaleCount              int                   `json:"saleCount"`
	AveragePurchasePrice   float64               `json:"averagePurchasePrice"`
	AverageSalePrice       float64               `json:"averageSalePrice"`
	ProfitMargin           float64               `json:"profitMargin"`
	TotalQuantityPurchased float64               `json:"totalQuantityPurchased"`
	TotalQuantitySold      float64               `json:"totalQuantitySold"`
	RecentPurchases        []BaleTransactionView `json:"recentPurchases"`
	RecentSales            []BaleTransactionView `json:"recentSales"`
}

// CategoryStat is one slice of the expense category breakdown.
type CategoryStat struct {
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// HighestCategory names the category with the largest accumulated total.
type HighestCategory struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ExpenseView is the flat expense projection reused by exports.
type ExpenseView struct {
	ID                 primitive.ObjectID `json:"id"`
	ExpenseDate        time.Time          `json:"expenseDate"`
	ExpenseType        ExpenseType        `json:"expenseType"`
	ExpenseDescription string             `json:"expenseDescription"`
	ExpenseAmount      float64            `json:"expenseAmount"`
}

// ExpenseStats is the aggregate snapshot of expenses for one owner and period.
type ExpenseStats struct {
	TotalExpenses     float64                      `json:"totalExpenses"`
	ExpenseCount      int                          `json:"expenseCount"`
	AverageExpense    float64                      `json:"averageExpense"`
	HighestCategory   HighestCategory              `json:"highestCategory"`
	CategoryBreakdown map[ExpenseType]CategoryStat `json:"categoryBreakdown"`
	Period            string                       `json:"period"`
	PeriodFilter      PeriodFilter                 `json:"periodFilter"`
	ExpensesList      []ExpenseView                `json:"expensesList"`
}

// SavingsGoalView is a target-type savings record with its derived progress.
type SavingsGoalView struct {
	SavingsRecord
	Progress int `json:"progress"`
}

// SavingsTotals groups the cross-bucket savings sums.
type SavingsTotals struct {
	Target  float64 `json:"target"`
	Overall float64 `json:"overall"`
}

// SavingsStats is the aggregate snapshot of savings for one owner.
type SavingsStats struct {
	Personal       float64           `json:"personal"`
	Business       float64           `json:"business"`
	Totals         SavingsTotals     `json:"totals"`
	TargetProgress []SavingsGoalView `json:"targetProgress"`
}

// FinancialMetrics are the cross-cutting figures derived from bale and
// expense aggregates for the same owner and window.
type FinancialMetrics struct {
	TotalBalesSales     float64 `json:"totalBalesSales"`
	TotalBalesPurchases float64 `json:"totalBalesPurchases"`
	PureExpenses        float64 `json:"pureExpenses"`
	TotalCosts          float64 `json:"totalCosts"`
	ActualProfit        float64 `json:"actualProfit"`
	ProfitMargin        float64 `json:"profitMargin"`
	ExpenseRatio        float64 `json:"expenseRatio"`
}

// FinancialReport is the composed report payload for one owner and period.
type FinancialReport struct {
	Period       ReportWindow     `json:"period"`
	BalesData    BaleStats        `json:"balesData"`
	ExpensesData ExpenseStats     `json:"expensesData"`
	Metrics      FinancialMetrics `json:"metrics"`
}

// HasData reports whether the window produced anything worth exporting. A
// report with neither sales nor expenses short-circuits document generation.
func (r FinancialReport) HasData() bool {
	return r.BalesData.TotalSales != 0 || r.ExpensesData.TotalExpenses != 0
}

// ReportDigest is the compact monthly summary pushed to the operator webhook
// and mirrored to the bookkeeping spreadsheet.
type ReportDigest struct {
	OwnerID     string           `json:"ownerId"`
	PeriodLabel string           `json:"periodLabel"`
	Window      ReportWindow     `json:"window"`
	Metrics     FinancialMetrics `json:"metrics"`
	GeneratedAt time.Time        `json:"generatedAt"`
}
