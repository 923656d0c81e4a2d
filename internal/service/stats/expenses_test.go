package stats

import (
	"testing"
	"time"

	"github.com/baletrack/bizpulse/internal/domain/models"
)

func expense(typ models.ExpenseType, amount float64) models.ExpenseRecord {
	return models.ExpenseRecord{
		ExpenseType:   typ,
		ExpenseAmount: amount,
		ExpenseDate:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestReduceExpensesBreakdown(t *testing.T) {
	// transport: 100 + 200 = 300 (2 records), utilities: 50 (1 record).
	// Total 350. transport = 300/350 = 85.714...% -> 85.7,
	// utilities = 50/350 = 14.285...% -> 14.3.
	expenses := []models.ExpenseRecord{
		expense(models.ExpenseTransport, 100),
		expense(models.ExpenseUtilities, 50),
		expense(models.ExpenseTransport, 200),
	}

	stats := ReduceExpenses(expenses, "month", models.PeriodFilter{Year: 2025, Month: 3})

	if stats.TotalExpenses != 350 {
		t.Errorf("TotalExpenses = %v, want 350", stats.TotalExpenses)
	}
	if stats.ExpenseCount != 3 {
		t.Errorf("ExpenseCount = %d, want 3", stats.ExpenseCount)
	}
	// Average = 350/3 = 116.666... -> 116.67 after rounding.
	if stats.AverageExpense != 116.67 {
		t.Errorf("AverageExpense = %v, want 116.67", stats.AverageExpense)
	}

	transport := stats.CategoryBreakdown[models.ExpenseTransport]
	if transport.Total != 300 || transport.Count != 2 || transport.Percentage != 85.7 {
		t.Errorf("transport = %+v, want {300 2 85.7}", transport)
	}
	utilities := stats.CategoryBreakdown[models.ExpenseUtilities]
	if utilities.Total != 50 || utilities.Count != 1 || utilities.Percentage != 14.3 {
		t.Errorf("utilities = %+v, want {50 1 14.3}", utilities)
	}

	if stats.HighestCategory.Name != string(models.ExpenseTransport) || stats.HighestCategory.Amount != 300 {
		t.Errorf("HighestCategory = %+v, want {transport 300}", stats.HighestCategory)
	}

	if stats.Period != "month" {
		t.Errorf("Period = %q, want %q", stats.Period, "month")
	}
	if stats.PeriodFilter.Year != 2025 || stats.PeriodFilter.Month != 3 {
		t.Errorf("PeriodFilter = %+v, want {2025 3 0}", stats.PeriodFilter)
	}
	if len(stats.ExpensesList) != 3 {
		t.Errorf("len(ExpensesList) = %d, want 3", len(stats.ExpensesList))
	}
}

func TestReduceExpensesHighestByAccumulatedTotal(t *testing.T) {
	// The single largest record is salaries at 180, but transport accumulates
	// 120 + 110 = 230. Highest goes to transport: totals win over record size.
	expenses := []models.ExpenseRecord{
		expense(models.ExpenseTransport, 120),
		expense(models.ExpenseSalaries, 180),
		expense(models.ExpenseTransport, 110),
	}

	stats := ReduceExpenses(expenses, "all", models.PeriodFilter{})
	if stats.HighestCategory.Name != string(models.ExpenseTransport) || stats.HighestCategory.Amount != 230 {
		t.Errorf("HighestCategory = %+v, want {transport 230}", stats.HighestCategory)
	}
}

func TestReduceExpensesHighestTieKeepsFirstSeen(t *testing.T) {
	// utilities and transport both total 100; utilities appears first.
	expenses := []models.ExpenseRecord{
		expense(models.ExpenseUtilities, 100),
		expense(models.ExpenseTransport, 100),
	}

	stats := ReduceExpenses(expenses, "all", models.PeriodFilter{})
	if stats.HighestCategory.Name != string(models.ExpenseUtilities) {
		t.Errorf("HighestCategory.Name = %q, want utilities (first seen)", stats.HighestCategory.Name)
	}
}

func TestReduceExpensesEmpty(t *testing.T) {
	stats := ReduceExpenses(nil, "month", models.PeriodFilter{Year: 2025, Month: 3})

	if stats.TotalExpenses != 0 || stats.ExpenseCount != 0 || stats.AverageExpense != 0 {
		t.Errorf("empty input produced non-zero totals: %+v", stats)
	}
	if stats.HighestCategory.Name != "" || stats.HighestCategory.Amount != 0 {
		t.Errorf("HighestCategory = %+v, want zero value", stats.HighestCategory)
	}
	if stats.CategoryBreakdown == nil || len(stats.CategoryBreakdown) != 0 {
		t.Errorf("CategoryBreakdown = %v, want empty non-nil map", stats.CategoryBreakdown)
	}
	if stats.ExpensesList == nil || len(stats.ExpensesList) != 0 {
		t.Errorf("ExpensesList = %v, want empty non-nil slice", stats.ExpensesList)
	}
}

func TestReduceExpensesZeroTotalPercentage(t *testing.T) {
	// All amounts zero: percentages report 0 instead of dividing by zero.
	expenses := []models.ExpenseRecord{
		expense(models.ExpenseOther, 0),
		expense(models.ExpenseSupplies, 0),
	}

	stats := ReduceExpenses(expenses, "all", models.PeriodFilter{})
	for category, stat := range stats.CategoryBreakdown {
		if stat.Percentage != 0 {
			t.Errorf("%s percentage = %v, want 0", category, stat.Percentage)
		}
	}
}

func TestReduceExpensesRoundsAtBoundary(t *testing.T) {
	// Three records of 0.1 accumulate with float error (0.30000000000000004)
	// but the published total rounds to exactly 0.3.
	expenses := []models.ExpenseRecord{
		expense(models.ExpenseOther, 0.1),
		expense(models.ExpenseOther, 0.1),
		expense(models.ExpenseOther, 0.1),
	}

	stats := ReduceExpenses(expenses, "all", models.PeriodFilter{})
	if stats.TotalExpenses != 0.3 {
		t.Errorf("TotalExpenses = %v, want 0.3", stats.TotalExpenses)
	}
	if stats.AverageExpense != 0.1 {
		t.Errorf("AverageExpense = %v, want 0.1", stats.AverageExpense)
	}
}

func TestReduceExpensesIdempotent(t *testing.T) {
	expenses := []models.ExpenseRecord{
		expense(models.ExpenseTransport, 100),
		expense(models.ExpenseUtilities, 50),
	}

	first := ReduceExpenses(expenses, "month", models.PeriodFilter{Year: 2025, Month: 3})
	second := ReduceExpenses(expenses, "month", models.PeriodFilter{Year: 2025, Month: 3})

	if first.TotalExpenses != second.TotalExpenses || first.HighestCategory != second.HighestCategory {
		t.Errorf("repeated reduction diverged: %+v vs %+v", first, second)
	}
}
