package stats

import (
	"math"
	"testing"

	"github.com/baletrack/bizpulse/internal/domain/models"
)

func TestComposeFinancial(t *testing.T) {
	// Sales 2000, purchases 1200, expenses 300.
	// TotalCosts = 1200 + 300 = 1500. ActualProfit = 2000 - 1500 = 500.
	// ProfitMargin = 500/2000*100 = 25. ExpenseRatio = 1500/2000*100 = 75.
	bales := models.BaleStats{TotalSales: 2000, TotalPurchases: 1200}
	expenses := models.ExpenseStats{TotalExpenses: 300}

	m := ComposeFinancial(bales, expenses)

	if m.TotalBalesSales != 2000 || m.TotalBalesPurchases != 1200 || m.PureExpenses != 300 {
		t.Errorf("passthrough fields wrong: %+v", m)
	}
	if m.TotalCosts != 1500 {
		t.Errorf("TotalCosts = %v, want 1500", m.TotalCosts)
	}
	if m.ActualProfit != 500 {
		t.Errorf("ActualProfit = %v, want 500", m.ActualProfit)
	}
	if m.ProfitMargin != 25 {
		t.Errorf("ProfitMargin = %v, want 25", m.ProfitMargin)
	}
	if m.ExpenseRatio != 75 {
		t.Errorf("ExpenseRatio = %v, want 75", m.ExpenseRatio)
	}
}

func TestComposeFinancialNoSales(t *testing.T) {
	// Costs with no sales: profit goes negative, ratios stay 0 instead of
	// dividing by zero.
	bales := models.BaleStats{TotalPurchases: 800}
	expenses := models.ExpenseStats{TotalExpenses: 150}

	m := ComposeFinancial(bales, expenses)

	if m.TotalCosts != 950 {
		t.Errorf("TotalCosts = %v, want 950", m.TotalCosts)
	}
	if m.ActualProfit != -950 {
		t.Errorf("ActualProfit = %v, want -950", m.ActualProfit)
	}
	if m.ProfitMargin != 0 || m.ExpenseRatio != 0 {
		t.Errorf("ratios = %v/%v, want 0/0", m.ProfitMargin, m.ExpenseRatio)
	}
	if math.IsNaN(m.ProfitMargin) || math.IsInf(m.ExpenseRatio, 0) {
		t.Errorf("ratios not finite: %+v", m)
	}
}

func TestComposeFinancialEmpty(t *testing.T) {
	m := ComposeFinancial(models.BaleStats{}, models.ExpenseStats{})
	if m != (models.FinancialMetrics{}) {
		t.Errorf("empty inputs produced non-zero metrics: %+v", m)
	}
}

func TestFinancialReportHasData(t *testing.T) {
	empty := models.FinancialReport{}
	if empty.HasData() {
		t.Error("empty report must report no data")
	}

	withSales := models.FinancialReport{BalesData: models.BaleStats{TotalSales: 1}}
	if !withSales.HasData() {
		t.Error("report with sales must report data")
	}

	withExpenses := models.FinancialReport{ExpensesData: models.ExpenseStats{TotalExpenses: 1}}
	if !withExpenses.HasData() {
		t.Error("report with expenses must report data")
	}

	// Purchases alone do not count: the gate looks at sales and expenses
	// only.
	purchasesOnly := models.FinancialReport{BalesData: models.BaleStats{TotalPurchases: 500}}
	if purchasesOnly.HasData() {
		t.Error("report with only purchases must report no data")
	}
}
