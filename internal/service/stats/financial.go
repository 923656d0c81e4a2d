package stats

import (
	"github.com/baletrack/bizpulse/internal/domain/models"
)

// ComposeFinancial merges bale and expense aggregates for the same owner and
// window into the combined report metrics. Ratio metrics fall back to 0 when
// there are no sales; the composer never produces NaN or Inf.
func ComposeFinancial(bales models.BaleStats, expenses models.ExpenseStats) models.FinancialMetrics {
	metrics := models.FinancialMetrics{
		TotalBalesSales:     bales.TotalSales,
		TotalBalesPurchases: bales.TotalPurchases,
		PureExpenses:        expenses.TotalExpenses,
	}

	metrics.TotalCosts = metrics.TotalBalesPurchases + metrics.PureExpenses
	metrics.ActualProfit = metrics.TotalBalesSales - metrics.TotalCosts
	if metrics.TotalBalesSales > 0 {
		metrics.ProfitMargin = metrics.ActualProfit / metrics.TotalBalesSales * 100
		metrics.ExpenseRatio = metrics.TotalCosts / metrics.TotalBalesSales * 100
	}

	return metrics
}
