package stats

import (
	"math"

	"github.com/baletrack/bizpulse/internal/domain/models"
)

type categoryAccum struct {
	total float64
	count int
}

// ReduceExpenses folds period-filtered expenses into a snapshot: totals,
// category breakdown with percentages, and the flat listing exports reuse.
// The input is expected newest-first; the listing preserves that order.
//
// Accumulation runs at full precision; currency figures are rounded to two
// decimals and percentages to one only at the output boundary. The highest
// category is decided by accumulated category total, and ties keep the
// category seen first.
func ReduceExpenses(expenses []models.ExpenseRecord, periodToken string, echo models.PeriodFilter) models.ExpenseStats {
	stats := models.ExpenseStats{
		CategoryBreakdown: map[models.ExpenseType]models.CategoryStat{},
		Period:            periodToken,
		PeriodFilter:      echo,
		ExpensesList:      make([]models.ExpenseView, 0, len(expenses)),
	}

	accum := make(map[models.ExpenseType]*categoryAccum)
	var order []models.ExpenseType

	var total float64
	for _, e := range expenses {
		total += e.ExpenseAmount

		acc, ok := accum[e.ExpenseType]
		if !ok {
			acc = &categoryAccum{}
			accum[e.ExpenseType] = acc
			order = append(order, e.ExpenseType)
		}
		acc.total += e.ExpenseAmount
		acc.count++

		stats.ExpensesList = append(stats.ExpensesList, models.ExpenseView{
			ID:                 e.ID,
			ExpenseDate:        e.ExpenseDate,
			ExpenseType:        e.ExpenseType,
			ExpenseDescription: e.ExpenseDescription,
			ExpenseAmount:      e.ExpenseAmount,
		})
	}

	stats.ExpenseCount = len(expenses)
	stats.TotalExpenses = round2(total)
	if stats.ExpenseCount > 0 {
		stats.AverageExpense = round2(total / float64(stats.ExpenseCount))
	}

	for _, category := range order {
		acc := accum[category]
		if acc.total > stats.HighestCategory.Amount {
			stats.HighestCategory = models.HighestCategory{Name: string(category), Amount: acc.total}
		}

		percentage := 0.0
		if total > 0 {
			percentage = round1(acc.total / total * 100)
		}
		stats.CategoryBreakdown[category] = models.CategoryStat{
			Total:      round2(acc.total),
			Count:      acc.count,
			Percentage: percentage,
		}
	}
	stats.HighestCategory.Amount = round2(stats.HighestCategory.Amount)

	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
