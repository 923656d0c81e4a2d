package stats

import (
	"github.com/baletrack/bizpulse/internal/domain/models"
)

// recentLimit bounds the recent-transaction slices in a bale snapshot.
const recentLimit = 5

// ReduceBales folds a list of bale transactions into a trading snapshot in a
// single pass. Input order is assumed to be insertion order; the recent
// slices come out most-recent-first. An empty input yields an all-zero
// snapshot with empty lists.
func ReduceBales(bales []models.BaleTransaction) models.BaleStats {
	stats := models.BaleStats{
		RecentPurchases: []models.BaleTransactionView{},
		RecentSales:     []models.BaleTransactionView{},
	}

	var purchases, sales []models.BaleTransactionView

	for _, bale := range bales {
		view := models.BaleTransactionView{BaleTransaction: bale, TotalAmount: bale.TotalAmount()}

		switch bale.TransactionType {
		case models.TransactionPurchase:
			stats.TotalPurchases += view.TotalAmount
			stats.PurchaseCount++
			stats.TotalQuantityPurchased += bale.Quantity
			purchases = append(purchases, view)
		case models.TransactionSale:
			stats.TotalSales += view.TotalAmount
			stats.SaleCount++
			stats.TotalQuantitySold += bale.Quantity
			sales = append(sales, view)
		}
	}

	stats.TotalRevenue = stats.TotalSales - stats.TotalPurchases

	if stats.TotalQuantityPurchased > 0 {
		stats.AveragePurchasePrice = stats.TotalPurchases / stats.TotalQuantityPurchased
	}
	if stats.TotalQuantitySold > 0 {
		stats.AverageSalePrice = stats.TotalSales / stats.TotalQuantitySold
	}
	if stats.TotalSales > 0 {
		stats.ProfitMargin = stats.TotalRevenue / stats.TotalSales * 100
	}

	stats.RecentPurchases = lastReversed(purchases, recentLimit)
	stats.RecentSales = lastReversed(sales, recentLimit)

	return stats
}

// lastReversed returns the trailing n elements in reverse order, so the
// newest entry comes first.
func lastReversed(views []models.BaleTransactionView, n int) []models.BaleTransactionView {
	if len(views) < n {
		n = len(views)
	}
	out := make([]models.BaleTransactionView, 0, n)
	for i := len(views) - 1; i >= len(views)-n; i-- {
		out = append(out, views[i])
	}
	return out
}
