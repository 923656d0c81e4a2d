package stats

import (
	"github.com/baletrack/bizpulse/internal/domain/models"
)

// ReduceSavings folds the owner's savings history into per-type totals and
// goal progress. A plain reducer rather than a $group pipeline so it runs
// against any store and under test.
func ReduceSavings(savings []models.SavingsRecord) models.SavingsStats {
	stats := models.SavingsStats{
		TargetProgress: []models.SavingsGoalView{},
	}

	for _, s := range savings {
		switch s.SavingsType {
		case models.SavingsPersonal:
			stats.Personal += s.SavingsAmount
		case models.SavingsBusiness:
			stats.Business += s.SavingsAmount
		case models.SavingsTarget:
			stats.Totals.Target += s.SavingsAmount
			if s.TargetAmount > 0 {
				stats.TargetProgress = append(stats.TargetProgress, models.SavingsGoalView{
					SavingsRecord: s,
					Progress:      s.Progress(),
				})
			}
		}
		stats.Totals.Overall += s.SavingsAmount
	}

	return stats
}
