package stats

import (
	"testing"

	"github.com/baletrack/bizpulse/internal/domain/models"
)

func saving(typ models.SavingsType, amount, target float64) models.SavingsRecord {
	return models.SavingsRecord{
		SavingsType:   typ,
		SavingsAmount: amount,
		TargetAmount:  target,
	}
}

func TestReduceSavingsBuckets(t *testing.T) {
	// personal: 100 + 50 = 150, business: 200, target: 400 + 120 = 520.
	// Overall = 150 + 200 + 520 = 870.
	savings := []models.SavingsRecord{
		saving(models.SavingsPersonal, 100, 0),
		saving(models.SavingsBusiness, 200, 0),
		saving(models.SavingsPersonal, 50, 0),
		saving(models.SavingsTarget, 400, 500),
		saving(models.SavingsTarget, 120, 100),
	}

	stats := ReduceSavings(savings)

	if stats.Personal != 150 {
		t.Errorf("Personal = %v, want 150", stats.Personal)
	}
	if stats.Business != 200 {
		t.Errorf("Business = %v, want 200", stats.Business)
	}
	if stats.Totals.Target != 520 {
		t.Errorf("Totals.Target = %v, want 520", stats.Totals.Target)
	}
	if stats.Totals.Overall != 870 {
		t.Errorf("Totals.Overall = %v, want 870", stats.Totals.Overall)
	}
}

func TestReduceSavingsGoalProgress(t *testing.T) {
	// 400/500 = 80%. 120/100 = 120% capped at 100.
	savings := []models.SavingsRecord{
		saving(models.SavingsTarget, 400, 500),
		saving(models.SavingsTarget, 120, 100),
	}

	stats := ReduceSavings(savings)

	if len(stats.TargetProgress) != 2 {
		t.Fatalf("len(TargetProgress) = %d, want 2", len(stats.TargetProgress))
	}
	if stats.TargetProgress[0].Progress != 80 {
		t.Errorf("first goal progress = %d, want 80", stats.TargetProgress[0].Progress)
	}
	if stats.TargetProgress[1].Progress != 100 {
		t.Errorf("capped goal progress = %d, want 100", stats.TargetProgress[1].Progress)
	}
}

func TestReduceSavingsTargetWithoutAmountExcluded(t *testing.T) {
	// A target record with no TargetAmount still counts in the totals but
	// cannot appear in the progress list.
	savings := []models.SavingsRecord{
		saving(models.SavingsTarget, 300, 0),
	}

	stats := ReduceSavings(savings)
	if stats.Totals.Target != 300 || stats.Totals.Overall != 300 {
		t.Errorf("totals = %+v, want target/overall 300", stats.Totals)
	}
	if len(stats.TargetProgress) != 0 {
		t.Errorf("TargetProgress = %+v, want empty", stats.TargetProgress)
	}
}

func TestReduceSavingsEmpty(t *testing.T) {
	stats := ReduceSavings(nil)

	if stats.Personal != 0 || stats.Business != 0 || stats.Totals.Target != 0 || stats.Totals.Overall != 0 {
		t.Errorf("empty input produced non-zero totals: %+v", stats)
	}
	if stats.TargetProgress == nil || len(stats.TargetProgress) != 0 {
		t.Errorf("TargetProgress = %v, want empty non-nil slice", stats.TargetProgress)
	}
}
