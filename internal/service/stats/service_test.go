package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/baletrack/bizpulse/internal/domain/models"
	"github.com/baletrack/bizpulse/internal/service/period"
)

// fakeStore feeds canned records to the service and captures the filters it
// was queried with.
type fakeStore struct {
	bales    []models.BaleTransaction
	expenses []models.ExpenseRecord
	savings  []models.SavingsRecord

	gotWindow *models.ReportWindow
	gotFilter models.PeriodFilter

	err error
}

func (f *fakeStore) BalesByOwner(_ context.Context, _ string, window *models.ReportWindow) ([]models.BaleTransaction, error) {
	f.gotWindow = window
	return f.bales, f.err
}

func (f *fakeStore) ExpensesByOwner(_ context.Context, _ string, filter models.PeriodFilter) ([]models.ExpenseRecord, error) {
	f.gotFilter = filter
	return f.expenses, f.err
}

func (f *fakeStore) SavingsByOwner(_ context.Context, _ string) ([]models.SavingsRecord, error) {
	return f.savings, f.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestExpenseStatsEchoesResolvedPeriod(t *testing.T) {
	now := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	svc := NewService(store, nil).WithClock(fixedClock(now))

	stats, err := svc.ExpenseStats(context.Background(), "owner", period.Query{Period: period.TokenMonth})
	if err != nil {
		t.Fatalf("ExpenseStats: %v", err)
	}

	// The store was asked for August 2025 and the snapshot echoes it.
	if store.gotFilter.Year != 2025 || store.gotFilter.Month != 8 {
		t.Errorf("store filter = %+v, want {2025 8 0}", store.gotFilter)
	}
	if stats.Period != period.TokenMonth {
		t.Errorf("Period = %q, want %q", stats.Period, period.TokenMonth)
	}
	if stats.PeriodFilter.Year != 2025 || stats.PeriodFilter.Month != 8 {
		t.Errorf("PeriodFilter = %+v, want {2025 8 0}", stats.PeriodFilter)
	}
}

func TestExpenseStatsAllHistoryEchoesCurrentYear(t *testing.T) {
	now := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	svc := NewService(store, nil).WithClock(fixedClock(now))

	stats, err := svc.ExpenseStats(context.Background(), "owner", period.Query{})
	if err != nil {
		t.Fatalf("ExpenseStats: %v", err)
	}

	// The store saw the unconstrained filter, but the echo carries the
	// current year and the "all" label.
	if !store.gotFilter.IsZero() {
		t.Errorf("store filter = %+v, want zero", store.gotFilter)
	}
	if stats.Period != period.TokenAll {
		t.Errorf("Period = %q, want %q", stats.Period, period.TokenAll)
	}
	if stats.PeriodFilter.Year != 2025 {
		t.Errorf("PeriodFilter.Year = %d, want 2025", stats.PeriodFilter.Year)
	}
}

func TestFinancialReportComposesBothSchemes(t *testing.T) {
	now := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{
		bales: []models.BaleTransaction{
			{TransactionType: models.TransactionSale, Quantity: 10, PricePerUnit: 200},
			{TransactionType: models.TransactionPurchase, Quantity: 10, PricePerUnit: 120},
		},
		expenses: []models.ExpenseRecord{
			{ExpenseType: models.ExpenseTransport, ExpenseAmount: 300},
		},
	}
	svc := NewService(store, nil).WithClock(fixedClock(now))

	report, err := svc.FinancialReport(context.Background(), "owner", period.TokenMonth)
	if err != nil {
		t.Fatalf("FinancialReport: %v", err)
	}

	// Both stores were queried for the same slice of time: the bale window
	// covers August 2025 and the expense filter names August 2025.
	if store.gotWindow == nil {
		t.Fatal("bale query received no window")
	}
	wantStart := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	if !store.gotWindow.StartDate.Equal(wantStart) {
		t.Errorf("bale window start = %v, want %v", store.gotWindow.StartDate, wantStart)
	}
	if store.gotFilter.Year != 2025 || store.gotFilter.Month != 8 {
		t.Errorf("expense filter = %+v, want {2025 8 0}", store.gotFilter)
	}

	// Sales 2000, purchases 1200, expenses 300 => profit 500, margin 25%.
	if report.Metrics.ActualProfit != 500 {
		t.Errorf("ActualProfit = %v, want 500", report.Metrics.ActualProfit)
	}
	if report.Metrics.ProfitMargin != 25 {
		t.Errorf("ProfitMargin = %v, want 25", report.Metrics.ProfitMargin)
	}
	if !report.HasData() {
		t.Error("report with sales and expenses must have data")
	}
	if !report.Period.StartDate.Equal(wantStart) {
		t.Errorf("report period start = %v, want %v", report.Period.StartDate, wantStart)
	}
}

func TestServicePropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection reset")
	store := &fakeStore{err: storeErr}
	svc := NewService(store, nil)

	if _, err := svc.BaleStats(context.Background(), "owner", nil); !errors.Is(err, storeErr) {
		t.Errorf("BaleStats err = %v, want wrapped %v", err, storeErr)
	}
	if _, err := svc.ExpenseStats(context.Background(), "owner", period.Query{}); !errors.Is(err, storeErr) {
		t.Errorf("ExpenseStats err = %v, want wrapped %v", err, storeErr)
	}
	if _, err := svc.SavingsStats(context.Background(), "owner"); !errors.Is(err, storeErr) {
		t.Errorf("SavingsStats err = %v, want wrapped %v", err, storeErr)
	}
	if _, err := svc.FinancialReport(context.Background(), "owner", period.TokenMonth); !errors.Is(err, storeErr) {
		t.Errorf("FinancialReport err = %v, want wrapped %v", err, storeErr)
	}
}
