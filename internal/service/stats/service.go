// Package stats computes on-demand financial aggregates. The reducers are
// pure functions over in-memory record lists; Service pairs them with the
// record store and the period resolver. Snapshots are never cached, every
// call recomputes from the current records.
package stats

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/baletrack/bizpulse/internal/domain/models"
	"github.com/baletrack/bizpulse/internal/service/period"
)

// Store is the read surface the aggregation engine needs from the record
// store. Every method is owner-scoped.
type Store interface {
	BalesByOwner(ctx context.Context, ownerID string, window *models.ReportWindow) ([]models.BaleTransaction, error)
	ExpensesByOwner(ctx context.Context, ownerID string, filter models.PeriodFilter) ([]models.ExpenseRecord, error)
	SavingsByOwner(ctx context.Context, ownerID string) ([]models.SavingsRecord, error)
}

// Service exposes the aggregation operations consumed by the HTTP layer and
// the digest job.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new stats service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// BaleStats aggregates the owner's bale trading, optionally restricted to a
// date window.
func (s *Service) BaleStats(ctx context.Context, ownerID string, window *models.ReportWindow) (models.BaleStats, error) {
	bales, err := s.store.BalesByOwner(ctx, ownerID, window)
	if err != nil {
		return models.BaleStats{}, fmt.Errorf("load bales: %w", err)
	}
	return ReduceBales(bales), nil
}

// ExpenseStats aggregates the owner's expenses for the requested period.
func (s *Service) ExpenseStats(ctx context.Context, ownerID string, q period.Query) (models.ExpenseStats, error) {
	now := s.now()
	filter := period.ResolveFilter(q, now)

	expenses, err := s.store.ExpensesByOwner(ctx, ownerID, filter)
	if err != nil {
		return models.ExpenseStats{}, fmt.Errorf("load expenses: %w", err)
	}

	token := q.Period
	if token == "" {
		token = period.TokenAll
	}
	echo := filter
	if echo.Year == 0 {
		echo.Year = now.UTC().Year()
	}

	return ReduceExpenses(expenses, token, echo), nil
}

// SavingsStats aggregates the owner's full savings history.
func (s *Service) SavingsStats(ctx context.Context, ownerID string) (models.SavingsStats, error) {
	savings, err := s.store.SavingsByOwner(ctx, ownerID)
	if err != nil {
		return models.SavingsStats{}, fmt.Errorf("load savings: %w", err)
	}
	return ReduceSavings(savings), nil
}

// SavingsHistory returns the raw savings records in export order.
func (s *Service) SavingsHistory(ctx context.Context, ownerID string) ([]models.SavingsRecord, error) {
	savings, err := s.store.SavingsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load savings: %w", err)
	}
	return savings, nil
}

// FinancialReport composes the bale and expense aggregates for one period
// token. The same token drives both filter schemes: the bale date window and
// the expense period filter always describe the same slice of time.
func (s *Service) FinancialReport(ctx context.Context, ownerID, periodToken string) (models.FinancialReport, error) {
	now := s.now()
	window := period.ResolveRange(periodToken, now)

	balesData, err := s.BaleStats(ctx, ownerID, &window)
	if err != nil {
		return models.FinancialReport{}, err
	}

	expensesData, err := s.ExpenseStats(ctx, ownerID, period.Query{Period: periodToken})
	if err != nil {
		return models.FinancialReport{}, err
	}

	report := models.FinancialReport{
		Period:       window,
		BalesData:    balesData,
		ExpensesData: expensesData,
		Metrics:      ComposeFinancial(balesData, expensesData),
	}

	s.logger.Debug("financial report composed",
		zap.String("owner_id", ownerID),
		zap.String("period", periodToken),
		zap.Bool("has_data", report.HasData()))

	return report, nil
}
