// Package digest sweeps every owner once a month and pushes a compact
// summary of last month's financials to the configured destinations.
package digest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/baletrack/bizpulse/internal/domain/models"
	"github.com/baletrack/bizpulse/internal/service/period"
)

// OwnerLister enumerates owners that have financial records.
type OwnerLister interface {
	Owners(ctx context.Context) ([]string, error)
}

// Reporter composes the financial report for one owner and period token.
type Reporter interface {
	FinancialReport(ctx context.Context, ownerID, periodToken string) (models.FinancialReport, error)
}

// Notifier delivers a digest to the operator webhook.
type Notifier interface {
	SendDigest(ctx context.Context, digest models.ReportDigest) error
}

// Mirror appends a digest row to the bookkeeping spreadsheet.
type Mirror interface {
	AppendDigest(ctx context.Context, digest models.ReportDigest) error
}

// Service runs the monthly digest sweep. Notifier and Mirror are optional;
// a nil destination is skipped.
type Service struct {
	owners   OwnerLister
	reports  Reporter
	notifier Notifier
	mirror   Mirror
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new digest service instance.
func NewService(owners OwnerLister, reports Reporter, notifier Notifier, mirror Mirror, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		owners:   owners,
		reports:  reports,
		notifier: notifier,
		mirror:   mirror,
		logger:   logger,
		now:      time.Now,
	}
}

// Run sweeps all owners and publishes last month's digest for each one that
// has data. Per-owner failures are logged and do not stop the sweep; the
// first failure is returned once the sweep completes.
func (s *Service) Run(ctx context.Context) error {
	owners, err := s.owners.Owners(ctx)
	if err != nil {
		return err
	}

	var firstErr error
	published := 0

	for _, ownerID := range owners {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.publishOwner(ctx, ownerID); err != nil {
			s.logger.Error("failed to publish owner digest", zap.String("owner_id", ownerID), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		published++
	}

	s.logger.Info("digest sweep completed",
		zap.Int("owners", len(owners)),
		zap.Int("published", published))

	return firstErr
}

func (s *Service) publishOwner(ctx context.Context, ownerID string) error {
	report, err := s.reports.FinancialReport(ctx, ownerID, period.TokenLastMonth)
	if err != nil {
		return err
	}
	if !report.HasData() {
		s.logger.Debug("owner has no data for digest period", zap.String("owner_id", ownerID))
		return nil
	}

	digest := models.ReportDigest{
		OwnerID:     ownerID,
		PeriodLabel: period.TokenLastMonth,
		Window:      report.Period,
		Metrics:     report.Metrics,
		GeneratedAt: s.now().UTC(),
	}

	if s.notifier != nil {
		if err := s.notifier.SendDigest(ctx, digest); err != nil {
			return err
		}
	}
	if s.mirror != nil {
		if err := s.mirror.AppendDigest(ctx, digest); err != nil {
			return err
		}
	}
	return nil
}
