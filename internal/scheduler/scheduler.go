package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/baletrack/bizpulse/internal/config"
	"github.com/baletrack/bizpulse/internal/service/digest"
)

// Scheduler manages the recurring digest job.
type Scheduler struct {
	cron      *cron.Cron
	digestSvc *digest.Service
	cfg       config.DigestConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance. The cron runs in the
// configured business timezone so "first of the month" means the operator's
// month, not the server's.
func NewScheduler(cfg config.DigestConfig, digestSvc *digest.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.UTC
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		digestSvc: digestSvc,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDigest); err != nil {
		s.logger.Error("failed to schedule digest job", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDigest() {
	s.logger.Info("running monthly digest sweep")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.digestSvc.Run(ctx); err != nil {
		s.logger.Error("digest sweep finished with errors", zap.Error(err))
	}
}
