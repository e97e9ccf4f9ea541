package reminder

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/config"
)

// Scheduler triggers the generator on a cron schedule. Overlapping runs are
// possible; the generator itself carries no mutual exclusion.
type Scheduler struct {
	cron      *cron.Cron
	generator *Generator
	logger    *zap.SugaredLogger
}

func NewScheduler(lc fx.Lifecycle, cfg *config.Config, g *Generator, l *zap.SugaredLogger) (*Scheduler, error) {
	instance := Scheduler{
		cron:      cron.New(),
		generator: g,
		logger:    l,
	}

	_, err := instance.cron.AddFunc(cfg.ReminderCron, instance.runOnce)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			instance.cron.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Info("Stopping reminder scheduler.")
			instance.cron.Stop()
			return nil
		},
	})

	return &instance, nil
}

func (s *Scheduler) runOnce() {
	start := time.Now()
	matched, err := s.generator.Run(context.Background(), start)
	if err != nil {
		s.logger.Errorw("reminder run failed", "error", err, "matched", matched)
		return
	}
	s.logger.Infow("reminder run finished",
		"matched", matched,
		"took", time.Since(start),
		"result", RunResult(matched))
}
