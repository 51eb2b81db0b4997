// Package scheduler runs the periodic waitlist sweep.
package scheduler

import (
	"context"
	"log/slog"

	"courtbook/internal/pkg/config"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/commands"

	"github.com/go-co-op/gocron/v2"
)

type Scheduler struct {
	scheduler gocron.Scheduler
}

// New wires the waitlist expiry sweep on the configured cron. Each run flips
// NOTIFIED entries past the notify TTL to EXPIRED; the sweep is idempotent so
// overlapping or missed runs are harmless.
func New(cfg config.WaitlistConfig, waitlist commands.WaitlistCommands) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errs.Wrap(err, "failed to create scheduler")
	}

	_, err = s.NewJob(
		gocron.CronJob(cfg.SweepCron, false),
		gocron.NewTask(func(ctx context.Context) {
			expired, err := waitlist.ExpireStale(ctx)
			if err != nil {
				slog.Error("waitlist sweep failed", "error", err.Error())
				return
			}
			slog.Debug("waitlist sweep completed", "expired", expired)
		}),
	)
	if err != nil {
		return nil, errs.Wrap(err, "failed to schedule waitlist sweep")
	}

	return &Scheduler{scheduler: s}, nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
