package bootstrap

import (
	"context"

	"courtbook/internal/pkg/config"
	"courtbook/internal/scheduler"
	"courtbook/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(startScheduler),
)

func NewScheduler(cfg config.Config, waitlist commands.WaitlistCommands) (*scheduler.Scheduler, error) {
	return scheduler.New(cfg.Waitlist, waitlist)
}

func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return s.Stop()
		},
	})
}
