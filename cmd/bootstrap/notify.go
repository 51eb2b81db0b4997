package bootstrap

import (
	"context"

	"courtbook/internal/infra/notify"
	"courtbook/internal/pkg/config"
	"courtbook/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewWaitlistNotifier,
	),
)

// NewWaitlistNotifier publishes slot-available notices to Kafka, or to the
// log when no brokers are configured.
func NewWaitlistNotifier(lc fx.Lifecycle, cfg config.Config) commands.WaitlistNotifier {
	if len(cfg.Kafka.Brokers) == 0 {
		return notify.NewLogNotifier()
	}

	notifier, cleanup := notify.NewKafkaNotifier(cfg.Kafka)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})
	return notifier
}
