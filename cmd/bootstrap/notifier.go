package bootstrap

import (
	"context"
	"log/slog"

	"slotboard/internal/notifier"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		notifier.NewHub,
		fx.Annotate(
			notifier.NewBroadcaster,
			fx.As(new(notifier.Notifier)),
		),
	),
	fx.Invoke(startBroadcaster),
)

// startBroadcaster runs the cross-instance subscription for the app's
// lifetime and closes the hub on shutdown.
func startBroadcaster(lc fx.Lifecycle, hub *notifier.Hub, n notifier.Notifier, logger *slog.Logger) {
	broadcaster, ok := n.(*notifier.Broadcaster)
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go broadcaster.Listen(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			hub.Close()
			logger.Info("board change notifier stopped")
			return nil
		},
	})
}
