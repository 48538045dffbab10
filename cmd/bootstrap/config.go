package bootstrap

import (
	"slotboard/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.BoardConfig { return cfg.Board },
	),
)
