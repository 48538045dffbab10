package components

import (
	"slotboard/internal/handler"
	"slotboard/internal/handler/api"
	"slotboard/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBoardHandler,
		api.NewAdminHandler,
		api.NewWSHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
