package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotboard/internal/domain/user"
	"slotboard/internal/handler/api"
	"slotboard/internal/handler/middleware"
	"slotboard/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	boardHandler *api.BoardHandler,
	adminHandler *api.AdminHandler,
	wsHandler *api.WSHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, boardHandler, adminHandler, wsHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	boardHandler *api.BoardHandler,
	adminHandler *api.AdminHandler,
	wsHandler *api.WSHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		board := apiGroup.Group("/board")
		board.Use(authMiddleware.RequireAuth())
		{
			addRoutes(board, []route{
				{Method: http.MethodGet, Path: "", Handler: boardHandler.GetBoard},
				{Method: http.MethodPost, Path: "/reserve", Handler: boardHandler.Reserve},
				{Method: http.MethodDelete, Path: "/reserve", Handler: boardHandler.Unreserve},
				{Method: http.MethodGet, Path: "/ws", Handler: wsHandler.Subscribe},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodDelete, Path: "/slots/:id/reservation", Handler: adminHandler.ClearSlot},
				{Method: http.MethodPut, Path: "/slots/:id/active", Handler: adminHandler.SetActive},
				{Method: http.MethodPut, Path: "/slots/:id/label", Handler: adminHandler.OverrideLabel},
				{Method: http.MethodPost, Path: "/hours", Handler: adminHandler.CreateHour},
				{Method: http.MethodPut, Path: "/hours", Handler: adminHandler.RenameHour},
				{Method: http.MethodDelete, Path: "/hours/:label", Handler: adminHandler.DeleteHour},
				{Method: http.MethodPost, Path: "/hours/:label/normalize", Handler: adminHandler.NormalizeHour},
				{Method: http.MethodPost, Path: "/cleanup", Handler: adminHandler.BulkCleanup},
				{Method: http.MethodPost, Path: "/clear-all", Handler: adminHandler.ClearAll},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
