package api

import (
	"log/slog"
	"net/http"

	"slotboard/internal/notifier"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades authenticated clients onto the change-signal hub.
// Clients receive board change events and are expected to re-fetch the
// board on each one; no board state travels over the socket.
type WSHandler struct {
	hub      *notifier.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *notifier.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the CORS layer on the upgrade request.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) Subscribe(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err.Error())
		return
	}

	client := notifier.NewClient(h.hub, conn)
	client.Serve()
}
