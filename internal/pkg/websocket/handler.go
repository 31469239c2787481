package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser cannot set an Authorization header on a WebSocket
	// handshake from another origin, so the origin check mirrors the
	// permissive CORS policy and auth happens via the JWT middleware.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades authenticated requests into notification streams
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// HandleStream upgrades the HTTP connection and registers the caller for
// realtime notification events. Runs behind the JWT middleware, so the
// identity is already on the context.
func (h *Handler) HandleStream(c *gin.Context) {
	identity := middleware.Identity(c)
	if identity == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("identity", identity).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, 64),
		identity: identity,
		logger:   h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("identity", identity).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("Notification stream established")
}
