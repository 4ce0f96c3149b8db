package realtime

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"craftorders/internal/core/ports"
	"craftorders/internal/pkg/metrics"
)

// WSHandler upgrades authenticated HTTP requests to websocket connections and
// hands them to the coordinator.
type WSHandler struct {
	coordinator *Coordinator
	verifier    ports.TokenVerifier
	upgrader    websocket.Upgrader
	metrics     *metrics.RealtimeMetrics
	logger      *slog.Logger
}

func NewWSHandler(
	coordinator *Coordinator,
	verifier ports.TokenVerifier,
	realtimeMetrics *metrics.RealtimeMetrics,
	logger *slog.Logger,
) *WSHandler {
	return &WSHandler{
		coordinator: coordinator,
		verifier:    verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		metrics: realtimeMetrics,
		logger:  logger.With("component", "ws_handler"),
	}
}

// Handle serves GET /ws. The token travels as a query parameter because
// browser websocket clients cannot set headers on the handshake.
func (h *WSHandler) Handle(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	identity, err := h.verifier.Verify(token)
	if err != nil {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	conn, err := h.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// Upgrade already wrote the failure response.
		return nil
	}

	h.logger.InfoContext(ctx.Request().Context(), "Client connected",
		"user_id", identity.ID, "role", identity.Role.String())
	h.metrics.Connections.Inc()
	defer h.metrics.Connections.Dec()

	client := NewClient(identity, conn)
	h.coordinator.Serve(ctx.Request().Context(), client)

	h.logger.InfoContext(ctx.Request().Context(), "Client disconnected", "user_id", identity.ID)
	return nil
}
