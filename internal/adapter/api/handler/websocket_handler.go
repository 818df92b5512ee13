package handler

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/infrastructure/websocket"
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/logger"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler upgrades authenticated connections and hands them to the
// hub. Browsers cannot set headers on the WebSocket handshake, so the token
// rides in the query string.
type WebSocketHandler struct {
	hub         *websocket.Hub
	authUseCase *usecase.AuthUseCase
}

func NewWebSocketHandler(hub *websocket.Hub, authUseCase *usecase.AuthUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authUseCase: authUseCase,
	}
}

func (h *WebSocketHandler) Connect(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token is required")
	}

	uid, err := h.authUseCase.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed: %v", err)
		return err
	}

	client := &websocket.Client{
		UserID: uid,
		Conn:   conn,
		Send:   make(chan []byte, 64),
	}

	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump(h.hub)

	return nil
}
