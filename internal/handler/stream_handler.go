package handler

import (
	"context"
	"encoding/json"
	"errors"

	"greenwatch-be/internal/dto"
	"greenwatch-be/internal/pkg/logger"
	"greenwatch-be/internal/pkg/serverutils"
	"greenwatch-be/internal/service"
	internalWS "greenwatch-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const streamModule = "StreamHandler"

// StreamHandler upgrades GET /sessions/:id/stream to a websocket that
// receives every turn of the session. Text frames of the form
// {"text": "..."} are submitted as user messages.
type StreamHandler struct {
	service service.IIntakeService
	hub     *internalWS.Hub
	secret  string
	logger  logger.ILogger
}

func NewStreamHandler(service service.IIntakeService, hub *internalWS.Hub, secret string, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		service: service,
		hub:     hub,
		secret:  secret,
		logger:  log,
	}
}

func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	userID := serverutils.AnonymousUser
	if h.secret != "" {
		// Browsers cannot set headers on the handshake, so the query
		// parameter is accepted too.
		tokenStr := serverutils.BearerToken(c)
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing token (Query 'token' or Header 'Authorization')")
		}
		id, err := serverutils.ParseToken(tokenStr, h.secret)
		if err != nil {
			h.logger.Warn(streamModule, "Invalid token in websocket handshake", map[string]interface{}{"error": err.Error()})
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}
		userID = id
	}

	sessionID := c.Params("id")
	if _, err := h.service.GetSession(c.UserContext(), userID, sessionID); err != nil {
		return err
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info(streamModule, "Starting stream", map[string]interface{}{"session_id": sessionID, "user_id": userID})
		internalWS.ServeWs(h.hub, conn, sessionID, userID, func(data []byte) {
			h.submit(userID, sessionID, data)
		})
		h.logger.Info(streamModule, "Stream ended", map[string]interface{}{"session_id": sessionID})
	})(c)
}

// submit handles one inbound frame. The resulting turn reaches the client
// through the hub like any other turn.
func (h *StreamHandler) submit(userID, sessionID string, data []byte) {
	var req dto.SendMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.logger.Warn(streamModule, "Ignoring malformed frame", map[string]interface{}{"error": err.Error(), "session_id": sessionID})
		return
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		h.logger.Warn(streamModule, "Ignoring invalid frame", map[string]interface{}{"error": err.Error(), "session_id": sessionID})
		return
	}

	if _, err := h.service.SendMessage(context.Background(), userID, sessionID, &req); err != nil {
		level := h.logger.Error
		if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrEmptyMessage) {
			level = h.logger.Warn
		}
		level(streamModule, "Stream message failed", map[string]interface{}{"error": err.Error(), "session_id": sessionID})
	}
}
