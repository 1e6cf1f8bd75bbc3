package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sfares/newsroom-be/internal/apperrors"
	"github.com/sfares/newsroom-be/internal/auth"
	ws "github.com/sfares/newsroom-be/internal/websocket"
)

// WebSocketHandler upgrades HTTP connections to websocket connections for
// live notification delivery.
type WebSocketHandler struct {
	hub    *ws.Hub
	tokens *auth.TokenService
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, tokens *auth.TokenService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, tokens: tokens}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the websocket connection request. Browsers cannot set an
// Authorization header on the upgrade, so the access token travels in the
// query string; anonymous connections are accepted but receive no
// user-targeted pushes.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	var userID string
	if token := r.URL.Query().Get("token"); token != "" {
		claims, err := h.tokens.VerifyAccessToken(token)
		if err != nil {
			RespondError(w, r, apperrors.Unauthorized("invalid token"))
			return
		}
		userID = claims.Subject
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := &ws.Client{
		Hub:    h.hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		UserID: userID,
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
