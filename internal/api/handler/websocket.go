package handler

import (
	"fmt"
	"net/http"

	"github.com/syande/shoestore-service/internal/api"
	"github.com/syande/shoestore-service/internal/middleware"
	"github.com/syande/shoestore-service/internal/service"
	"github.com/syande/shoestore-service/internal/websockets"
)

// WebSocketHandler upgrades authenticated connections into hub clients.
type WebSocketHandler struct {
	hub *websockets.Hub
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(hub *websockets.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// Serve handles WebSocket upgrade requests.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	clientType := websockets.ClientType(r.URL.Query().Get("client_type"))
	switch clientType {
	case websockets.ClientTypePOS, websockets.ClientTypeAdmin, websockets.ClientTypeDisplay:
	default:
		api.RespondError(w, fmt.Errorf("%w: invalid client_type", service.ErrValidation))
		return
	}

	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.RespondError(w, service.ErrUnauthorized)
		return
	}

	sess.Lock()
	username := sess.Username
	sess.Unlock()

	conn, err := websockets.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the error to the response.
		return
	}

	websockets.ServeWs(h.hub, conn, username, clientType)
}
