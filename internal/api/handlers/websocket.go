package handlers

import (
	"log"
	"net/http"

	"github.com/dom/banner-admin/internal/api/render"
	"github.com/dom/banner-admin/internal/security"
	"github.com/dom/banner-admin/internal/websocket"
	ws "github.com/gorilla/websocket"
)

// TokenVerifier validates a bare session token.
type TokenVerifier interface {
	Verify(token string) (*security.Claims, error)
}

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // callers authenticate with the token query parameter
	},
}

type WebSocketHandler struct {
	hub      *websocket.Hub
	verifier TokenVerifier
}

func NewWebSocketHandler(hub *websocket.Hub, verifier TokenVerifier) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		verifier: verifier,
	}
}

// Handle upgrades the connection to the live banner feed. Browsers cannot set
// headers on a websocket handshake, so the token comes from the query string.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		render.Error(w, http.StatusUnauthorized, "No token provided")
		return
	}

	claims, err := h.verifier.Verify(token)
	if err != nil {
		render.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [websocket.Handle] upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, claims.UserID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
