package realtime

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ptbooth/ptbooth-api/internal/pkg/jwt"
	"github.com/ptbooth/ptbooth-api/internal/pkg/response"
)

// Handler upgrades dashboard connections onto the hub
type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
}

// NewHandler creates websocket handler. checkOrigin receives the request
// origin; the API's CORS allowlist is reused for it.
func NewHandler(hub *Hub, jwtService *jwt.Service, checkOrigin func(r *http.Request) bool) *Handler {
	return &Handler{
		hub: hub,
		jwt: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Serve handles GET /ws?token=<jwt>. Browsers cannot set an Authorization
// header on a websocket handshake, so the token rides the query string.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "Missing token")
		return
	}
	if _, err := h.jwt.ValidateAccessToken(token); err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{hub: h.hub, conn: conn, send: make(chan []byte, 16)}
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
