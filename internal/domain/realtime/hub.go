package realtime

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// Event is the wire format pushed to dashboard clients
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// Hub fans events out to connected dashboard clients
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub creates an empty hub; call Run in a goroutine to start it
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run owns the client set; all membership changes go through the channels
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Debug().Int("clients", len(h.clients)).Msg("websocket client connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			log.Debug().Int("clients", len(h.clients)).Msg("websocket client disconnected")

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than stall the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Broadcast serializes an event and queues it for every connected client.
// Safe to call from any goroutine; never blocks the caller.
func (h *Hub) Broadcast(event string, payload interface{}) {
	msg, err := json.Marshal(Event{
		Type:      event,
		Data:      payload,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to marshal websocket event")
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		log.Warn().Str("event", event).Msg("websocket broadcast queue full, dropping event")
	}
}
