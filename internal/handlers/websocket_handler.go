package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/IsraelAraujo70/shopping-list/internal/middleware"
	"github.com/IsraelAraujo70/shopping-list/internal/observability"
	"github.com/IsraelAraujo70/shopping-list/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now - can be restricted in production
		return true
	},
}

// wsMessage is the envelope clients send over the socket
type wsMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	wsTypeSubscribe   = "subscribe"
	wsTypeUnsubscribe = "unsubscribe"
	wsTypePing        = "ping"
	wsTypePong        = "pong"
	wsTypeError       = "error"
)

// WebSocketHandler handles live list update connections
type WebSocketHandler struct {
	hub         *services.ListEventHub
	listService *services.ListService
	tokenSecret string
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *services.ListEventHub, listService *services.ListService, tokenSecret string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		listService: listService,
		tokenSecret: tokenSecret,
	}
}

// HandleConnection authenticates via the token query parameter, upgrades
// to WebSocket and manages the connection. Subscriptions to a list are
// only accepted when the user can read that list.
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token query parameter required", http.StatusUnauthorized)
		return
	}

	userID, err := middleware.ParseSubject(token, h.tokenSecret)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		observability.Errorf("WebSocket upgrade failed: %v", err)
		return
	}

	client := h.hub.NewClient(uuid.New().String(), userID, conn)
	h.hub.Register(client)

	go client.WritePump()

	// Blocks until the connection closes
	client.ReadPump(h.handleMessage)
}

func (h *WebSocketHandler) handleMessage(client *services.WSClient, messageType int, data []byte) {
	if messageType != websocket.TextMessage {
		return
	}

	var msg wsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		observability.Errorf("Invalid WebSocket message: %v", err)
		return
	}

	switch msg.Type {
	case wsTypeSubscribe:
		listID := topicFromPayload(msg.Payload)
		if listID == "" {
			return
		}
		if _, err := h.listService.GetList(context.Background(), client.UserID, listID); err != nil {
			h.send(client, wsMessage{Type: wsTypeError, Payload: "list not accessible"})
			return
		}
		h.hub.Subscribe(client, listID)

	case wsTypeUnsubscribe:
		if listID := topicFromPayload(msg.Payload); listID != "" {
			h.hub.Unsubscribe(client, listID)
		}

	case wsTypePing:
		h.send(client, wsMessage{Type: wsTypePong})

	default:
		observability.WithField("type", msg.Type).Debug("Unknown WebSocket message type")
	}
}

func (h *WebSocketHandler) send(client *services.WSClient, msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}

// topicFromPayload accepts either a bare string or {"listId": "..."}
func topicFromPayload(payload interface{}) string {
	switch p := payload.(type) {
	case string:
		return p
	case map[string]interface{}:
		if id, ok := p["listId"].(string); ok {
			return id
		}
	}
	return ""
}
