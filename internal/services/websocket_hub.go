package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/IsraelAraujo70/shopping-list/internal/observability"
)

// ListEvent is the wire shape of a live list update
type ListEvent struct {
	Type    string      `json:"type"`
	ListID  string      `json:"listId"`
	Payload interface{} `json:"payload"`
}

// WSClient represents a connected WebSocket client
type WSClient struct {
	ID         string
	UserID     string
	Topics     map[string]bool
	Conn       *websocket.Conn
	Send       chan []byte
	hub        *ListEventHub
	mu         sync.Mutex
	closedOnce sync.Once
}

// ListEventHub fans list mutation events out to subscribed WebSocket
// clients. Subscriptions are keyed by list ID; authorization of a
// subscribe request happens in the handler before Subscribe is called.
type ListEventHub struct {
	clients    map[*WSClient]bool
	topics     map[string]map[*WSClient]bool // listID -> clients
	register   chan *WSClient
	unregister chan *WSClient
	broadcast  chan *broadcastMsg
	mu         sync.RWMutex
}

type broadcastMsg struct {
	topic   string
	message []byte
}

// NewListEventHub creates a new hub
func NewListEventHub() *ListEventHub {
	return &ListEventHub{
		clients:    make(map[*WSClient]bool),
		topics:     make(map[string]map[*WSClient]bool),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		broadcast:  make(chan *broadcastMsg, 256),
	}
}

// Run starts the hub's main loop
func (h *ListEventHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			observability.WithField("client_id", client.ID).Debug("WebSocket client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				for topic := range client.Topics {
					if topicClients, ok := h.topics[topic]; ok {
						delete(topicClients, client)
						if len(topicClients) == 0 {
							delete(h.topics, topic)
						}
					}
				}
				close(client.Send)
			}
			h.mu.Unlock()
			observability.WithField("client_id", client.ID).Debug("WebSocket client disconnected")

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.topics[msg.topic] {
				select {
				case client.Send <- msg.message:
				default:
					// Client buffer full, close connection
					go func(c *WSClient) {
						h.unregister <- c
					}(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub
func (h *ListEventHub) Register(client *WSClient) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *ListEventHub) Unregister(client *WSClient) {
	h.unregister <- client
}

// Subscribe adds a client to a list's topic
func (h *ListEventHub) Subscribe(client *WSClient, listID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.Topics[listID] = true
	if h.topics[listID] == nil {
		h.topics[listID] = make(map[*WSClient]bool)
	}
	h.topics[listID][client] = true
}

// Unsubscribe removes a client from a list's topic
func (h *ListEventHub) Unsubscribe(client *WSClient, listID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(client.Topics, listID)
	if topicClients, ok := h.topics[listID]; ok {
		delete(topicClients, client)
		if len(topicClients) == 0 {
			delete(h.topics, listID)
		}
	}
}

// PublishListEvent sends an event to every client subscribed to the list
func (h *ListEventHub) PublishListEvent(listID, eventType string, payload interface{}) {
	data, err := json.Marshal(ListEvent{
		Type:    eventType,
		ListID:  listID,
		Payload: payload,
	})
	if err != nil {
		observability.Errorf("failed to marshal list event: %v", err)
		return
	}

	h.broadcast <- &broadcastMsg{topic: listID, message: data}
}

// SubscriberCount returns the number of subscribers for a list
func (h *ListEventHub) SubscriberCount(listID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[listID])
}

// NewClient creates a new WebSocket client connected to this hub
func (h *ListEventHub) NewClient(id, userID string, conn *websocket.Conn) *WSClient {
	return &WSClient{
		ID:     id,
		UserID: userID,
		Topics: make(map[string]bool),
		Conn:   conn,
		Send:   make(chan []byte, 256),
		hub:    h,
	}
}

// Close closes the client connection
func (c *WSClient) Close() {
	c.closedOnce.Do(func() {
		c.hub.Unregister(c)
		c.Conn.Close()
	})
}

// WritePump pumps messages from the hub to the websocket connection
func (c *WSClient) WritePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.mu.Lock()
			err := c.Conn.WriteMessage(websocket.TextMessage, message)
			c.mu.Unlock()

			if err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump pumps messages from the websocket connection to the hub
func (c *WSClient) ReadPump(onMessage func(client *WSClient, messageType int, data []byte)) {
	defer c.Close()

	c.Conn.SetReadLimit(64 * 1024)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				observability.Errorf("WebSocket read error: %v", err)
			}
			break
		}

		if onMessage != nil {
			onMessage(c, messageType, message)
		}
	}
}
