package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

// Message is the envelope pushed to websocket subscribers.
type Message struct {
	Type    string      `json:"type"`
	RoomID  string      `json:"roomId,omitempty"`
	Payload interface{} `json:"payload"`
}

// RoomForTournament names the room that carries roster changes for one tournament.
func RoomForTournament(tournamentID string) string {
	return "tournament_" + tournamentID + "_roster"
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	room   string
	closed bool
	mu     sync.Mutex
}

// NewClient binds conn to room on hub. Call Hub.Register and then start the pumps.
func NewClient(hub *Hub, conn *websocket.Conn, room string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		room: room,
	}
}

// Hub fans out messages to websocket clients grouped by room.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	done       chan struct{}
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves register/unregister requests until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			size := len(h.rooms[client.room])
			h.mu.Unlock()
			h.logger.Debug("websocket client registered", slog.String("room", client.room), slog.Int("clients", size))
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Register subscribes client. It returns false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.rooms[client.room]
	if !ok || !clients[client] {
		return
	}
	client.closeSend()
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.rooms, client.room)
	}
	h.logger.Debug("websocket client unregistered", slog.String("room", client.room), slog.Int("clients", len(clients)))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, clients := range h.rooms {
		for client := range clients {
			client.closeSend()
		}
		delete(h.rooms, room)
	}
}

// ClientCount reports how many clients are subscribed to room.
func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// BroadcastToRoom sends message to every client in room. Slow clients are skipped.
func (h *Hub) BroadcastToRoom(room string, message interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[room]
	if !ok {
		return
	}

	payload, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal websocket message", slog.String("room", room), slog.Any("error", err))
		return
	}

	for client := range clients {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.send <- payload:
			default:
				h.logger.Warn("websocket client send buffer full, dropping message", slog.String("room", room))
			}
		}
		client.mu.Unlock()
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.send)
		c.closed = true
	}
}

// ReadPump drains incoming frames so pongs and close frames are processed.
// Subscribers are not expected to send anything.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", slog.String("room", c.room), slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Warn("websocket write failed", slog.String("room", c.room), slog.Any("error", err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
