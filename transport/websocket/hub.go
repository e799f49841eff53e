package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wricardo/grid-maze-game/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Buffered outbound messages per client.
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// MoveHandler applies a move received from a client of sessionID
type MoveHandler func(ctx context.Context, sessionID string, req service.MoveRequest) error

// Option configures a Hub
type Option func(*Hub)

// WithLogger sets the hub logger
func WithLogger(log *zap.SugaredLogger) Option {
	return func(h *Hub) {
		h.log = log
	}
}

// WithMoveHandler lets clients send moves over the socket
func WithMoveHandler(fn MoveHandler) Option {
	return func(h *Hub) {
		h.onMove = fn
	}
}

// Client represents a WebSocket client
type Client struct {
	id        string
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients by session ID
	sessions map[string]map[*Client]bool

	// Renderers by session ID, owned by the Run loop
	renderers map[string]*Renderer

	// Outbound messages from renderers. Unbuffered so that a renderer call
	// returns only once the Run loop has taken its message.
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Renderer registrations and session teardown
	attach chan *Renderer
	closing chan string

	done   chan struct{}
	onMove MoveHandler
	log    *zap.SugaredLogger
}

// NewHub creates a new WebSocket hub
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		sessions:   make(map[string]map[*Client]bool),
		renderers:  make(map[string]*Renderer),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		attach:     make(chan *Renderer),
		closing:    make(chan string),
		done:       make(chan struct{}),
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run starts the hub's event loop and returns when ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case r := <-h.attach:
			h.renderers[r.sessionID] = r

		case id := <-h.closing:
			h.closeSession(id)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-ctx.Done():
			for id := range h.sessions {
				h.closeSession(id)
			}
			return
		}
	}
}

// Presenter returns a renderer that mirrors the game of sessionID to every
// client connected to that session. It satisfies service.Presenter.
func (h *Hub) Presenter(sessionID string) service.Presenter {
	r := newRenderer(h, sessionID)
	select {
	case h.attach <- r:
	case <-h.done:
	}
	return r
}

// CloseSession disconnects every client of the session and forgets its
// renderer
func (h *Hub) CloseSession(sessionID string) {
	select {
	case h.closing <- sessionID:
	case <-h.done:
	}
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "session", sessionID, "error", err)
		return
	}

	client := &Client{
		id:        uuid.NewString(),
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// publish queues a message for the Run loop
func (h *Hub) publish(message *Message) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// registerClient adds a client to a session and brings it up to date
func (h *Hub) registerClient(client *Client) {
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	if r, ok := h.renderers[client.sessionID]; ok {
		for _, message := range r.snapshot() {
			h.deliver(client, message)
		}
	}

	h.log.Infow("client registered",
		"session", client.sessionID,
		"client", client.id,
		"clients", len(h.sessions[client.sessionID]))
}

// unregisterClient removes a client from a session
func (h *Hub) unregisterClient(client *Client) {
	clients, ok := h.sessions[client.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)

	// Clean up empty sessions
	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}

	h.log.Infow("client unregistered",
		"session", client.sessionID,
		"client", client.id,
		"clients", len(clients))
}

// closeSession drops the renderer and disconnects all clients of a session
func (h *Hub) closeSession(sessionID string) {
	delete(h.renderers, sessionID)
	for client := range h.sessions[sessionID] {
		h.unregisterClient(client)
	}
}

// broadcastMessage sends a message to all clients in a session
func (h *Hub) broadcastMessage(message *Message) {
	for client := range h.sessions[message.SessionID] {
		h.deliver(client, message)
	}
}

func (h *Hub) deliver(client *Client, message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.log.Errorw("failed to marshal websocket message", "op", message.Op, "error", err)
		return
	}
	select {
	case client.send <- data:
	default:
		// Client's send channel is full, drop it
		h.log.Warnw("client too slow, disconnecting", "session", client.sessionID, "client", client.id)
		h.unregisterClient(client)
	}
}

// readPump reads client input and forwards moves to the move handler
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warnw("websocket read error", "client", c.id, "error", err)
			}
			break
		}
		c.handle(data)
	}
}

func (c *Client) handle(data []byte) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		c.hub.log.Debugw("ignoring malformed client message", "client", c.id, "error", err)
		return
	}
	if in.Action != ActionMove || c.hub.onMove == nil {
		return
	}
	if err := c.hub.onMove(context.Background(), c.sessionID, in.MoveRequest); err != nil {
		c.hub.log.Infow("client move rejected", "session", c.sessionID, "client", c.id, "error", err)
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
