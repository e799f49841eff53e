package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/wricardo/grid-maze-game/game/service"
	ws "github.com/wricardo/grid-maze-game/transport/websocket"
)

// Client talks to a maze server: REST for session creation, the websocket
// for the render stream and moves.
type Client struct {
	baseURL string

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient creates a client for the server at baseURL
func NewClient(baseURL string) *Client {
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// CreateSession starts a new game and returns its ID
func (c *Client) CreateSession() (string, error) {
	resp, err := http.Post(c.baseURL+"/api/sessions", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create session: HTTP %d", resp.StatusCode)
	}

	var info service.SessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to parse session response: %w", err)
	}
	return info.ID, nil
}

// Connect opens the websocket for sessionID and calls apply for every
// message received until the connection closes.
func (c *Client) Connect(sessionID string, apply func(ws.Message)) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}
	u.Scheme = strings.Replace(u.Scheme, "http", "ws", 1)
	u.Path = "/ws"
	u.RawQuery = url.Values{"session": {sessionID}}.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.listen(conn, apply)
	return nil
}

func (c *Client) listen(conn *websocket.Conn, apply func(ws.Message)) {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error: %v", err)
			return
		}

		// a frame may batch several messages, one per line
		for _, line := range bytes.Split(frame, []byte{'\n'}) {
			if len(line) == 0 {
				continue
			}
			var msg ws.Message
			if err := json.Unmarshal(line, &msg); err != nil {
				log.Printf("WebSocket JSON parse error: %v", err)
				continue
			}
			apply(msg)
		}
	}
}

// Move sends one move request over the websocket
func (c *Client) Move(req service.MoveRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected")
	}
	return c.conn.WriteJSON(ws.Inbound{Action: ws.ActionMove, MoveRequest: req})
}

// Close closes the websocket
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
