package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/grid-maze-game/game/maze"
	"github.com/wricardo/grid-maze-game/game/service"
	"github.com/wricardo/grid-maze-game/game/status"
)

func startHub(t *testing.T, opts ...Option) *Hub {
	t.Helper()
	hub := NewHub(opts...)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.done
	})
	return hub
}

func dial(t *testing.T, hub *Hub, sessionID string) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"))
	}))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until one with op arrives
func readUntil(t *testing.T, conn *websocket.Conn, op Op) *Message {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		conn.SetReadDeadline(deadline)
		_, data, err := conn.ReadMessage()
		require.NoError(t, err, "waiting for %s", op)
		for _, line := range bytes.Split(data, []byte{'\n'}) {
			var msg Message
			require.NoError(t, json.Unmarshal(line, &msg))
			if msg.Op == op {
				return &msg
			}
		}
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub.sessions)
	assert.NotNil(t, hub.renderers)
	assert.NotNil(t, hub.broadcast)
	assert.NotNil(t, hub.register)
	assert.NotNil(t, hub.unregister)
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	client := &Client{hub: hub, sessionID: "test-session", send: make(chan []byte, sendBuffer)}

	hub.registerClient(client)

	require.Contains(t, hub.sessions, "test-session")
	assert.True(t, hub.sessions["test-session"][client])
	assert.Len(t, hub.sessions["test-session"], 1)
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	client := &Client{hub: hub, sessionID: "test-session", send: make(chan []byte, sendBuffer)}

	hub.registerClient(client)
	hub.unregisterClient(client)

	assert.NotContains(t, hub.sessions, "test-session")
	_, open := <-client.send
	assert.False(t, open, "send channel should be closed")
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"
	client1 := &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, sendBuffer)}
	client2 := &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, sendBuffer)}

	hub.registerClient(client1)
	hub.registerClient(client2)
	assert.Len(t, hub.sessions[sessionID], 2)

	hub.unregisterClient(client1)
	assert.Len(t, hub.sessions[sessionID], 1)
	assert.True(t, hub.sessions[sessionID][client2])
}

func TestHubBroadcastOnlyToSession(t *testing.T) {
	hub := NewHub()
	inside := &Client{hub: hub, sessionID: "a", send: make(chan []byte, sendBuffer)}
	outside := &Client{hub: hub, sessionID: "b", send: make(chan []byte, sendBuffer)}
	hub.registerClient(inside)
	hub.registerClient(outside)

	hub.broadcastMessage(&Message{SessionID: "a", Op: OpStatus, Text: "hello"})

	require.Len(t, inside.send, 1)
	assert.Empty(t, outside.send)

	var msg Message
	require.NoError(t, json.Unmarshal(<-inside.send, &msg))
	assert.Equal(t, OpStatus, msg.Op)
	assert.Equal(t, "hello", msg.Text)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := &Client{hub: hub, sessionID: "slow", send: make(chan []byte, 1)}
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{SessionID: "slow", Op: OpStatus, Text: "1"})
	hub.broadcastMessage(&Message{SessionID: "slow", Op: OpStatus, Text: "2"})

	assert.NotContains(t, hub.sessions, "slow")
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := startHub(t)
	hub.Presenter("ws-test").SetText("ping")
	conn := dial(t, hub, "ws-test")

	// New clients receive the current text on registration
	msg := readUntil(t, conn, OpStatus)
	assert.Equal(t, "ping", msg.Text)
}

func TestRendererStreamsGame(t *testing.T) {
	hub := startHub(t)
	game := service.NewGame(maze.Default())
	game.Attach(hub.Presenter("game"))

	conn := dial(t, hub, "game")

	grid := readUntil(t, conn, OpGrid)
	require.NotNil(t, grid.Board)
	assert.Len(t, grid.Board.Cells, maze.Cols*maze.Rows)
	require.NotNil(t, grid.Board.Token)
	assert.Equal(t, 0, grid.Board.Token.X)

	text := readUntil(t, conn, OpStatus)
	assert.Equal(t, status.Welcome, text.Text)

	game.AttemptMove(0, 1)

	token := readUntil(t, conn, OpToken)
	require.NotNil(t, token.Token)
	assert.Equal(t, 0, token.Token.X)
	assert.Equal(t, 1, token.Token.Y)

	moved := readUntil(t, conn, OpStatus)
	assert.Equal(t, "Current Position: (0, 1)", moved.Text)
}

func TestClientMovesThroughHandler(t *testing.T) {
	var mu sync.Mutex
	var got []service.MoveRequest
	received := make(chan struct{}, 1)

	hub := startHub(t, WithMoveHandler(func(ctx context.Context, sessionID string, req service.MoveRequest) error {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "mv", sessionID)
		got = append(got, req)
		received <- struct{}{}
		return nil
	}))
	conn := dial(t, hub, "mv")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"noop"}`)))
	require.NoError(t, conn.WriteJSON(map[string]string{"action": "move", "key": "ArrowLeft"}))

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("move handler not called")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "ArrowLeft", got[0].Key)
}

func TestCloseSessionDisconnectsClients(t *testing.T) {
	hub := startHub(t)
	hub.Presenter("bye").SetText("ready")
	conn := dial(t, hub, "bye")
	readUntil(t, conn, OpStatus)

	hub.CloseSession("bye")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
