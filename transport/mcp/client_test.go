package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/grid-maze-game/api"
	"github.com/wricardo/grid-maze-game/game/engine"
	"github.com/wricardo/grid-maze-game/game/maze"
	"github.com/wricardo/grid-maze-game/game/render"
	"github.com/wricardo/grid-maze-game/game/service"
	"github.com/wricardo/grid-maze-game/game/session"
	"github.com/wricardo/grid-maze-game/game/status"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	svc := service.NewGameService(session.NewManager())
	server := httptest.NewServer(api.NewServer(svc, nil))
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) (string, bool) {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, result.IsError
}

func createdID(t *testing.T, text string) string {
	t.Helper()
	first := strings.SplitN(text, "\n", 2)[0]
	require.True(t, strings.HasPrefix(first, "Session created: "), first)
	return strings.TrimPrefix(first, "Session created: ")
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.GetMCPServer())
}

func TestClient_apiCallError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session xx: session not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.apiCall(context.Background(), "GET", "/api/sessions/xx", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestTools_PlaySession(t *testing.T) {
	client := newTestClient(t)

	text, isErr := call(t, client.handleCreateSession, "create_session", map[string]interface{}{})
	require.False(t, isErr, text)
	id := createdID(t, text)
	assert.Contains(t, text, status.Welcome)
	assert.Contains(t, text, "@########")
	assert.Contains(t, text, "Open directions: down")

	text, isErr = call(t, client.handleMove, "move", map[string]interface{}{
		"session_id": id, "direction": "right", "intent": "probe the wall",
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "blocked")
	assert.Contains(t, text, status.Blocked)

	text, isErr = call(t, client.handleMove, "move", map[string]interface{}{
		"session_id": id, "direction": "down",
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Moved down to (0, 1)")

	text, isErr = call(t, client.handleMove, "move", map[string]interface{}{
		"session_id": id, "direction": "sideways",
	})
	assert.True(t, isErr)
	assert.Contains(t, text, "invalid direction")

	text, isErr = call(t, client.handleMoveHistory, "move_history", map[string]interface{}{
		"session_id": id, "limit": float64(1),
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "2 total")
	assert.Contains(t, text, "#2 (0,0) by (0,1) -> moved")

	text, isErr = call(t, client.handleListSessions, "list_sessions", map[string]interface{}{})
	require.False(t, isErr, text)
	assert.Contains(t, text, id)

	text, isErr = call(t, client.handleGetSession, "get_session", map[string]interface{}{"session_id": id})
	require.False(t, isErr, text)
	assert.Contains(t, text, "at (0,1)")
}

func TestTools_DescribeCell(t *testing.T) {
	client := newTestClient(t)
	text, _ := call(t, client.handleCreateSession, "create_session", map[string]interface{}{})
	id := createdID(t, text)

	tests := []struct {
		name    string
		x, y    float64
		want    []string
		wantErr bool
	}{
		{"start", 0, 0, []string{"Type: Path", "Sides touching a wall: right", "the token is here"}, false},
		{"wall", 1, 0, []string{"Type: Wall", "Passable: false"}, false},
		{"goal", 9, 9, []string{"this is the goal", "Sides touching a wall: top"}, false},
		{"outside", 10, 0, []string{"out of bounds"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, client.handleDescribeCell, "describe_cell", map[string]interface{}{
				"session_id": id, "x": tt.x, "y": tt.y,
			})
			assert.Equal(t, tt.wantErr, isErr, text)
			for _, w := range tt.want {
				assert.Contains(t, text, w)
			}
		})
	}
}

func TestTools_UnknownSession(t *testing.T) {
	client := newTestClient(t)

	text, isErr := call(t, client.handleGameState, "game_state", map[string]interface{}{"session_id": "nope"})
	assert.True(t, isErr)
	assert.Contains(t, text, "session not found")
}

func TestGameInstructions(t *testing.T) {
	client := NewClient("http://unused")
	text, isErr := call(t, client.handleGameInstructions, "game_instructions", nil)
	assert.False(t, isErr)
	assert.Contains(t, text, "(9,9)")
	assert.Contains(t, text, "out_of_bounds")
}

func TestFormatMoveResult(t *testing.T) {
	board := render.NewBoard()
	board.RenderGrid(maze.Default())
	board.PlaceToken(9, 9)
	board.MarkVictory()

	result := &service.MoveResult{
		Success: true,
		Outcome: engine.Outcome{Kind: engine.Moved, Position: maze.Position{X: 9, Y: 9}, Won: true},
		GameState: &service.GameState{
			Position: maze.Position{X: 9, Y: 9},
			Status:   engine.Won,
			Won:      true,
			Message:  status.Victory,
			Board:    board,
		},
	}

	text := formatMoveResult("right", result)
	assert.Contains(t, text, "reached the goal at (9, 9)")
	assert.Contains(t, text, "Status: won")
	assert.Contains(t, text, "#........*")
	assert.NotContains(t, text, "Open directions")
}
