package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/grid-maze-game/game/maze"
	"github.com/wricardo/grid-maze-game/game/render"
	"github.com/wricardo/grid-maze-game/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Grid Maze",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Maze - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Move the token (@) from the top-left corner (0,0) to the goal (G) in the
bottom-right corner (9,9). Walls (#) block movement; the maze border is solid.

AVAILABLE TOOLS:
- create_session: Start a new game
- list_sessions: List active games
- get_session: Session details
- game_state: Board, position and status text
- move: One step (up/down/left/right) - requires intent explanation
- move_history: Past move attempts
- describe_cell: Details of one cell, including which sides touch a wall
- game_instructions: Rules and strategy

NOTE: The 'intent' parameter on move serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session on the maze",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, position and status text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the token one cell in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the move attempts of a session, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Entries per page (default 20, max 100)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe one cell: wall or path, goal, token, and the sides that touch a wall",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema(),
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Column, 0 is the left edge",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Row, 0 is the top edge",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of the maze and tips for solving it",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall makes an HTTP request to the REST API
func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func intArg(args map[string]interface{}, name string) (int, bool) {
	switch v := args[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session created: %s\n\n%s", session.ID, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(resp.Sessions) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active sessions (%d):\n", len(resp.Sessions))
	for _, s := range resp.Sessions {
		b.WriteString("- ")
		b.WriteString(formatSessionInfo(s))
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state service.GameState
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)

	// intent is for the caller's benefit only
	if direction == "" {
		return mcp.NewToolResultError("direction is required (up, down, left or right)"), nil
	}

	var result service.MoveResult
	err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/move", sessionID),
		service.MoveRequest{Direction: direction}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(direction, &result)), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	path := fmt.Sprintf("/api/sessions/%s/history", sessionID)
	var params []string
	if page, ok := intArg(args, "page"); ok {
		params = append(params, fmt.Sprintf("page=%d", page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params = append(params, fmt.Sprintf("limit=%d", limit))
	}
	if len(params) > 0 {
		path += "?" + strings.Join(params, "&")
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required integers"), nil
	}

	var state service.GameState
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if state.Board == nil {
		return mcp.NewToolResultError("state has no board"), nil
	}

	cell, ok := state.Board.Cell(x, y)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Coordinates (%d, %d) are out of bounds. The maze is %dx%d (x 0-%d, y 0-%d)",
			x, y, state.Board.Cols, state.Board.Rows, state.Board.Cols-1, state.Board.Rows-1)), nil
	}

	return mcp.NewToolResultText(describeCell(&state, cell)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Grid Maze - Instructions

OBJECTIVE:
Move the token from (0,0), the top-left corner, to the goal at (9,9), the
bottom-right corner. Reaching the goal wins; the game then ignores further moves.

COORDINATES:
x is the column (0 = left), y is the row (0 = top).
up = (0,-1), down = (0,1), left = (-1,0), right = (1,0).

BOARD LEGEND:
  @ - your token (* after victory)
  . - path, passable
  # - wall, impassable
  G - goal

MOVE OUTCOMES:
- moved: the token advanced; the status shows "Current Position: (x, y)"
- blocked: the target is a wall; the token stays and the status says so
- out_of_bounds: the target is outside the maze; nothing changes
- ignored: the game is already won

TIPS:
- Read the board row by row before planning; every row is exactly 10 cells.
- describe_cell lists the sides of a path cell that touch a wall, which tells
  you at a glance which directions are closed.
- Dead ends exist. When blocked, back up to the last junction.`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	line := fmt.Sprintf("%s (created %s, last access %s)",
		session.ID,
		session.CreatedAt.Format(time.RFC3339),
		session.LastAccessedAt.Format(time.RFC3339))
	if st := session.GameState; st != nil {
		line += fmt.Sprintf(" at (%d,%d), %s, %d moves", st.Position.X, st.Position.Y, st.Status, st.Moves)
	}
	return line
}

func formatGameState(state *service.GameState) string {
	if state == nil {
		return "No game state"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Status: %s\n", state.Status)
	fmt.Fprintf(&b, "Message: %s\n", state.Message)
	fmt.Fprintf(&b, "Position: (%d, %d)  Goal: (%d, %d)\n",
		state.Position.X, state.Position.Y, state.Goal.X, state.Goal.Y)
	fmt.Fprintf(&b, "Moves: %d  Attempts: %d\n", state.Moves, state.Attempts)
	if state.Board != nil {
		b.WriteString("\nBoard (@ token, # wall, . path, G goal):\n")
		b.WriteString(state.Board.String())
	}
	if !state.Won {
		if open := openDirections(state); len(open) > 0 {
			fmt.Fprintf(&b, "\nOpen directions: %s\n", strings.Join(open, ", "))
		}
	}
	return b.String()
}

func formatMoveResult(direction string, result *service.MoveResult) string {
	out := result.Outcome
	var b strings.Builder
	switch {
	case out.Won:
		fmt.Fprintf(&b, "🏁 %s reached the goal at (%d, %d)!\n", direction, out.Position.X, out.Position.Y)
	case result.Success:
		fmt.Fprintf(&b, "✅ Moved %s to (%d, %d)\n", direction, out.Position.X, out.Position.Y)
	default:
		fmt.Fprintf(&b, "❌ %s: %s, target (%d, %d), still at (%d, %d)\n",
			direction, out.Kind, out.Candidate.X, out.Candidate.Y, out.Position.X, out.Position.Y)
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	if history.TotalMoves == 0 {
		return "No moves yet"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Move history (page %d/%d, %d total):\n", history.Page, history.TotalPages, history.TotalMoves)
	for _, m := range history.Moves {
		fmt.Fprintf(&b, "#%d (%d,%d) by (%d,%d) -> %s, now at (%d,%d)\n",
			m.MoveNumber, m.FromPosition.X, m.FromPosition.Y, m.DX, m.DY, m.Result, m.ToPosition.X, m.ToPosition.Y)
	}
	return b.String()
}

func describeCell(state *service.GameState, cell render.CellView) string {
	kind := "Path"
	passable := true
	if cell.Kind == maze.Wall {
		kind = "Wall"
		passable = false
	}

	var notes []string
	if cell.Goal {
		notes = append(notes, "this is the goal")
	}
	if state.Position.X == cell.X && state.Position.Y == cell.Y {
		notes = append(notes, "the token is here")
	}
	walls := "none"
	if len(cell.Edges) > 0 {
		walls = strings.Join(cell.Edges, ", ")
	}

	result := fmt.Sprintf(`Cell at position (%d, %d):
━━━━━━━━━━━━━━━━━━━━━━━━
Type: %s
Passable: %v
Sides touching a wall: %s`, cell.X, cell.Y, kind, passable, walls)
	if len(notes) > 0 {
		result += "\nNotes: " + strings.Join(notes, "; ")
	}
	return result
}

// openDirections lists the directions from the token that lead onto a path
func openDirections(state *service.GameState) []string {
	if state.Board == nil {
		return nil
	}
	steps := []struct {
		name   string
		dx, dy int
	}{
		{"up", 0, -1}, {"down", 0, 1}, {"left", -1, 0}, {"right", 1, 0},
	}
	var open []string
	for _, s := range steps {
		cell, ok := state.Board.Cell(state.Position.X+s.dx, state.Position.Y+s.dy)
		if ok && cell.Kind == maze.Path {
			open = append(open, s.name)
		}
	}
	return open
}
