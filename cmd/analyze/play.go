package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wricardo/grid-maze-game/game/input"
	"github.com/wricardo/grid-maze-game/game/service"
)

// Client drives one session through the REST API
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the server at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateSession starts a new game
func (c *Client) CreateSession(ctx context.Context) (*service.SessionInfo, error) {
	var info service.SessionInfo
	if err := c.post(ctx, "/api/sessions", nil, http.StatusCreated, &info); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &info, nil
}

// Move submits one direction to the session
func (c *Client) Move(ctx context.Context, sessionID string, dir input.Direction) (*service.MoveResult, error) {
	var result service.MoveResult
	req := service.MoveRequest{Direction: string(dir)}
	if err := c.post(ctx, "/api/sessions/"+sessionID+"/move", req, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("execute move: %w", err)
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, want int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// play creates a session and submits dirs in order. It fails if any move
// is not committed or the session does not end won.
func play(ctx context.Context, w io.Writer, client *Client, dirs []input.Direction) error {
	info, err := client.CreateSession(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Playing session %s\n", info.ID)

	var last *service.MoveResult
	for i, dir := range dirs {
		last, err = client.Move(ctx, info.ID, dir)
		if err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, dir, err)
		}
		if !last.Success {
			return fmt.Errorf("move %d (%s) was %s: %s", i+1, dir, last.Outcome.Kind, last.Message)
		}
	}

	if last == nil || !last.GameState.Won {
		return fmt.Errorf("session %s did not reach the goal", info.ID)
	}
	fmt.Fprintf(w, "Won in %d moves: %s\n", last.GameState.Moves, last.Message)
	return nil
}
