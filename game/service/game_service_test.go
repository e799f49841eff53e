package service_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/wricardo/grid-maze-game/game/engine"
	"github.com/wricardo/grid-maze-game/game/input"
	"github.com/wricardo/grid-maze-game/game/maze"
	"github.com/wricardo/grid-maze-game/game/service"
	"github.com/wricardo/grid-maze-game/game/status"
)

var errNotFound = errors.New("session not found")

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, game *service.Game) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	session := &service.Session{
		ID:             id,
		Game:           game,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errNotFound
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	session, exists := m.sessions[id]
	if !exists {
		return errNotFound
	}
	session.LastAccessedAt = time.Now()
	return nil
}

func intPtr(v int) *int { return &v }

// winningRoute reaches the goal of the default map in 24 moves
var winningRoute = []string{
	"down",
	"right", "right", "right", "right", "right", "right", "right", "right",
	"down", "down", "down", "down", "down", "down",
	"left", "left", "left",
	"down", "down",
	"right", "right", "right", "right",
}

func newService(t *testing.T) (service.GameService, *service.SessionInfo) {
	t.Helper()
	svc := service.NewGameService(NewMockSessionManager())
	info, err := svc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return svc, info
}

func TestGameService_CreateSession(t *testing.T) {
	svc, info := newService(t)

	if info.ID == "" {
		t.Fatal("CreateSession() returned empty ID")
	}
	state := info.GameState
	if state.Position != (maze.Position{}) {
		t.Errorf("start position = %v, want (0,0)", state.Position)
	}
	if state.Goal != (maze.Position{X: 9, Y: 9}) {
		t.Errorf("goal = %v, want (9,9)", state.Goal)
	}
	if state.Message != status.Welcome {
		t.Errorf("message = %q, want welcome text", state.Message)
	}
	if state.Board == nil || len(state.Board.Cells) != maze.Cols*maze.Rows {
		t.Fatal("state board not rendered")
	}
	if state.Board.Token == nil || state.Board.Token.X != 0 || state.Board.Token.Y != 0 {
		t.Errorf("token = %+v, want at start", state.Board.Token)
	}

	list, err := svc.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("ListSessions() len = %d, want 1", len(list))
	}
}

func TestGameService_Move(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		req      service.MoveRequest
		wantKind engine.OutcomeKind
		wantPos  maze.Position
		wantMsg  string
		wantErr  error
	}{
		{
			name:     "direction into wall",
			req:      service.MoveRequest{Direction: "right"},
			wantKind: engine.Blocked,
			wantMsg:  status.Blocked,
		},
		{
			name:     "direction down",
			req:      service.MoveRequest{Direction: "DOWN"},
			wantKind: engine.Moved,
			wantPos:  maze.Position{X: 0, Y: 1},
			wantMsg:  "Current Position: (0, 1)",
		},
		{
			name:     "key s",
			req:      service.MoveRequest{Key: "s"},
			wantKind: engine.Moved,
			wantPos:  maze.Position{X: 0, Y: 1},
			wantMsg:  "Current Position: (0, 1)",
		},
		{
			name:     "vector up leaves the maze",
			req:      service.MoveRequest{DX: intPtr(0), DY: intPtr(-1)},
			wantKind: engine.OutOfBounds,
			wantMsg:  status.Welcome,
		},
		{
			name:     "vector with only dy",
			req:      service.MoveRequest{DY: intPtr(1)},
			wantKind: engine.Moved,
			wantPos:  maze.Position{X: 0, Y: 1},
			wantMsg:  "Current Position: (0, 1)",
		},
		{
			name:    "unknown direction",
			req:     service.MoveRequest{Direction: "north"},
			wantErr: input.ErrInvalidDirection,
		},
		{
			name:    "vector too long",
			req:     service.MoveRequest{DX: intPtr(2)},
			wantErr: service.ErrInvalidMove,
		},
		{
			name:    "empty request",
			req:     service.MoveRequest{},
			wantErr: service.ErrInvalidMove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, info := newService(t)

			result, err := svc.Move(ctx, info.ID, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Move() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Move() unexpected error: %v", err)
			}
			if result.Outcome.Kind != tt.wantKind {
				t.Errorf("Outcome.Kind = %v, want %v", result.Outcome.Kind, tt.wantKind)
			}
			if result.GameState.Position != tt.wantPos {
				t.Errorf("Position = %v, want %v", result.GameState.Position, tt.wantPos)
			}
			if result.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", result.Message, tt.wantMsg)
			}
			if result.Success != (tt.wantKind == engine.Moved) {
				t.Errorf("Success = %v for %v", result.Success, tt.wantKind)
			}
			if len(result.Events) == 0 || result.Events[0].Type != tt.wantKind.String() {
				t.Errorf("Events = %+v, want first event %s", result.Events, tt.wantKind)
			}
		})
	}
}

func TestGameService_MoveUnrecognizedKey(t *testing.T) {
	svc, info := newService(t)

	result, err := svc.Move(context.Background(), info.ID, service.MoveRequest{Key: "q"})
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if result.Recognized == nil || *result.Recognized {
		t.Errorf("Recognized = %v, want false", result.Recognized)
	}
	// A zero vector still counts as one attempt on the current cell
	if result.Outcome.Kind != engine.Moved || result.GameState.Position != (maze.Position{}) {
		t.Errorf("Outcome = %+v, want moved in place", result.Outcome)
	}
	if result.GameState.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", result.GameState.Attempts)
	}
}

func TestGameService_WinningRoute(t *testing.T) {
	ctx := context.Background()
	svc, info := newService(t)

	var last *service.MoveResult
	for i, dir := range winningRoute {
		result, err := svc.Move(ctx, info.ID, service.MoveRequest{Direction: dir})
		if err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		if result.Outcome.Kind != engine.Moved {
			t.Fatalf("move %d (%s) = %v at %v", i, dir, result.Outcome.Kind, result.Outcome.Position)
		}
		if i < len(winningRoute)-1 && result.Outcome.Won {
			t.Fatalf("won early at move %d", i)
		}
		last = result
	}

	if !last.Outcome.Won || !last.GameState.Won {
		t.Fatal("route did not win")
	}
	if last.Message != status.Victory {
		t.Errorf("Message = %q, want victory text", last.Message)
	}
	if last.GameState.Status != engine.Won {
		t.Errorf("Status = %v, want won", last.GameState.Status)
	}
	if last.GameState.Board.Token == nil || !last.GameState.Board.Token.Victory {
		t.Error("token not marked victorious")
	}
	if n := len(last.Events); n != 2 || last.Events[1].Type != "won" {
		t.Errorf("Events = %+v, want moved then won", last.Events)
	}

	// Further input is ignored
	after, err := svc.Move(ctx, info.ID, service.MoveRequest{Direction: "up"})
	if err != nil {
		t.Fatalf("Move() after win: %v", err)
	}
	if after.Outcome.Kind != engine.Ignored {
		t.Errorf("Outcome after win = %v, want ignored", after.Outcome.Kind)
	}
	if after.GameState.Moves != len(winningRoute) {
		t.Errorf("Moves = %d, want %d", after.GameState.Moves, len(winningRoute))
	}
	if after.Message != status.Victory {
		t.Errorf("Message after win = %q", after.Message)
	}
}

func TestGameService_UnknownSession(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager())

	if _, err := svc.GetSession(ctx, "nope"); !errors.Is(err, errNotFound) {
		t.Errorf("GetSession() error = %v", err)
	}
	if _, err := svc.GetGameState(ctx, "nope"); !errors.Is(err, errNotFound) {
		t.Errorf("GetGameState() error = %v", err)
	}
	if _, err := svc.Move(ctx, "nope", service.MoveRequest{Direction: "up"}); !errors.Is(err, errNotFound) {
		t.Errorf("Move() error = %v", err)
	}
	if err := svc.DeleteSession(ctx, "nope"); !errors.Is(err, errNotFound) {
		t.Errorf("DeleteSession() error = %v", err)
	}
}

func TestGameService_DeleteSession(t *testing.T) {
	ctx := context.Background()
	svc, info := newService(t)

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("session still present after delete")
	}
}

func TestGameService_GetMoveHistory(t *testing.T) {
	ctx := context.Background()
	svc, info := newService(t)

	// 1 blocked + 3 moved
	moves := []string{"right", "down", "right", "right"}
	for _, m := range moves {
		if _, err := svc.Move(ctx, info.ID, service.MoveRequest{Direction: m}); err != nil {
			t.Fatalf("Move(%s): %v", m, err)
		}
	}

	tests := []struct {
		name      string
		opts      service.HistoryOptions
		wantLen   int
		wantFirst int
		wantNext  bool
		wantPages int
	}{
		{
			name:      "defaults newest first",
			opts:      service.HistoryOptions{},
			wantLen:   4,
			wantFirst: 4,
			wantPages: 1,
		},
		{
			name:      "ascending",
			opts:      service.HistoryOptions{Order: "asc"},
			wantLen:   4,
			wantFirst: 1,
			wantPages: 1,
		},
		{
			name:      "paged desc",
			opts:      service.HistoryOptions{Page: 2, Limit: 3},
			wantLen:   1,
			wantFirst: 1,
			wantPages: 2,
		},
		{
			name:      "paged asc first page",
			opts:      service.HistoryOptions{Page: 1, Limit: 3, Order: "asc"},
			wantLen:   3,
			wantFirst: 1,
			wantNext:  true,
			wantPages: 2,
		},
		{
			name:      "page past the end",
			opts:      service.HistoryOptions{Page: 3, Limit: 3},
			wantLen:   0,
			wantPages: 2,
		},
		{
			name:      "huge page desc",
			opts:      service.HistoryOptions{Page: math.MaxInt64/100 + 2, Limit: 100},
			wantLen:   0,
			wantPages: 1,
		},
		{
			name:      "huge page asc",
			opts:      service.HistoryOptions{Page: math.MaxInt64/100 + 2, Limit: 100, Order: "asc"},
			wantLen:   0,
			wantPages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetMoveHistory(ctx, info.ID, tt.opts)
			if err != nil {
				t.Fatalf("GetMoveHistory() error = %v", err)
			}
			if resp.TotalMoves != 4 {
				t.Errorf("TotalMoves = %d, want 4", resp.TotalMoves)
			}
			if len(resp.Moves) != tt.wantLen {
				t.Fatalf("len(Moves) = %d, want %d", len(resp.Moves), tt.wantLen)
			}
			if tt.wantLen > 0 && resp.Moves[0].MoveNumber != tt.wantFirst {
				t.Errorf("first MoveNumber = %d, want %d", resp.Moves[0].MoveNumber, tt.wantFirst)
			}
			if resp.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", resp.HasNext, tt.wantNext)
			}
			if resp.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", resp.TotalPages, tt.wantPages)
			}
		})
	}
}

func TestGameService_WithPresenters(t *testing.T) {
	ctx := context.Background()
	var created []string
	rec := &recordingPresenter{}
	svc := service.NewGameService(NewMockSessionManager(),
		service.WithPresenters(func(id string) service.Presenter {
			created = append(created, id)
			return rec
		}),
	)

	info, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if len(created) != 1 || created[0] != info.ID {
		t.Fatalf("presenter factory calls = %v", created)
	}
	if _, err := svc.Move(ctx, info.ID, service.MoveRequest{Direction: "down"}); err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	want := []string{"grid", "token 0,0", "text " + status.Welcome, "token 0,1", "text Current Position: (0, 1)"}
	if fmt.Sprint(rec.calls) != fmt.Sprint(want) {
		t.Errorf("presenter calls = %v, want %v", rec.calls, want)
	}
}
