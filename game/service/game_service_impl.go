package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/grid-maze-game/game/engine"
	"github.com/wricardo/grid-maze-game/game/input"
	"github.com/wricardo/grid-maze-game/game/maze"
)

// ErrInvalidMove is returned when a move request carries no usable input
var ErrInvalidMove = errors.New("invalid move request")

// PresenterFactory builds a presenter for a newly created session
type PresenterFactory func(sessionID string) Presenter

// Option configures the game service
type Option func(*gameServiceImpl)

// WithLogger sets the logger used for move and session logs
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *gameServiceImpl) {
		s.log = log
	}
}

// WithPresenters attaches a presenter from factory to every new session
func WithPresenters(factory PresenterFactory) Option {
	return func(s *gameServiceImpl) {
		s.presenters = factory
	}
}

// WithGrid overrides the map new sessions are played on
func WithGrid(grid func() *maze.Grid) Option {
	return func(s *gameServiceImpl) {
		s.grid = grid
	}
}

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions   SessionManager
	presenters PresenterFactory
	grid       func() *maze.Grid
	log        *zap.SugaredLogger
	now        func() time.Time
	mu         sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions: sessions,
		grid:     maze.Default,
		log:      zap.NewNop().Sugar(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession starts a new game in its own session
func (s *gameServiceImpl) CreateSession(ctx context.Context) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := NewGame(s.grid())

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", game)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if s.presenters != nil {
		if p := s.presenters(session.ID); p != nil {
			game.Attach(p)
		}
	}

	s.log.Infow("session created", "session", session.ID)
	return sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		s.log.Warnw("failed to update last access", "session", sessionID, "error", err)
	}

	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.log.Infow("session deleted", "session", sessionID)
	return nil
}

// Move resolves the request into a vector and feeds it to the session's game
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, req MoveRequest) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		s.log.Warnw("failed to update last access", "session", sessionID, "error", err)
	}

	dispatcher := input.NewDispatcher(sess.Game)
	result := &MoveResult{}

	switch {
	case req.Direction != "":
		d, err := input.ParseDirection(req.Direction)
		if err != nil {
			return nil, err
		}
		result.Outcome = dispatcher.Control(string(d))
	case req.Key != "":
		out, recognized := dispatcher.Key(req.Key)
		result.Outcome = out
		result.Recognized = &recognized
	case req.DX != nil || req.DY != nil:
		v, err := vectorFromRequest(req)
		if err != nil {
			return nil, err
		}
		result.Outcome = dispatcher.Vector(v)
	default:
		return nil, fmt.Errorf("%w: one of direction, key or dx/dy is required", ErrInvalidMove)
	}

	state := sess.Game.State()
	result.Success = result.Outcome.Committed()
	result.GameState = state
	result.Message = state.Message
	result.Events = s.outcomeEvents(result.Outcome, state.Message)

	s.log.Debugw("move",
		"session", sessionID,
		"result", result.Outcome.Kind.String(),
		"candidate", result.Outcome.Candidate,
		"position", result.Outcome.Position,
		"won", result.Outcome.Won,
	)
	if result.Outcome.Won {
		s.log.Infow("goal reached", "session", sessionID, "moves", state.Moves)
	}

	return result, nil
}

// GetGameState returns the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return sess.Game.State(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	history := sess.Game.History()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	moves := []engine.MoveHistoryEntry{}
	// pages past the end are empty
	if opts.Page <= totalPages {
		start := (opts.Page - 1) * opts.Limit
		end := start + opts.Limit
		if end > total {
			end = total
		}

		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else if start < total {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

func (s *gameServiceImpl) outcomeEvents(out engine.Outcome, message string) []GameEvent {
	now := s.now()
	events := []GameEvent{{
		Type:      out.Kind.String(),
		Message:   message,
		Timestamp: now,
		Position:  out.Position,
	}}
	if out.Kind == engine.OutOfBounds {
		events[0].Message = fmt.Sprintf("(%d,%d) is outside the maze", out.Candidate.X, out.Candidate.Y)
	}
	if out.Kind == engine.Ignored {
		events[0].Message = "game already won"
	}
	if out.Won {
		events = append(events, GameEvent{
			Type:      "won",
			Message:   message,
			Timestamp: now,
			Position:  out.Position,
		})
	}
	return events
}

func vectorFromRequest(req MoveRequest) (input.Vector, error) {
	var v input.Vector
	if req.DX != nil {
		v.DX = *req.DX
	}
	if req.DY != nil {
		v.DY = *req.DY
	}
	if v.DX < -1 || v.DX > 1 || v.DY < -1 || v.DY > 1 {
		return input.Zero, fmt.Errorf("%w: dx and dy must be -1, 0 or 1, got (%d,%d)", ErrInvalidMove, v.DX, v.DY)
	}
	return v, nil
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Game.State(),
	}
}
