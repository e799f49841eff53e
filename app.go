package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wricardo/grid-maze-game/api"
	"github.com/wricardo/grid-maze-game/config"
	"github.com/wricardo/grid-maze-game/game/service"
	"github.com/wricardo/grid-maze-game/game/session"
	"github.com/wricardo/grid-maze-game/transport/mcp"
	"github.com/wricardo/grid-maze-game/transport/websocket"
	"github.com/wricardo/grid-maze-game/web"
)

// app holds the wired server components
type app struct {
	cfg      config.Config
	log      *zap.SugaredLogger
	sessions *session.Manager
	hub      *websocket.Hub
	service  service.GameService
	api      *api.Server
}

// newApp wires sessions, the websocket hub, the game service and the API,
// and starts the hub and the session cleanup routine. Both stop with ctx.
func newApp(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) *app {
	a := &app{cfg: cfg, log: log}

	a.hub = websocket.NewHub(
		websocket.WithLogger(log.Named("ws")),
		websocket.WithMoveHandler(func(ctx context.Context, sessionID string, req service.MoveRequest) error {
			_, err := a.api.Move(ctx, sessionID, req)
			return err
		}),
	)
	go a.hub.Run(ctx)

	a.sessions = session.NewManager(session.WithEvictHook(a.hub.CloseSession))
	a.service = service.NewGameService(a.sessions,
		service.WithLogger(log.Named("game")),
		service.WithPresenters(a.hub.Presenter),
	)
	a.api = api.NewServer(a.service, a.hub,
		api.WithLogger(log.Named("api")),
		api.WithStatic(web.FS()),
	)

	if cfg.SessionTTL > 0 {
		go sessionCleanupRoutine(ctx, a.sessions, cfg.SessionTTL, log)
	}
	return a
}

// handler combines the API with an /mcp endpoint proxying to baseURL
func (a *app) handler(baseURL string) http.Handler {
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", a.api)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient, a.log))
	return mainRouter
}

// mcpHandler serves MCP JSON-RPC messages over plain HTTP POST
func mcpHandler(client *mcp.Client, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := client.GetMCPServer().HandleMessage(r.Context(), body)
		if response == nil {
			// notifications have no response
			w.WriteHeader(http.StatusAccepted)
			return
		}

		responseData, err := json.Marshal(response)
		if err != nil {
			log.Errorw("failed to marshal mcp response", "error", err)
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	}
}

// cleanupInterval is how often expired sessions are looked for
func cleanupInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	switch {
	case interval < time.Second:
		return time.Second
	case interval > time.Hour:
		return time.Hour
	}
	return interval
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the provided retention window.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, ttl time.Duration, log *zap.SugaredLogger) {
	ticker := time.NewTicker(cleanupInterval(ttl))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				log.Infow("cleaned up expired sessions", "removed", removed, "remaining", manager.Count())
			}
		}
	}
}
