package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/grid-maze-game/config"
	"github.com/wricardo/grid-maze-game/game/maze"
	"github.com/wricardo/grid-maze-game/game/service"
	"github.com/wricardo/grid-maze-game/logging"
	"github.com/wricardo/grid-maze-game/terminal"
	"github.com/wricardo/grid-maze-game/transport/mcp"
)

// setup reads the configuration and builds the logger. logFile replaces an
// empty --log-file.
func setup(cmd *cli.Command, logFile string) (config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return cfg, nil, err
	}
	if cfg.LogFile == "" {
		cfg.LogFile = logFile
	}
	log := logging.New(logging.Options{File: cfg.LogFile, Debug: cfg.Debug})
	return cfg, log, nil
}

// playAction runs the terminal game until Esc or a signal
func playAction(ctx context.Context, cmd *cli.Command) error {
	_, log, err := setup(cmd, defaultPlayLog)
	if err != nil {
		return err
	}
	defer logging.Sync(log)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init terminal: %w", err)
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderer := terminal.NewRenderer(screen)
	game := service.NewGame(maze.Default(), renderer)
	log.Infow("terminal game started", "version", Version)

	if err := terminal.Run(ctx, screen, game, renderer, log); err != nil {
		return err
	}
	state := game.State()
	log.Infow("terminal game ended", "status", state.Status.String(), "moves", state.Moves)
	return nil
}

// serveAction starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := setup(cmd, "")
	if err != nil {
		return err
	}
	defer logging.Sync(log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := newApp(ctx, cfg, log)
	addr := cfg.Addr()
	handler := a.handler(cfg.BaseURL())

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infow("HTTP server listening",
			"game", "http://"+addr+"/",
			"api", "http://"+addr+"/api",
			"ws", "ws://"+addr+"/ws?session=<session_id>",
			"mcp", "http://"+addr+"/mcp")
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if cfg.NgrokEnabled {
		tun, err := startNgrok(ctx, cfg)
		if err != nil {
			log.Warnw("failed to start ngrok tunnel", "error", err)
		} else {
			url := tun.URL()
			log.Infow("ngrok tunnel established",
				"game", url+"/",
				"api", url+"/api",
				"ws", strings.Replace(url, "http", "ws", 1)+"/ws?session=<session_id>",
				"mcp", url+"/mcp")

			tunnelServer := &http.Server{Handler: handler}
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := tunnelServer.Serve(tun); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Warnw("ngrok server error", "error", err)
				}
				log.Infow("ngrok tunnel closed")
			}()
			defer tunnelServer.Close()
		}
	}

	select {
	case <-ctx.Done():
		log.Infow("shutting down")
	case err = <-errs:
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if serr := httpServer.Shutdown(shutdownCtx); serr != nil {
		log.Warnw("HTTP server shutdown error", "error", serr)
	}
	cancel()

	wg.Wait()
	log.Infow("server stopped")
	return err
}

func startNgrok(ctx context.Context, cfg config.Config) (ngrok.Tunnel, error) {
	var tunnel ngrokConfig.Tunnel
	if cfg.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(cfg.NgrokDomain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}
	return ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(cfg.NgrokAuthToken))
}

// mcpAction runs an MCP stdio server. It reuses an API already answering at
// --host/--port; otherwise it starts an internal API on a random loopback port.
func mcpAction(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := setup(cmd, "")
	if err != nil {
		return err
	}
	defer logging.Sync(log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	baseURL := cfg.BaseURL()
	if apiAvailable(ctx, baseURL) {
		log.Infow("using external API server for MCP", "url", baseURL)
	} else {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = "http://" + listener.Addr().String()

		a := newApp(ctx, cfg, log)
		internal := &http.Server{Handler: a.api}
		go func() {
			if err := internal.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorw("internal HTTP server error", "error", err)
			}
		}()
		defer internal.Close()
		log.Infow("started internal API server for MCP", "url", baseURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Infow("MCP stdio server ready")
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// apiAvailable reports whether a maze API answers its health check at baseURL
func apiAvailable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// printAction writes the map, and optionally the wall edges, to stdout
func printAction(ctx context.Context, cmd *cli.Command) error {
	grid := maze.Default()
	w := cmd.Root().Writer
	fmt.Fprint(w, grid.String())

	if !cmd.Bool("edges") {
		return nil
	}
	fmt.Fprintln(w)
	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Cols(); x++ {
			if edges := grid.WallEdges(x, y); edges != 0 {
				fmt.Fprintf(w, "(%d,%d) %s\n", x, y, edges)
			}
		}
	}
	return nil
}
