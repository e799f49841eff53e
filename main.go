// Command maze plays a single-player grid maze.
//
// Commands:
//  1. "play" (default) – plays in the terminal
//  2. "serve" – runs the HTTP server exposing the browser client, REST API,
//     WebSocket render stream and an /mcp HTTP endpoint
//  3. "mcp" – runs an MCP stdio server backed by an HTTP API, reusing one at
//     --host/--port when it answers and starting an internal one otherwise
//  4. "print" – prints the map
//
// Settings come from flags, environment variables and a .env file; see
// package config. The server can also be exposed through an ngrok tunnel.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/grid-maze-game/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "maze"
)

// defaultPlayLog keeps terminal play logs off the screen
const defaultPlayLog = "maze.log"

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    AppName,
		Usage:   "walk a token from the top-left corner to the goal",
		Version: Version,
		Flags:   config.Flags(),
		Action:  playAction,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play in the terminal (arrows or WASD, Esc quits)",
				Action: playAction,
			},
			{
				Name:   "serve",
				Usage:  "serve the browser client, REST API, websocket and /mcp",
				Action: serveAction,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "run an MCP server on stdio",
				Action:  mcpAction,
			},
			{
				Name:  "print",
				Usage: "print the map",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "edges", Usage: "list wall-edge decorations per path cell"},
				},
				Action: printAction,
			},
		},
	}
}

// main loads .env, then parses the command line and runs the selected command.
func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}
