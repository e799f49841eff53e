// Command desktop is a windowed client for a running maze server. It creates
// (or joins) a session, draws the render stream received over the websocket
// and sends moves from the arrow keys, WASD or the on-screen buttons.
//
// Usage:
//
//	desktop [-server http://localhost:8080] [session-id]
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "maze server base URL")
	flag.Parse()

	client := NewClient(*server)
	sessionID := flag.Arg(0)
	if sessionID == "" {
		id, err := client.CreateSession()
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		sessionID = id
		log.Printf("Created new session: %s", sessionID)
	}

	game := NewGame(client)
	if err := client.Connect(sessionID, game.Apply); err != nil {
		log.Fatalf("WebSocket connect failed: %v", err)
	}
	defer client.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Grid Maze - " + sessionID)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
