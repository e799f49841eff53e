package main

import (
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wricardo/grid-maze-game/game/input"
	"github.com/wricardo/grid-maze-game/game/maze"
	"github.com/wricardo/grid-maze-game/game/render"
	"github.com/wricardo/grid-maze-game/game/service"
	ws "github.com/wricardo/grid-maze-game/transport/websocket"
)

const (
	cellSize     = 40
	edgeWidth    = 4
	headerHeight = 40
	buttonSize   = 36
	screenWidth  = maze.Cols * cellSize
	screenHeight = headerHeight + maze.Rows*cellSize + 3*buttonSize + 16
)

var (
	backgroundColor = color.RGBA{20, 20, 30, 255}
	pathColor       = color.RGBA{220, 220, 210, 255}
	wallColor       = color.RGBA{60, 60, 70, 255}
	edgeColor       = color.RGBA{30, 30, 40, 255}
	goalColor       = color.RGBA{0, 200, 0, 255}
	tokenColor      = color.RGBA{255, 100, 100, 255}
	victoryColor    = color.RGBA{255, 215, 0, 255}
	buttonColor     = color.RGBA{80, 80, 120, 255}
)

// keyNames maps ebiten keys to the key names the server recognizes
var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "ArrowUp",
	ebiten.KeyArrowDown:  "ArrowDown",
	ebiten.KeyArrowLeft:  "ArrowLeft",
	ebiten.KeyArrowRight: "ArrowRight",
	ebiten.KeyW:          "w",
	ebiten.KeyA:          "a",
	ebiten.KeyS:          "s",
	ebiten.KeyD:          "d",
}

// keyName returns the name sent for key. Keys outside keyNames use ebiten's
// own name, which the server does not recognize.
func keyName(key ebiten.Key) string {
	if name, ok := keyNames[key]; ok {
		return name
	}
	return key.String()
}

// button is an on-screen direction control
type button struct {
	direction input.Direction
	label     string
	rect      image.Rectangle
}

// Game draws the latest render stream of one session
type Game struct {
	client  *Client
	buttons []button
	pressed []ebiten.Key

	mu    sync.RWMutex
	board *render.Board
	token *render.TokenView
	text  string
}

// NewGame creates the window state for client
func NewGame(client *Client) *Game {
	return &Game{client: client, buttons: layoutButtons()}
}

// layoutButtons places the direction buttons in a cross below the grid
func layoutButtons() []button {
	cx := screenWidth/2 - buttonSize/2
	top := headerHeight + maze.Rows*cellSize + 8
	at := func(col, row int) image.Rectangle {
		x := cx + col*buttonSize
		y := top + row*buttonSize
		return image.Rect(x, y, x+buttonSize-2, y+buttonSize-2)
	}
	return []button{
		{direction: input.Up, label: "^", rect: at(0, 0)},
		{direction: input.Left, label: "<", rect: at(-1, 1)},
		{direction: input.Right, label: ">", rect: at(1, 1)},
		{direction: input.Down, label: "v", rect: at(0, 2)},
	}
}

// Apply updates the local view with one message from the server
func (g *Game) Apply(msg ws.Message) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch msg.Op {
	case ws.OpGrid:
		g.board = msg.Board
		g.token = nil
		if msg.Board != nil && msg.Board.Token != nil {
			token := *msg.Board.Token
			g.token = &token
		}
	case ws.OpToken:
		g.token = msg.Token
	case ws.OpVictory:
		if g.token != nil {
			g.token.Victory = true
		}
	case ws.OpStatus:
		g.text = msg.Text
	}
}

// Update sends moves for pressed keys and clicked buttons
func (g *Game) Update() error {
	// every key press is one move attempt; the server resolves unknown keys
	// to a zero vector
	g.pressed = inpututil.AppendJustPressedKeys(g.pressed[:0])
	for _, key := range g.pressed {
		g.send(service.MoveRequest{Key: keyName(key)})
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		pt := image.Pt(ebiten.CursorPosition())
		for _, b := range g.buttons {
			if pt.In(b.rect) {
				g.send(service.MoveRequest{Direction: string(b.direction)})
			}
		}
	}
	return nil
}

func (g *Game) send(req service.MoveRequest) {
	if err := g.client.Move(req); err != nil {
		log.Printf("Failed to send move: %v", err)
	}
}

// Draw renders the board, the token, the status text and the buttons
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	screen.Fill(backgroundColor)
	ebitenutil.DebugPrintAt(screen, g.text, 8, 12)

	if g.board == nil {
		ebitenutil.DebugPrintAt(screen, "Loading...", 8, headerHeight+8)
		return
	}

	for _, cell := range g.board.Cells {
		drawCell(screen, cell)
	}

	if g.token != nil {
		c := tokenColor
		if g.token.Victory {
			c = victoryColor
		}
		x, y := cellOrigin(g.token.X, g.token.Y)
		ebitenutil.DrawRect(screen, float64(x+10), float64(y+10), cellSize-20, cellSize-20, c)
	}

	for _, b := range g.buttons {
		ebitenutil.DrawRect(screen,
			float64(b.rect.Min.X), float64(b.rect.Min.Y),
			float64(b.rect.Dx()), float64(b.rect.Dy()), buttonColor)
		ebitenutil.DebugPrintAt(screen, b.label, b.rect.Min.X+buttonSize/2-4, b.rect.Min.Y+buttonSize/2-9)
	}
}

func cellOrigin(x, y int) (int, int) {
	return x * cellSize, headerHeight + y*cellSize
}

func drawCell(screen *ebiten.Image, cell render.CellView) {
	x, y := cellOrigin(cell.X, cell.Y)
	fx, fy := float64(x), float64(y)

	c := pathColor
	switch {
	case cell.Goal:
		c = goalColor
	case cell.Kind == maze.Wall:
		c = wallColor
	}
	ebitenutil.DrawRect(screen, fx, fy, cellSize-1, cellSize-1, c)

	edges := cell.EdgeMask()
	if edges.Has(maze.EdgeTop) {
		ebitenutil.DrawRect(screen, fx, fy, cellSize-1, edgeWidth, edgeColor)
	}
	if edges.Has(maze.EdgeBottom) {
		ebitenutil.DrawRect(screen, fx, fy+cellSize-1-edgeWidth, cellSize-1, edgeWidth, edgeColor)
	}
	if edges.Has(maze.EdgeLeft) {
		ebitenutil.DrawRect(screen, fx, fy, edgeWidth, cellSize-1, edgeColor)
	}
	if edges.Has(maze.EdgeRight) {
		ebitenutil.DrawRect(screen, fx+cellSize-1-edgeWidth, fy, edgeWidth, cellSize-1, edgeColor)
	}
}

// Layout returns the fixed logical screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
