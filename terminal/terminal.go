// Package terminal plays the maze in a text terminal using tcell.
package terminal

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/wricardo/grid-maze-game/game/input"
)

var keyNames = map[tcell.Key]string{
	tcell.KeyUp:    "ArrowUp",
	tcell.KeyDown:  "ArrowDown",
	tcell.KeyLeft:  "ArrowLeft",
	tcell.KeyRight: "ArrowRight",
}

// KeyName returns the browser-style key name of a key event: "ArrowUp" for
// the arrow keys and the character itself for runes
func KeyName(ev *tcell.EventKey) string {
	if name, ok := keyNames[ev.Key()]; ok {
		return name
	}
	if ev.Key() == tcell.KeyRune {
		return string(ev.Rune())
	}
	return ev.Name()
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}

// Run feeds key events from screen to mover until Esc, Ctrl+C or ctx is
// done. Every other key is one move attempt; keys other than arrows and
// WASD move by the zero vector.
func Run(ctx context.Context, screen tcell.Screen, mover input.Mover, renderer *Renderer, log *zap.SugaredLogger) error {
	dispatcher := input.NewDispatcher(mover)

	go func() {
		<-ctx.Done()
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			// screen finalized
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		case *tcell.EventResize:
			renderer.Redraw()
		case *tcell.EventKey:
			if isQuit(ev) {
				return nil
			}
			key := KeyName(ev)
			out, recognized := dispatcher.Key(key)
			log.Debugw("key", "key", key, "recognized", recognized, "result", out.Kind.String(),
				"x", out.Position.X, "y", out.Position.Y)
			if out.Won {
				log.Infow("goal reached", "x", out.Position.X, "y", out.Position.Y)
			}
		}
	}
}
