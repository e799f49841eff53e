// Command analyze prints quick, human-readable facts about a maze layout:
// dimensions, cell counts and wall-edge decorations. Given --moves it replays
// that route through the game engine, and with --play also through a running
// server's REST API, checking that the session ends won.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/grid-maze-game/game/engine"
	"github.com/wricardo/grid-maze-game/game/input"
	"github.com/wricardo/grid-maze-game/game/maze"
)

// Report summarizes one layout
type Report struct {
	Cols, Rows int
	Paths      int
	Walls      int
	Decorated  int
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "report on a maze layout (default: the built-in map)",
		ArgsUsage: "[layout-file]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "moves", Usage: `route to replay, e.g. "down,right,right"`},
			&cli.StringFlag{Name: "play", Usage: "server base URL to also play --moves against"},
		},
		Action: run,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	grid := maze.Default()
	if path := cmd.Args().First(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if grid, err = readLayout(f); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	w := cmd.Root().Writer
	printReport(w, grid, analyze(grid))

	route, err := parseRoute(cmd.String("moves"))
	if err != nil {
		return err
	}
	if len(route) == 0 {
		if cmd.String("play") != "" {
			return fmt.Errorf("--play needs --moves")
		}
		return nil
	}

	status, pos := replay(grid, route)
	fmt.Fprintf(w, "Route of %d moves ends at (%d, %d), engine says %s\n", len(route), pos.X, pos.Y, status)

	if url := cmd.String("play"); url != "" {
		return play(ctx, w, NewClient(url), route)
	}
	return nil
}

// parseRoute splits a comma or space separated list of direction names
func parseRoute(s string) ([]input.Direction, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	route := make([]input.Direction, 0, len(fields))
	for _, f := range fields {
		dir, err := input.ParseDirection(f)
		if err != nil {
			return nil, err
		}
		route = append(route, dir)
	}
	return route, nil
}

// readLayout parses one row of '0'/'1' per line; blank lines are skipped
func readLayout(r io.Reader) (*maze.Grid, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			rows = append(rows, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return maze.Parse(rows)
}

func analyze(grid *maze.Grid) Report {
	report := Report{
		Cols:  grid.Cols(),
		Rows:  grid.Rows(),
		Paths: grid.Count(maze.Path),
		Walls: grid.Count(maze.Wall),
	}
	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Cols(); x++ {
			if grid.WallEdges(x, y) != 0 {
				report.Decorated++
			}
		}
	}
	return report
}

// replay runs a route through the game engine
func replay(grid *maze.Grid, dirs []input.Direction) (engine.Status, maze.Position) {
	player := engine.NewPlayer(grid)
	for _, dir := range dirs {
		v := dir.Vector()
		player.AttemptMove(v.DX, v.DY)
	}
	return player.Status(), player.Position()
}

func printReport(w io.Writer, grid *maze.Grid, r Report) {
	fmt.Fprint(w, grid.String())
	fmt.Fprintf(w, "Grid Size: %d x %d\n", r.Cols, r.Rows)
	fmt.Fprintf(w, "Path cells: %d, walls: %d\n", r.Paths, r.Walls)
	fmt.Fprintf(w, "Path cells with wall edges: %d\n", r.Decorated)

	start, goal := grid.Start(), grid.Goal()
	fmt.Fprintf(w, "Start: (%d, %d), goal: (%d, %d)\n", start.X, start.Y, goal.X, goal.Y)
}
