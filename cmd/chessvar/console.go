package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessvar-go/internal/config"
	"github.com/lgbarn/chessvar-go/internal/errors"
	"github.com/lgbarn/chessvar-go/internal/game"
	"github.com/lgbarn/chessvar-go/internal/output"
)

// Console plays a game from line-oriented input, one move per line.
type Console struct {
	cfg   *config.Config
	game  *game.Game
	in    *bufio.Scanner
	out   io.Writer
	board *output.BoardWriter
}

// NewConsole creates a console for g reading moves from in.
func NewConsole(cfg *config.Config, g *game.Game, in io.Reader, out io.Writer) *Console {
	return &Console{
		cfg:   cfg,
		game:  g,
		in:    bufio.NewScanner(in),
		out:   out,
		board: output.NewBoardWriter(out, cfg.Output.Labels),
	}
}

// Run prompts for moves until a side wins or the input ends.
func (c *Console) Run() error {
	if err := c.show(); err != nil {
		return err
	}

	for c.game.Status() == game.Unfinished {
		fmt.Fprintf(c.out, "%s's move (e.g., e2e4): ", c.game.Turn())
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}

		from, to, err := output.ParseMoveInput(c.in.Text())
		if err != nil {
			fmt.Fprintln(c.out, output.InputHelp)
			continue
		}

		outcome, err := c.game.MakeMove(from, to)
		if err != nil {
			c.cfg.Logf(1, "%s%s rejected: %v", from, to, err)
			fmt.Fprintln(c.out, "Invalid move. Try again.")
			c.hint(from, err)
			continue
		}
		c.cfg.Logf(1, "%d. %s", len(c.game.History()), outcome)

		if err := c.show(); err != nil {
			return err
		}
	}

	if c.cfg.Output.Format == config.JSON {
		return output.WriteJSON(c.out, output.GameToJSON(c.game))
	}
	return nil
}

// show draws the board with the last move, or announces the result when the
// board is turned off.
func (c *Console) show() error {
	if !c.cfg.Output.ShowBoard {
		if rec, ok := c.game.LastMove(); ok {
			fmt.Fprintln(c.out, rec.Outcome)
		}
		if banner := output.ResultBanner(c.game.Status()); banner != "" {
			fmt.Fprintln(c.out, banner)
		}
		return nil
	}

	var last *game.MoveRecord
	if rec, ok := c.game.LastMove(); ok {
		last = &rec
	}
	return c.board.Render(c.game.Snapshot(), last, c.game.Status())
}

// hint lists where the piece on from may go after a rejected destination.
func (c *Console) hint(from string, err error) {
	if !c.cfg.Output.ShowLegal || !stderrors.Is(err, errors.ErrIllegalDestination) {
		return
	}
	legal, lerr := c.game.Legal(from)
	if lerr != nil {
		return
	}
	if len(legal) == 0 {
		fmt.Fprintf(c.out, "The piece on %s cannot move.\n", strings.ToUpper(from))
		return
	}
	fmt.Fprintf(c.out, "Legal moves from %s: %s\n", strings.ToUpper(from), strings.Join(legal, " "))
}
