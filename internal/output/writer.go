package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/chessvar-go/internal/config"
	"github.com/lgbarn/chessvar-go/internal/game"
)

// Report is a finished game to be written, e.g. the result of a replay.
type Report struct {
	Name string
	Game *game.Game
	Err  error

	// DuplicateOf names an earlier game that ended in the same position.
	DuplicateOf string
}

// GameWriter is the interface for writing game reports to output.
// Different implementations handle different output formats.
type GameWriter interface {
	// WriteGame writes a single report to the output.
	WriteGame(r Report) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewWriter returns the writer for the configured output format.
func NewWriter(w io.Writer, cfg *config.Config) GameWriter {
	if cfg.Output.Format == config.JSON {
		return NewJSONWriter(w)
	}
	return NewTextWriter(w, cfg.Output.ShowBoard)
}

// TextWriter writes one summary line per game, optionally followed by the
// final board.
type TextWriter struct {
	w     io.Writer
	board bool
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, board bool) *TextWriter {
	return &TextWriter{w: w, board: board}
}

// WriteGame writes a game summary.
func (tw *TextWriter) WriteGame(r Report) error {
	g := r.Game
	if _, err := fmt.Fprintf(tw.w, "%s: %s after %d plies, %s\n",
		r.Name, g.Status(), len(g.History()), g.FEN()); err != nil {
		return err
	}
	if r.Err != nil {
		if _, err := fmt.Fprintf(tw.w, "  error: %v\n", r.Err); err != nil {
			return err
		}
	}
	if r.DuplicateOf != "" {
		if _, err := fmt.Fprintf(tw.w, "  duplicate of %s\n", r.DuplicateOf); err != nil {
			return err
		}
	}
	if !tw.board {
		return nil
	}
	var last *game.MoveRecord
	if rec, ok := g.LastMove(); ok {
		last = &rec
	}
	return RenderText(tw.w, g.Snapshot(), last, g.Status())
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	games  []*JSONGame
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     w,
		games: make([]*JSONGame, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(r Report) error {
	jg := GameToJSON(r.Game)
	jg.Name = r.Name
	jg.DuplicateOf = r.DuplicateOf
	if r.Err != nil {
		jg.Error = r.Err.Error()
	}

	if jw.single {
		return WriteJSON(jw.w, jg)
	}

	jw.games = append(jw.games, jg)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}

	err := WriteJSON(jw.w, &JSONOutput{Games: jw.games})

	// Clear buffer after writing
	jw.games = jw.games[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
