// Package replay plays move scripts against fresh games.
//
// A script is plain text holding one move per token in coordinate form
// ("e2e4"), separated by any whitespace. A '#' starts a comment that runs to
// the end of the line.
package replay

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chessvar-go/internal/errors"
	"github.com/lgbarn/chessvar-go/internal/game"
	"github.com/lgbarn/chessvar-go/internal/output"
)

// Script is a named sequence of moves.
type Script struct {
	Name  string
	Moves []game.Move
}

// ParseScript reads the moves of a script. name is used in error positions.
func ParseScript(r io.Reader, name string) ([]game.Move, error) {
	var moves []game.Move
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		col := 0
		for _, tok := range strings.Fields(text) {
			col = strings.Index(text[col:], tok) + col
			from, to, err := output.ParseMoveInput(tok)
			if err != nil {
				return nil, &errors.ParseError{
					Err:    errors.ErrParseFailure,
					File:   name,
					Line:   line,
					Column: col + 1,
					Got:    tok,
				}
			}
			moves = append(moves, game.Move{From: from, To: to})
			col += len(tok)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return moves, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return Script{Name: path}, err
	}
	defer f.Close()

	moves, err := ParseScript(f, path)
	return Script{Name: path, Moves: moves}, err
}
