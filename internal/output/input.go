package output

import (
	"strings"

	"github.com/lgbarn/chessvar-go/internal/errors"
)

// InputHelp is printed when console input is malformed.
const InputHelp = "Invalid input format. Please use the format 'e2e4' or 'E2E4'."

// ParseMoveInput splits console input such as "e2e4" into its origin and
// destination labels. Surrounding whitespace is ignored and letters may be
// either case.
func ParseMoveInput(s string) (from, to string, err error) {
	move := strings.TrimSpace(s)
	if len(move) != 4 || !isFile(move[0]) || !isRank(move[1]) || !isFile(move[2]) || !isRank(move[3]) {
		return "", "", &errors.ParseError{Err: errors.ErrParseFailure, Got: move}
	}
	return move[:2], move[2:], nil
}

func isFile(c byte) bool {
	return ('a' <= c && c <= 'h') || ('A' <= c && c <= 'H')
}

func isRank(c byte) bool {
	return '1' <= c && c <= '8'
}
