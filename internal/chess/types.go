// Package chess provides core chess types and the bitboard board state.
package chess

// Side represents the colour of a piece or player.
type Side int

const (
	White Side = iota
	Black
	NumSides
)

// String returns the string representation of a side.
func (s Side) String() string {
	if s == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite side.
func (s Side) Opposite() Side {
	if s == White {
		return Black
	}
	return White
}

// Forward returns +1 for White, -1 for Black (the pawn rank increment).
func (s Side) Forward() int {
	if s == White {
		return 1
	}
	return -1
}

// PieceKind represents a chess piece type. The ordering is the index into
// a side's piece masks and the order pieces are searched in.
type PieceKind int

const (
	Pawn PieceKind = iota
	Rook
	Knight
	Bishop
	Queen
	King
	NumPieceKinds
)

// AllPieceKinds lists every kind in index order.
var AllPieceKinds = [NumPieceKinds]PieceKind{Pawn, Rook, Knight, Bishop, Queen, King}

// String returns the string representation of a piece kind.
func (k PieceKind) String() string {
	names := []string{"Pawn", "Rook", "Knight", "Bishop", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece kind (uppercase).
func (k PieceKind) Letter() byte {
	letters := []byte{'P', 'R', 'N', 'B', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts a piece letter (either case) to a piece kind.
func KindFromLetter(c byte) (PieceKind, bool) {
	switch c {
	case 'P', 'p':
		return Pawn, true
	case 'R', 'r':
		return Rook, true
	case 'N', 'n':
		return Knight, true
	case 'B', 'b':
		return Bishop, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	}
	return 0, false
}

// Constants for board dimensions and coordinates.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	RankBase = '1'
	FileBase = 'A'
)
