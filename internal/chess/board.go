package chess

import "fmt"

// Board holds the canonical position as per-side, per-kind bitboards plus
// the derived occupancy masks.
type Board struct {
	// pieces[side][kind]; the six masks of a side never overlap.
	pieces [NumSides][NumPieceKinds]Bitboard

	// occupancy[side] is the union of that side's six masks.
	occupancy [NumSides]Bitboard

	// all is occupancy[White] | occupancy[Black].
	all Bitboard

	// Who has the next move.
	turn Side
}

// Snapshot is a read-only copy of the piece masks, for rendering.
type Snapshot struct {
	Pieces [NumSides][NumPieceKinds]Bitboard
	Turn   Side
}

// NewEmptyBoard creates a board with no pieces and the given side to move.
func NewEmptyBoard(turn Side) *Board {
	return &Board{turn: turn}
}

// NewStandardGame creates a board set up in the standard starting position
// with White to move.
func NewStandardGame() *Board {
	b := NewEmptyBoard(White)
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.pieces[White] = [NumPieceKinds]Bitboard{
		Pawn:   Rank2,
		Rook:   0x81,
		Knight: 0x42,
		Bishop: 0x24,
		Queen:  0x08,
		King:   0x10,
	}
	// Black mirrors White across the middle of the board.
	for kind := range b.pieces[White] {
		b.pieces[Black][kind] = mirrorRanks(b.pieces[White][kind])
	}

	b.turn = White
	b.recompute(White)
	b.recompute(Black)
}

// mirrorRanks flips a bitboard vertically (rank 1 <-> rank 8).
func mirrorRanks(bb Bitboard) Bitboard {
	var out Bitboard
	for r := 0; r < BoardSize; r++ {
		row := (bb >> (8 * r)) & Rank1
		out |= row << (8 * (BoardSize - 1 - r))
	}
	return out
}

// recompute rebuilds the derived masks for side and the combined mask.
func (b *Board) recompute(side Side) {
	var occ Bitboard
	for _, bb := range b.pieces[side] {
		occ |= bb
	}
	b.occupancy[side] = occ
	b.all = b.occupancy[White] | b.occupancy[Black]
}

// Place puts a piece of the given side and kind on sq, replacing whatever
// was there.
func (b *Board) Place(side Side, kind PieceKind, sq Square) {
	mask := sq.Mask()
	for s := White; s < NumSides; s++ {
		for k := range b.pieces[s] {
			b.pieces[s][k] &^= mask
		}
	}
	b.pieces[side][kind] |= mask
	b.recompute(White)
	b.recompute(Black)
}

// Remove clears sq.
func (b *Board) Remove(sq Square) {
	mask := sq.Mask()
	for s := White; s < NumSides; s++ {
		for k := range b.pieces[s] {
			b.pieces[s][k] &^= mask
		}
		b.recompute(s)
	}
}

// Pieces returns the six piece masks of side, indexed by PieceKind.
func (b *Board) Pieces(side Side) [NumPieceKinds]Bitboard {
	return b.pieces[side]
}

// PieceMask returns the mask of one kind for side.
func (b *Board) PieceMask(side Side, kind PieceKind) Bitboard {
	return b.pieces[side][kind]
}

// Occupancy returns every square occupied by side.
func (b *Board) Occupancy(side Side) Bitboard {
	return b.occupancy[side]
}

// All returns every occupied square.
func (b *Board) All() Bitboard {
	return b.all
}

// Turn returns whose move is next.
func (b *Board) Turn() Side {
	return b.turn
}

// SetTurn sets whose move is next.
func (b *Board) SetTurn(side Side) {
	b.turn = side
}

// AdvanceTurn passes the move to the other side.
func (b *Board) AdvanceTurn() {
	b.turn = b.turn.Opposite()
}

// PieceAt returns the side and kind of the piece on sq, if any.
func (b *Board) PieceAt(sq Square) (Side, PieceKind, bool) {
	mask := sq.Mask()
	if b.all&mask == 0 {
		return White, 0, false
	}
	for s := White; s < NumSides; s++ {
		if b.occupancy[s]&mask == 0 {
			continue
		}
		for _, kind := range AllPieceKinds {
			if b.pieces[s][kind]&mask != 0 {
				return s, kind, true
			}
		}
	}
	return White, 0, false
}

// ApplyRaw moves a piece of the given side and kind from one square to
// another and removes any opposing piece on the destination, returning its
// kind. It performs no legality checks.
func (b *Board) ApplyRaw(side Side, kind PieceKind, from, to Bitboard) (PieceKind, bool) {
	b.pieces[side][kind] = (b.pieces[side][kind] &^ from) | to
	b.recompute(side)

	opp := side.Opposite()
	if to&b.occupancy[opp] == 0 {
		return 0, false
	}
	for _, k := range AllPieceKinds {
		if b.pieces[opp][k]&to != 0 {
			b.pieces[opp][k] &^= to
			b.recompute(opp)
			return k, true
		}
	}
	return 0, false
}

// Snapshot returns a copy of the piece masks and the side to move.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{Pieces: b.pieces, Turn: b.turn}
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// BoardState captures all mutable board state for save/restore operations.
type BoardState struct {
	Pieces    [NumSides][NumPieceKinds]Bitboard
	Occupancy [NumSides]Bitboard
	All       Bitboard
	Turn      Side
}

// SaveState captures the current board state for later restoration.
func (b *Board) SaveState() BoardState {
	return BoardState{
		Pieces:    b.pieces,
		Occupancy: b.occupancy,
		All:       b.all,
		Turn:      b.turn,
	}
}

// RestoreState restores the board to a previously saved state.
func (b *Board) RestoreState(s BoardState) {
	b.pieces = s.Pieces
	b.occupancy = s.Occupancy
	b.all = s.All
	b.turn = s.Turn
}

// Validate checks the board invariants: the masks of one side are pairwise
// disjoint, the two sides never share a square and the derived masks match
// the piece masks.
func (b *Board) Validate() error {
	for s := White; s < NumSides; s++ {
		var union Bitboard
		for _, kind := range AllPieceKinds {
			bb := b.pieces[s][kind]
			if union&bb != 0 {
				return fmt.Errorf("%s %s overlaps another kind on %v", s, kind, (union & bb).Labels())
			}
			union |= bb
		}
		if union != b.occupancy[s] {
			return fmt.Errorf("%s occupancy %#x, pieces %#x", s, uint64(b.occupancy[s]), uint64(union))
		}
	}
	if b.occupancy[White]&b.occupancy[Black] != 0 {
		return fmt.Errorf("sides overlap on %v", (b.occupancy[White] & b.occupancy[Black]).Labels())
	}
	if b.all != b.occupancy[White]|b.occupancy[Black] {
		return fmt.Errorf("combined occupancy %#x inconsistent", uint64(b.all))
	}
	return nil
}
