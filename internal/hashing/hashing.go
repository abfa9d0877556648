// Package hashing provides position hashing and duplicate detection for
// replayed games.
package hashing

import (
	"math/rand/v2"

	"github.com/lgbarn/chessvar-go/internal/chess"
)

// Fixed seeds keep hashes stable across runs.
const (
	zobristSeed1 = 0x9e3779b97f4a7c15
	zobristSeed2 = 0xc2b2ae3d27d4eb4f
)

var (
	zobristPieces      [chess.NumSides][chess.NumPieceKinds][chess.NumSquares]uint64
	zobristBlackToMove uint64
)

func init() {
	rng := rand.New(rand.NewPCG(zobristSeed1, zobristSeed2))
	for side := range zobristPieces {
		for kind := range zobristPieces[side] {
			for sq := range zobristPieces[side][kind] {
				zobristPieces[side][kind][sq] = rng.Uint64()
			}
		}
	}
	zobristBlackToMove = rng.Uint64()
}

// GenerateZobristHash returns the Zobrist hash of a position: the pieces on
// the board and the side to move.
func GenerateZobristHash(snap chess.Snapshot) uint64 {
	var hash uint64
	for side := chess.White; side < chess.NumSides; side++ {
		for _, kind := range chess.AllPieceKinds {
			for bb := snap.Pieces[side][kind]; !bb.Empty(); {
				var sq chess.Square
				sq, bb = bb.PopLSB()
				hash ^= zobristPieces[side][kind][sq]
			}
		}
	}
	if snap.Turn == chess.Black {
		hash ^= zobristBlackToMove
	}
	return hash
}

// WeakHash is a cheap secondary check: the per-side occupancy folded
// together. Positions with equal Zobrist hashes but different weak hashes
// are distinct.
func WeakHash(snap chess.Snapshot) uint64 {
	var white, black chess.Bitboard
	for _, kind := range chess.AllPieceKinds {
		white |= snap.Pieces[chess.White][kind]
		black |= snap.Pieces[chess.Black][kind]
	}
	return uint64(white) ^ (uint64(black)<<1 | uint64(black)>>63)
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Name identifies the game, e.g. its script file
	Name string
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// WeakHash is a fast hash for quick comparison
	WeakHash uint64
	// Plies is the number of moves played
	Plies int
}

// DuplicateDetector tracks final positions to find games that ended the
// same way.
type DuplicateDetector struct {
	// hashTable stores seen hash codes
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires the same number of plies
	useExactMatch bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector(exactMatch bool) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
	}
}

// CheckAndAdd records a game's final position. If an earlier game ended in
// the same position it returns that game's name and true, and the game is
// not recorded again.
func (d *DuplicateDetector) CheckAndAdd(name string, snap chess.Snapshot, plies int) (string, bool) {
	sig := GameSignature{
		Name:     name,
		Hash:     GenerateZobristHash(snap),
		WeakHash: WeakHash(snap),
		Plies:    plies,
	}

	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return existing.Name, true
		}
	}

	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	return "", false
}

// signaturesMatch checks if two game signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	return !d.useExactMatch || a.Plies == b.Plies
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games.
func (d *DuplicateDetector) UniqueCount() int {
	count := 0
	for _, sigs := range d.hashTable {
		count += len(sigs)
	}
	return count
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.duplicateCount = 0
}
