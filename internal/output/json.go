package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chessvar-go/internal/engine"
	"github.com/lgbarn/chessvar-go/internal/game"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	ID       string     `json:"id,omitempty"`
	Name     string     `json:"name,omitempty"`
	FEN      string     `json:"fen"`
	Turn     string     `json:"turn"`
	Status   string     `json:"status"`
	Winner   string     `json:"winner,omitempty"`
	PlyCount int        `json:"plyCount"`
	Moves    []JSONMove `json:"moves,omitempty"`
	Error    string     `json:"error,omitempty"`

	DuplicateOf string `json:"duplicateOf,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	Ply      int    `json:"ply,omitempty"`
	Color    string `json:"color"` // "white" or "black"
	Piece    string `json:"piece"`
	From     string `json:"from"`
	To       string `json:"to"`
	Captured string `json:"captured,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// OutcomeToJSON converts a committed move to JSON format.
func OutcomeToJSON(ply int, o engine.MoveOutcome) JSONMove {
	m := JSONMove{
		Ply:   ply,
		Color: strings.ToLower(o.Side.String()),
		Piece: o.Moved.String(),
		From:  o.From.String(),
		To:    o.To.String(),
	}
	if o.HasCapture {
		m.Captured = o.Captured.String()
	}
	return m
}

// MovesToJSON converts a move history to JSON format.
func MovesToJSON(history []game.MoveRecord) []JSONMove {
	moves := make([]JSONMove, len(history))
	for i, rec := range history {
		moves[i] = OutcomeToJSON(rec.Ply, rec.Outcome)
	}
	return moves
}

// GameToJSON converts a game to JSON format.
func GameToJSON(g *game.Game) *JSONGame {
	history := g.History()
	return &JSONGame{
		FEN:      g.FEN(),
		Turn:     g.Turn().String(),
		Status:   g.Status().String(),
		Winner:   winnerName(g.Status()),
		PlyCount: len(history),
		Moves:    MovesToJSON(history),
	}
}

// ViewToJSON converts a managed game view to JSON format.
func ViewToJSON(v game.View) *JSONGame {
	return &JSONGame{
		ID:       v.ID,
		FEN:      v.FEN,
		Turn:     v.Turn,
		Status:   v.Status.String(),
		Winner:   winnerName(v.Status),
		PlyCount: len(v.History),
		Moves:    MovesToJSON(v.History),
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func winnerName(status game.Status) string {
	switch status {
	case game.WhiteWon:
		return "white"
	case game.BlackWon:
		return "black"
	}
	return ""
}
