package server

import "github.com/lgbarn/chessvar-go/internal/output"

// MoveRequest is the body of POST /api/games/{id}/moves. Either From and
// To, or Move in coordinate form ("e2e4"), must be set.
type MoveRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
	Move string `json:"move,omitempty"`
}

// MoveResponse reports an accepted move and the game after it.
type MoveResponse struct {
	Move output.JSONMove `json:"move"`
	Game *output.JSONGame `json:"game"`
}

// LegalResponse lists the destinations of the piece on a square.
type LegalResponse struct {
	From         string   `json:"from"`
	Destinations []string `json:"destinations"`
}

// ListResponse lists the identifiers of all games.
type ListResponse struct {
	Games []string `json:"games"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Event is pushed to websocket subscribers of a game.
type Event struct {
	Type   string           `json:"type"` // "state", "move" or "closed"
	GameID string           `json:"gameId"`
	Move   *output.JSONMove `json:"move,omitempty"`
	Game   *output.JSONGame `json:"game,omitempty"`
}
