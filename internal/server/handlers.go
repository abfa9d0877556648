package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/lgbarn/chessvar-go/internal/engine"
	"github.com/lgbarn/chessvar-go/internal/errors"
	"github.com/lgbarn/chessvar-go/internal/game"
	"github.com/lgbarn/chessvar-go/internal/output"
)

// maxMoveBody bounds a move request body.
const maxMoveBody = 4 << 10

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id := s.games.NewGame()
	v, err := s.games.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	s.cfg.Logf(1, "game %s created", id)
	w.Header().Set("Location", "/api/games/"+id)
	writeJSON(w, http.StatusCreated, output.ViewToJSON(v))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ListResponse{Games: s.games.List()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	v, err := s.games.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output.ViewToJSON(v))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.games.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	s.hub.CloseGame(id)
	s.cfg.Logf(1, "game %s deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleBoard renders the board as text, the way the console shows it.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	v, err := s.games.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	var last *game.MoveRecord
	if rec, ok := v.LastMove(); ok {
		last = &rec
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_ = output.RenderText(w, v.Snapshot, last, v.Status)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req MoveRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxMoveBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrParseFailure, "bad json"))
		return
	}
	from, to := req.From, req.To
	if from == "" && to == "" && req.Move != "" {
		var err error
		if from, to, err = output.ParseMoveInput(req.Move); err != nil {
			writeError(w, err)
			return
		}
	}

	outcome, v, err := s.games.Move(id, from, to)
	if err != nil {
		s.cfg.Logf(1, "game %s: %s%s rejected: %v", id, from, to, err)
		writeError(w, err)
		return
	}
	s.cfg.Logf(1, "game %s: %s", id, outcome)

	writeJSON(w, http.StatusOK, MoveResponse{
		Move: output.OutcomeToJSON(len(v.History), outcome),
		Game: output.ViewToJSON(v),
	})
}

// broadcastMove pushes a committed move to the game's subscribers. The
// manager calls it in commit order.
func (s *Server) broadcastMove(id string, outcome engine.MoveOutcome, v game.View) {
	move := output.OutcomeToJSON(len(v.History), outcome)
	if err := s.hub.Broadcast(Event{Type: "move", GameID: id, Move: &move, Game: output.ViewToJSON(v)}); err != nil {
		s.cfg.Logf(1, "game %s: broadcast: %v", id, err)
	}
}

func (s *Server) handleLegal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	legal, err := s.games.Legal(vars["id"], vars["square"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LegalResponse{From: strings.ToUpper(vars["square"]), Destinations: legal})
}

// handleWS subscribes the connection to a game's events. The first message
// is the current state of the game; every later move follows it.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.games.Get(id); err != nil {
		writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.cfg.Logf(1, "game %s: websocket upgrade: %v", id, err)
		return
	}
	s.cfg.Logf(2, "game %s: subscriber %s", id, conn.RemoteAddr())

	c := &client{conn: conn, gameID: id, send: make(chan []byte, sendBuffer)}
	err = s.games.Watch(id, func(v game.View) {
		state, _ := json.Marshal(Event{Type: "state", GameID: id, Game: output.ViewToJSON(v)})
		c.send <- state
		s.hub.subscribe(c)
	})
	if err != nil {
		// Deleted since the check above.
		s.cfg.Logf(1, "game %s: websocket: %v", id, err)
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump(s.hub)
}
