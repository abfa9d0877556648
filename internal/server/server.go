// Package server exposes games over HTTP and pushes accepted moves to
// websocket subscribers.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/lgbarn/chessvar-go/internal/config"
	"github.com/lgbarn/chessvar-go/internal/errors"
	"github.com/lgbarn/chessvar-go/internal/game"
)

// Server routes the game API.
type Server struct {
	cfg      *config.Config
	games    *game.Manager
	hub      *Hub
	router   *mux.Router
	upgrader websocket.Upgrader
}

// New creates a Server over games.
func New(cfg *config.Config, games *game.Manager) *Server {
	s := &Server{
		cfg:    cfg,
		games:  games,
		hub:    NewHub(),
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	s.router.NotFoundHandler = s.requestLogger(http.HandlerFunc(notFoundHandler))
	s.router.Use(s.requestLogger)
	s.router.Use(handlers.RecoveryHandler(
		handlers.RecoveryLogger(cfg.Logger()),
		handlers.PrintRecoveryStack(cfg.Verbosity >= 2),
	))

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/games", s.handleCreate).Methods(http.MethodPost)
	api.HandleFunc("/games", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", s.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", s.handleDelete).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/board", s.handleBoard).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/moves", s.handleMove).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/legal/{square}", s.handleLegal).Methods(http.MethodGet)

	s.router.HandleFunc("/ws/games/{id}", s.handleWS)

	games.OnMove(s.broadcastMove)
	return s
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s,
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.cfg.Logf(1, "listening on %s", s.cfg.Server.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

// requestLogger writes an access log line per request in Apache common
// format. Verbosity 0 discards it.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	var w io.Writer = io.Discard
	if s.cfg.Verbosity >= 1 && s.cfg.LogFile != nil {
		w = s.cfg.LogWriter()
	}
	return handlers.LoggingHandler(w, next)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found", Code: "not_found"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}
