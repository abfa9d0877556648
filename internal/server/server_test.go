package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lgbarn/chessvar-go/internal/config"
	"github.com/lgbarn/chessvar-go/internal/engine"
	"github.com/lgbarn/chessvar-go/internal/game"
	"github.com/lgbarn/chessvar-go/internal/output"
	"github.com/lgbarn/chessvar-go/internal/testutil"
)

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	logBuf := &bytes.Buffer{}
	cfg := config.NewConfigBuilder().WithLog(logBuf).WithVerbosity(1).Build()
	return New(cfg, game.NewManager()), logBuf
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func createGame(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/games", "")
	testutil.AssertEqual(t, rec.Code, http.StatusCreated)

	var jg output.JSONGame
	decode(t, rec, &jg)
	testutil.AssertEqual(t, jg.FEN, engine.InitialFEN)
	testutil.AssertEqual(t, rec.Header().Get("Location"), "/api/games/"+jg.ID)
	return jg.ID
}

func TestCreateAndGet(t *testing.T) {
	s, logBuf := newTestServer(t)
	id := createGame(t, s)

	rec := do(t, s, http.MethodGet, "/api/games/"+id, "")
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	var jg output.JSONGame
	decode(t, rec, &jg)
	testutil.AssertEqual(t, jg.ID, id)
	testutil.AssertEqual(t, jg.Turn, "White")
	testutil.AssertEqual(t, jg.Status, "UNFINISHED")

	rec = do(t, s, http.MethodGet, "/api/games", "")
	var list ListResponse
	decode(t, rec, &list)
	testutil.AssertEqual(t, list.Games, []string{id})

	// Access log line from the logging middleware.
	testutil.AssertContains(t, logBuf.String(), "\"POST /api/games HTTP/1.1\" 201")
}

func TestMove(t *testing.T) {
	s, _ := newTestServer(t)
	id := createGame(t, s)

	rec := do(t, s, http.MethodPost, "/api/games/"+id+"/moves", `{"from":"e2","to":"e4"}`)
	testutil.AssertEqual(t, rec.Code, http.StatusOK)

	var resp MoveResponse
	decode(t, rec, &resp)
	testutil.AssertEqual(t, resp.Move, output.JSONMove{Ply: 1, Color: "white", Piece: "Pawn", From: "E2", To: "E4"})
	testutil.AssertEqual(t, resp.Game.Turn, "Black")
	testutil.AssertEqual(t, resp.Game.FEN, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b")

	rec = do(t, s, http.MethodPost, "/api/games/"+id+"/moves", `{"move":"D7D5"}`)
	testutil.AssertEqual(t, rec.Code, http.StatusOK)

	rec = do(t, s, http.MethodPost, "/api/games/"+id+"/moves", `{"move":"e4d5"}`)
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	decode(t, rec, &resp)
	testutil.AssertEqual(t, resp.Move.Captured, "Pawn")
	testutil.AssertEqual(t, resp.Game.PlyCount, 3)
}

func TestMoveErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"invalid square", `{"from":"e2","to":"e9"}`, http.StatusBadRequest, "invalid_square"},
		{"degenerate", `{"from":"e2","to":"E2"}`, http.StatusBadRequest, "degenerate_move"},
		{"bad json", `{"from":`, http.StatusBadRequest, "parse_failure"},
		{"bad move text", `{"move":"e2-e4"}`, http.StatusBadRequest, "parse_failure"},
		{"no piece", `{"from":"e4","to":"e5"}`, http.StatusUnprocessableEntity, "no_piece_at_origin"},
		{"opponent piece", `{"from":"e7","to":"e5"}`, http.StatusUnprocessableEntity, "no_piece_at_origin"},
		{"illegal", `{"from":"e2","to":"e5"}`, http.StatusUnprocessableEntity, "illegal_destination"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			id := createGame(t, s)

			rec := do(t, s, http.MethodPost, "/api/games/"+id+"/moves", tt.body)
			testutil.AssertEqual(t, rec.Code, tt.wantStatus)
			var er ErrorResponse
			decode(t, rec, &er)
			testutil.AssertEqual(t, er.Code, tt.wantCode)

			// The game is untouched.
			rec = do(t, s, http.MethodGet, "/api/games/"+id, "")
			var jg output.JSONGame
			decode(t, rec, &jg)
			testutil.AssertEqual(t, jg.FEN, engine.InitialFEN)
		})
	}
}

func TestMoveAfterWin(t *testing.T) {
	s, _ := newTestServer(t)
	id := createGame(t, s)

	moves := []string{"e2e4", "d7d5", "e4d5", "d8d5", "d1g4", "d5d2", "e1d2"}
	for _, m := range moves {
		rec := do(t, s, http.MethodPost, "/api/games/"+id+"/moves", `{"move":"`+m+`"}`)
		testutil.AssertEqual(t, rec.Code, http.StatusOK, "move %s", m)
	}

	rec := do(t, s, http.MethodGet, "/api/games/"+id, "")
	var jg output.JSONGame
	decode(t, rec, &jg)
	testutil.AssertEqual(t, jg.Status, "WHITE_WON")
	testutil.AssertEqual(t, jg.Winner, "white")

	rec = do(t, s, http.MethodPost, "/api/games/"+id+"/moves", `{"move":"a7a6"}`)
	testutil.AssertEqual(t, rec.Code, http.StatusConflict)
}

func TestUnknownGame(t *testing.T) {
	s, _ := newTestServer(t)

	for _, req := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/games/nope", ""},
		{http.MethodDelete, "/api/games/nope", ""},
		{http.MethodGet, "/api/games/nope/board", ""},
		{http.MethodPost, "/api/games/nope/moves", `{"move":"e2e4"}`},
		{http.MethodGet, "/api/games/nope/legal/e2", ""},
		{http.MethodGet, "/ws/games/nope", ""},
		{http.MethodGet, "/no/such/route", ""},
	} {
		rec := do(t, s, req.method, req.path, req.body)
		testutil.AssertEqual(t, rec.Code, http.StatusNotFound, "%s %s", req.method, req.path)
	}
}

func TestLegal(t *testing.T) {
	s, _ := newTestServer(t)
	id := createGame(t, s)

	rec := do(t, s, http.MethodGet, "/api/games/"+id+"/legal/g1", "")
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	var lr LegalResponse
	decode(t, rec, &lr)
	testutil.AssertEqual(t, lr, LegalResponse{From: "G1", Destinations: []string{"F3", "H3"}})

	rec = do(t, s, http.MethodGet, "/api/games/"+id+"/legal/z9", "")
	testutil.AssertEqual(t, rec.Code, http.StatusBadRequest)
}

func TestBoard(t *testing.T) {
	s, _ := newTestServer(t)
	id := createGame(t, s)
	do(t, s, http.MethodPost, "/api/games/"+id+"/moves", `{"move":"b1c3"}`)

	rec := do(t, s, http.MethodGet, "/api/games/"+id+"/board", "")
	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	testutil.AssertContains(t, rec.Header().Get("Content-Type"), "text/plain")
	testutil.AssertContains(t, rec.Body.String(), "3 |  .  .  N  .  .  .  .  .  |")
	testutil.AssertContains(t, rec.Body.String(), "White Knight from B1 to C3")
}

func TestDelete(t *testing.T) {
	s, _ := newTestServer(t)
	id := createGame(t, s)

	rec := do(t, s, http.MethodDelete, "/api/games/"+id, "")
	testutil.AssertEqual(t, rec.Code, http.StatusNoContent)

	rec = do(t, s, http.MethodGet, "/api/games/"+id, "")
	testutil.AssertEqual(t, rec.Code, http.StatusNotFound)
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return ev
}

func TestWebsocketMoveFeed(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s)
	defer ts.Close()

	id := createGame(t, s)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/games/" + id
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	testutil.AssertNoError(t, err)
	defer conn.Close()

	ev := readEvent(t, conn)
	testutil.AssertEqual(t, ev.Type, "state")
	testutil.AssertEqual(t, ev.GameID, id)
	testutil.AssertEqual(t, ev.Game.FEN, engine.InitialFEN)

	resp, err := http.Post(ts.URL+"/api/games/"+id+"/moves", "application/json",
		strings.NewReader(`{"from":"g1","to":"f3"}`))
	testutil.AssertNoError(t, err)
	resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)

	ev = readEvent(t, conn)
	testutil.AssertEqual(t, ev.Type, "move")
	testutil.AssertEqual(t, ev.Move.From, "G1")
	testutil.AssertEqual(t, ev.Move.To, "F3")
	testutil.AssertEqual(t, ev.Game.Turn, "Black")

	// Rejected moves are not broadcast; deleting the game closes the feed.
	resp, err = http.Post(ts.URL+"/api/games/"+id+"/moves", "application/json",
		strings.NewReader(`{"from":"a8","to":"a6"}`))
	testutil.AssertNoError(t, err)
	resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusUnprocessableEntity)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/games/"+id, nil)
	resp, err = http.DefaultClient.Do(req)
	testutil.AssertNoError(t, err)
	resp.Body.Close()

	ev = readEvent(t, conn)
	testutil.AssertEqual(t, ev.Type, "closed")
	testutil.AssertEqual(t, s.Hub().Subscribers(id), 0)
}

func TestConcurrentRequests(t *testing.T) {
	s, logBuf := newTestServer(t)
	id := createGame(t, s)

	// Handlers log through Logf while the access log middleware writes the
	// same buffer.
	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			do(t, s, http.MethodPost, "/api/games/"+id+"/moves", `{"move":"e2e4"}`)
		}()
		go func() {
			defer wg.Done()
			do(t, s, http.MethodGet, "/api/games/"+id, "")
		}()
		go func() {
			defer wg.Done()
			do(t, s, http.MethodPost, "/api/games", "")
		}()
	}
	wg.Wait()

	logs := logBuf.String()
	testutil.AssertEqual(t, strings.Count(logs, " HTTP/1.1\" "), 1+3*n)
	testutil.AssertEqual(t, strings.Count(logs, "White Pawn from E2 to E4"), 1)

	rec := do(t, s, http.MethodGet, "/api/games/"+id, "")
	var jg output.JSONGame
	decode(t, rec, &jg)
	testutil.AssertEqual(t, jg.PlyCount, 1)
}

func TestWebsocketFeedOrder(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s)
	defer ts.Close()

	id := createGame(t, s)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/games/"+id, nil)
	testutil.AssertNoError(t, err)
	defer conn.Close()
	testutil.AssertEqual(t, readEvent(t, conn).Type, "state")

	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4"}
	go func() {
		for _, m := range moves {
			resp, err := http.Post(ts.URL+"/api/games/"+id+"/moves", "application/json",
				strings.NewReader(`{"move":"`+m+`"}`))
			if err == nil {
				resp.Body.Close()
			}
		}
	}()

	for i, m := range moves {
		ev := readEvent(t, conn)
		testutil.AssertEqual(t, ev.Type, "move")
		testutil.AssertEqual(t, ev.Move.Ply, i+1)
		testutil.AssertEqual(t, ev.Move.From+ev.Move.To, strings.ToUpper(m))
		testutil.AssertEqual(t, ev.Game.PlyCount, i+1)
	}
}

func TestMoveBodyTooLarge(t *testing.T) {
	s, _ := newTestServer(t)
	id := createGame(t, s)

	body := `{"from":"` + strings.Repeat("e", 2*maxMoveBody) + `","to":"e4"}`
	rec := do(t, s, http.MethodPost, "/api/games/"+id+"/moves", body)
	testutil.AssertEqual(t, rec.Code, http.StatusBadRequest)
	var er ErrorResponse
	decode(t, rec, &er)
	testutil.AssertEqual(t, er.Code, "parse_failure")
}

func TestStatusFor(t *testing.T) {
	status, code := statusFor(io.EOF)
	testutil.AssertEqual(t, status, http.StatusInternalServerError)
	testutil.AssertEqual(t, code, "internal")
}
