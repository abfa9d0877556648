package game

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lgbarn/chessvar-go/internal/chess"
	"github.com/lgbarn/chessvar-go/internal/engine"
	"github.com/lgbarn/chessvar-go/internal/errors"
)

// Entry is a game held by a Manager.
type Entry struct {
	ID        string
	Game      *Game
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View is a consistent read of a managed game.
type View struct {
	ID        string
	FEN       string
	Turn      string
	Status    Status
	History   []MoveRecord
	Snapshot  chess.Snapshot
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LastMove returns the most recent move in the view, if any.
func (v View) LastMove() (MoveRecord, bool) {
	if len(v.History) == 0 {
		return MoveRecord{}, false
	}
	return v.History[len(v.History)-1], true
}

// MoveHook is called for every committed move, in commit order.
type MoveHook func(id string, outcome engine.MoveOutcome, v View)

// Manager keeps games keyed by a random identifier. Moves on one game are
// applied one at a time under the manager's lock.
type Manager struct {
	mu     sync.RWMutex
	games  map[string]*Entry
	now    func() time.Time
	onMove MoveHook
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{games: make(map[string]*Entry), now: time.Now}
}

// NewGame starts a game and returns its identifier.
func (m *Manager) NewGame() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	now := m.now()
	m.games[id] = &Entry{
		ID:        id,
		Game:      New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return id
}

// OnMove registers fn to run after each committed move. fn runs under the
// manager's lock, so it must not block or call back into the manager.
func (m *Manager) OnMove(fn MoveHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onMove = fn
}

// Watch calls fn with a view of the game while holding off moves, so that
// whatever fn sets up sees every move after that view.
func (m *Manager) Watch(id string, fn func(View)) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.games[id]
	if !ok {
		return errors.Wrapf(errors.ErrGameNotFound, "id %s", id)
	}
	fn(viewOf(e))
	return nil
}

// Get returns a view of the game.
func (m *Manager) Get(id string) (View, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.games[id]
	if !ok {
		return View{}, errors.Wrapf(errors.ErrGameNotFound, "id %s", id)
	}
	return viewOf(e), nil
}

// Move plays a move in the game.
func (m *Manager) Move(id, from, to string) (engine.MoveOutcome, View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.games[id]
	if !ok {
		return engine.MoveOutcome{}, View{}, errors.Wrapf(errors.ErrGameNotFound, "id %s", id)
	}
	outcome, err := e.Game.MakeMove(from, to)
	if err != nil {
		return engine.MoveOutcome{}, viewOf(e), err
	}
	e.UpdatedAt = m.now()
	v := viewOf(e)
	if m.onMove != nil {
		m.onMove(id, outcome, v)
	}
	return outcome, v, nil
}

// Legal returns the legal destinations of the side to move's piece on from.
func (m *Manager) Legal(id, from string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.games[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "id %s", id)
	}
	return e.Game.Legal(from)
}

// Delete removes a game.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.games[id]; !ok {
		return errors.Wrapf(errors.ErrGameNotFound, "id %s", id)
	}
	delete(m.games, id)
	return nil
}

// List returns the identifiers of all games, oldest first.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]*Entry, 0, len(m.games))
	for _, e := range m.games {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// viewOf snapshots an entry; the caller holds the lock.
func viewOf(e *Entry) View {
	return View{
		ID:        e.ID,
		FEN:       e.Game.FEN(),
		Turn:      e.Game.Turn().String(),
		Status:    e.Game.Status(),
		History:   e.Game.History(),
		Snapshot:  e.Game.Snapshot(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
