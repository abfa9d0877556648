package server

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// sendBuffer is the number of events queued per subscriber before it is
// dropped as too slow.
const sendBuffer = 16

type client struct {
	conn   *websocket.Conn
	gameID string
	send   chan []byte
}

// Hub fans game events out to the websocket subscribers of each game.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]struct{})}
}

func (h *Hub) subscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.clients[c.gameID]
	if !ok {
		subs = make(map[*client]struct{})
		h.clients[c.gameID] = subs
	}
	subs[c] = struct{}{}
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked drops c and closes its queue; the caller holds mu.
func (h *Hub) removeLocked(c *client) {
	subs, ok := h.clients[c.gameID]
	if !ok {
		return
	}
	if _, ok := subs[c]; !ok {
		return
	}
	delete(subs, c)
	close(c.send)
	if len(subs) == 0 {
		delete(h.clients, c.gameID)
	}
}

// Subscribers returns the number of subscribers of a game.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[gameID])
}

// Broadcast queues an event for every subscriber of its game. Subscribers
// whose queue is full are disconnected.
func (h *Hub) Broadcast(ev Event) error {
	msg, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[ev.GameID] {
		select {
		case c.send <- msg:
		default:
			h.removeLocked(c)
		}
	}
	return nil
}

// CloseGame sends a final event to a game's subscribers and disconnects
// them.
func (h *Hub) CloseGame(gameID string) {
	msg, _ := json.Marshal(Event{Type: "closed", GameID: gameID})

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[gameID] {
		select {
		case c.send <- msg:
		default:
		}
		h.removeLocked(c)
	}
}

// writePump writes queued events until the queue is closed. It is the
// only writer on the connection.
func (c *client) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			// Closing the connection ends readPump, which closes the queue.
			c.conn.Close()
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}

// readPump discards client messages and unsubscribes when the peer goes
// away.
func (c *client) readPump(h *Hub) {
	defer h.unsubscribe(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
