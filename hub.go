package main

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Hub fans game snapshots out to spectator websocket clients. Spectators are
// read-only; the hub never feeds anything back into the game loop.
type Hub struct {
	mu        sync.Mutex
	clients   map[*SpectatorClient]struct{}
	broadcast chan snapshotPayload
	last      snapshotPayload
	hasLast   bool
}

type SpectatorClient struct {
	id   string
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type snapshotPayload struct {
	Board       [][]int   `json:"board"`
	NextPlayer  int       `json:"next_player"`
	Status      string    `json:"status"`
	MoveCount   int       `json:"move_count"`
	LastMove    *Move     `json:"last_move,omitempty"`
	WinningLine []Move    `json:"winning_line,omitempty"`
	History     []moveDTO `json:"history"`
}

type moveDTO struct {
	Move   Move   `json:"move"`
	Player string `json:"player"`
	IsAi   bool   `json:"is_ai"`
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*SpectatorClient]struct{}),
		broadcast: make(chan snapshotPayload, 16),
	}
}

func NewSpectatorClient(hub *Hub) *SpectatorClient {
	return &SpectatorClient{
		id:   uuid.NewString(),
		hub:  hub,
		send: make(chan []byte, 16),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "snapshot", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastState snapshots the state and queues it without blocking the game
// loop; if spectators cannot keep up, stale frames are dropped. The snapshot
// is taken on the caller's goroutine, the only one allowed to touch state.
func (h *Hub) BroadcastState(state *GameState) {
	snapshot := snapshotFromState(state)
	h.mu.Lock()
	h.last = snapshot
	h.hasLast = true
	h.mu.Unlock()
	select {
	case h.broadcast <- snapshot:
	default:
	}
}

// Snapshot returns the most recently broadcast payload. HTTP and websocket
// handlers read this instead of the live game state.
func (h *Hub) Snapshot() (snapshotPayload, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.hasLast
}

func (h *Hub) Register(c *SpectatorClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *SpectatorClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *SpectatorClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func snapshotFromState(state *GameState) snapshotPayload {
	payload := snapshotPayload{
		Board:       boardToIntGrid(state.Board),
		NextPlayer:  playerToInt(state.ToMove),
		Status:      state.Status.String(),
		MoveCount:   state.History.Size(),
		WinningLine: append([]Move(nil), state.WinningLine...),
		History:     historyToDTO(state.History),
	}
	if state.HasLastMove {
		last := state.LastMove
		payload.LastMove = &last
	}
	return payload
}

func historyToDTO(history MoveHistory) []moveDTO {
	entries := history.All()
	out := make([]moveDTO, len(entries))
	for i, e := range entries {
		out[i] = moveDTO{Move: e.Move, Player: e.Player.String(), IsAi: e.IsAi}
	}
	return out
}
