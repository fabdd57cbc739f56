package ws

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Event is the wire frame pushed to connected clients.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub owns the room membership table: a set-valued map from room key to the
// sessions currently joined. Membership is process-local and ephemeral;
// clients rebuild it by rejoining rooms after a reconnect. All mutation goes
// through Join/Leave/unregister under a single mutex, never across a
// suspension point.
type Hub struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
	rooms    map[string]map[*Session]struct{}
	logger   *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[*Session]struct{}),
		rooms:    make(map[string]map[*Session]struct{}),
		logger:   log,
	}
}

func (h *Hub) register(s *Session) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	h.joinLocked(s, UserRoom(s.userID))
	total := len(h.sessions)
	h.mu.Unlock()

	if h.logger != nil {
		h.logger.Info("ws session connected",
			zap.String("session_id", s.id),
			zap.Int64("user_id", s.userID),
			zap.Int("total_sessions", total),
		)
	}
}

func (h *Hub) unregister(s *Session) {
	h.mu.Lock()
	removed := h.removeLocked(s)
	total := len(h.sessions)
	h.mu.Unlock()

	if removed && h.logger != nil {
		h.logger.Info("ws session disconnected",
			zap.String("session_id", s.id),
			zap.Int64("user_id", s.userID),
			zap.Int("total_sessions", total),
		)
	}
}

// Join adds the session to each room. Room identifiers are opaque; joining a
// room no event is ever published to is harmless idle membership.
func (h *Hub) Join(s *Session, rooms []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s]; !ok {
		return
	}
	for _, room := range rooms {
		if room == "" {
			continue
		}
		h.joinLocked(s, room)
	}
}

func (h *Hub) Leave(s *Session, rooms []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, room := range rooms {
		h.leaveLocked(s, room)
	}
}

// Publish delivers the event to every session joined to the room at publish
// time. Delivery is fire-and-forget: a session whose send buffer is full is
// dropped rather than waited on, and sessions joining after the publish see
// nothing (no replay).
func (h *Hub) Publish(room, event string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return
	}
	h.send(members, Event{Event: event, Data: payload})
}

// Broadcast delivers the event to every connected session regardless of room
// membership.
func (h *Hub) Broadcast(event string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.send(h.sessions, Event{Event: event, Data: payload})
}

func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) send(members map[*Session]struct{}, ev Event) {
	var toDrop []*Session
	for s := range members {
		select {
		case s.send <- ev:
		default:
			toDrop = append(toDrop, s)
		}
	}

	for _, s := range toDrop {
		h.removeLocked(s)
		if h.logger != nil {
			h.logger.Warn("ws session send buffer full, dropping session",
				zap.String("session_id", s.id),
				zap.Int64("user_id", s.userID),
			)
		}
	}
}

func (h *Hub) joinLocked(s *Session, room string) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Session]struct{})
		h.rooms[room] = members
	}
	members[s] = struct{}{}
}

func (h *Hub) leaveLocked(s *Session, room string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, s)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

func (h *Hub) removeLocked(s *Session) bool {
	if _, ok := h.sessions[s]; !ok {
		return false
	}
	delete(h.sessions, s)
	for room := range h.rooms {
		h.leaveLocked(s, room)
	}
	close(s.send)
	return true
}

func UserRoom(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func ThreadRoom(threadID int64) string {
	return fmt.Sprintf("thread:%d", threadID)
}
