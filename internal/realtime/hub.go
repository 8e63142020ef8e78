package realtime

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Event is the wire format for everything pushed over a websocket.
type Event struct {
	Event   string      `json:"event"`
	Room    string      `json:"room,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub routes events to sessions by room. It is an online-presence
// accelerator only: delivery is fire-and-forget and at-most-once, and
// nothing here survives a disconnect. Anything that must outlive a
// connection goes through the notification store instead.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Session]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Session]bool),
	}
}

// UserRoom is the personal room every session is subscribed to for its
// lifetime.
func UserRoom(userID string) string {
	return "user:" + userID
}

// JoinableRoom reports whether clients may subscribe to the room on
// their own. Personal user:* rooms are assigned at connect time and
// can never be joined explicitly.
func JoinableRoom(room string) bool {
	return strings.HasPrefix(room, "post:") || strings.HasPrefix(room, "challenge:")
}

// Register adds a session and subscribes it to its personal room.
func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.join(s, UserRoom(s.UserID))

	logrus.WithFields(logrus.Fields{
		"sessionID": s.ID,
		"userID":    s.UserID,
	}).Info("Realtime session connected")
}

// Unregister drops every room membership of the session and closes its
// send channel. Safe to call once per session.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room := range s.rooms {
		h.leave(s, room)
	}
	close(s.send)

	logrus.WithFields(logrus.Fields{
		"sessionID": s.ID,
		"userID":    s.UserID,
	}).Info("Realtime session disconnected")
}

// Join subscribes a session to a topic room.
func (h *Hub) Join(s *Session, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.join(s, room)
}

// Leave unsubscribes a session from a topic room.
func (h *Hub) Leave(s *Session, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leave(s, room)
}

func (h *Hub) join(s *Session, room string) {
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Session]bool)
	}
	h.rooms[room][s] = true
	s.rooms[room] = true
}

func (h *Hub) leave(s *Session, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, s)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(s.rooms, room)
}

// Publish sends an event to every session currently subscribed to the
// room. Delivery is best-effort: a session with a full send buffer is
// skipped rather than blocked on, and there is no redelivery.
func (h *Hub) Publish(room, event string, payload interface{}) {
	h.publish(room, event, payload, nil)
}

// PublishExcept is Publish minus one session, used to relay a client's
// own events (typing) back to everyone else in the room.
func (h *Hub) PublishExcept(room, event string, payload interface{}, skip *Session) {
	h.publish(room, event, payload, skip)
}

func (h *Hub) publish(room, event string, payload interface{}, skip *Session) {
	data, err := json.Marshal(Event{Event: event, Room: room, Payload: payload})
	if err != nil {
		logrus.WithError(err).WithField("event", event).Error("Failed to marshal realtime event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.rooms[room] {
		if s == skip {
			continue
		}
		select {
		case s.send <- data:
		default:
			// Slow consumer: drop the event for this session.
			logrus.WithFields(logrus.Fields{
				"sessionID": s.ID,
				"room":      room,
				"event":     event,
			}).Debug("Dropping realtime event for slow session")
		}
	}
}

// RoomCount returns how many sessions are subscribed to a room.
func (h *Hub) RoomCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
