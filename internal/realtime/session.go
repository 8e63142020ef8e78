package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBufferSize = 32
)

// command is what clients send while connected.
type command struct {
	Action string `json:"action"` // "join", "leave", "typing"
	Room   string `json:"room"`
	Typing bool   `json:"typing,omitempty"`
}

// Session is one authenticated websocket connection. It exists only
// between handshake and disconnect; room memberships die with it.
type Session struct {
	ID     string
	UserID string

	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]bool
}

// NewSession creates a session for an already-authenticated connection.
func NewSession(hub *Hub, conn *websocket.Conn, userID string) *Session {
	return &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		rooms:  make(map[string]bool),
	}
}

// Run registers the session and pumps messages until the connection
// drops. It blocks until the read side ends.
func (s *Session) Run() {
	s.hub.Register(s)
	go s.writePump()
	s.readPump()
}

// readPump processes client commands in arrival order.
func (s *Session) readPump() {
	defer func() {
		s.hub.Unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).WithField("sessionID", s.ID).Warn("Websocket read error")
			}
			return
		}

		var cmd command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			logrus.WithField("sessionID", s.ID).Debug("Ignoring malformed realtime command")
			continue
		}
		s.handleCommand(cmd)
	}
}

func (s *Session) handleCommand(cmd command) {
	switch cmd.Action {
	case "join":
		if JoinableRoom(cmd.Room) {
			s.hub.Join(s, cmd.Room)
		}
	case "leave":
		if JoinableRoom(cmd.Room) {
			s.hub.Leave(s, cmd.Room)
		}
	case "typing":
		// Ephemeral: relayed to the room right now or never.
		if s.rooms[cmd.Room] {
			s.hub.PublishExcept(cmd.Room, "user_typing", map[string]interface{}{
				"user_id": s.UserID,
				"typing":  cmd.Typing,
			}, s)
		}
	}
}

// writePump drains the send channel onto the wire and keeps the
// connection alive with pings.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
