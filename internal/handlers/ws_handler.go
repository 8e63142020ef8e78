package handlers

import (
	"net/http"

	"github.com/ecopulse-app/ecopulse/internal/realtime"
	jwtutil "github.com/ecopulse-app/ecopulse/pkg/jwt"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler authenticates and upgrades realtime connections.
type WSHandler struct {
	hub       *realtime.Hub
	jwtSecret string
}

func NewWSHandler(hub *realtime.Hub, jwtSecret string) *WSHandler {
	return &WSHandler{hub: hub, jwtSecret: jwtSecret}
}

// ServeWS is the connection handshake. The token is checked before the
// upgrade: a bad token means the connection is refused outright and
// never reaches the hub.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	claims, err := jwtutil.ValidateToken(token, h.jwtSecret)
	if err != nil {
		logrus.WithError(err).Warn("Websocket auth failed")
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	session := realtime.NewSession(h.hub, conn, claims.UserID)
	go session.Run()
}
