package ws

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"
)

type Config struct {
	SendBuffer     int
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
}

func (c Config) withDefaults() Config {
	if c.SendBuffer <= 0 {
		c.SendBuffer = 64
	}
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = 16 * 1024
	}
	return c
}

// clientFrame is what clients send upstream: room membership changes.
type clientFrame struct {
	Action string   `json:"action"`
	Rooms  []string `json:"rooms"`
}

// Session is one authenticated live connection.
type Session struct {
	id     string
	userID int64
	role   enums.Role
	hub    *Hub
	conn   *websocket.Conn
	send   chan Event
	cfg    Config
	logger *zap.Logger
}

func newSession(hub *Hub, conn *websocket.Conn, userID int64, role enums.Role, cfg Config, log *zap.Logger) *Session {
	return &Session{
		id:     uuid.NewString(),
		userID: userID,
		role:   role,
		hub:    hub,
		conn:   conn,
		send:   make(chan Event, cfg.SendBuffer),
		cfg:    cfg,
		logger: log,
	}
}

func (s *Session) start() {
	go s.writePump()
	go s.readPump()
}

func (s *Session) readPump() {
	defer func() {
		s.hub.unregister(s)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(s.cfg.MaxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait)); err != nil {
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	})

	for {
		var frame clientFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				if s.logger != nil {
					s.logger.Debug("ws read failed", zap.String("session_id", s.id), zap.Error(err))
				}
			}
			return
		}

		switch frame.Action {
		case "join":
			s.hub.Join(s, frame.Rooms)
		case "leave":
			s.hub.Leave(s, frame.Rooms)
		}
	}
}

func (s *Session) writePump() {
	pingPeriod := s.cfg.PongWait * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait)); err != nil {
				return
			}
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(ev); err != nil {
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
