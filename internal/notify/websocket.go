package notify

import (
	"net/http"
	"time"

	"hardwarehub-be/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// WSServer upgrades HTTP requests and streams hub events as JSON frames.
type WSServer struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewWSServer(hub *Hub, allowedOrigins []string) *WSServer {
	return &WSServer{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
			HandshakeTimeout: writeWait,
		},
	}
}

// Subscribers is the number of open connections.
func (s *WSServer) Subscribers() int {
	return s.hub.Subscribers()
}

// Serve blocks for the lifetime of the connection. The caller has already
// authenticated the user.
func (s *WSServer) Serve(w http.ResponseWriter, r *http.Request, userID uint, isAdmin bool) {
	log := logger.FromCtx(r.Context()).With(
		zap.String("component", "websocket"),
		zap.Uint("user_id", userID),
	)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := s.hub.Subscribe(userID, isAdmin)
	defer sub.Close()

	log.Info("client connected", zap.Bool("is_admin", isAdmin))

	done := make(chan struct{})
	go readPump(conn, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case e, ok := <-sub.C:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
					time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				log.Info("write failed, closing", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			log.Info("client disconnected")
			return
		}
	}
}

// readPump discards client frames; it exists to process pongs and notice
// closed connections.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
