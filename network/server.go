package network

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"whackamole/game"
	"whackamole/protocol"
	"whackamole/session"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server owns the HTTP listener, the websocket endpoint, and the hub.
type Server struct {
	addr string
	base game.Config
	hub  *Hub
}

func NewServer(addr string, base game.Config) *Server {
	return &Server{addr: addr, base: base, hub: NewHub()}
}

// Handler exposes the routes for tests and for ListenAndServe.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ws", s.wsHandler)
	return mux
}

func (s *Server) ListenAndServe() error {
	log.Printf("listening on %s (ws endpoint: /ws)", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	// Upgrade HTTP -> WebSocket
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	client := newClient(conn)
	s.hub.add(client)
	sess := session.New(client, s.hub, s.base)
	log.Printf("client connected (session %s)", sess.ID)

	defer func() {
		sess.Close()
		s.hub.remove(client)
		_ = client.Close()
		log.Printf("client disconnected (session %s)", sess.ID)
	}()

	// Basic timeouts + pong handling (keeps connections healthy)
	conn.SetReadLimit(1 << 20) // 1MB
	_ = conn.SetReadDeadline(time.Now().Add(protocol.ReadTimeoutSec * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(protocol.ReadTimeoutSec * time.Second))
		return nil
	})

	// Ping loop; a client that stops answering times out of the read loop.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(protocol.HeartbeatSec * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := client.Ping(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	sess.Hello()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("read:", err)
			}
			return
		}
		sess.HandleMessage(msg)
	}
}
