package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

const wsIdlePingInterval = 20 * time.Second

// SpectatorServer exposes the running game over HTTP for read-only watchers:
// a JSON status snapshot and a websocket feed of board updates. It never
// accepts moves.
type SpectatorServer struct {
	hub    *Hub
	logger *Logger
	server *http.Server
}

func NewSpectatorServer(addr string, hub *Hub, logger *Logger) *SpectatorServer {
	s := &SpectatorServer{hub: hub, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/status", func(w http.ResponseWriter, _ *http.Request) {
		snapshot, ok := s.hub.Snapshot()
		if !ok {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "game has not started"})
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	})
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.serveSpectatorWS(w, r)
	})

	s.server = &http.Server{Addr: addr, Handler: r}
	return s
}

// Start runs the listener and hub in the background. Errors after startup
// only reach the log; a dead spectator endpoint must not kill the game.
func (s *SpectatorServer) Start(done <-chan struct{}) {
	go s.hub.Run(done)
	go func() {
		s.logger.Infof("spectator endpoint listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("spectator endpoint failed: %v", err)
		}
	}()
}

func (s *SpectatorServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Warnf("spectator shutdown: %v", err)
	}
}

func (s *SpectatorServer) serveSpectatorWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := NewSpectatorClient(s.hub)
	s.hub.Register(client)
	s.logger.Infof("spectator %s connected from %s", client.id, r.RemoteAddr)

	if snapshot, ok := s.hub.Snapshot(); ok {
		client.sendJSON(wsMessage{Type: "snapshot", Payload: mustMarshal(snapshot)})
	}

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.Unregister(client)
			s.logger.Infof("spectator %s disconnected", client.id)
			return
		}
	}
}

// writeWSWithHeartbeat drains send onto the connection and pings when idle so
// proxies do not drop quiet spectators.
func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
