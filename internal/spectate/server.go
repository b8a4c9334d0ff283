// Package spectate broadcasts game events to read-only websocket spectators.
//
// The server subscribes to a game's EventBus. Every event is converted to a
// Message holding a copy of the board and fanned out to the connected
// spectators; a spectator joining mid-game first receives the game_start
// frame and the most recent frame.
package spectate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/kalah/internal/kalah"
)

const shutdownTimeout = 5 * time.Second

// Server is the spectator websocket server
type Server struct {
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	start       *Message
	latest      *Message
	logger      *log.Logger
	clock       quartz.Clock
	mu          sync.RWMutex
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the server logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithClock sets the clock used for pings and deadlines
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// NewServer creates a spectator server; Serve puts it on a listener
func NewServer(opts ...Option) *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			// Spectating is read-only, so any origin may watch
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		logger:      log.New(io.Discard),
		clock:       quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithPrefix("spectate")
	return s
}

// Handler returns the HTTP routes: /ws and /healthz
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Serve accepts spectators on ln until ctx is cancelled, then shuts down
// and disconnects everyone.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: writeWait,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("Starting spectator server", "addr", ln.Addr().String())
		errs <- srv.Serve(ln)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Stop()

	if serveErr := <-errs; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	return err
}

// Stop disconnects every spectator
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
		delete(s.connections, conn)
	}
}

// ConnectionCount returns the number of connected spectators
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// OnEvent implements kalah.EventSubscriber
func (s *Server) OnEvent(event kalah.GameEvent) {
	msg, ok := NewMessage(event)
	if !ok {
		return
	}

	s.mu.Lock()
	if msg.Type == kalah.EventTypeGameStart {
		s.start = msg
	}
	s.latest = msg
	conns := make([]*Connection, 0, len(s.connections))
	for conn := range s.connections {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Debug("Dropped spectator", "error", err)
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(ws, s.logger, s.clock)

	// catch up before any newer event can be queued
	s.mu.Lock()
	if s.start != nil {
		_ = conn.SendMessage(s.start)
		if s.latest != s.start {
			_ = conn.SendMessage(s.latest)
		}
	}
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()

	s.logger.Info("Spectator connected", "remote", r.RemoteAddr, "total", total)
	conn.Start()

	go func() {
		<-conn.Done()
		s.mu.Lock()
		delete(s.connections, conn)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Spectator disconnected", "total", total)
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "ok") // Ignore write errors for health check
}
