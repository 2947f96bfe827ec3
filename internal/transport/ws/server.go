package ws

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/gobwas/ws"

	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/internal/chat"
)

// Server upgrades HTTP connections to WebSocket and attaches them to the
// Room shared with the TCP transport.
type Server struct {
	address string
	room    *chat.Room
	logger  *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

// New creates a WebSocket server that feeds the provided Room.
func New(address string, room *chat.Room, logger *slog.Logger) *Server {
	return &Server{
		address: address,
		room:    room,
		logger:  logger,
	}
}

// Start binds the listener and serves upgrades until Stop is called.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to start WebSocket server: %w", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleUpgrade)
	server := &http.Server{Handler: mux}

	s.mu.Lock()
	s.listener = listener
	s.server = server
	s.mu.Unlock()

	s.logger.Info("websocket server listening", "addr", listener.Addr().String())

	if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops accepting new connections. Live peers keep running until their
// own transports close.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		s.server.Close()
	}
}

// Addr returns the listening address, or "" before Start has bound it.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	peer := chat.NewPeer(NewConn(conn), s.room, s.logger)
	if err := peer.Start(); err != nil {
		s.logger.Warn("rejected websocket connection", "remote", r.RemoteAddr, "error", err)
	}
}
