package tcp

import (
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/internal/chat"
)

// Server accepts TCP connections and attaches each one to the Room.
type Server struct {
	address string
	room    *chat.Room
	logger  *slog.Logger
	quit    chan struct{}

	mu       sync.Mutex
	listener net.Listener
}

// New creates a TCP server that feeds the provided Room.
func New(address string, room *chat.Room, logger *slog.Logger) *Server {
	return &Server{
		address: address,
		room:    room,
		logger:  logger,
		quit:    make(chan struct{}),
	}
}

// Start binds the listener and accepts connections until Stop is called.
// A bind failure is returned to the caller; per-connection failures are
// logged and never stop the accept loop.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to start TCP server: %w", err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("tcp server listening", "addr", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return nil
			default:
				s.logger.Error("failed to accept connection", "error", err)
				continue
			}
		}

		peer := chat.NewPeer(NewConn(conn), s.room, s.logger)
		if err := peer.Start(); err != nil {
			s.logger.Warn("rejected connection", "remote", conn.RemoteAddr().String(), "error", err)
		}
	}
}

// Stop stops accepting new connections. Live peers keep running until their
// own transports close.
func (s *Server) Stop() {
	close(s.quit)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		s.listener.Close()
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
