package tcp_test

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/internal/chat"
	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/internal/transport/tcp"
	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/pkg/protocol"
)

func startServer(t *testing.T, opts ...chat.RoomOption) (*tcp.Server, string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]chat.RoomOption{chat.WithLogger(logger)}, opts...)
	room := chat.NewRoom(opts...)
	srv := tcp.New("127.0.0.1:0", room, logger)

	go func() {
		if err := srv.Start(); err != nil {
			t.Errorf("server error: %v", err)
		}
	}()
	t.Cleanup(srv.Stop)

	require.Eventually(t, func() bool {
		return srv.Addr() != ""
	}, time.Second, 5*time.Millisecond, "server never bound")
	return srv, srv.Addr()
}

func dial(t *testing.T, addr string) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn net.Conn, body string) {
	t.Helper()
	msg, err := protocol.New([]byte(body))
	require.NoError(t, err)
	_, err = conn.Write(msg.Encode())
	require.NoError(t, err)
}

func receive(t *testing.T, conn net.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	msg, err := protocol.ReadMessage(conn)
	require.NoError(t, err)
	return string(msg.Body())
}

func TestServer_BroadcastBetweenClients(t *testing.T) {
	_, addr := startServer(t)

	alice := dial(t, addr)
	bob := dial(t, addr)

	send(t, alice, "hi from alice")
	require.Equal(t, "hi from alice", receive(t, bob))

	send(t, bob, "hi from bob")
	require.Equal(t, "hi from bob", receive(t, alice))
}

func TestServer_NoSelfEcho(t *testing.T) {
	_, addr := startServer(t)

	alice := dial(t, addr)
	bob := dial(t, addr)

	send(t, alice, "only for bob")
	require.Equal(t, "only for bob", receive(t, bob))

	// The sender's socket must stay silent.
	require.NoError(t, alice.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	buf := make([]byte, 1)
	_, err := alice.Read(buf)
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	require.True(t, netErr.Timeout(), "expected read timeout, got %v", err)
}

func TestServer_NewcomerReceivesHistoryFirst(t *testing.T) {
	_, addr := startServer(t, chat.WithHistorySize(10))

	alice := dial(t, addr)
	bob := dial(t, addr)

	send(t, alice, "one")
	send(t, alice, "two")
	require.Equal(t, "one", receive(t, bob))
	require.Equal(t, "two", receive(t, bob))

	carol := dial(t, addr)
	send(t, alice, "three")

	require.Equal(t, "one", receive(t, carol))
	require.Equal(t, "two", receive(t, carol))
	require.Equal(t, "three", receive(t, carol))
}

func TestServer_InvalidHeaderDisconnectsPeer(t *testing.T) {
	_, addr := startServer(t)

	mallory := dial(t, addr)
	bob := dial(t, addr)

	_, err := mallory.Write([]byte("EVIL...."))
	require.NoError(t, err)

	// The server drops the offending peer; its socket fails (EOF or reset
	// depending on how much the kernel had buffered).
	require.NoError(t, mallory.SetReadDeadline(time.Now().Add(time.Second)))
	buf := make([]byte, 1)
	_, err = mallory.Read(buf)
	require.Error(t, err)
	var netErr net.Error
	if errors.As(err, &netErr) {
		require.False(t, netErr.Timeout(), "peer was not disconnected: %v", err)
	}

	// The rest of the room is unaffected.
	alice := dial(t, addr)
	send(t, alice, "still alive")
	require.Equal(t, "still alive", receive(t, bob))
}

func TestServer_RejectsWhenRoomFull(t *testing.T) {
	_, addr := startServer(t, chat.WithMaxParticipants(1))

	first := dial(t, addr)
	second := dial(t, addr)

	// The rejected connection is closed by the server.
	require.NoError(t, second.SetReadDeadline(time.Now().Add(time.Second)))
	buf := make([]byte, 1)
	_, err := second.Read(buf)
	require.ErrorIs(t, err, io.EOF)

	// The accepted peer stays connected.
	require.NoError(t, first.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, err = first.Read(buf)
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	require.True(t, netErr.Timeout())
}

func TestServer_SlowPeerDoesNotBlockOthers(t *testing.T) {
	_, addr := startServer(t)

	alice := dial(t, addr)
	fast := dial(t, addr)
	slow := dial(t, addr) // never reads

	for i := 0; i < 20; i++ {
		send(t, alice, "burst")
		require.Equal(t, "burst", receive(t, fast))
	}
	_ = slow
}
