// Command server runs the chat broadcast server. It takes a single port
// argument and listens on all interfaces; additional tuning comes from
// CHAT_* environment variables (see internal/config).
package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/hashicorp/go-metrics"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/internal/chat"
	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/internal/config"
	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/internal/transport/tcp"
	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/internal/transport/ws"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <port>\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}
	port := os.Args[1]
	if _, err := strconv.Atoi(port); err != nil {
		fmt.Fprintf(os.Stderr, "invalid port %q\n", port)
		os.Exit(1)
	}

	cfg, err := config.LoadServer()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if _, err := metrics.NewGlobal(metrics.DefaultConfig("chat-server"),
		metrics.NewInmemSink(10*time.Second, time.Minute)); err != nil {
		logger.Warn("metrics sink unavailable", "error", err)
	}

	room := chat.NewRoom(
		chat.WithLogger(logger),
		chat.WithHistorySize(cfg.HistorySize),
		chat.WithMaxParticipants(cfg.MaxParticipants),
	)

	tcpServer := tcp.New(net.JoinHostPort("", port), room, logger)

	var wsServer *ws.Server
	group := new(errgroup.Group)
	group.Go(tcpServer.Start)
	if cfg.WebSocketAddr != "" {
		wsServer = ws.New(cfg.WebSocketAddr, room, logger)
		group.Go(wsServer.Start)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- group.Wait()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-sigChan:
		logger.Info("shutting down", "signal", sig.String())
		tcpServer.Stop()
		if wsServer != nil {
			wsServer.Stop()
		}
		<-errChan
	}

	logger.Info("server stopped")
}
