package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/internal/config"
)

func TestLoadServer_Defaults(t *testing.T) {
	cfg, err := config.LoadServer()
	require.NoError(t, err)
	require.Equal(t, 50, cfg.HistorySize)
	require.Equal(t, 0, cfg.MaxParticipants)
	require.Empty(t, cfg.WebSocketAddr)
}

func TestLoadServer_FromEnvironment(t *testing.T) {
	t.Setenv("CHAT_HISTORY_SIZE", "10")
	t.Setenv("CHAT_MAX_PARTICIPANTS", "100")
	t.Setenv("CHAT_WS_ADDR", ":9090")

	cfg, err := config.LoadServer()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.HistorySize)
	require.Equal(t, 100, cfg.MaxParticipants)
	require.Equal(t, ":9090", cfg.WebSocketAddr)
}

func TestLoadServer_InvalidValues(t *testing.T) {
	t.Setenv("CHAT_HISTORY_SIZE", "not-a-number")
	_, err := config.LoadServer()
	require.Error(t, err)

	t.Setenv("CHAT_HISTORY_SIZE", "0")
	_, err = config.LoadServer()
	require.Error(t, err)
}
