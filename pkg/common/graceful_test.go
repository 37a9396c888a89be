package common

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadTimeoutConfig(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "30")
	t.Setenv("IDLE_TIMEOUT", "nope")
	cfg := LoadTimeoutConfig(DefaultTimeouts())
	assert.Equal(t, 30*time.Second, cfg.Read)
	assert.Equal(t, 60*time.Second, cfg.Idle)

	server := NewServerWithTimeouts(nil, cfg)
	assert.Equal(t, 30*time.Second, server.ReadTimeout)
	assert.Equal(t, 5*time.Second, server.ReadHeaderTimeout)
}

func TestRunServerWithShutdownRunsHooks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	server := NewServerWithTimeouts(&http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NotFoundHandler(),
	}, DefaultTimeouts())

	hookRan := false
	done := make(chan error, 1)
	go func() {
		done <- RunServerWithShutdown(ctx, server, zap.NewNop(), "test", DefaultTimeouts(),
			nil,
			func(context.Context) error {
				hookRan = true
				return nil
			})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.True(t, hookRan)
}
