package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"portfolio-value-service/internal/infrastructure/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_UsesConfiguredTimeouts(t *testing.T) {
	cfg := config.GetDefaultConfig().Server
	cfg.Port = 9099

	srv := NewServer(http.NotFoundHandler(), cfg)

	assert.Equal(t, ":9099", srv.httpServer.Addr)
	assert.Equal(t, cfg.ReadTimeout, srv.httpServer.ReadTimeout)
	assert.Equal(t, cfg.WriteTimeout, srv.httpServer.WriteTimeout)
	assert.Equal(t, cfg.IdleTimeout, srv.httpServer.IdleTimeout)
	assert.Equal(t, 9099, srv.GetPort())
}

func TestServer_ServeAndStop(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}), config.GetDefaultConfig().Server)

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(listener)
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
