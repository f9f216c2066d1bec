package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLayer opens an ephemeral listener and reports its bound
// address so the test can reach the server.
type captureLayer struct {
	addr chan string
}

func (c *captureLayer) Listen(protocol, addr string) (net.Listener, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	c.addr <- l.Addr().String()
	return l, nil
}

func TestHTTPServer_Lifecycle(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := NewHTTPServer(handler, ":0")
	assert.Equal(t, ":0", srv.Address())

	layer := &captureLayer{addr: make(chan string, 1)}
	done := make(chan error, 1)
	go func() { done <- srv.Start(layer) }()

	addr := <-layer.addr
	resp, err := http.Get(fmt.Sprintf("http://%s/", addr))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	// Graceful shutdown is not an error.
	require.NoError(t, <-done)
}
