package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainListener_Listen(t *testing.T) {
	l := NewPlainListener()

	listener, err := l.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	assert.NotNil(t, listener.Addr())
}

func TestTLSListener_Listen_MissingCertificate(t *testing.T) {
	l := NewTLSListener("missing-cert.pem", "missing-key.pem")

	listener, err := l.Listen("tcp", "127.0.0.1:0")
	assert.Nil(t, listener)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load TLS certificate")
}
